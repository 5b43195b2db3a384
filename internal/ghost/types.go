// Package ghost models the canonical JSON export envelope consumed and
// produced by the conversion engine.
package ghost

// Export is the top-level envelope. The wire format carries a list of
// database snapshots; converters only ever populate the first.
type Export struct {
	DB []Database `json:"db"`
}

// Database pairs export metadata with one dataset.
type Database struct {
	Meta Meta `json:"meta"`
	Data Data `json:"data"`
}

// Meta records when the dataset was exported and the target schema version.
type Meta struct {
	// ExportedOn is a millisecond UTC epoch.
	ExportedOn int64  `json:"exported_on"`
	Version    string `json:"version"`
}

// Data holds the ordered entity collections plus the pure relation tables.
type Data struct {
	Posts        []Post       `json:"posts"`
	Tags         []Tag        `json:"tags"`
	PostsTags    []PostTag    `json:"posts_tags"`
	Users        []User       `json:"users,omitempty"`
	Roles        []Role       `json:"roles,omitempty"`
	RolesUsers   []RoleUser   `json:"roles_users,omitempty"`
	PostsAuthors []PostAuthor `json:"posts_authors,omitempty"`
}

// Post is one piece of content. Markdown and HTML are two renderings of the
// same body. Timestamps are ISO-8601 UTC strings with millisecond precision.
type Post struct {
	ID           string  `json:"id"`
	UUID         string  `json:"uuid,omitempty"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Markdown     string  `json:"markdown,omitempty"`
	HTML         string  `json:"html"`
	FeatureImage *string `json:"feature_image"`
	Featured     int     `json:"featured"`
	Page         int     `json:"page"`
	Type         string  `json:"type,omitempty"`
	Status       string  `json:"status"`
	Visibility   string  `json:"visibility,omitempty"`
	CreatedAt    string  `json:"created_at"`
	CreatedBy    string  `json:"created_by"`
	UpdatedAt    string  `json:"updated_at"`
	UpdatedBy    string  `json:"updated_by"`
	PublishedAt  string  `json:"published_at"`
	PublishedBy  string  `json:"published_by"`
}

// Tag is a term definition. Slug is unique within a dataset.
type Tag struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PostTag relates a post to a tag.
type PostTag struct {
	TagID  string `json:"tag_id"`
	PostID string `json:"post_id"`
}

// User is an author identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Email string `json:"email"`
}

// Role names a permission set; RoleUser binds roles to users.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleUser assigns a role to a user.
type RoleUser struct {
	RoleID string `json:"role_id"`
	UserID string `json:"user_id"`
}

// PostAuthor records which user authored a post.
type PostAuthor struct {
	PostID   string `json:"post_id"`
	AuthorID string `json:"author_id"`
}

// Post type and status values.
const (
	TypePost = "post"
	TypePage = "page"

	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusPrivate   = "private"

	VisibilityPublic = "public"
)
