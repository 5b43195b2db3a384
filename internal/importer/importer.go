// Package importer converts WordPress WXR export documents into the
// canonical export envelope.
package importer

import (
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogconv/internal/ghost"
	"github.com/goliatone/go-blogconv/internal/identifier"
	"github.com/goliatone/go-blogconv/internal/logging"
	"github.com/goliatone/go-blogconv/internal/shortcode"
	"github.com/goliatone/go-blogconv/internal/slugger"
	"github.com/goliatone/go-blogconv/internal/wxr"
	"github.com/goliatone/go-blogconv/internal/wxrtime"
	"github.com/goliatone/go-blogconv/pkg/interfaces"
)

const parseFailedCode = "WXR_PARSE_FAILED"

const (
	// DefaultGhostVersion is echoed into the export meta when the caller
	// does not pick a target version.
	DefaultGhostVersion = "6.0.0"

	// zeroDate is the sentinel some exporters emit for unset GMT dates.
	zeroDate = "0000-00-00 00:00:00"
	// epochDate is the default when an item carries no usable date at all.
	epochDate = "1970-01-01 00:00:00"
)

// statusMap translates source post statuses into canonical ones.
// Unrecognized values degrade to draft.
var statusMap = map[string]string{
	"publish": ghost.StatusPublished,
	"draft":   ghost.StatusDraft,
	"private": ghost.StatusPrivate,
	"pending": ghost.StatusDraft,
}

// Config captures the dependencies of the import transform. Every field is
// optional; zero values select the production defaults.
type Config struct {
	// GhostVersion is the target schema version echoed into the envelope.
	GhostVersion string
	// Authors overrides the login-to-user mapping policy. The default maps
	// every source login onto the synthetic administrator.
	Authors interfaces.AuthorResolver
	// IDs supplies auxiliary post UUIDs.
	IDs interfaces.IdentitySource
	// Clock supplies "now" when the document has no channel pubDate.
	Clock  interfaces.Clock
	Logger interfaces.Logger
}

// Importer is the WXR to canonical transform. It holds no per-run state and
// is safe to share across concurrent conversions.
type Importer struct {
	version string
	authors interfaces.AuthorResolver
	ids     interfaces.IdentitySource
	clock   interfaces.Clock
	logger  interfaces.Logger
}

// New builds an Importer from the supplied configuration.
func New(cfg Config) *Importer {
	imp := &Importer{
		version: cfg.GhostVersion,
		authors: cfg.Authors,
		ids:     cfg.IDs,
		clock:   cfg.Clock,
		logger:  cfg.Logger,
	}
	if imp.version == "" {
		imp.version = DefaultGhostVersion
	}
	if imp.ids == nil {
		imp.ids = identifier.RandomSource{}
	}
	if imp.clock == nil {
		imp.clock = interfaces.ClockFunc(time.Now)
	}
	if imp.logger == nil {
		imp.logger = logging.NoOp()
	}
	return imp
}

// Convert parses a WXR document and assembles the canonical envelope.
// Unparseable XML is the only fatal condition; per-item anomalies degrade
// to documented defaults.
func (i *Importer) Convert(raw string) (*ghost.Export, error) {
	doc, err := wxr.Parse(raw)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "wordpress export is not valid XML").
			WithTextCode(parseFailedCode)
	}

	run := newRunState(i)
	run.collectTerms(doc)
	run.buildIdentities(doc)
	run.collectPosts(doc)

	exportedAt := i.clock.Now()
	if pubDate := doc.Text("pubDate"); pubDate != "" {
		if parsed, ok := wxrtime.ParsePubDate(pubDate); ok {
			exportedAt = parsed
		}
	}

	i.logger.Debug("wxr import complete",
		"posts", len(run.posts),
		"tags", len(run.tags),
		"relations", len(run.postsTags),
	)

	return &ghost.Export{
		DB: []ghost.Database{{
			Meta: ghost.Meta{
				ExportedOn: wxrtime.EpochMillis(exportedAt),
				Version:    i.version,
			},
			Data: ghost.Data{
				Posts:        run.posts,
				Tags:         run.tags,
				PostsTags:    run.postsTags,
				Users:        run.users,
				Roles:        run.roles,
				RolesUsers:   run.rolesUsers,
				PostsAuthors: run.postsAuthors,
			},
		}},
	}, nil
}

// runState carries everything mutable for one conversion: sequences, the
// slug collision tracker, term and login lookup tables, and the collections
// being assembled. It never outlives a Convert call.
type runState struct {
	imp *Importer

	seq   *identifier.Sequence
	slugs *slugger.Tracker

	termToTag   map[string]string
	loginToUser map[string]string
	defaultUser string

	posts        []ghost.Post
	tags         []ghost.Tag
	postsTags    []ghost.PostTag
	users        []ghost.User
	roles        []ghost.Role
	rolesUsers   []ghost.RoleUser
	postsAuthors []ghost.PostAuthor
}

func newRunState(imp *Importer) *runState {
	return &runState{
		imp:          imp,
		seq:          identifier.NewSequence(),
		slugs:        slugger.NewTracker(),
		termToTag:    map[string]string{},
		loginToUser:  map[string]string{},
		posts:        []ghost.Post{},
		tags:         []ghost.Tag{},
		postsTags:    []ghost.PostTag{},
		users:        []ghost.User{},
		roles:        []ghost.Role{},
		rolesUsers:   []ghost.RoleUser{},
		postsAuthors: []ghost.PostAuthor{},
	}
}

// collectTerms gathers category and tag term definitions, keyed by
// nicename. First occurrence wins; later duplicates are ignored.
func (r *runState) collectTerms(doc *wxr.Document) {
	for _, cat := range doc.FindAll("wp:category") {
		r.addTerm(
			cat.Text("wp:category_nicename"),
			cat.Text("wp:cat_name"),
			cat.Text("wp:category_description"),
		)
	}
	for _, tag := range doc.FindAll("wp:tag") {
		r.addTerm(tag.Text("wp:tag_slug"), tag.Text("wp:tag_name"), "")
	}
}

func (r *runState) addTerm(nicename, name, description string) {
	if nicename == "" {
		return
	}
	if _, seen := r.termToTag[nicename]; seen {
		return
	}
	id := r.seq.Next("tag")
	r.tags = append(r.tags, ghost.Tag{
		ID:          id,
		Slug:        nicename,
		Name:        name,
		Description: description,
	})
	r.termToTag[nicename] = id
}

// buildIdentities creates the synthetic administrator user and role, then
// maps every author login found in the document through the resolver.
// Source author identities are deliberately not preserved one-to-one.
func (r *runState) buildIdentities(doc *wxr.Document) {
	r.defaultUser = r.seq.Next("user")
	r.users = append(r.users, ghost.User{
		ID:    r.defaultUser,
		Name:  "Administrator",
		Slug:  "admin",
		Email: "admin@example.com",
	})

	roleID := r.seq.Next("role")
	r.roles = append(r.roles, ghost.Role{
		ID:          roleID,
		Name:        "Administrator",
		Description: "Administrators have full access to the site",
	})
	r.rolesUsers = append(r.rolesUsers, ghost.RoleUser{
		RoleID: roleID,
		UserID: r.defaultUser,
	})

	for _, author := range doc.FindAll("wp:author") {
		login := author.Text("wp:author_login")
		if login == "" {
			continue
		}
		r.loginToUser[login] = r.resolveLogin(login)
	}
}

func (r *runState) resolveLogin(login string) string {
	if r.imp.authors != nil {
		if id := r.imp.authors.Resolve(login); id != "" {
			return id
		}
	}
	return r.defaultUser
}

// collectPosts walks every item, importing posts and pages and skipping
// everything else (attachments, nav menu items, and so on).
func (r *runState) collectPosts(doc *wxr.Document) {
	for i, item := range doc.FindAll("item") {
		postType := item.Text("wp:post_type")
		if postType != ghost.TypePost && postType != ghost.TypePage {
			continue
		}
		r.addPost(item, i, postType)
	}
}

func (r *runState) addPost(item *wxr.Node, position int, postType string) {
	created := r.resolveCreated(item)
	published := r.resolvePublished(item, created)

	title := item.Text("title")
	if title == "" {
		title = "Untitled post"
	}

	slug := item.Text("wp:post_name")
	if slug == "" {
		slug = slugger.Generate(title)
	}
	slug = r.slugs.Claim(slug)

	status, known := statusMap[firstNonEmpty(item.Text("wp:status"), "draft")]
	if !known {
		status = ghost.StatusDraft
	}

	creator := item.Text("dc:creator")
	authorID := r.defaultUser
	if creator != "" {
		if mapped, ok := r.loginToUser[creator]; ok {
			authorID = mapped
		}
	}

	postID := item.Text("wp:post_id")
	if postID == "" {
		postID = positionalID(position)
	}

	content := item.Text("content:encoded")

	post := ghost.Post{
		ID:          postID,
		UUID:        r.imp.ids.UUID(),
		Title:       title,
		Slug:        slug,
		Markdown:    shortcode.Rewrite(content),
		HTML:        shortcode.RewriteHTML(content),
		Featured:    boolFlag(item.Text("wp:is_sticky") == "1"),
		Page:        boolFlag(postType == ghost.TypePage),
		Type:        postType,
		Status:      status,
		Visibility:  ghost.VisibilityPublic,
		CreatedAt:   wxrtime.FormatISO(created),
		CreatedBy:   authorID,
		UpdatedAt:   wxrtime.FormatISO(created),
		UpdatedBy:   authorID,
		PublishedAt: wxrtime.FormatISO(published),
		PublishedBy: authorID,
	}

	for _, cat := range item.FindAll("category") {
		nicename := cat.Attr("nicename")
		if nicename == "" {
			continue
		}
		if tagID, ok := r.termToTag[nicename]; ok {
			r.postsTags = append(r.postsTags, ghost.PostTag{
				TagID:  tagID,
				PostID: post.ID,
			})
		}
	}

	r.postsAuthors = append(r.postsAuthors, ghost.PostAuthor{
		PostID:   post.ID,
		AuthorID: authorID,
	})
	r.posts = append(r.posts, post)
}

// resolveCreated picks the authoritative item date: the GMT field unless
// absent or the zero sentinel, then the local field, then the epoch default.
func (r *runState) resolveCreated(item *wxr.Node) time.Time {
	dateStr := item.Text("wp:post_date_gmt")
	if dateStr == "" || dateStr == zeroDate {
		dateStr = item.Text("wp:post_date")
		if dateStr == "" {
			dateStr = epochDate
		}
	}
	if parsed, ok := wxrtime.ParseWXR(dateStr); ok {
		return parsed
	}
	r.imp.logger.Warn("unparseable item date, defaulting to epoch", "value", dateStr)
	return time.Unix(0, 0).UTC()
}

// resolvePublished lets the item pubDate override the published timestamp
// only. The "-0001" substring guards against an invalid-year sentinel some
// exporters emit; it is reproduced verbatim, not generalized.
func (r *runState) resolvePublished(item *wxr.Node, created time.Time) time.Time {
	pubDate := item.Text("pubDate")
	if pubDate == "" || strings.Contains(pubDate, "-0001") {
		return created
	}
	if parsed, ok := wxrtime.ParsePubDate(pubDate); ok {
		return parsed
	}
	return created
}

func positionalID(position int) string {
	return "post-" + strconv.Itoa(position)
}

func boolFlag(value bool) int {
	if value {
		return 1
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
