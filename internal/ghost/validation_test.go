package ghost

import (
	"errors"
	"strings"
	"testing"
)

func validPost() Post {
	return Post{
		ID:          "post-1",
		Title:       "Hello Ghost",
		Slug:        "hello-ghost",
		HTML:        "<p>Content</p>",
		Status:      StatusPublished,
		PublishedAt: "2024-01-01T00:00:00.000Z",
	}
}

func TestExportValidate_RequiresDatabase(t *testing.T) {
	var export Export
	if err := export.Validate(); !errors.Is(err, ErrDatabaseRequired) {
		t.Fatalf("error = %v, want ErrDatabaseRequired", err)
	}
}

func TestPostValidate_OK(t *testing.T) {
	if err := validPost().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestPostValidate_MissingSlug(t *testing.T) {
	post := validPost()
	post.Slug = ""
	err := post.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "slug") {
		t.Fatalf("error should name the missing field, got %v", err)
	}
}

func TestPostValidate_RequiresSomeBody(t *testing.T) {
	post := validPost()
	post.HTML = ""
	post.Markdown = ""
	if err := post.Validate(); err == nil {
		t.Fatal("expected error when both bodies are empty")
	}

	post.Markdown = "Just markdown"
	if err := post.Validate(); err != nil {
		t.Fatalf("markdown-only post should validate, got %v", err)
	}
}

func TestDatabaseValidate_NamesOffendingPost(t *testing.T) {
	db := Database{Data: Data{Posts: []Post{validPost(), {}}}}
	err := db.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "post 1") {
		t.Fatalf("error should identify the post, got %v", err)
	}
}
