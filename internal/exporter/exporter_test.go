package exporter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blogconv/internal/ghost"
	"github.com/goliatone/go-blogconv/pkg/interfaces"
)

func sampleExport() *ghost.Export {
	return &ghost.Export{
		DB: []ghost.Database{{
			Meta: ghost.Meta{ExportedOn: 1703865600000, Version: "6.0.0"},
			Data: ghost.Data{
				Posts: []ghost.Post{{
					ID:          "post-1",
					Title:       "Hello Ghost",
					Slug:        "hello-ghost",
					HTML:        "<p>Content in HTML</p>",
					Featured:    0,
					Type:        ghost.TypePost,
					Status:      ghost.StatusPublished,
					CreatedAt:   "2024-01-01T00:00:00.000Z",
					CreatedBy:   "user-1",
					UpdatedAt:   "2024-01-01T00:00:00.000Z",
					UpdatedBy:   "user-1",
					PublishedAt: "2024-01-01T00:00:00.000Z",
					PublishedBy: "user-1",
				}},
				Tags: []ghost.Tag{{
					ID:   "tag-1",
					Slug: "news",
					Name: "News",
				}},
				PostsTags: []ghost.PostTag{{
					PostID: "post-1",
					TagID:  "tag-1",
				}},
				Users: []ghost.User{{
					ID:    "user-1",
					Name:  "Test Admin",
					Slug:  "test-admin",
					Email: "test@example.com",
				}},
				PostsAuthors: []ghost.PostAuthor{{
					PostID:   "post-1",
					AuthorID: "user-1",
				}},
			},
		}},
	}
}

func testExporter() *Exporter {
	return New(Config{
		Clock: interfaces.ClockFunc(func() time.Time {
			return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		}),
	})
}

func mustExport(t *testing.T, export *ghost.Export) string {
	t.Helper()
	xml, err := testExporter().Convert(export)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return xml
}

func TestConvert_DocumentShape(t *testing.T) {
	xml := mustExport(t, sampleExport())

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<rss version="2.0"`,
		`xmlns:content="http://purl.org/rss/1.0/modules/content/"`,
		`xmlns:dc="http://purl.org/dc/elements/1.1/"`,
		`xmlns:wp="http://wordpress.org/export/1.2/"`,
		`<wp:wxr_version>1.2</wp:wxr_version>`,
		`<wp:author>`,
		`<wp:author_login><![CDATA[test-admin]]></wp:author_login>`,
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestConvert_PostFieldsWithCDATA(t *testing.T) {
	xml := mustExport(t, sampleExport())

	for _, want := range []string{
		`<title><![CDATA[Hello Ghost]]></title>`,
		`<wp:post_name><![CDATA[hello-ghost]]></wp:post_name>`,
		`<content:encoded><![CDATA[<p>Content in HTML</p>]]></content:encoded>`,
		`<wp:status><![CDATA[publish]]></wp:status>`,
		`<dc:creator><![CDATA[test-admin]]></dc:creator>`,
		`<wp:post_type><![CDATA[post]]></wp:post_type>`,
		`<wp:is_sticky>0</wp:is_sticky>`,
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("item missing %q", want)
		}
	}
}

func TestConvert_Dates(t *testing.T) {
	xml := mustExport(t, sampleExport())

	if !strings.Contains(xml, `<wp:post_date><![CDATA[2024-01-01 00:00:00]]></wp:post_date>`) {
		t.Errorf("post date not reformatted:\n%s", xml)
	}
	if !strings.Contains(xml, `<pubDate>Mon, 01 Jan 2024 00:00:00 +0000</pubDate>`) {
		t.Errorf("item pubDate missing:\n%s", xml)
	}
	// Channel pubDate comes from the injected clock.
	if !strings.Contains(xml, `<pubDate>Sat, 01 Jun 2024 12:00:00 +0000</pubDate>`) {
		t.Errorf("channel pubDate missing:\n%s", xml)
	}
}

func TestConvert_Tags(t *testing.T) {
	xml := mustExport(t, sampleExport())

	if !strings.Contains(xml, `<wp:tag_name><![CDATA[News]]></wp:tag_name>`) {
		t.Errorf("term definition missing:\n%s", xml)
	}
	if !strings.Contains(xml, `<category domain="post_tag" nicename="news"><![CDATA[News]]></category>`) {
		t.Errorf("per-post category missing:\n%s", xml)
	}
}

func TestConvert_FeaturedPostIsSticky(t *testing.T) {
	export := sampleExport()
	export.DB[0].Data.Posts[0].Featured = 1
	xml := mustExport(t, export)

	if !strings.Contains(xml, `<wp:is_sticky>1</wp:is_sticky>`) {
		t.Errorf("sticky flag not set:\n%s", xml)
	}
}

func TestConvert_DraftStatusPassesThrough(t *testing.T) {
	export := sampleExport()
	export.DB[0].Data.Posts[0].Status = ghost.StatusDraft
	xml := mustExport(t, export)

	if !strings.Contains(xml, `<wp:status><![CDATA[draft]]></wp:status>`) {
		t.Errorf("draft status mapped incorrectly:\n%s", xml)
	}
}

func TestConvert_MarkdownFallbackRendersHTML(t *testing.T) {
	export := sampleExport()
	export.DB[0].Data.Posts[0].HTML = ""
	export.DB[0].Data.Posts[0].Markdown = "# Heading"
	xml := mustExport(t, export)

	if !strings.Contains(xml, `<content:encoded><![CDATA[<h1>Heading</h1>]]></content:encoded>`) {
		t.Errorf("markdown body not rendered:\n%s", xml)
	}
}

func TestConvert_MissingFieldFailsValidation(t *testing.T) {
	export := sampleExport()
	export.DB[0].Data.Posts[0].Slug = ""

	_, err := testExporter().Convert(export)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("error = %v, want ErrSchemaValidation", err)
	}
	if !strings.Contains(err.Error(), "slug") {
		t.Fatalf("error should name the missing field, got %v", err)
	}
}

func TestConvert_EmptyEnvelopeFails(t *testing.T) {
	_, err := testExporter().Convert(&ghost.Export{})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("error = %v, want ErrSchemaValidation", err)
	}
}

func TestConvert_InvalidTimestampFails(t *testing.T) {
	export := sampleExport()
	export.DB[0].Data.Posts[0].PublishedAt = "yesterday"

	_, err := testExporter().Convert(export)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("error = %v, want ErrSchemaValidation", err)
	}
}

func TestConvert_DanglingTagReferenceSkipped(t *testing.T) {
	export := sampleExport()
	export.DB[0].Data.PostsTags = append(export.DB[0].Data.PostsTags, ghost.PostTag{
		PostID: "post-1",
		TagID:  "tag-missing",
	})

	xml := mustExport(t, export)
	if strings.Count(xml, `<category domain="post_tag"`) != 1 {
		t.Errorf("dangling tag reference should not emit a category:\n%s", xml)
	}
}
