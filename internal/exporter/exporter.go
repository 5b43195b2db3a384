// Package exporter serializes the canonical export envelope into a
// WordPress WXR document.
package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/yuin/goldmark"

	"github.com/goliatone/go-blogconv/internal/ghost"
	"github.com/goliatone/go-blogconv/internal/logging"
	"github.com/goliatone/go-blogconv/internal/wxrtime"
	"github.com/goliatone/go-blogconv/pkg/interfaces"
)

const exportInvalidCode = "GHOST_EXPORT_INVALID"

// ErrSchemaValidation marks every fatal export-side failure so callers can
// distinguish it from malformed-input errors on the import side.
var ErrSchemaValidation = errors.New("exporter: export envelope failed schema validation")

const (
	wxrVersion  = "1.2"
	nsContent   = "http://purl.org/rss/1.0/modules/content/"
	nsDC        = "http://purl.org/dc/elements/1.1/"
	nsWordPress = "http://wordpress.org/export/1.2/"
)

// Config captures the dependencies of the export transform. Zero values
// select the production defaults.
type Config struct {
	// Clock supplies the channel pubDate.
	Clock  interfaces.Clock
	Logger interfaces.Logger
}

// Exporter is the canonical to WXR transform. It holds no per-run state and
// is safe to share across concurrent conversions.
type Exporter struct {
	clock    interfaces.Clock
	logger   interfaces.Logger
	markdown goldmark.Markdown
}

// New builds an Exporter from the supplied configuration.
func New(cfg Config) *Exporter {
	exp := &Exporter{
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		markdown: goldmark.New(),
	}
	if exp.clock == nil {
		exp.clock = interfaces.ClockFunc(time.Now)
	}
	if exp.logger == nil {
		exp.logger = logging.NoOp()
	}
	return exp
}

// Convert emits a complete WXR document for the envelope. An incomplete
// envelope fails validation up front; no partial document is produced.
func (e *Exporter) Convert(export *ghost.Export) (string, error) {
	if err := export.Validate(); err != nil {
		return "", schemaError(err)
	}

	data := export.DB[0].Data
	run := newRunState(data)

	w := newDocWriter()
	w.line(`<?xml version="1.0" encoding="UTF-8"?>`)
	w.line(`<rss version="2.0"`)
	w.line(`  xmlns:content=%q`, nsContent)
	w.line(`  xmlns:dc=%q`, nsDC)
	w.line(`  xmlns:wp=%q>`, nsWordPress)
	w.open("channel")

	w.cdata("title", "Ghost Export")
	w.element("link", "")
	w.cdata("description", "Converted from a Ghost export")
	w.element("pubDate", wxrtime.FormatPubDate(e.clock.Now()))
	w.element("wp:wxr_version", wxrVersion)

	for _, user := range data.Users {
		w.open("wp:author")
		w.cdata("wp:author_login", user.Slug)
		w.cdata("wp:author_email", user.Email)
		w.cdata("wp:author_display_name", user.Name)
		w.close("wp:author")
	}

	for i, tag := range data.Tags {
		w.open("wp:tag")
		w.element("wp:term_id", fmt.Sprintf("%d", i+1))
		w.cdata("wp:tag_slug", tag.Slug)
		w.cdata("wp:tag_name", tag.Name)
		w.close("wp:tag")
	}

	for i := range data.Posts {
		if err := e.writeItem(w, run, &data.Posts[i]); err != nil {
			return "", err
		}
	}

	w.close("channel")
	w.line(`</rss>`)

	e.logger.Debug("wxr export complete",
		"posts", len(data.Posts),
		"tags", len(data.Tags),
		"users", len(data.Users),
	)
	return w.String(), nil
}

func (e *Exporter) writeItem(w *docWriter, run *runState, post *ghost.Post) error {
	published, ok := wxrtime.ParseISO(post.PublishedAt)
	if !ok {
		return schemaError(fmt.Errorf("ghost: post %s: published_at %q is not a valid timestamp", post.ID, post.PublishedAt))
	}

	html := post.HTML
	if strings.TrimSpace(html) == "" {
		rendered, err := e.renderMarkdown(post.Markdown)
		if err != nil {
			return schemaError(err)
		}
		html = rendered
	}

	w.open("item")
	w.cdata("title", post.Title)
	w.element("pubDate", wxrtime.FormatPubDate(published))
	w.cdata("dc:creator", run.creatorSlug(post.ID))
	for _, tag := range run.postTags(post.ID) {
		w.line(`%s<category domain="post_tag" nicename=%q><![CDATA[%s]]></category>`, w.indent(), tag.Slug, tag.Name)
	}
	w.cdata("content:encoded", html)
	w.element("wp:post_id", post.ID)
	w.cdata("wp:post_date", wxrtime.FormatWXR(published))
	w.cdata("wp:post_name", post.Slug)
	w.cdata("wp:status", exportStatus(post.Status))
	w.cdata("wp:post_type", exportType(post))
	w.element("wp:is_sticky", stickyFlag(post.Featured))
	w.close("item")
	return nil
}

func schemaError(err error) error {
	return goerrors.Wrap(
		fmt.Errorf("%w: %w", ErrSchemaValidation, err),
		goerrors.CategoryValidation, "ghost export failed schema validation",
	).WithTextCode(exportInvalidCode)
}

func (e *Exporter) renderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := e.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("ghost: render markdown body: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// exportStatus inverts the import status map: published becomes publish,
// everything else passes through untouched.
func exportStatus(status string) string {
	if status == ghost.StatusPublished {
		return "publish"
	}
	return status
}

func exportType(post *ghost.Post) string {
	if post.Type == ghost.TypePage || post.Page == 1 {
		return ghost.TypePage
	}
	return ghost.TypePost
}

func stickyFlag(featured int) string {
	if featured == 1 {
		return "1"
	}
	return "0"
}

// runState indexes the relation tables once per conversion so per-post
// lookups stay cheap.
type runState struct {
	userSlugs   map[string]string
	postAuthor  map[string]string
	tagsByID    map[string]ghost.Tag
	tagsForPost map[string][]string
	defaultSlug string
}

func newRunState(data ghost.Data) *runState {
	run := &runState{
		userSlugs:   map[string]string{},
		postAuthor:  map[string]string{},
		tagsByID:    map[string]ghost.Tag{},
		tagsForPost: map[string][]string{},
		defaultSlug: "admin",
	}
	for i, user := range data.Users {
		run.userSlugs[user.ID] = user.Slug
		if i == 0 && user.Slug != "" {
			run.defaultSlug = user.Slug
		}
	}
	for _, rel := range data.PostsAuthors {
		run.postAuthor[rel.PostID] = rel.AuthorID
	}
	for _, tag := range data.Tags {
		run.tagsByID[tag.ID] = tag
	}
	for _, rel := range data.PostsTags {
		run.tagsForPost[rel.PostID] = append(run.tagsForPost[rel.PostID], rel.TagID)
	}
	return run
}

// creatorSlug resolves the authoring user's slug through the authorship
// table, falling back to the dataset's first user.
func (r *runState) creatorSlug(postID string) string {
	if authorID, ok := r.postAuthor[postID]; ok {
		if slug, ok := r.userSlugs[authorID]; ok && slug != "" {
			return slug
		}
	}
	return r.defaultSlug
}

// postTags returns the related tags in relation-table order, skipping
// dangling references rather than emitting empty categories.
func (r *runState) postTags(postID string) []ghost.Tag {
	ids := r.tagsForPost[postID]
	tags := make([]ghost.Tag, 0, len(ids))
	for _, id := range ids {
		if tag, ok := r.tagsByID[id]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// docWriter accumulates the document with two-space nesting. Free-text
// bodies go through cdata so embedded markup never needs escaping.
type docWriter struct {
	b     strings.Builder
	depth int
}

func newDocWriter() *docWriter {
	return &docWriter{}
}

func (w *docWriter) line(format string, args ...any) {
	if len(args) > 0 {
		fmt.Fprintf(&w.b, format, args...)
	} else {
		w.b.WriteString(format)
	}
	w.b.WriteByte('\n')
}

func (w *docWriter) indent() string {
	return strings.Repeat("  ", w.depth)
}

func (w *docWriter) open(name string) {
	w.line("%s<%s>", w.indent(), name)
	w.depth++
}

func (w *docWriter) close(name string) {
	w.depth--
	w.line("%s</%s>", w.indent(), name)
}

func (w *docWriter) element(name, value string) {
	w.line("%s<%s>%s</%s>", w.indent(), name, value, name)
}

func (w *docWriter) cdata(name, value string) {
	w.line("%s<%s><![CDATA[%s]]></%s>", w.indent(), name, value, name)
}

func (w *docWriter) String() string {
	return w.b.String()
}
