package shortcode

import (
	"strings"
	"testing"
)

func TestRewrite_VideoShortcode(t *testing.T) {
	got := Rewrite(`Intro [video src="source.mp4"]`)
	want := `Intro <video controls><source src="source.mp4" type="video/mp4"></video>`
	if got != want {
		t.Fatalf("Rewrite = %q, want %q", got, want)
	}
}

func TestRewrite_VideoDefaultsToMP4(t *testing.T) {
	got := Rewrite(`[video src="stream"]`)
	if !strings.Contains(got, `type="video/mp4"`) {
		t.Fatalf("extensionless source should default to mp4, got %q", got)
	}
}

func TestRewrite_VideoMultipleSources(t *testing.T) {
	got := Rewrite(`[video mp4="clip.mp4" webm="clip.webm"]`)
	if !strings.Contains(got, `<source src="clip.mp4" type="video/mp4">`) {
		t.Fatalf("missing mp4 source in %q", got)
	}
	if !strings.Contains(got, `<source src="clip.webm" type="video/webm">`) {
		t.Fatalf("missing webm source in %q", got)
	}
}

func TestRewrite_AudioShortcode(t *testing.T) {
	got := Rewrite(`[audio src="episode.mp3"]`)
	want := `<audio controls><source src="episode.mp3"></audio>`
	if got != want {
		t.Fatalf("Rewrite = %q, want %q", got, want)
	}
}

func TestRewrite_CaptionUnwrapped(t *testing.T) {
	got := Rewrite(`[caption id="attachment_1"]Image[/caption]`)
	if got != "Image" {
		t.Fatalf("Rewrite = %q, want Image", got)
	}
	if strings.Contains(got, "[caption") {
		t.Fatalf("residual caption marker in %q", got)
	}
}

func TestRewrite_CodeBlock(t *testing.T) {
	got := Rewrite("[code lang=\"go\"]\nfunc main() {}\n[/code]")
	want := "<pre><code>func main() {}</code></pre>"
	if got != want {
		t.Fatalf("Rewrite = %q, want %q", got, want)
	}
}

func TestRewrite_SourcecodeBlockKeepsInnerBreaks(t *testing.T) {
	got := Rewrite("[sourcecode]\nline one\nline two\n[/sourcecode]")
	want := "<pre><code>line one\nline two</code></pre>"
	if got != want {
		t.Fatalf("Rewrite = %q, want %q", got, want)
	}
}

func TestRewrite_NormalizesLineEndings(t *testing.T) {
	got := Rewrite("a\r\nb\rc")
	if got != "a\nb\nc" {
		t.Fatalf("Rewrite = %q", got)
	}
}

func TestRewriteHTML_Paragraphs(t *testing.T) {
	got := RewriteHTML("first\n\nsecond")
	if got != "first<p>second" {
		t.Fatalf("RewriteHTML = %q", got)
	}
}

func TestRewriteHTML_PreservesBlankLinesInsideCode(t *testing.T) {
	raw := "before\n\n[code]\na\n\nb\n[/code]\n\nafter"
	got := RewriteHTML(raw)

	if !strings.Contains(got, "<pre><code>a\n\nb</code></pre>") {
		t.Fatalf("code body should keep its blank line, got %q", got)
	}
	// The paragraph marker in front of the block is dropped so the pre
	// element opens the line.
	if !strings.HasPrefix(got, "before<pre>") {
		t.Fatalf("pre should open directly after preceding text, got %q", got)
	}
	if !strings.HasSuffix(got, "<p>after") {
		t.Fatalf("text after the block should paragraph-break, got %q", got)
	}
}

func TestRewriteHTML_NoLeadingParagraphBeforePre(t *testing.T) {
	got := RewriteHTML("intro\n\n[code]x[/code]")
	if strings.Contains(got, "<p><pre>") {
		t.Fatalf("paragraph marker should not precede pre, got %q", got)
	}
}
