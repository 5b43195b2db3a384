// Package shortcode expands legacy bracketed content directives into HTML.
// The rules run in a fixed order; later rules operate on the output of
// earlier ones.
package shortcode

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sourcecodeBlock = regexp.MustCompile(`(?s)\[sourcecode[^\]]*\]\n*(.*?)\n*\[/sourcecode\]`)
	codeBlock       = regexp.MustCompile(`(?s)\[code[^\]]*\]\n*(.*?)\n*\[/code\]`)
	captionWrapper  = regexp.MustCompile(`\[caption.+\](.+)\[/caption\]`)
	audioShortcode  = regexp.MustCompile(`\[audio\s(.+)\]`)
	videoShortcode  = regexp.MustCompile(`\[video\s(.+)\]`)

	quotedValue       = regexp.MustCompile(`["'](.+?)["']`)
	doubleQuotedValue = regexp.MustCompile(`"(.+?)"`)
	mediaExtension    = regexp.MustCompile(`['"](.*)\.([^.]*)['"]$`)

	preBlock = regexp.MustCompile(`(?s)<pre>(.*?)</pre>`)
)

// Rewrite expands shortcode markup in raw content, preserving line
// structure. This rendering populates the markdown body.
func Rewrite(raw string) string {
	content := normalizeNewlines(raw)
	content = sourcecodeBlock.ReplaceAllString(content, "<pre><code>$1</code></pre>")
	content = codeBlock.ReplaceAllString(content, "<pre><code>$1</code></pre>")
	content = captionWrapper.ReplaceAllString(content, "$1")
	content = audioShortcode.ReplaceAllStringFunc(content, expandAudio)
	content = videoShortcode.ReplaceAllStringFunc(content, expandVideo)
	return content
}

// RewriteHTML applies Rewrite and then a restrained paragraph pass: a double
// newline opens a paragraph, except inside preformatted blocks where the
// original blank lines are restored verbatim.
func RewriteHTML(raw string) string {
	content := Rewrite(raw)
	content = strings.ReplaceAll(content, "\n\n", "<p>")
	content = preBlock.ReplaceAllStringFunc(content, func(block string) string {
		return strings.ReplaceAll(block, "<p>", "\n\n")
	})
	content = strings.ReplaceAll(content, "<p><pre>", "<pre>")
	return content
}

func normalizeNewlines(raw string) string {
	content := strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// expandAudio turns every quoted attribute value into a candidate source.
// The quotes are kept as the src delimiters, matching the legacy emitter.
func expandAudio(match string) string {
	var sources strings.Builder
	for _, quoted := range quotedValue.FindAllString(match, -1) {
		fmt.Fprintf(&sources, "<source src=%s>", quoted)
	}
	return fmt.Sprintf("<audio controls>%s</audio>", sources.String())
}

// expandVideo emits one source per double-quoted value, inferring the media
// type from the file extension and defaulting to mp4.
func expandVideo(match string) string {
	var sources strings.Builder
	for _, quoted := range doubleQuotedValue.FindAllString(match, -1) {
		ext := "mp4"
		if m := mediaExtension.FindStringSubmatch(quoted); m != nil {
			ext = m[2]
		}
		fmt.Fprintf(&sources, `<source src=%s type="video/%s">`, quoted, ext)
	}
	return fmt.Sprintf("<video controls>%s</video>", sources.String())
}
