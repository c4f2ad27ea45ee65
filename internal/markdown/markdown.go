// Package markdown renders the free-form notes shown in the gallery
// (document intro and per-role notes) into sanitised HTML fragments.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates Markdown rendering failed.
var ErrRender = errors.New("markdown rendering failed")

// highlightStyle is the chroma style used for fenced code blocks.
const highlightStyle = "github"

// classPattern restricts class attributes to chroma-style token names.
var classPattern = regexp.MustCompile(`^[A-Za-z0-9_\- ]+$`)

// Renderer converts Markdown to HTML fragments safe to embed in the gallery.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer with GFM extensions and class-based
// syntax highlighting.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					html.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(classPattern).OnElements("pre", "code", "span", "div")

	return &Renderer{md: md, policy: policy}
}

// Render converts src to a sanitised HTML fragment.
// Blank input returns an empty string.
func (r *Renderer) Render(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// StyleSheet returns the CSS rules backing the highlighting classes.
func (r *Renderer) StyleSheet() (string, error) {
	var buf bytes.Buffer
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(highlightStyle)); err != nil {
		return "", fmt.Errorf("%w: writing highlight styles: %v", ErrRender, err)
	}
	return buf.String(), nil
}
