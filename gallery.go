package mockshot

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"path/filepath"

	"github.com/alnah/mockshot/internal/assets"
	"github.com/alnah/mockshot/internal/filelock"
	"github.com/alnah/mockshot/internal/markdown"
)

// Gallery defaults.
const (
	DefaultGalleryTitle = "Mockups"
	DefaultGalleryLang  = "es"
	GalleryFileName     = "index.html"
)

// BuildGallery replays sections against the captured records. Sections keep
// declaration order; records follow the section's file order, then the
// capture (viewport) order. Files without records are skipped and roles with
// no records at all are omitted.
func BuildGallery(sections []RoleSection, index RecordIndex) Gallery {
	var g Gallery
	for _, sec := range sections {
		var recs []*CaptureRecord
		for _, f := range sec.Files {
			recs = append(recs, index[f]...)
		}
		if len(recs) == 0 {
			continue
		}
		g.Sections = append(g.Sections, GallerySection{
			Role:    sec.Role,
			Notes:   sec.Notes,
			Records: recs,
		})
	}
	return g
}

// GalleryBuilder renders a Gallery to a standalone HTML document.
type GalleryBuilder struct {
	tmpl        *template.Template
	css         string
	title       string
	lang        string
	intro       string
	narrowKinds map[string]bool
	notes       *markdown.Renderer
}

// GalleryOption configures a GalleryBuilder.
type GalleryOption func(*GalleryBuilder)

// WithGalleryTitle sets the document title.
func WithGalleryTitle(title string) GalleryOption {
	return func(b *GalleryBuilder) {
		if title != "" {
			b.title = title
		}
	}
}

// WithGalleryLang sets the html lang attribute.
func WithGalleryLang(lang string) GalleryOption {
	return func(b *GalleryBuilder) {
		if lang != "" {
			b.lang = lang
		}
	}
}

// WithGalleryIntro sets Markdown shown above the first role.
func WithGalleryIntro(intro string) GalleryOption {
	return func(b *GalleryBuilder) {
		b.intro = intro
	}
}

// WithNarrowKinds sets the viewport kinds rendered at half width.
// The default is the mobile viewport only.
func WithNarrowKinds(kinds ...string) GalleryOption {
	return func(b *GalleryBuilder) {
		b.narrowKinds = make(map[string]bool, len(kinds))
		for _, k := range kinds {
			b.narrowKinds[k] = true
		}
	}
}

// NewGalleryBuilder loads the gallery template and stylesheet from loader.
func NewGalleryBuilder(loader assets.AssetLoader, opts ...GalleryOption) (*GalleryBuilder, error) {
	src, err := loader.LoadTemplate(assets.GalleryTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading gallery template: %w", err)
	}
	css, err := loader.LoadStyle(assets.GalleryStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading gallery style: %w", err)
	}
	tmpl, err := template.New(assets.GalleryTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing gallery template: %w", err)
	}

	b := &GalleryBuilder{
		tmpl:        tmpl,
		css:         css,
		title:       DefaultGalleryTitle,
		lang:        DefaultGalleryLang,
		narrowKinds: map[string]bool{ViewportMobile: true},
		notes:       markdown.NewRenderer(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// IsNarrow reports whether records of this viewport kind use the
// half-width, centered presentation.
func (b *GalleryBuilder) IsNarrow(kind string) bool {
	return b.narrowKinds[kind]
}

// galleryView is the template data.
type galleryView struct {
	Title    string
	Lang     string
	CSS      template.CSS
	Intro    template.HTML
	Sections []sectionView
}

type sectionView struct {
	Role   string
	Notes  template.HTML
	Blocks []blockView
}

type blockView struct {
	Title  string
	Src    template.URL
	Narrow bool
}

// Render writes the gallery document to w. Text is escaped by html/template;
// Markdown notes are sanitised before embedding.
func (b *GalleryBuilder) Render(ctx context.Context, w io.Writer, g Gallery) error {
	view := galleryView{
		Title: b.title,
		Lang:  b.lang,
	}

	intro, err := b.notes.Render(ctx, b.intro)
	if err != nil {
		return fmt.Errorf("rendering intro: %w", err)
	}
	view.Intro = template.HTML(intro) // #nosec G203 -- sanitised by the markdown renderer
	usesMarkdown := intro != ""

	for _, sec := range g.Sections {
		notes, err := b.notes.Render(ctx, sec.Notes)
		if err != nil {
			return fmt.Errorf("rendering notes for %q: %w", sec.Role, err)
		}
		usesMarkdown = usesMarkdown || notes != ""

		sv := sectionView{
			Role:  sec.Role,
			Notes: template.HTML(notes), // #nosec G203 -- sanitised by the markdown renderer
		}
		for _, rec := range sec.Records {
			sv.Blocks = append(sv.Blocks, blockView{
				Title:  rec.Title,
				Src:    rasterSrc(rec.OutputPath),
				Narrow: b.IsNarrow(rec.ViewportKind),
			})
		}
		view.Sections = append(view.Sections, sv)
	}

	css := b.css
	if usesMarkdown {
		highlight, err := b.notes.StyleSheet()
		if err != nil {
			return err
		}
		css += "\n" + highlight
	}
	view.CSS = template.CSS(css) // #nosec G203 -- stylesheet from trusted assets

	if err := b.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("executing gallery template: %w", err)
	}
	return nil
}

// rasterSrc returns the document-relative URL of a raster. The base name is
// percent-encoded so '#', '?' and ':' in page names stay part of the path.
func rasterSrc(outputPath string) template.URL {
	u := url.URL{Path: "./" + filepath.Base(outputPath)}
	return template.URL(u.String()) // #nosec G203 -- path-only URL built by net/url
}

// WriteGallery renders g and persists it to path.
func (b *GalleryBuilder) WriteGallery(ctx context.Context, path string, g Gallery) error {
	var buf bytes.Buffer
	if err := b.Render(ctx, &buf, g); err != nil {
		return fmt.Errorf("%w: %v", ErrGalleryWrite, err)
	}
	if err := filelock.AtomicWrite(path, buf.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrGalleryWrite, err)
	}
	return nil
}
