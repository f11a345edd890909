package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"regexp"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// Renderer turns markdown templates with YAML frontmatter into an HTML body
// wrapped in a layout plus a plain-text alternative.
type Renderer struct {
	fs     fs.FS
	md     goldmark.Markdown
	filter func(string) string

	// Parsed templates are cached; rendered output never is.
	templates   map[string]*cachedTemplate
	layouts     map[string]*template.Template
	templateDir string
	layoutDir   string

	mu sync.RWMutex
}

type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
}

// RendererConfig configures where templates and layouts live inside the FS.
type RendererConfig struct {
	TemplateDir string // Default: "."
	LayoutDir   string // Default: "layouts"

	// ContentFilter, if set, post-processes the HTML produced from markdown
	// before it is placed into the layout (e.g. an HTML sanitizer).
	ContentFilter func(string) string
}

// NewRenderer creates a renderer with the default directory layout.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a renderer with custom directories.
func NewRendererWithConfig(filesystem fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          filesystem,
		templateDir: cfg.TemplateDir,
		layoutDir:   cfg.LayoutDir,
		filter:      cfg.ContentFilter,
		md:          goldmark.New(goldmark.WithExtensions(NewButtonExtension())),
		templates:   make(map[string]*cachedTemplate),
		layouts:     make(map[string]*template.Template),
	}
}

// RenderResult contains the rendered bodies and the template's frontmatter.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// Render executes templateName with data, converts it to HTML and wraps it
// in layout. Text is the executed markdown with button links flattened to
// "Label: URL".
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	cached, err := r.template(templateName)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := cached.tmpl.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, templateName, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}

	html := content.String()
	if r.filter != nil {
		html = r.filter(html)
	}

	layoutTmpl, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := layoutTmpl.Execute(&out, map[string]any{
		"Content":  template.HTML(html),
		"Metadata": cached.metadata,
	}); err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		HTML:     out.String(),
		Text:     plainText(markdown.String()),
		Metadata: cached.metadata,
	}, nil
}

func (r *Renderer) template(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	cached, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.templates[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	tmpl, err := texttemplate.New(name).Option("missingkey=error").Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}

	cached = &cachedTemplate{metadata: parsed.Metadata, tmpl: tmpl}
	r.templates[name] = cached
	return cached, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	cached, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layouts[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layouts[name] = tmpl
	return tmpl, nil
}

var buttonSyntax = regexp.MustCompile(`\[!button\|([^\]]*)\]\(([^)]*)\)`)

// plainText flattens button links so mail clients without HTML still show
// the target URL exactly once.
func plainText(markdown string) string {
	return buttonSyntax.ReplaceAllString(markdown, "$1: $2")
}
