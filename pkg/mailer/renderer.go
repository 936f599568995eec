package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/sanitizer"
)

// Renderer turns markdown templates with YAML frontmatter into HTML wrapped in a layout.
// Parsed templates and layouts are cached; rendered output is not.
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown

	mu      sync.RWMutex
	bodies  map[string]*parsedBody
	layouts map[string]*template.Template
}

// layoutDir is the directory layouts are read from.
const layoutDir = "layouts"

// markdownPunct is the ASCII punctuation CommonMark allows to be backslash-escaped.
const markdownPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// escapeMarkdown backslash-escapes markdown punctuation so s renders as literal text.
func escapeMarkdown(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(markdownPunct, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// The md template func escapes a value for the HTML part and passes it
// through unchanged for the plain-text part and subject.
var (
	htmlFuncs  = texttemplate.FuncMap{"md": escapeMarkdown}
	plainFuncs = texttemplate.FuncMap{"md": func(s string) string { return s }}
)

type parsedBody struct {
	metadata map[string]any
	html     *texttemplate.Template
	text     *texttemplate.Template
}

// NewRenderer creates a Renderer reading templates from fsys and layouts
// from its "layouts" directory. Raw HTML inside markdown is omitted and the
// converted body is sanitized. Values piped through md in a template, as in
// {{.Name | md}}, are shown literally in the HTML part.
func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{
		fs:      fsys,
		md:      goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		bodies:  make(map[string]*parsedBody),
		layouts: make(map[string]*template.Template),
	}
}

// RenderResult holds the rendered message.
// Text is the executed markdown before HTML conversion, without md escaping.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// Render executes templateName with data and wraps the result in layout.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	body, err := r.body(templateName)
	if err != nil {
		return nil, err
	}

	var md, text bytes.Buffer
	if err := body.html.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, templateName, err)
	}
	if err := body.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, templateName, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(md.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := lt.Execute(&out, map[string]any{
		"Content":  template.HTML(sanitizer.EmailHTML(content.String())),
		"Metadata": body.metadata,
	}); err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		Metadata: body.metadata,
		HTML:     out.String(),
		Text:     text.String(),
	}, nil
}

func (r *Renderer) body(name string) (*parsedBody, error) {
	r.mu.RLock()
	b, ok := r.bodies[name]
	r.mu.RUnlock()
	if ok {
		return b, nil
	}

	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}
	htmlTmpl, err := texttemplate.New(name).Funcs(htmlFuncs).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}
	textTmpl, err := texttemplate.New(name).Funcs(plainFuncs).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}

	b = &parsedBody{metadata: parsed.Metadata, html: htmlTmpl, text: textTmpl}
	r.mu.Lock()
	r.bodies[name] = b
	r.mu.Unlock()
	return b, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	t, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	content, err := fs.ReadFile(r.fs, layoutDir+"/"+name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}
	t, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	r.layouts[name] = t
	r.mu.Unlock()
	return t, nil
}
