package badge

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"text/template"
)

//go:embed templates/*.svg.tmpl
var templateFS embed.FS

// Layout of the badge around the visualizer container.
const (
	coverSize     = 100
	padding       = 20
	badgeHeight   = coverSize + 2*padding
	textX         = coverSize + 2*padding
	defaultText   = "#e6edf3"
	defaultBorder = "#30363d"
)

// Renderer turns render models into SVG documents.
type Renderer struct {
	tmpl *template.Template
}

// view is the template data: the model plus derived layout values.
type view struct {
	*RenderModel
	Width     int
	Height    int
	TextX     int
	CoverSize int
	Padding   int
	Text      string
	Border    string
	Message   string
}

// NewRenderer parses the embedded badge templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("badge").Funcs(template.FuncMap{
		"xml":   template.HTMLEscapeString,
		"add":   func(a, b int) int { return a + b },
		"delay": barDelay,
	}).ParseFS(templateFS, "templates/*.svg.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse badge templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the badge for m.
func (r *Renderer) Render(w io.Writer, m *RenderModel) error {
	v := newView(m)
	if m.TextColor != "" {
		v.Text = m.TextColor
	}
	return r.execute(w, "now-playing.svg.tmpl", v)
}

// RenderError writes a badge-sized SVG showing e.
func (r *Renderer) RenderError(w io.Writer, e ErrorResult) error {
	v := newView(&RenderModel{ContainerWidth: DefaultBarConfig.ContainerWidth})
	v.Message = e.Error
	return r.execute(w, "error.svg.tmpl", v)
}

func (r *Renderer) execute(w io.Writer, name string, v view) error {
	// Render to a buffer so a template failure never leaves a partial document.
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, v); err != nil {
		return fmt.Errorf("template execution failed: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func newView(m *RenderModel) view {
	return view{
		RenderModel: m,
		Width:       textX + m.ContainerWidth + padding,
		Height:      badgeHeight,
		TextX:       textX,
		CoverSize:   coverSize,
		Padding:     padding,
		Text:        defaultText,
		Border:      defaultBorder,
	}
}

// barDelay staggers bar animations deterministically by index.
func barDelay(i int) string {
	return fmt.Sprintf("%.1fs", float64((i*7)%10)/10)
}
