package plotly

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/turtacn/qsphere/internal/domain/scene"
	"github.com/turtacn/qsphere/pkg/errors"
)

// DefaultPlotlyURL is the pinned plotly.js bundle loaded by rendered pages.
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

const (
	ContentType = "text/html; charset=utf-8"
	Extension   = ".html"
)

//go:embed templates/qsphere.html.tmpl
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/qsphere.html.tmpl"))

// Options configure the HTML page.
type Options struct {
	PlotlyURL string
	// Version is stamped into the generator meta tag.
	Version string
}

// Renderer writes scenes as self-contained HTML pages.  It is safe for
// concurrent use.
type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	if opts.PlotlyURL == "" {
		opts.PlotlyURL = DefaultPlotlyURL
	}
	return &Renderer{opts: opts}
}

type page struct {
	Title     string
	Version   string
	PlotlyURL string
	DivID     string
	Width     int
	Height    int
	Figure    *Figure
}

// Render writes the HTML page for s to w.  Nothing is written when the page
// cannot be produced.
func (r *Renderer) Render(w io.Writer, s *scene.Scene) error {
	if s == nil {
		return errors.New(errors.ErrCodeSceneEncodeFailed, "nil scene")
	}
	p := page{
		Title:     s.Layout.Title,
		Version:   r.opts.Version,
		PlotlyURL: r.opts.PlotlyURL,
		DivID:     "qsphere-" + s.ID,
		Width:     s.Layout.Width,
		Height:    s.Layout.Height,
		Figure:    NewFigure(s),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return errors.Wrap(err, errors.ErrCodeSceneEncodeFailed, "failed to render html page")
	}
	if _, err := buf.WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputWriteFailed, "failed to write html page")
	}
	return nil
}

func (r *Renderer) ContentType() string { return ContentType }

func (r *Renderer) Extension() string { return Extension }

//Personal.AI order the ending
