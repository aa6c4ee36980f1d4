package display

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"sort"
	"text/template"

	"github.com/arthur-debert/kassemble/pkg/assembly"
	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/arthur-debert/kassemble/pkg/logging"
	"github.com/arthur-debert/kassemble/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer writes reports to a writer in one format
type Renderer struct {
	writer    io.Writer
	format    Format
	styles    Styles
	templates *template.Template
}

// NewRenderer creates a renderer for w. FormatAuto must be resolved by the
// caller, it renders like FormatTerminal.
func NewRenderer(w io.Writer, format Format) (*Renderer, error) {
	log := logging.GetLogger("display.renderer")

	lg := lipgloss.NewRenderer(w)
	if format == FormatText || format == FormatYAML {
		lg.SetColorProfile(termenv.Ascii)
	}
	log.Debug().Str("format", format.String()).Int("profile", int(lg.ColorProfile())).Msg("Creating renderer")

	r := &Renderer{writer: w, format: format, styles: NewStyles(lg)}
	tmpl, err := template.New("display").Funcs(r.funcs()).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to parse templates")
	}
	r.templates = tmpl
	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"title":   r.styles.Title.Render,
		"muted":   r.styles.Muted.Render,
		"path":    r.styles.Path.Render,
		"success": r.styles.Success.Render,
		"warning": r.styles.Warning.Render,
		"tier": func(t types.Tier) string {
			return r.styles.Tiers[t].Render(t.String())
		},
	}
}

// Render writes report in the renderer's format
func (r *Renderer) Render(report *assembly.Report) error {
	if r.format == FormatYAML {
		return report.WriteYAML(r.writer)
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "report.tmpl", report); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to execute template")
	}
	_, err := r.writer.Write(buf.Bytes())
	return err
}

// RenderError writes err with its code and details
func (r *Renderer) RenderError(err error) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %v\n", r.styles.Error.Render("Error:"), err)
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&buf, "  %s %v\n", r.styles.Muted.Render(key+":"), details[key])
	}
	_, writeErr := r.writer.Write(buf.Bytes())
	return writeErr
}
