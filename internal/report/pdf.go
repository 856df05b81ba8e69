package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/nao1215/sentiment/internal/model"
)

// ErrInvalidReportName is returned when a report name is not a plain file name.
var ErrInvalidReportName = errors.New("invalid report name")

// Generator renders report requests to PDF documents.
// A Generator holds no per-document state and may be shared.
type Generator struct {
	geometry     Geometry
	compress     bool
	creationDate time.Time
	creator      string
	outputDir    string
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithGeometry replaces the default US Letter geometry.
func WithGeometry(g Geometry) GeneratorOption {
	return func(gen *Generator) {
		gen.geometry = g
	}
}

// WithCompression toggles stream compression.
func WithCompression(compress bool) GeneratorOption {
	return func(gen *Generator) {
		gen.compress = compress
	}
}

// WithCreationDate fixes the document creation and modification date.
// Two renders of the same request with the same date produce identical bytes.
func WithCreationDate(t time.Time) GeneratorOption {
	return func(gen *Generator) {
		gen.creationDate = t
	}
}

// WithCreator sets the creator recorded in the document metadata.
func WithCreator(creator string) GeneratorOption {
	return func(gen *Generator) {
		gen.creator = creator
	}
}

// WithOutputDir sets the directory Generate writes into.
func WithOutputDir(dir string) GeneratorOption {
	return func(gen *Generator) {
		gen.outputDir = dir
	}
}

// NewGenerator creates a Generator with compression enabled, the default
// geometry and the current directory as output directory.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		geometry:  DefaultGeometry(),
		compress:  true,
		creator:   "sentiment",
		outputDir: ".",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geometry returns the page geometry in use.
func (g *Generator) Geometry() Geometry {
	return g.geometry
}

// Render writes the PDF for req to w. The returned artifact has no Path.
func (g *Generator) Render(w io.Writer, req model.ReportRequest) (*model.Artifact, error) {
	if err := g.geometry.Validate(); err != nil {
		return nil, err
	}

	pages := g.geometry.Layout(req)
	pdf := g.newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252

	for _, page := range pages {
		pdf.AddPage()
		for _, item := range page.Items {
			pdf.SetFont(item.Font.Family, item.Font.Style, item.Font.Size)
			text := tr(item.Text)
			x := item.X
			if item.Align == AlignCenter {
				x -= pdf.GetStringWidth(text) / 2
			}
			pdf.Text(x, item.Y, text)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}

	cw := &countingWriter{w: w}
	if err := pdf.Output(cw); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return &model.Artifact{
		Name:     model.DefaultReportName,
		MIMEType: model.MIMETypePDF,
		Pages:    len(pages),
		Size:     cw.n,
	}, nil
}

// Generate writes the PDF for req into the output directory as name and
// returns the artifact with its path. An empty name means result.pdf.
func (g *Generator) Generate(req model.ReportRequest, name string) (*model.Artifact, error) {
	if name == "" {
		name = model.DefaultReportName
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReportName, name)
	}

	if err := os.MkdirAll(g.outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(g.outputDir, name)
	f, err := os.Create(path) //nolint:gosec // The name is checked above and the directory is operator config
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	artifact, err := g.Render(f, req)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close report file: %w", closeErr)
	}
	if err != nil {
		return nil, err
	}

	artifact.Name = name
	artifact.Path = path
	return artifact, nil
}

// newDocument creates an empty document configured for the geometry.
func (g *Generator) newDocument() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.geometry.Width, Ht: g.geometry.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(g.geometry.MarginLeft, 0, 0)
	pdf.SetCompression(g.compress)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(Title, true)
	pdf.SetCreator(g.creator, true)
	if !g.creationDate.IsZero() {
		pdf.SetCreationDate(g.creationDate)
		pdf.SetModificationDate(g.creationDate)
	}
	return pdf
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
