package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/nao1215/sentiment/internal/model"
)

// Report text.
const (
	// Title is the heading on the first page.
	Title = "Sentiment Analysis Result"

	modelPrefix      = "Model Used: "
	predictionPrefix = "Predicted Sentiment: "
)

// ErrInvalidGeometry is returned when a Geometry cannot hold a single body line.
var ErrInvalidGeometry = errors.New("invalid page geometry")

// Font selects a core PDF font.
type Font struct {
	// Family is a core font family such as "Helvetica".
	Family string

	// Style is "" for regular or "B" for bold.
	Style string

	// Size is the font size in points.
	Size float64
}

// Fonts used by the report.
var (
	TitleFont = Font{Family: "Helvetica", Style: "B", Size: 16}
	BodyFont  = Font{Family: "Helvetica", Size: 12}
)

// Align is the horizontal alignment of a text item.
type Align int

const (
	// AlignLeft places the text start at X.
	AlignLeft Align = iota
	// AlignCenter centers the text on X.
	AlignCenter
)

// TextItem is a single string placed on a page.
// Y is the baseline measured from the top edge of the page.
type TextItem struct {
	X     float64
	Y     float64
	Text  string
	Font  Font
	Align Align
}

// Page is the ordered list of text items drawn on one page.
type Page struct {
	Items []TextItem
}

// Geometry describes the page size and where each part of the report goes.
// All values are in points and vertical offsets are measured from the top
// of the page.
type Geometry struct {
	// Width and Height are the page size. US Letter is 612x792.
	Width  float64
	Height float64

	// MarginLeft is the x position of left-aligned text.
	MarginLeft float64

	// TitleY is the baseline of the centered title.
	TitleY float64

	// ModelY is the baseline of the "Model Used" line.
	ModelY float64

	// PredictionY is the baseline of the "Predicted Sentiment" line.
	PredictionY float64

	// BodyY is the baseline of the first body line on page one.
	BodyY float64

	// ContinuationY is the baseline of the first body line on later pages.
	ContinuationY float64

	// LineHeight is the distance between body baselines.
	LineHeight float64

	// BottomMargin is how close to the bottom edge a baseline may get.
	BottomMargin float64
}

// DefaultGeometry returns the US Letter layout of the report.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:         612,
		Height:        792,
		MarginLeft:    50,
		TitleY:        50,
		ModelY:        100,
		PredictionY:   120,
		BodyY:         160,
		ContinuationY: 50,
		LineHeight:    20,
		BottomMargin:  50,
	}
}

// Validate checks that both the first and the continuation page fit at
// least one body line.
func (g Geometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("%w: page size %gx%g", ErrInvalidGeometry, g.Width, g.Height)
	case g.LineHeight <= 0:
		return fmt.Errorf("%w: line height %g", ErrInvalidGeometry, g.LineHeight)
	case g.BodyY > g.limit():
		return fmt.Errorf("%w: body starts below the bottom margin", ErrInvalidGeometry)
	case g.ContinuationY > g.limit():
		return fmt.Errorf("%w: continuation pages start below the bottom margin", ErrInvalidGeometry)
	}
	return nil
}

// limit is the lowest baseline a body line may use.
func (g Geometry) limit() float64 {
	return g.Height - g.BottomMargin
}

// linesFrom returns how many body lines fit when the first one is at y.
func (g Geometry) linesFrom(y float64) int {
	if y > g.limit() {
		return 0
	}
	return int(math.Floor((g.limit()-y)/g.LineHeight)) + 1
}

// FirstPageLines returns the number of body lines on page one.
func (g Geometry) FirstPageLines() int {
	return g.linesFrom(g.BodyY)
}

// ContinuationLines returns the number of body lines on every later page.
func (g Geometry) ContinuationLines() int {
	return g.linesFrom(g.ContinuationY)
}

// PageCount returns the number of pages a report with n body lines needs.
func (g Geometry) PageCount(n int) int {
	first := g.FirstPageLines()
	if n <= first {
		return 1
	}
	per := g.ContinuationLines()
	if per <= 0 {
		return 1
	}
	rest := n - first
	return 1 + (rest+per-1)/per
}

// Layout places the header and the body lines of req on pages.
//
// The header (title, model and prediction) appears on the first page only.
// Body lines are drawn one per line height; a new page starts right before
// a line whose baseline would pass the bottom margin, so the last page is
// never empty. Long lines are not wrapped. An empty text yields a single
// page with the header.
func (g Geometry) Layout(req model.ReportRequest) []Page {
	first := Page{Items: []TextItem{
		{X: g.Width / 2, Y: g.TitleY, Text: Title, Font: TitleFont, Align: AlignCenter},
		{X: g.MarginLeft, Y: g.ModelY, Text: modelPrefix + req.ModelName, Font: BodyFont},
		{X: g.MarginLeft, Y: g.PredictionY, Text: predictionPrefix + req.PredictedLabel, Font: BodyFont},
	}}
	pages := []Page{first}

	y := g.BodyY
	for _, line := range req.Lines() {
		if y > g.limit() {
			pages = append(pages, Page{})
			y = g.ContinuationY
		}
		current := &pages[len(pages)-1]
		current.Items = append(current.Items, TextItem{X: g.MarginLeft, Y: y, Text: line, Font: BodyFont})
		y += g.LineHeight
	}

	return pages
}
