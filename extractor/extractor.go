// Package extractor decomposes a PDF into per-page text lines and detected
// tables. Table geometry detection itself is delegated to the tabula library
// and treated as opaque; this package only adapts its page model.
package extractor

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/tsawler/tabula/layout"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"
	"github.com/tsawler/tabula/text"
)

// Line is a single line of page text. Top is the vertical position measured
// from the top of the page, so reading order is ascending Top.
type Line struct {
	Text string
	Top  float64
}

// Table is a detected table as a grid of cell strings, positioned like Line.
type Table struct {
	Rows [][]string
	Top  float64
}

// Page carries everything downstream stages need from one PDF page.
type Page struct {
	Number int // 1-indexed
	Lines  []Line
	Tables []Table
}

// ReadPages opens the PDF at path and decomposes every page, in document
// order, into text lines and tables detected with the given settings. A page
// the library fails to parse is logged and skipped; the run continues.
func ReadPages(path string, cfg tables.Config) ([]Page, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("failed to read page count: %w", err)
	}

	detector := tables.NewGeometricDetector()
	if err := detector.Configure(cfg); err != nil {
		return nil, fmt.Errorf("failed to configure table detector: %w", err)
	}
	lineDetector := layout.NewLineDetector()

	var out []Page
	for i := 0; i < count; i++ {
		page, err := buildPage(r, i, detector, lineDetector)
		if err != nil {
			log.WithField("page", i+1).WithError(err).Error("skipping unreadable page")
			continue
		}
		out = append(out, page)
	}

	return out, nil
}

func buildPage(r *reader.Reader, index int, detector *tables.GeometricDetector, lineDetector *layout.LineDetector) (Page, error) {
	pdfPage, err := r.GetPage(index)
	if err != nil {
		return Page{}, fmt.Errorf("failed to load page: %w", err)
	}
	width, err := pdfPage.Width()
	if err != nil {
		return Page{}, fmt.Errorf("failed to read page width: %w", err)
	}
	height, err := pdfPage.Height()
	if err != nil {
		return Page{}, fmt.Errorf("failed to read page height: %w", err)
	}
	fragments, err := r.ExtractTextFragments(pdfPage)
	if err != nil {
		return Page{}, fmt.Errorf("failed to extract text: %w", err)
	}

	page := Page{Number: index + 1}

	if lineLayout := lineDetector.Detect(fragments, width, height); lineLayout != nil {
		page.Lines = linesFromLayout(lineLayout.Lines, height)
	}

	modelPage := model.NewPage(width, height)
	modelPage.Number = index + 1
	modelPage.RawText = modelFragments(fragments)

	detected, err := detector.Detect(modelPage)
	if err != nil {
		return Page{}, fmt.Errorf("table detection failed: %w", err)
	}
	for _, t := range detected {
		page.Tables = append(page.Tables, tableFromModel(t, height))
	}
	sort.SliceStable(page.Tables, func(a, b int) bool {
		return page.Tables[a].Top < page.Tables[b].Top
	})

	return page, nil
}

// linesFromLayout converts detected layout lines to extractor lines, turning
// PDF bottom-origin coordinates into distance from the page top.
func linesFromLayout(lines []layout.Line, pageHeight float64) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{Text: l.Text, Top: pageHeight - l.BBox.Top()})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Top < out[b].Top
	})
	return out
}

// tableFromModel flattens the library's cell grid to plain strings, column
// order preserved.
func tableFromModel(t *model.Table, pageHeight float64) Table {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell.Text)
		}
		rows = append(rows, cells)
	}
	return Table{Rows: rows, Top: pageHeight - t.BBox.Top()}
}

func modelFragments(fragments []text.TextFragment) []model.TextFragment {
	out := make([]model.TextFragment, len(fragments))
	for i, f := range fragments {
		out[i] = model.TextFragment{
			Text:     f.Text,
			BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		}
	}
	return out
}
