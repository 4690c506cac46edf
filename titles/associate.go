// Package titles pairs detected tables with the nearest preceding line of
// page text matching the configured title pattern.
package titles

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mgranica/pdf-reader/extractor"
)

// TitledTable couples one detected table with the title chosen for it. Title
// is empty when no matching line precedes the table anywhere in the document.
type TitledTable struct {
	Table   extractor.Table
	Title   string
	Page    int // 1-indexed page the table was found on
	Ordinal int // 1-indexed position of the table in document order
}

// scanState is the accumulator threaded through the document sweep: the most
// recent matching line not yet consumed by a table.
type scanState struct {
	title string
	valid bool
}

// Associate pairs every table with a title by sweeping lines and tables in
// combined document order (page index, then vertical position). Whenever a
// line matches the pattern, the match becomes the pending title; when a table
// is reached, it takes the pending title, which is then cleared so a title
// names at most one table. The pending title carries across page boundaries,
// so a title at the bottom of one page can name a table at the top of the
// next. Output preserves table order.
func Associate(pages []extractor.Page, pattern *regexp.Regexp) []TitledTable {
	var out []TitledTable
	var state scanState

	ordinal := 0
	for _, page := range pages {
		for _, ev := range mergePage(page) {
			if ev.line != nil {
				if m := pattern.FindString(ev.line.Text); m != "" {
					state = scanState{title: strings.ReplaceAll(m, "\n", ""), valid: true}
				}
				continue
			}

			ordinal++
			tt := TitledTable{Table: *ev.table, Page: page.Number, Ordinal: ordinal}
			if state.valid {
				tt.Title = state.title
				state = scanState{}
			}
			out = append(out, tt)
		}
	}

	return out
}

// event is one positioned item in a page sweep: exactly one of line or table
// is set.
type event struct {
	top   float64
	line  *extractor.Line
	table *extractor.Table
}

// mergePage interleaves a page's lines and tables by vertical position. A
// line sharing a position with a table is not above it, so on ties the table
// is ordered first and the line can only title a later table.
func mergePage(page extractor.Page) []event {
	events := make([]event, 0, len(page.Lines)+len(page.Tables))
	for i := range page.Lines {
		events = append(events, event{top: page.Lines[i].Top, line: &page.Lines[i]})
	}
	for i := range page.Tables {
		events = append(events, event{top: page.Tables[i].Top, table: &page.Tables[i]})
	}
	sort.SliceStable(events, func(a, b int) bool {
		if events[a].top == events[b].top {
			return events[a].table != nil && events[b].line != nil
		}
		return events[a].top < events[b].top
	})
	return events
}
