package titles

import (
	"regexp"
	"testing"

	"github.com/mgranica/pdf-reader/extractor"
)

var titlePattern = regexp.MustCompile(`Example.*?(\n|$)`)

func table(top float64, rows ...[]string) extractor.Table {
	return extractor.Table{Rows: rows, Top: top}
}

func TestAssociate(t *testing.T) {
	tests := []struct {
		name       string
		pages      []extractor.Page
		wantTitles []string
	}{
		{
			name: "title immediately above table",
			pages: []extractor.Page{{
				Number: 1,
				Lines: []extractor.Line{
					{Text: "Example Sales\n", Top: 100},
					{Text: "A, B\n", Top: 120},
					{Text: "1, 2\n", Top: 140},
				},
				Tables: []extractor.Table{table(118, []string{"A", "B"}, []string{"1", "2"})},
			}},
			wantTitles: []string{"Example Sales"},
		},
		{
			name: "no matching line anywhere",
			pages: []extractor.Page{{
				Number: 1,
				Lines:  []extractor.Line{{Text: "unrelated text", Top: 50}},
				Tables: []extractor.Table{table(100)},
			}},
			wantTitles: []string{""},
		},
		{
			name: "title consumed by at most one table",
			pages: []extractor.Page{{
				Number: 1,
				Lines:  []extractor.Line{{Text: "Example Report", Top: 50}},
				Tables: []extractor.Table{table(100), table(300)},
			}},
			wantTitles: []string{"Example Report", ""},
		},
		{
			name: "fresh title between tables",
			pages: []extractor.Page{{
				Number: 1,
				Lines: []extractor.Line{
					{Text: "Example One", Top: 50},
					{Text: "Example Two", Top: 200},
				},
				Tables: []extractor.Table{table(100), table(300)},
			}},
			wantTitles: []string{"Example One", "Example Two"},
		},
		{
			name: "later matching line wins before a table",
			pages: []extractor.Page{{
				Number: 1,
				Lines: []extractor.Line{
					{Text: "Example Old", Top: 20},
					{Text: "Example New", Top: 60},
				},
				Tables: []extractor.Table{table(100)},
			}},
			wantTitles: []string{"Example New"},
		},
		{
			name: "title carries across page boundary",
			pages: []extractor.Page{
				{
					Number: 1,
					Lines:  []extractor.Line{{Text: "Example Carryover", Top: 700}},
				},
				{
					Number: 2,
					Tables: []extractor.Table{table(50)},
				},
			},
			wantTitles: []string{"Example Carryover"},
		},
		{
			name: "line below table titles only later tables",
			pages: []extractor.Page{{
				Number: 1,
				Lines:  []extractor.Line{{Text: "Example Below", Top: 400}},
				Tables: []extractor.Table{table(100)},
			}},
			wantTitles: []string{""},
		},
		{
			name: "line level with table top is not above it",
			pages: []extractor.Page{{
				Number: 1,
				Lines:  []extractor.Line{{Text: "Example Level", Top: 100}},
				Tables: []extractor.Table{table(100)},
			}},
			wantTitles: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Associate(tt.pages, titlePattern)
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("Associate() returned %d tables, want %d", len(got), len(tt.wantTitles))
			}
			for i, want := range tt.wantTitles {
				if got[i].Title != want {
					t.Errorf("table %d: Title = %q, want %q", i, got[i].Title, want)
				}
			}
		})
	}
}

func TestAssociate_TrimsNewlineFromMatch(t *testing.T) {
	pages := []extractor.Page{{
		Number: 1,
		Lines:  []extractor.Line{{Text: "Example Sales\n", Top: 10}},
		Tables: []extractor.Table{table(50)},
	}}

	got := Associate(pages, titlePattern)
	if len(got) != 1 {
		t.Fatalf("Associate() returned %d tables, want 1", len(got))
	}
	if got[0].Title != "Example Sales" {
		t.Errorf("Title = %q, want %q", got[0].Title, "Example Sales")
	}
}

func TestAssociate_OrdinalsAndPages(t *testing.T) {
	pages := []extractor.Page{
		{Number: 1, Tables: []extractor.Table{table(100), table(300)}},
		{Number: 3, Tables: []extractor.Table{table(50)}},
	}

	got := Associate(pages, titlePattern)
	if len(got) != 3 {
		t.Fatalf("Associate() returned %d tables, want 3", len(got))
	}
	for i, want := range []struct{ page, ordinal int }{{1, 1}, {1, 2}, {3, 3}} {
		if got[i].Page != want.page || got[i].Ordinal != want.ordinal {
			t.Errorf("table %d: (page, ordinal) = (%d, %d), want (%d, %d)",
				i, got[i].Page, got[i].Ordinal, want.page, want.ordinal)
		}
	}
}

func TestAssociate_Deterministic(t *testing.T) {
	pages := []extractor.Page{{
		Number: 1,
		Lines:  []extractor.Line{{Text: "Example Once", Top: 10}},
		Tables: []extractor.Table{table(50), table(200)},
	}}

	first := Associate(pages, titlePattern)
	for i := 0; i < 10; i++ {
		again := Associate(pages, titlePattern)
		for j := range first {
			if again[j].Title != first[j].Title {
				t.Fatalf("run %d: table %d Title = %q, want stable %q",
					i, j, again[j].Title, first[j].Title)
			}
		}
	}
}
