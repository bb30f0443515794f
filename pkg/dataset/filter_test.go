package dataset

import (
	"errors"
	"testing"

	coreerrors "github.com/easyops/datachat-go/pkg/core/errors"
)

func movieTestTable() *Table {
	schema := &Schema{
		Columns: []Column{
			{Name: "Title", Kind: ColumnText, Required: true},
			{Name: "Genre", Kind: ColumnText},
			{Name: "Director", Kind: ColumnText},
			{Name: "Year", Kind: ColumnNumber},
			{Name: "Rating", Kind: ColumnNumber},
		},
		EntityColumn:      "Director",
		PeriodColumn:      "Year",
		TagColumn:         "Genre",
		QualityColumn:     "Rating",
		ProjectionColumns: []string{"Title", "Genre", "Director", "Year", "Rating"},
	}

	rows := []Row{
		{Index: 0, Values: map[string]Value{
			"Title": Text("Alpha"), "Genre": Text("Action,Sci-Fi"), "Director": Text("Nolan"),
			"Year": Number(2010), "Rating": Number(8.8),
		}},
		{Index: 1, Values: map[string]Value{
			"Title": Text("Beta"), "Genre": Text("Drama"), "Director": Text("Nolan"),
			"Year": Number(2014), "Rating": Number(8.6),
		}},
		{Index: 2, Values: map[string]Value{
			"Title": Text("Gamma"), "Genre": Text("Comedy"), "Director": Text("Gerwig"),
			"Year": Number(2019), "Rating": Number(7.9),
		}},
		{Index: 3, Values: map[string]Value{
			"Title": Text("Delta"), "Genre": Text("Action"), "Director": Text("Villeneuve"),
			"Year": Number(2017), "Rating": Number(8.0),
		}},
	}

	return &Table{Schema: schema, Rows: rows}
}

func TestApplyEntityEquality(t *testing.T) {
	table := movieTestTable()

	got := Apply(table, Criteria{Entity: "Nolan"})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Text("Title") != "Alpha" || got[1].Text("Title") != "Beta" {
		t.Errorf("expected original order Alpha,Beta, got %s,%s",
			got[0].Text("Title"), got[1].Text("Title"))
	}
}

func TestApplyYearEquality(t *testing.T) {
	table := movieTestTable()

	got := Apply(table, Criteria{Year: 2019})
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Text("Title") != "Gamma" {
		t.Errorf("expected Gamma, got %s", got[0].Text("Title"))
	}
}

func TestApplyTagInclusion(t *testing.T) {
	table := movieTestTable()

	tests := []struct {
		name     string
		tags     []string
		expected []string
	}{
		{"single tag", []string{"Action"}, []string{"Alpha", "Delta"}},
		{"case insensitive", []string{"action"}, []string{"Alpha", "Delta"}},
		{"any of several", []string{"Drama", "Comedy"}, []string{"Beta", "Gamma"}},
		{"no match", []string{"Horror"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(table, Criteria{Tags: tt.tags})
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d rows, got %d", len(tt.expected), len(got))
			}
			for i, title := range tt.expected {
				if got[i].Text("Title") != title {
					t.Errorf("row %d: expected %s, got %s", i, title, got[i].Text("Title"))
				}
			}
		})
	}
}

func TestApplyConjunction(t *testing.T) {
	table := movieTestTable()

	got := Apply(table, Criteria{Entity: "Nolan", Year: 2014})
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Text("Title") != "Beta" {
		t.Errorf("expected Beta, got %s", got[0].Text("Title"))
	}
}

func TestApplyZeroCriteria(t *testing.T) {
	table := movieTestTable()

	got := Apply(table, Criteria{})
	if len(got) != table.Len() {
		t.Errorf("expected all %d rows, got %d", table.Len(), len(got))
	}
}

func TestApplyEmptyResultIsNotError(t *testing.T) {
	table := movieTestTable()

	got := Apply(table, Criteria{Entity: "Nolan", Year: 1999})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d rows", len(got))
	}
}

func TestApplyDoesNotMutateTable(t *testing.T) {
	table := movieTestTable()
	before := table.Len()

	_ = Apply(table, Criteria{Entity: "Nolan"})
	if table.Len() != before {
		t.Errorf("table mutated: had %d rows, now %d", before, table.Len())
	}
}

func TestCriteriaValidate(t *testing.T) {
	table := movieTestTable()

	if err := (Criteria{Entity: "Nolan"}).Validate(table); err != nil {
		t.Errorf("observed entity should validate, got %v", err)
	}
	if err := (Criteria{}).Validate(table); err != nil {
		t.Errorf("zero criteria should validate, got %v", err)
	}

	err := (Criteria{Entity: "Unknown"}).Validate(table)
	if !errors.Is(err, coreerrors.ErrInvalidCriteria) {
		t.Errorf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestCriteriaIsZero(t *testing.T) {
	if !(Criteria{}).IsZero() {
		t.Error("empty criteria should be zero")
	}
	if (Criteria{Entity: "x"}).IsZero() {
		t.Error("entity criteria should not be zero")
	}
	if (Criteria{Tags: []string{"a"}}).IsZero() {
		t.Error("tag criteria should not be zero")
	}
}
