package dataset

import "testing"

func cleanerTestSchema() *Schema {
	return &Schema{
		Columns: []Column{
			{Name: "country", Kind: ColumnText, Required: true},
			{Name: "iso_code", Kind: ColumnText},
			{Name: "solar", Kind: ColumnNumber},
			{Name: "wind", Kind: ColumnNumber},
		},
		EntityColumn: "country",
		KeyColumn:    "iso_code",
	}
}

func TestCleanDropsRowsWithoutKey(t *testing.T) {
	cleaner := NewCleaner(cleanerTestSchema(), nil)

	rows := []Row{
		{Index: 0, Values: map[string]Value{
			"country": Text("World"), "iso_code": Missing(),
			"solar": Number(100), "wind": Number(200),
		}},
		{Index: 1, Values: map[string]Value{
			"country": Text("France"), "iso_code": Text("FRA"),
			"solar": Number(10), "wind": Number(20),
		}},
	}

	got := cleaner.Clean(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 row after cleaning, got %d", len(got))
	}
	if got[0].Text("country") != "France" {
		t.Errorf("expected France to survive, got %s", got[0].Text("country"))
	}
}

func TestCleanFillsMissingNumericsWithZero(t *testing.T) {
	cleaner := NewCleaner(cleanerTestSchema(), nil)

	rows := []Row{
		{Index: 0, Values: map[string]Value{
			"country": Text("France"), "iso_code": Text("FRA"),
			"solar": Missing(), "wind": Number(20),
		}},
	}

	got := cleaner.Clean(rows)
	if got[0].Value("solar").IsMissing() {
		t.Error("missing numeric should be filled")
	}
	if got[0].Number("solar") != 0 {
		t.Errorf("expected 0, got %f", got[0].Number("solar"))
	}
}

func TestCleanComputesDerivedSums(t *testing.T) {
	derived := []DerivedColumn{
		{Name: "total_renewables", Sum: []string{"solar", "wind"}},
	}
	cleaner := NewCleaner(cleanerTestSchema(), derived)

	rows := []Row{
		{Index: 0, Values: map[string]Value{
			"country": Text("France"), "iso_code": Text("FRA"),
			"solar": Number(10), "wind": Missing(),
		}},
	}

	got := cleaner.Clean(rows)
	// 缺失值先填 0 再求和
	if total := got[0].Number("total_renewables"); total != 10 {
		t.Errorf("expected derived sum 10, got %f", total)
	}
}

func TestCleanReindexesRows(t *testing.T) {
	cleaner := NewCleaner(cleanerTestSchema(), nil)

	rows := []Row{
		{Index: 0, Values: map[string]Value{"country": Text("World"), "iso_code": Missing()}},
		{Index: 1, Values: map[string]Value{"country": Text("France"), "iso_code": Text("FRA")}},
		{Index: 2, Values: map[string]Value{"country": Text("Japan"), "iso_code": Text("JPN")}},
	}

	got := cleaner.Clean(rows)
	for i, row := range got {
		if row.Index != i {
			t.Errorf("row %d: expected index %d, got %d", i, i, row.Index)
		}
	}
}
