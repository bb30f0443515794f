package context

import (
	"strings"
	"testing"

	"github.com/easyops/datachat-go/pkg/dataset"
)

func TestBuildContainsAllSections(t *testing.T) {
	builder := NewPromptBuilder(WithDomain(DomainEnergy))
	subset := Subset{
		Columns: []string{"name", "quality"},
		Rows: []dataset.Row{
			{Index: 0, Values: map[string]dataset.Value{
				"name": dataset.Text("France"), "quality": dataset.Number(8.5),
			}},
		},
	}

	got := builder.Build("country=France 的全部行", subset)

	for _, section := range []string{"[数据范围]", "[数据]", "[要求]", "France|8.5"} {
		if !strings.Contains(got, section) {
			t.Errorf("prompt missing %q:\n%s", section, got)
		}
	}
}

func TestBuildEmptySubsetRendersExplicitEmptyBlock(t *testing.T) {
	builder := NewPromptBuilder()

	got := builder.Build("desc", Subset{Columns: []string{"name"}})

	if !strings.Contains(got, "[数据]") {
		t.Error("empty subset must still render the data section")
	}
	if !strings.Contains(got, "没有匹配的数据行") {
		t.Error("empty subset must render an explicit empty data marker")
	}
	if !strings.Contains(got, "[要求]") {
		t.Error("empty subset must keep the directive section")
	}
}

func TestBuildIncludesNote(t *testing.T) {
	builder := NewPromptBuilder()
	subset := Subset{
		Columns: []string{"name"},
		Rows: []dataset.Row{
			{Index: 0, Values: map[string]dataset.Value{"name": dataset.Text("x")}},
		},
		Note: "注：已截取前 5 行。",
	}

	if got := builder.Build("desc", subset); !strings.Contains(got, subset.Note) {
		t.Error("note must appear in the prompt")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	builder := NewPromptBuilder(WithDomain(DomainFilm))
	subset := Subset{
		Columns: []string{"name"},
		Rows: []dataset.Row{
			{Index: 0, Values: map[string]dataset.Value{"name": dataset.Text("x")}},
		},
	}

	if builder.Build("desc", subset) != builder.Build("desc", subset) {
		t.Error("identical inputs must render identical prompts")
	}
}

func TestBuildCustomPersonaAndDirective(t *testing.T) {
	builder := NewPromptBuilder(
		WithPersona("自定义人设"),
		WithDirective("自定义指令"),
	)

	got := builder.Build("desc", Subset{Columns: []string{"name"}})
	if !strings.HasPrefix(got, "自定义人设") {
		t.Error("custom persona must lead the prompt")
	}
	if !strings.Contains(got, "自定义指令") {
		t.Error("custom directive must appear in the prompt")
	}
}

func TestDescribeCriteria(t *testing.T) {
	schema := &dataset.Schema{
		EntityColumn: "Director",
		PeriodColumn: "Year",
		TagColumn:    "Genre",
	}

	tests := []struct {
		name     string
		criteria dataset.Criteria
		contains []string
	}{
		{"entity only", dataset.Criteria{Entity: "Nolan"}, []string{"Director=Nolan"}},
		{"cross section", dataset.Criteria{}, []string{"全部实体"}},
		{"entity and year", dataset.Criteria{Entity: "Nolan", Year: 2014}, []string{"Director=Nolan", "Year=2014"}},
		{"tags", dataset.Criteria{Tags: []string{"Action", "Drama"}}, []string{"Genre", "Action/Drama"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribeCriteria(tt.criteria, schema)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("description %q missing %q", got, want)
				}
			}
		})
	}
}

func TestModeFor(t *testing.T) {
	if ModeFor(dataset.Criteria{Entity: "Nolan"}) != ModeSingleEntity {
		t.Error("entity criteria must select single-entity mode")
	}
	if ModeFor(dataset.Criteria{Year: 2020}) != ModeAggregate {
		t.Error("criteria without entity must select aggregate mode")
	}
}
