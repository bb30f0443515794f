package context

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/easyops/datachat-go/pkg/dataset"
)

func selectorTestSchema() *dataset.Schema {
	return &dataset.Schema{
		Columns: []dataset.Column{
			{Name: "name", Kind: dataset.ColumnText, Required: true},
			{Name: "quality", Kind: dataset.ColumnNumber},
			{Name: "magnitude", Kind: dataset.ColumnNumber},
		},
		EntityColumn:      "name",
		QualityColumn:     "quality",
		MagnitudeColumn:   "magnitude",
		ProjectionColumns: []string{"name", "quality", "magnitude"},
	}
}

func makeRows(n int, quality, magnitude func(i int) float64) []dataset.Row {
	rows := make([]dataset.Row, n)
	for i := 0; i < n; i++ {
		rows[i] = dataset.Row{
			Index: i,
			Values: map[string]dataset.Value{
				"name":      dataset.Text(fmt.Sprintf("row-%03d", i)),
				"quality":   dataset.Number(quality(i)),
				"magnitude": dataset.Number(magnitude(i)),
			},
		}
	}
	return rows
}

func TestSelectWithinCapForwardsEverything(t *testing.T) {
	selector := NewSelector(NewConfig(WithMaxRows(10)))
	rows := makeRows(7, func(i int) float64 { return float64(i) }, func(i int) float64 { return float64(i) })

	subset := selector.Select(rows, selectorTestSchema(), ModeSingleEntity)

	if subset.Len() != 7 {
		t.Fatalf("expected all 7 rows, got %d", subset.Len())
	}
	if subset.Note != "" {
		t.Errorf("within cap must not add a note, got %q", subset.Note)
	}
	for i, row := range subset.Rows {
		if row.Index != i {
			t.Errorf("row %d: original order broken, got index %d", i, row.Index)
		}
	}
}

func TestSelectEmptyInput(t *testing.T) {
	selector := NewSelector(NewConfig(WithMaxRows(10)))

	subset := selector.Select(nil, selectorTestSchema(), ModeAggregate)

	if !subset.IsEmpty() {
		t.Error("expected empty subset")
	}
	if subset.Note != "" {
		t.Errorf("empty input must not add a note, got %q", subset.Note)
	}
}

func TestSelectSingleEntityOverCap(t *testing.T) {
	selector := NewSelector(NewConfig(WithMaxRows(5)))
	// quality 随行号递增，降序截取应拿到最后 5 行
	rows := makeRows(20, func(i int) float64 { return float64(i) }, func(i int) float64 { return 0 })

	subset := selector.Select(rows, selectorTestSchema(), ModeSingleEntity)

	if subset.Len() != 5 {
		t.Fatalf("expected 5 rows, got %d", subset.Len())
	}
	if subset.Note == "" {
		t.Error("over cap must add a note")
	}
	for i, row := range subset.Rows {
		if want := 19 - i; row.Index != want {
			t.Errorf("row %d: expected index %d (quality desc), got %d", i, want, row.Index)
		}
	}
}

func TestSelectSingleEntityStableTies(t *testing.T) {
	selector := NewSelector(NewConfig(WithMaxRows(3)))
	// 全部同 quality：稳定排序下取前 3 行原序
	rows := makeRows(10, func(i int) float64 { return 1 }, func(i int) float64 { return 0 })

	subset := selector.Select(rows, selectorTestSchema(), ModeSingleEntity)

	for i, row := range subset.Rows {
		if row.Index != i {
			t.Errorf("tie-break must keep original order: row %d has index %d", i, row.Index)
		}
	}
}

func TestSelectAggregateOverCap(t *testing.T) {
	selector := NewSelector(NewConfig(WithMaxRows(10)))
	// magnitude 最大的是前 5 行，quality 最大的是后 5 行，互不重叠
	rows := makeRows(40,
		func(i int) float64 { return float64(i) },      // quality: 后面的行最高
		func(i int) float64 { return float64(40 - i) }, // magnitude: 前面的行最高
	)

	subset := selector.Select(rows, selectorTestSchema(), ModeAggregate)

	// K=5 并集不重叠：正好 10 行
	if subset.Len() != 10 {
		t.Fatalf("expected 10 rows, got %d", subset.Len())
	}
	if subset.Note == "" {
		t.Error("over cap must add a note")
	}

	// 结果按原始行号升序
	for i := 1; i < subset.Len(); i++ {
		if subset.Rows[i-1].Index >= subset.Rows[i].Index {
			t.Fatalf("result must be sorted by original index, got %d before %d",
				subset.Rows[i-1].Index, subset.Rows[i].Index)
		}
	}

	// 前 5 行来自 magnitude 头部，后 5 行来自 quality 头部
	for i := 0; i < 5; i++ {
		if subset.Rows[i].Index != i {
			t.Errorf("expected magnitude head index %d, got %d", i, subset.Rows[i].Index)
		}
		if want := 35 + i; subset.Rows[5+i].Index != want {
			t.Errorf("expected quality head index %d, got %d", want, subset.Rows[5+i].Index)
		}
	}
}

func TestSelectAggregateDeduplicates(t *testing.T) {
	selector := NewSelector(NewConfig(WithMaxRows(10)))
	// 同一批行在两个排序键上都领先：并集去重后小于 2K
	rows := makeRows(40,
		func(i int) float64 { return float64(40 - i) },
		func(i int) float64 { return float64(40 - i) },
	)

	subset := selector.Select(rows, selectorTestSchema(), ModeAggregate)

	if subset.Len() != 5 {
		t.Fatalf("expected 5 deduplicated rows, got %d", subset.Len())
	}
	seen := make(map[int]bool)
	for _, row := range subset.Rows {
		if seen[row.Index] {
			t.Fatalf("duplicate index %d in result", row.Index)
		}
		seen[row.Index] = true
	}
}

func TestSelectDeterminism(t *testing.T) {
	selector := NewSelector(NewConfig(WithMaxRows(8)))
	rows := makeRows(50,
		func(i int) float64 { return float64(i % 7) },
		func(i int) float64 { return float64(i % 11) },
	)

	for _, mode := range []Mode{ModeSingleEntity, ModeAggregate} {
		first := selector.Select(rows, selectorTestSchema(), mode)
		second := selector.Select(rows, selectorTestSchema(), mode)

		if !reflect.DeepEqual(first, second) {
			t.Errorf("mode %s: repeated selection differs", mode)
		}
		if RenderBlock(first) != RenderBlock(second) {
			t.Errorf("mode %s: rendered blocks differ", mode)
		}
	}
}

func TestSelectTokenBudgetTrimsFromTail(t *testing.T) {
	selector := NewSelector(NewConfig(
		WithMaxRows(100),
		WithMaxTokens(30),
		WithTokenCounter(NewEstimatedCounter()),
	))
	rows := makeRows(20, func(i int) float64 { return float64(i) }, func(i int) float64 { return 0 })

	subset := selector.Select(rows, selectorTestSchema(), ModeSingleEntity)

	if subset.Len() >= 20 {
		t.Fatalf("expected token budget to trim rows, got %d", subset.Len())
	}
	if subset.Note == "" {
		t.Error("token trim must add a note")
	}
	// 保留的是头部行
	for i, row := range subset.Rows {
		if row.Index != i {
			t.Errorf("trim must drop from the tail: row %d has index %d", i, row.Index)
		}
	}
}
