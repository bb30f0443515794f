package context

import (
	"fmt"
	"sort"

	"github.com/easyops/datachat-go/pkg/dataset"
)

// Mode 表示上下文选择模式。
type Mode string

const (
	// ModeSingleEntity 单实体模式：过滤条件锁定了单个实体，
	// 超限时按质量列降序取前 C 行。
	ModeSingleEntity Mode = "single_entity"

	// ModeAggregate 聚合模式：无单实体约束的全局横截面，
	// 超限时取规模列前 K 并集质量列前 K（K = C/2）。
	ModeAggregate Mode = "aggregate"
)

// Selector 按固定上限从过滤结果中选出代表性子集。
type Selector struct {
	config *Config
}

// NewSelector 创建选择器。
func NewSelector(config *Config) *Selector {
	if config == nil {
		config = DefaultConfig()
	}
	return &Selector{config: config}
}

// Select 从过滤后的行集中选出有界子集。
//
// 结果对固定输入是字节级可复现的：排序稳定，平局保持原始行序。
// 空输入返回空子集且不附注记，不报错。
func (s *Selector) Select(rows []dataset.Row, schema *dataset.Schema, mode Mode) Subset {
	subset := Subset{Columns: schema.ProjectionColumns}

	if len(rows) == 0 {
		return subset
	}

	limit := s.config.MaxRows
	if limit <= 0 || len(rows) <= limit {
		// 上限内：全量转发，保持原始相对顺序，无注记
		subset.Rows = append([]dataset.Row(nil), rows...)
		return s.applyTokenBudget(subset)
	}

	switch mode {
	case ModeAggregate:
		subset.Rows, subset.Note = s.selectAggregate(rows, schema)
	default:
		subset.Rows, subset.Note = s.selectSingleEntity(rows, schema)
	}

	return s.applyTokenBudget(subset)
}

// selectSingleEntity 按质量列降序取前 C 行。
func (s *Selector) selectSingleEntity(rows []dataset.Row, schema *dataset.Schema) ([]dataset.Row, string) {
	sorted := sortByColumnDesc(rows, schema.QualityColumn)
	picked := sorted[:s.config.MaxRows]

	note := fmt.Sprintf(
		"注：匹配行数 %d 超过上限，已按 %s 降序截取前 %d 行。",
		len(rows), schema.QualityColumn, s.config.MaxRows,
	)
	return picked, note
}

// selectAggregate 取规模列前 K 并集质量列前 K，按原始行序去重合并。
func (s *Selector) selectAggregate(rows []dataset.Row, schema *dataset.Schema) ([]dataset.Row, string) {
	k := s.config.HalfK()

	topMagnitude := sortByColumnDesc(rows, schema.MagnitudeColumn)
	topQuality := sortByColumnDesc(rows, schema.QualityColumn)

	if k > len(topMagnitude) {
		k = len(topMagnitude)
	}

	// 按原始行号去重并集
	seen := make(map[int]struct{}, 2*k)
	union := make([]dataset.Row, 0, 2*k)
	for _, row := range append(topMagnitude[:k:k], topQuality[:k]...) {
		if _, ok := seen[row.Index]; ok {
			continue
		}
		seen[row.Index] = struct{}{}
		union = append(union, row)
	}

	// 恢复原始表序，保证确定性输出
	sort.Slice(union, func(i, j int) bool {
		return union[i].Index < union[j].Index
	})

	note := fmt.Sprintf(
		"注：匹配行数 %d 超过上限，已合并 %s 前 %d 与 %s 前 %d 的并集样本（去重后 %d 行），兼顾规模与质量的代表性。",
		len(rows), schema.MagnitudeColumn, k, schema.QualityColumn, k, len(union),
	)
	return union, note
}

// applyTokenBudget 在启用 Token 预算时从尾部确定性裁行。
func (s *Selector) applyTokenBudget(subset Subset) Subset {
	if s.config.MaxTokens <= 0 || subset.IsEmpty() {
		return subset
	}

	counter := s.config.GetTokenCounter()
	before := subset.Len()

	for subset.Len() > 1 && counter.Count(RenderBlock(subset)) > s.config.MaxTokens {
		subset.Rows = subset.Rows[:subset.Len()-1]
	}

	if subset.Len() < before {
		trimNote := fmt.Sprintf("为满足 Token 预算进一步截断至 %d 行。", subset.Len())
		if subset.Note == "" {
			subset.Note = "注：" + trimNote
		} else {
			subset.Note += trimNote
		}
	}

	return subset
}

// sortByColumnDesc 返回按指定数值列降序的稳定排序副本。
// 平局保持输入顺序（输入为原始表序）。
func sortByColumnDesc(rows []dataset.Row, col string) []dataset.Row {
	sorted := append([]dataset.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number(col) > sorted[j].Number(col)
	})
	return sorted
}
