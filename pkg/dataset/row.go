// Package dataset 提供表格数据集的加载、清洗、存取与过滤能力
package dataset

import (
	"strconv"
)

// Kind 表示标量值的类型
type Kind int

const (
	// KindMissing 缺失值
	KindMissing Kind = iota
	// KindNumber 数值
	KindNumber
	// KindText 文本
	KindText
)

// Value 表示一个单元格的标量值
type Value struct {
	// Kind 值类型
	Kind Kind
	// Num 数值（当 Kind=KindNumber 时有效）
	Num float64
	// Str 文本（当 Kind=KindText 时有效）
	Str string
}

// Number 创建数值
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Text 创建文本值
func Text(s string) Value {
	return Value{Kind: KindText, Str: s}
}

// Missing 创建缺失值
func Missing() Value {
	return Value{Kind: KindMissing}
}

// IsMissing 检查是否为缺失值
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// String 返回值的文本表示
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Str
	default:
		return ""
	}
}

// Row 表示表中的一行：列名到标量值的映射
//
// 加载完成后不再修改；清洗阶段的类型矫正在加载时一次性完成。
type Row struct {
	// Index 原始行号，用于稳定排序的平局裁决与并集去重
	Index int
	// Values 列名到值的映射
	Values map[string]Value
}

// Value 返回指定列的值，列不存在时返回缺失值
func (r Row) Value(col string) Value {
	v, ok := r.Values[col]
	if !ok {
		return Missing()
	}
	return v
}

// Number 返回指定列的数值，非数值返回 0
func (r Row) Number(col string) float64 {
	v := r.Value(col)
	if v.Kind != KindNumber {
		return 0
	}
	return v.Num
}

// Text 返回指定列的文本，非文本返回空串
func (r Row) Text(col string) string {
	v := r.Value(col)
	if v.Kind != KindText {
		return ""
	}
	return v.Str
}

// Table 表示共享同一 Schema 的有序行集
//
// 由 Store 独占持有，仅在显式 Reload 时重建。
type Table struct {
	// Schema 列定义
	Schema *Schema
	// Rows 有序行集
	Rows []Row
}

// Len 返回行数
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// DistinctText 返回指定文本列的去重取值（按首次出现顺序）
func (t *Table) DistinctText(col string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range t.Rows {
		s := row.Text(col)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
