package dataset

import (
	"fmt"

	"github.com/easyops/datachat-go/pkg/core/errors"
)

// ColumnKind 声明列的期望类型
type ColumnKind int

const (
	// ColumnText 文本列
	ColumnText ColumnKind = iota
	// ColumnNumber 数值列
	ColumnNumber
)

// Column 描述一列的名称与类型
type Column struct {
	// Name 列名
	Name string
	// Kind 期望类型
	Kind ColumnKind
	// Required 是否为必需列（加载时校验）
	Required bool
}

// Schema 描述数据集的列集合与角色列
//
// 角色列把通用流水线绑定到具体数据集：
// 过滤作用于 Entity/Period/Tag 列，上下文选择按 Quality/Magnitude 列排序。
type Schema struct {
	// Columns 全部已声明列
	Columns []Column

	// EntityColumn 实体列（country / director），等值过滤的目标
	EntityColumn string
	// PeriodColumn 期间列（year），可选的等值过滤目标
	PeriodColumn string
	// TagColumn 多值标签列（genre），逗号分隔，包含匹配；可为空
	TagColumn string
	// KeyColumn 实体键列（iso_code），清洗时缺失该列的行被整行丢弃；可为空
	KeyColumn string

	// QualityColumn 质量数值列（rating / renewables share），单实体模式的排序键
	QualityColumn string
	// MagnitudeColumn 规模数值列（revenue / total consumption），聚合模式的排序键
	MagnitudeColumn string

	// ProjectionColumns 转发给补全服务的列投影
	ProjectionColumns []string
}

// Column 按名称查找列定义
func (s *Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Validate 在加载时校验表头覆盖了全部必需列
//
// 缺列在此一次性检出，而不是推迟到首次访问。
func (s *Schema) Validate(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}

	for _, c := range s.Columns {
		if !c.Required {
			continue
		}
		if _, ok := present[c.Name]; !ok {
			return fmt.Errorf("%w: %s", errors.ErrMissingColumn, c.Name)
		}
	}
	return nil
}
