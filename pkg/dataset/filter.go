package dataset

import (
	"fmt"
	"strings"

	"github.com/easyops/datachat-go/pkg/core/errors"
)

// Criteria 表示用户选择的过滤条件
//
// 等值约束作用于 Schema 的实体列与期间列，
// 包含约束作用于多值标签列。零值表示无任何约束。
type Criteria struct {
	// Entity 实体等值约束（空串表示无约束）
	Entity string
	// Year 期间等值约束（0 表示无约束）
	Year int
	// Tags 标签包含约束：标签列原始串包含任一值即匹配（大小写不敏感的子串语义）
	Tags []string
}

// IsZero 检查是否为无约束条件
func (c Criteria) IsZero() bool {
	return c.Entity == "" && c.Year == 0 && len(c.Tags) == 0
}

// Validate 校验等值约束引用的是表中实际观测到的取值
func (c Criteria) Validate(t *Table) error {
	if c.Entity == "" {
		return nil
	}

	for _, v := range t.DistinctText(t.Schema.EntityColumn) {
		if v == c.Entity {
			return nil
		}
	}
	return fmt.Errorf("%w: %s=%q not observed", errors.ErrInvalidCriteria, t.Schema.EntityColumn, c.Entity)
}

// Apply 返回满足条件的行子序列
//
// 纯函数：不修改表，保持原始行序；无匹配时返回空序列而非错误。
func Apply(t *Table, c Criteria) []Row {
	schema := t.Schema
	out := make([]Row, 0, len(t.Rows))

	for _, row := range t.Rows {
		if c.Entity != "" && row.Text(schema.EntityColumn) != c.Entity {
			continue
		}
		if c.Year != 0 && schema.PeriodColumn != "" && int(row.Number(schema.PeriodColumn)) != c.Year {
			continue
		}
		if len(c.Tags) > 0 {
			if schema.TagColumn == "" {
				continue
			}
			if !matchTags(row.Text(schema.TagColumn), c.Tags) {
				continue
			}
		}
		out = append(out, row)
	}

	return out
}

// matchTags 检查标签列原始串是否包含任一候选值（大小写不敏感的子串匹配）
func matchTags(raw string, tags []string) bool {
	if raw == "" {
		return false
	}
	lower := strings.ToLower(raw)
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(tag)) {
			return true
		}
	}
	return false
}
