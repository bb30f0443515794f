package context

import (
	"github.com/easyops/datachat-go/pkg/dataset"
)

// Subset 表示转发给补全服务的有界行子集
//
// 不变量：过滤结果不超过上限时，子集与过滤结果逐行一致且无注记；
// 超过上限时子集为确定性采样，并恰好附带一条注记。
type Subset struct {
	// Rows 选中的行（原始相对顺序或策略定义的确定性顺序）
	Rows []dataset.Row
	// Columns 投影列（序列化时的列序）
	Columns []string
	// Note 截断/采样说明注记（未截断时为空）
	Note string
}

// IsEmpty 检查子集是否为空
func (s Subset) IsEmpty() bool {
	return len(s.Rows) == 0
}

// Len 返回子集行数
func (s Subset) Len() int {
	return len(s.Rows)
}
