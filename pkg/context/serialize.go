package context

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/easyops/datachat-go/pkg/dataset"
)

// 数据块的字段分隔符
const blockDelimiter = "|"

// RenderBlock 将子集序列化为分隔文本块
//
// 首行为列头，其后每行一条记录，字段以竖线分隔。
// 空子集返回空串；字段内的分隔符被替换为斜杠。
func RenderBlock(subset Subset) string {
	if subset.IsEmpty() {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Join(subset.Columns, blockDelimiter))
	b.WriteString("\n")

	for _, row := range subset.Rows {
		fields := make([]string, len(subset.Columns))
		for i, col := range subset.Columns {
			fields[i] = sanitizeField(row.Value(col).String())
		}
		b.WriteString(strings.Join(fields, blockDelimiter))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// ParseBlock 将分隔文本块反解析为投影行
//
// 列类型按 Schema 判定，未声明的列按文本处理。
// 与 RenderBlock 构成投影行的往返（列序以块内列头为准）。
func ParseBlock(block string, schema *dataset.Schema) ([]dataset.Row, error) {
	block = strings.TrimSpace(block)
	if block == "" {
		return nil, nil
	}

	lines := strings.Split(block, "\n")
	columns := strings.Split(lines[0], blockDelimiter)

	rows := make([]dataset.Row, 0, len(lines)-1)
	for i, line := range lines[1:] {
		fields := strings.Split(line, blockDelimiter)
		if len(fields) != len(columns) {
			return nil, fmt.Errorf("row %d: got %d fields, want %d", i+1, len(fields), len(columns))
		}

		values := make(map[string]dataset.Value, len(columns))
		for j, col := range columns {
			values[col] = parseField(fields[j], col, schema)
		}
		rows = append(rows, dataset.Row{Index: i, Values: values})
	}

	return rows, nil
}

// parseField 按列类型解析字段
//
// 声明为文本的列始终还原为文本，即使取值形如数字（片名 "300"）。
func parseField(raw, col string, schema *dataset.Schema) dataset.Value {
	if raw == "" {
		return dataset.Missing()
	}

	if def, ok := schema.Column(col); ok {
		if def.Kind == dataset.ColumnNumber {
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				return dataset.Number(f)
			}
			return dataset.Missing()
		}
		return dataset.Text(raw)
	}

	// 派生数值列不在 Schema 声明中，按可解析性判定
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return dataset.Number(f)
	}
	return dataset.Text(raw)
}

// sanitizeField 移除字段内的分隔符与换行
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, blockDelimiter, "/")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
