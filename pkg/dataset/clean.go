package dataset

// DerivedColumn 声明一个由若干数值列求和得到的派生列
type DerivedColumn struct {
	// Name 派生列名
	Name string
	// Sum 参与求和的源列
	Sum []string
}

// Cleaner 对加载后的行集做一次性清洗
//
// 清洗规则：
//  1. 缺失实体键（KeyColumn）的行整行丢弃
//  2. 数值列的缺失值填 0
//  3. 计算派生求和列
type Cleaner struct {
	schema  *Schema
	derived []DerivedColumn
}

// NewCleaner 创建清洗器
func NewCleaner(schema *Schema, derived []DerivedColumn) *Cleaner {
	return &Cleaner{
		schema:  schema,
		derived: derived,
	}
}

// Clean 返回清洗后的行集，重排原始行号使其连续
func (c *Cleaner) Clean(rows []Row) []Row {
	out := make([]Row, 0, len(rows))

	for _, row := range rows {
		// 过滤缺失实体键的行（聚合区域等）
		if c.schema.KeyColumn != "" && row.Value(c.schema.KeyColumn).IsMissing() {
			continue
		}

		// 数值列缺失填 0
		for _, col := range c.schema.Columns {
			if col.Kind != ColumnNumber {
				continue
			}
			if row.Value(col.Name).IsMissing() {
				row.Values[col.Name] = Number(0)
			}
		}

		// 派生求和列
		for _, d := range c.derived {
			var total float64
			for _, src := range d.Sum {
				total += row.Number(src)
			}
			row.Values[d.Name] = Number(total)
		}

		row.Index = len(out)
		out = append(out, row)
	}

	return out
}
