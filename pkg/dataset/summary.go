package dataset

// Summarize 返回指定数值列在行集上的合计
func Summarize(rows []Row, cols []string) map[string]float64 {
	totals := make(map[string]float64, len(cols))
	for _, col := range cols {
		totals[col] = 0
	}
	for _, row := range rows {
		for _, col := range cols {
			totals[col] += row.Number(col)
		}
	}
	return totals
}

// Share 返回 numer 列合计占 numer+denom 列合计的百分比
//
// 合计为 0 时返回 0，不报错。
func Share(rows []Row, numerCols, denomCols []string) float64 {
	var numer, denom float64
	for _, row := range rows {
		for _, col := range numerCols {
			numer += row.Number(col)
		}
		for _, col := range denomCols {
			denom += row.Number(col)
		}
	}

	total := numer + denom
	if total <= 0 {
		return 0
	}
	return numer / total * 100
}
