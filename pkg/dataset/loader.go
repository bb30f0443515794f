package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/easyops/datachat-go/pkg/core/errors"
)

// Loader 数据集加载器接口
type Loader interface {
	// Load 加载并清洗数据集
	Load(ctx context.Context) (*Table, error)
}

// CSVLoader 逗号分隔文本文件加载器
//
// 优先从网络地址抓取，失败时降级到本地文件路径。
// 数值字段无法解析的行被整行丢弃，不做修补。
type CSVLoader struct {
	preset     Preset
	httpClient *http.Client
}

// CSVLoaderOption 配置 CSVLoader
type CSVLoaderOption func(*CSVLoader)

// WithHTTPClient 设置 HTTP 客户端
func WithHTTPClient(client *http.Client) CSVLoaderOption {
	return func(l *CSVLoader) {
		l.httpClient = client
	}
}

// NewCSVLoader 创建 CSV 加载器
func NewCSVLoader(preset Preset, opts ...CSVLoaderOption) *CSVLoader {
	l := &CSVLoader{
		preset: preset,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load 加载并清洗数据集
func (l *CSVLoader) Load(ctx context.Context) (*Table, error) {
	reader, closeFn, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	table, err := l.parse(reader)
	if err != nil {
		return nil, err
	}

	cleaner := NewCleaner(l.preset.Schema, l.preset.Derived)
	table.Rows = cleaner.Clean(table.Rows)

	if len(table.Rows) == 0 {
		return nil, errors.ErrEmptyDataset
	}

	return table, nil
}

// open 打开数据源：先网络地址，失败降级本地文件
func (l *CSVLoader) open(ctx context.Context) (io.Reader, func() error, error) {
	if l.preset.SourceURL != "" {
		body, err := l.fetch(ctx, l.preset.SourceURL)
		if err == nil {
			return body, body.Close, nil
		}
		if l.preset.FallbackPath == "" {
			return nil, nil, fmt.Errorf("%w: %v", errors.ErrDataLoad, err)
		}
	}

	if l.preset.FallbackPath == "" {
		return nil, nil, fmt.Errorf("%w: no source configured", errors.ErrDataLoad)
	}

	f, err := os.Open(l.preset.FallbackPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errors.ErrDataLoad, err)
	}
	return f, f.Close, nil
}

// fetch 抓取网络数据源
func (l *CSVLoader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// parse 解析 CSV 内容为表
func (l *CSVLoader) parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // 行宽不齐时逐行处理

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDataLoad, err)
	}

	schema := l.preset.Schema
	if err := schema.Validate(header); err != nil {
		return nil, err
	}

	// 列名到字段下标
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 无法解析的行丢弃，不修补
			continue
		}

		row, ok := buildRow(schema, colIndex, record, len(rows))
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	return &Table{Schema: schema, Rows: rows}, nil
}

// buildRow 把一条记录转换为 Row；数值字段解析失败返回 ok=false
func buildRow(schema *Schema, colIndex map[string]int, record []string, index int) (Row, bool) {
	values := make(map[string]Value, len(schema.Columns))

	for _, col := range schema.Columns {
		idx, ok := colIndex[col.Name]
		if !ok || idx >= len(record) {
			values[col.Name] = Missing()
			continue
		}

		raw := strings.TrimSpace(record[idx])
		if raw == "" {
			values[col.Name] = Missing()
			continue
		}

		switch col.Kind {
		case ColumnNumber:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Row{}, false
			}
			values[col.Name] = Number(f)
		default:
			values[col.Name] = Text(raw)
		}
	}

	return Row{Index: index, Values: values}, true
}
