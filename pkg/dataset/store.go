package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/easyops/datachat-go/pkg/core/errors"
	"github.com/easyops/datachat-go/pkg/otel"
)

// Store 在进程生命周期内独占持有清洗后的数据集
//
// 首次加载成功后全进程缓存；并发的首次加载被单一初始化
// 守卫串行化（双重检查），失败不锁存，后续调用可重试。
type Store struct {
	loader  Loader
	cache   *Cache
	metrics otel.Metrics

	mu    sync.RWMutex
	table *Table
}

// StoreOption 配置 Store
type StoreOption func(*Store)

// WithCache 设置 SQLite 快照缓存
func WithCache(cache *Cache) StoreOption {
	return func(s *Store) {
		s.cache = cache
	}
}

// WithMetrics 设置加载指标收集器
func WithMetrics(metrics otel.Metrics) StoreOption {
	return func(s *Store) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// NewStore 创建数据集存取器
func NewStore(loader Loader, opts ...StoreOption) *Store {
	s := &Store{
		loader:  loader,
		metrics: otel.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get 返回数据集，必要时触发一次加载
func (s *Store) Get(ctx context.Context) (*Table, error) {
	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 双重检查：等锁期间可能已有并发加载完成
	if s.table != nil {
		return s.table, nil
	}

	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	s.table = table
	return table, nil
}

// Reload 丢弃已缓存的表并重新加载
func (s *Store) Reload(ctx context.Context) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	s.table = table
	return table, nil
}

// Loaded 返回数据集是否已加载
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table != nil
}

// Table 返回已加载的表，未加载时返回错误
func (s *Store) Table() (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, errors.ErrDatasetNotLoaded
	}
	return s.table, nil
}

// load 执行实际加载；源不可用时尝试快照缓存，成功时刷新快照
func (s *Store) load(ctx context.Context) (*Table, error) {
	startTime := time.Now()

	table, err := s.loader.Load(ctx)
	if err != nil {
		if s.cache == nil {
			s.recordLoad(ctx, nil, "source", startTime, err)
			return nil, err
		}
		cached, cacheErr := s.cache.Load(ctx)
		if cacheErr != nil {
			s.recordLoad(ctx, nil, "source", startTime, err) // 以原始加载错误为准
			return nil, err
		}
		s.metrics.Counter(otel.MetricDatasetCacheHits).Add(ctx, 1)
		s.recordLoad(ctx, cached, "cache", startTime, nil)
		return cached, nil
	}

	if s.cache != nil {
		// 快照写入尽力而为，失败不影响本次加载
		_ = s.cache.Save(ctx, table)
	}

	s.recordLoad(ctx, table, "source", startTime, nil)
	return table, nil
}

// recordLoad 记录一次加载的指标
func (s *Store) recordLoad(ctx context.Context, table *Table, source string, startTime time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
		s.metrics.Counter(otel.MetricDatasetLoadErrors).Add(ctx, 1)
	}

	s.metrics.Counter(otel.MetricDatasetLoads).Add(ctx, 1,
		otel.NewAttr("source", source),
		otel.NewAttr("status", status),
	)
	s.metrics.Histogram(otel.MetricDatasetLoadDuration).Record(ctx, float64(time.Since(startTime).Milliseconds()),
		otel.NewAttr("source", source),
	)
	if table != nil {
		s.metrics.Histogram(otel.MetricDatasetRows).Record(ctx, float64(table.Len()),
			otel.NewAttr("source", source),
		)
	}
}
