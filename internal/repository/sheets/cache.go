package sheets

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/asthmacare/clinic-api/internal/repository"
	"github.com/asthmacare/clinic-api/pkg/metrics"
)

// CachedStore is a read-through cache over whole-tab reads. Every staff
// page reads entire tabs, so a short TTL takes most of the load off the
// spreadsheet API. Any write to a tab drops that tab's entry; writes to
// other processes still only converge once the TTL expires.
type CachedStore struct {
	inner   repository.RowStore
	cache   *gocache.Cache
	metrics *metrics.Metrics
}

func NewCachedStore(inner repository.RowStore, ttl time.Duration, m *metrics.Metrics) *CachedStore {
	return &CachedStore{
		inner:   inner,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: m,
	}
}

var _ repository.RowStore = (*CachedStore)(nil)

func (s *CachedStore) GetRows(ctx context.Context, tab string) ([][]string, error) {
	if cached, ok := s.cache.Get(tab); ok {
		s.countCache(tab, "hit")
		return cached.([][]string), nil
	}
	s.countCache(tab, "miss")

	rows, err := s.inner.GetRows(ctx, tab)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(tab, rows)
	return rows, nil
}

func (s *CachedStore) AppendRow(ctx context.Context, tab string, values []string) error {
	s.cache.Delete(tab)
	return s.inner.AppendRow(ctx, tab, values)
}

func (s *CachedStore) UpdateCell(ctx context.Context, tab, key string, columnOffset int, value string) error {
	s.cache.Delete(tab)
	return s.inner.UpdateCell(ctx, tab, key, columnOffset, value)
}

func (s *CachedStore) UpdateRow(ctx context.Context, tab, key string, values []string) error {
	s.cache.Delete(tab)
	return s.inner.UpdateRow(ctx, tab, key, values)
}

func (s *CachedStore) DeleteRow(ctx context.Context, tab, key string) error {
	s.cache.Delete(tab)
	return s.inner.DeleteRow(ctx, tab, key)
}

func (s *CachedStore) countCache(tab, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.StoreCacheHits.WithLabelValues(tab, result).Inc()
}
