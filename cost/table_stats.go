package cost

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rohankumardubey/hetu-sub001/catalog"
	"github.com/rohankumardubey/hetu-sub001/common"
)

// TableStatsSource supplies base statistics for catalog tables. Fetches
// happen before or outside the optimization loop; implementations must be
// safe for use by concurrent planning sessions.
type TableStatsSource interface {
	TableStats(table common.ObjectID) (catalog.TableStatistics, error)
}

// CachingTableStats resolves table statistics from the catalog through a
// bounded LRU cache. The cache is shared by all concurrent sessions, so a
// hot table's statistics are fetched once rather than per query.
type CachingTableStats struct {
	catalog *catalog.Catalog
	cache   *lru.Cache[common.ObjectID, catalog.TableStatistics]
}

func NewCachingTableStats(cat *catalog.Catalog, cacheSize int) (*CachingTableStats, error) {
	cache, err := lru.New[common.ObjectID, catalog.TableStatistics](cacheSize)
	if err != nil {
		return nil, err
	}
	return &CachingTableStats{catalog: cat, cache: cache}, nil
}

func (s *CachingTableStats) TableStats(table common.ObjectID) (catalog.TableStatistics, error) {
	if stats, ok := s.cache.Get(table); ok {
		return stats, nil
	}
	t, ok := s.catalog.Table(table)
	if !ok {
		// An unregistered table is not an estimation failure; it simply
		// has no statistics.
		return catalog.UnknownTableStatistics(), nil
	}
	s.cache.Add(table, t.Stats)
	return t.Stats, nil
}
