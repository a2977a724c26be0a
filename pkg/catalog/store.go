package catalog

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	totalProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mtstore_catalog_products",
		Help: "Number of products in the active catalog snapshot",
	})
	catalogVersion = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mtstore_catalog_version",
		Help: "Version of the active catalog snapshot",
	})
)

// ChangeHandler is notified after a new snapshot became active.
type ChangeHandler func(next *Catalog)

// Store holds the active snapshot. Reads are lock free, writers are
// serialized so concurrent upserts never lose each other.
type Store struct {
	mu       sync.Mutex
	current  atomic.Pointer[Catalog]
	handlers []ChangeHandler
}

func NewStore(initial *Catalog) *Store {
	s := &Store{}
	if initial == nil {
		initial = New(nil, nil)
	}
	s.set(initial)
	return s
}

// Load returns the active snapshot, a query should hold on to it for its
// whole duration.
func (s *Store) Load() *Catalog {
	return s.current.Load()
}

func (s *Store) OnChange(h ChangeHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// Replace activates a new snapshot, its version continues the current one.
func (s *Store) Replace(next *Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next.version = s.current.Load().version + 1
	s.set(next)
}

func (s *Store) Upsert(products ...types.Product) *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Load().Upsert(products...)
	s.set(next)
	return next
}

func (s *Store) Remove(ids ...string) *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Load().Remove(ids...)
	s.set(next)
	return next
}

// Commit builds the next snapshot from the active one. The snapshot is only
// activated when build succeeds, so a failed write never becomes visible.
func (s *Store) Commit(build func(current *Catalog) (*Catalog, error)) (*Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.current.Load()
	next, err := build(current)
	if err != nil {
		return nil, err
	}
	next.version = current.version + 1
	s.set(next)
	return next, nil
}

func (s *Store) set(next *Catalog) {
	s.current.Store(next)
	totalProducts.Set(float64(next.Len()))
	catalogVersion.Set(float64(next.version))
	log.Printf("Catalog version %d active, %d products", next.version, next.Len())
	for _, h := range s.handlers {
		h(next)
	}
}
