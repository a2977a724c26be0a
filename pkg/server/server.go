package server

import (
	"log"
	"net/http"
	"time"

	"github.com/kubbkoz/MTSTORE-Next/pkg/catalog"
	"github.com/kubbkoz/MTSTORE-Next/pkg/common"
	"github.com/kubbkoz/MTSTORE-Next/pkg/messaging"
	"github.com/kubbkoz/MTSTORE-Next/pkg/query"
	"github.com/kubbkoz/MTSTORE-Next/pkg/storage"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

const DefaultCacheTtl = 5 * time.Minute

type ChangePublisher interface {
	PublishCatalogChange(change messaging.CatalogChange) error
}

// Server exposes the catalog over http. Only Store and Sessions are
// required, every other dependency is optional.
type Server struct {
	Store     *catalog.Store
	Sessions  *SessionStore
	Cache     *Cache
	Tracking  types.Tracking
	Options   query.Options
	Storage   *storage.DiskStorage
	Publisher ChangePublisher
	Auth      *Auth
	// Origin identifies this instance in published catalog changes.
	Origin   string
	CacheTtl time.Duration
}

func (s *Server) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	trk := s.Tracking

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/query", common.JsonHandler(trk, s.Query))
	mux.HandleFunc("GET /api/facets/{category}", common.JsonHandler(trk, s.Facets))
	mux.HandleFunc("GET /api/categories", common.JsonHandler(trk, s.Categories))
	mux.HandleFunc("GET /api/get/{id}", common.JsonHandler(trk, s.GetProduct))

	mux.HandleFunc("GET /api/browse", common.JsonHandler(trk, s.BrowseState))
	mux.HandleFunc("POST /api/browse/category", common.JsonHandler(trk, s.BrowseCategory))
	mux.HandleFunc("POST /api/browse/action", common.JsonHandler(trk, s.BrowseAction))
	mux.HandleFunc("POST /api/browse/more", common.JsonHandler(trk, s.BrowseMore))

	if s.Auth != nil {
		mux.HandleFunc("GET /admin/status", s.Auth.Middleware(common.JsonHandler(nil, s.Status)))
		mux.HandleFunc("POST /admin/reload", s.Auth.Middleware(common.JsonHandler(nil, s.Reload)))
		mux.HandleFunc("PUT /admin/products", s.Auth.Middleware(common.JsonHandler(nil, s.UpsertProducts)))
		mux.HandleFunc("DELETE /admin/products/{id}", s.Auth.Middleware(common.JsonHandler(nil, s.DeleteProduct)))
		mux.HandleFunc("GET /admin/export", s.Auth.Middleware(s.Export))
	} else {
		log.Println("No admin credentials configured, admin api disabled")
	}
	return mux
}

func (s *Server) cacheTtl() time.Duration {
	if s.CacheTtl <= 0 {
		return DefaultCacheTtl
	}
	return s.CacheTtl
}
