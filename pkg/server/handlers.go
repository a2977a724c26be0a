package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/kubbkoz/MTSTORE-Next/pkg/common"
	"github.com/kubbkoz/MTSTORE-Next/pkg/facet"
	"github.com/kubbkoz/MTSTORE-Next/pkg/query"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// Query answers a stateless category query, GET with url parameters or POST
// with a json body.
func (s *Server) Query(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	start := time.Now()
	req, err := types.GetQueryFromRequest(r)
	if err != nil {
		return common.BadRequest(err)
	}
	snapshot := s.Store.Load()
	run := func() types.QueryResponse {
		return query.Run(snapshot, req, s.Options)
	}

	var res types.QueryResponse
	key, err := CacheKey("query", snapshot.Fingerprint(), req)
	if err != nil {
		log.Printf("Could not build cache key: %v", err)
		res = run()
	} else {
		hit := NewCacheHelper[types.QueryResponse](s.Cache).Handle(r.Context(), key, &res, run, s.cacheTtl())
		cacheResults.WithLabelValues(cacheLabel(hit)).Inc()
	}
	queryCount.Inc()
	queryDuration.Observe(time.Since(start).Seconds())

	if s.Tracking != nil && !req.SkipTracking {
		go s.Tracking.TrackQuery(sessionId, req, res.TotalCount, r)
	}

	common.DefaultHeaders(w, r, true, "10")
	w.Header().Set("x-duration", fmt.Sprintf("%v", time.Since(start)))
	w.WriteHeader(http.StatusOK)
	return enc.Encode(res)
}

// Facets lists the facet values of a whole category, q narrows the brands
// to the ones containing the term.
func (s *Server) Facets(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	category := r.PathValue("category")
	facets := facet.Compute(s.Store.Load().CategoryProducts(category))
	if q := r.URL.Query().Get("q"); q != "" {
		facets.Brands = facet.SearchValues(facets.Brands, q)
	}
	common.DefaultHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(facets)
}

func (s *Server) Categories(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	common.DefaultHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(s.Store.Load().Categories())
}

func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	id := r.PathValue("id")
	p, ok := s.Store.Load().Get(id)
	if !ok {
		return fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	common.DefaultHeaders(w, r, true, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(p)
}
