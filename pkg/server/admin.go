package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kubbkoz/MTSTORE-Next/pkg/catalog"
	"github.com/kubbkoz/MTSTORE-Next/pkg/common"
	"github.com/kubbkoz/MTSTORE-Next/pkg/messaging"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

var errNoStorage = errors.New("no storage configured")

type CatalogStatus struct {
	Version    uint64 `json:"version"`
	Products   int    `json:"products"`
	Categories int    `json:"categories"`
	Sessions   int    `json:"sessions"`
}

func (s *Server) status(c *catalog.Catalog) CatalogStatus {
	return CatalogStatus{
		Version:    c.Version(),
		Products:   c.Len(),
		Categories: len(c.Categories()),
		Sessions:   s.Sessions.Len(),
	}
}

func (s *Server) publish(change messaging.CatalogChange) {
	if s.Publisher == nil {
		return
	}
	change.Origin = s.Origin
	if err := s.Publisher.PublishCatalogChange(change); err != nil {
		log.Printf("Failed to publish catalog change: %v", err)
	}
}

func (s *Server) persist(c *catalog.Catalog) error {
	if s.Storage == nil {
		return nil
	}
	return s.Storage.SaveCatalog(c)
}

func (s *Server) Status(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	common.DefaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(s.status(s.Store.Load()))
}

// Reload replaces the catalog with the persisted one and asks the other
// instances to do the same.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	if s.Storage == nil {
		return common.BadRequest(errNoStorage)
	}
	next, err := s.Storage.LoadCatalog()
	if err != nil {
		return err
	}
	s.Store.Replace(next)
	catalogChanges.Inc()
	s.publish(messaging.CatalogChange{Reload: true})
	common.DefaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(s.status(s.Store.Load()))
}

func (s *Server) UpsertProducts(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	var products []types.Product
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&products); err != nil {
		return common.BadRequest(err)
	}
	if len(products) == 0 {
		return common.BadRequest(errors.New("no products"))
	}
	for i := range products {
		if products[i].Id == "" {
			return common.BadRequest(fmt.Errorf("product %d has no id", i))
		}
	}
	next, err := s.Store.Commit(func(current *catalog.Catalog) (*catalog.Catalog, error) {
		next := current.Upsert(products...)
		return next, s.persist(next)
	})
	if err != nil {
		return fmt.Errorf("upsert products: %w", err)
	}
	catalogChanges.Inc()
	s.publish(messaging.CatalogChange{Upserted: products})
	common.DefaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(s.status(next))
}

func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	id := r.PathValue("id")
	if _, ok := s.Store.Load().Get(id); !ok {
		return fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	next, err := s.Store.Commit(func(current *catalog.Catalog) (*catalog.Catalog, error) {
		next := current.Remove(id)
		return next, s.persist(next)
	})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	catalogChanges.Inc()
	s.publish(messaging.CatalogChange{Deleted: []string{id}})
	common.DefaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(s.status(next))
}

// Export streams the persisted products file.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		http.Error(w, errNoStorage.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", `attachment; filename="products.json.gz"`)
	if _, err := s.Storage.StreamProducts(w); err != nil {
		log.Printf("Failed to stream products: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
	}
}

// ApplyChanges applies catalog changes received from other instances.
func (s *Server) ApplyChanges(changes []messaging.CatalogChange) {
	for _, change := range changes {
		if change.Reload {
			if s.Storage == nil {
				continue
			}
			next, err := s.Storage.LoadCatalog()
			if err != nil {
				log.Printf("Failed to reload catalog: %v", err)
				continue
			}
			s.Store.Replace(next)
			catalogChanges.Inc()
			continue
		}
		if len(change.Upserted) > 0 {
			s.Store.Upsert(change.Upserted...)
		}
		if len(change.Deleted) > 0 {
			s.Store.Remove(change.Deleted...)
		}
		catalogChanges.Inc()
	}
}
