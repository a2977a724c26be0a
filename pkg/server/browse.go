package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kubbkoz/MTSTORE-Next/pkg/common"
	"github.com/kubbkoz/MTSTORE-Next/pkg/query"
)

const maxActionSize = 1 << 16

type SelectCategoryRequest struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder, action query.Action) error {
	snapshot := s.Store.Load()
	state := s.Sessions.Update(sessionId, func(current query.State) query.State {
		return query.Reduce(snapshot, current, action, s.Options)
	})
	browseActions.WithLabelValues(action.Kind()).Inc()
	view := query.Derive(state, s.Options)
	if s.Tracking != nil {
		go s.Tracking.TrackBrowse(sessionId, action.Kind(), state.Category, view.TotalCount)
	}
	common.DefaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(view)
}

// BrowseState returns the view of the current session without changing it.
func (s *Server) BrowseState(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	view := query.Derive(s.Sessions.Get(sessionId), s.Options)
	common.DefaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(view)
}

func (s *Server) BrowseCategory(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	var req SelectCategoryRequest
	if err := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxActionSize)).Decode(&req); err != nil {
		return common.BadRequest(err)
	}
	if req.Category == "" {
		return common.BadRequest(errors.New("category is required"))
	}
	return s.apply(w, r, sessionId, enc, query.SelectCategory{Category: req.Category, Subcategory: req.Subcategory})
}

func (s *Server) BrowseAction(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxActionSize))
	if err != nil {
		return common.BadRequest(err)
	}
	action, err := query.DecodeAction(data)
	if err != nil {
		return common.BadRequest(err)
	}
	return s.apply(w, r, sessionId, enc, action)
}

func (s *Server) BrowseMore(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	return s.apply(w, r, sessionId, enc, query.LoadMore{})
}
