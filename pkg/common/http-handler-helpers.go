package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

var ErrNotFound = errors.New("not found")

// HttpError carries the status code a handler wants to answer with.
type HttpError struct {
	Status int
	Err    error
}

func (e *HttpError) Error() string {
	return e.Err.Error()
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func BadRequest(err error) error {
	return &HttpError{Status: http.StatusBadRequest, Err: err}
}

func JsonHandler(trk types.Tracking, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "OPTIONS" {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)

		err := fn(w, r, sessionId, sonic.ConfigDefault.NewEncoder(w))
		if err != nil {
			log.Printf("Error handling request: %v", err)
			WriteError(w, err)
		}
	}
}

// WriteError maps handler errors to a status code.
func WriteError(w http.ResponseWriter, err error) {
	var httpErr *HttpError
	switch {
	case errors.As(err, &httpErr):
		http.Error(w, httpErr.Err.Error(), httpErr.Status)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}

func DefaultHeaders(w http.ResponseWriter, r *http.Request, isJson bool, cacheTime string) {
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	if isJson {
		w.Header().Set("Content-Type", "application/json")
	}
	if cacheTime == "0" {
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "public, max-age="+cacheTime)
	}
}
