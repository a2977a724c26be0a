package types

import (
	"net/http"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackQuery(sessionId string, query *QueryRequest, resultLen int, r *http.Request)
	TrackBrowse(sessionId string, action string, category string, resultLen int)
	Close() error
}
