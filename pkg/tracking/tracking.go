package tracking

import (
	"log"
	"net/http"

	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

// LogTracking writes events to the log when no broker is configured.
type LogTracking struct {
	Country string
}

func (t *LogTracking) TrackSession(sessionId string, r *http.Request) {
	ev := NewSessionEvent(sessionId, t.Country, r)
	log.Printf("track session %s ip=%s", sessionId, ev.Ip)
}

func (t *LogTracking) TrackQuery(sessionId string, q *types.QueryRequest, resultLen int, r *http.Request) {
	log.Printf("track query %s category=%q sort=%s results=%d", sessionId, q.Category, q.Sort, resultLen)
}

func (t *LogTracking) TrackBrowse(sessionId, action, category string, resultLen int) {
	log.Printf("track browse %s %s category=%q results=%d", sessionId, action, category, resultLen)
}

func (t *LogTracking) Close() error {
	return nil
}

var (
	_ types.Tracking = &LogTracking{}
	_ types.Tracking = &RabbitTracking{}
)
