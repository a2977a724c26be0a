package common

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

const SessionCookie = "sid"

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(r.Host, "."),
		SameSite: http.SameSiteNoneMode,
		HttpOnly: true,
		Secure:   true,
		MaxAge:   2592000,
		Path:     "/",
	})
}

// HandleSessionCookie returns the session id of the request, creating and
// tracking a new session when the cookie is missing or invalid.
func HandleSessionCookie(trk types.Tracking, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sessionId := uuid.NewString()
	if trk != nil {
		go trk.TrackSession(sessionId, r)
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
