package tracking

import (
	"log"
	"net/http"

	"github.com/kubbkoz/MTSTORE-Next/pkg/messaging"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitTracking struct {
	country    string
	connection *amqp.Connection
}

const trackingTopic = "tracking"

const (
	EventSession uint16 = 0
	EventQuery   uint16 = 1
	EventBrowse  uint16 = 6
)

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	ret := RabbitTracking{
		connection: nil,
		country:    country,
	}
	err := ret.connect(url)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	t.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return messaging.DefineTopic(ch, "global", trackingTopic)
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

func (t *RabbitTracking) send(data any) error {
	return messaging.SendChange(t.connection, "global", trackingTopic, data)
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type QueryEvent struct {
	*types.QueryFilters
	*BaseEvent
	NumberOfResults int           `json:"noi"`
	Category        string        `json:"category"`
	Subcategory     string        `json:"subcategory,omitempty"`
	Sort            types.SortKey `json:"sort"`
	Offset          int           `json:"offset"`
	Referer         string        `json:"referer"`
}

type BrowseEvent struct {
	*BaseEvent
	Action          string `json:"action"`
	Category        string `json:"category"`
	NumberOfResults int    `json:"noi"`
}

func newBaseEvent(event uint16, sessionId, country string) *BaseEvent {
	return &BaseEvent{Event: event, SessionId: sessionId, Country: country, Context: "b2c"}
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func NewSessionEvent(sessionId, country string, r *http.Request) Session {
	return Session{
		BaseEvent:    newBaseEvent(EventSession, sessionId, country),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	}
}

func NewQueryEvent(sessionId, country string, q *types.QueryRequest, resultLen int, r *http.Request) *QueryEvent {
	return &QueryEvent{
		BaseEvent:       newBaseEvent(EventQuery, sessionId, country),
		QueryFilters:    q.QueryFilters,
		NumberOfResults: resultLen,
		Category:        q.Category,
		Subcategory:     q.Subcategory,
		Sort:            q.Sort,
		Offset:          q.Offset,
		Referer:         r.Header.Get("Referer"),
	}
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	if err := rt.send(NewSessionEvent(sessionId, rt.country, r)); err != nil {
		log.Println("Error sending session event: ", err)
	}
}

func (rt *RabbitTracking) TrackQuery(sessionId string, q *types.QueryRequest, resultLen int, r *http.Request) {
	if err := rt.send(NewQueryEvent(sessionId, rt.country, q, resultLen, r)); err != nil {
		log.Println("Error sending query event: ", err)
	}
}

func (rt *RabbitTracking) TrackBrowse(sessionId, action, category string, resultLen int) {
	err := rt.send(&BrowseEvent{
		BaseEvent:       newBaseEvent(EventBrowse, sessionId, rt.country),
		Action:          action,
		Category:        category,
		NumberOfResults: resultLen,
	})
	if err != nil {
		log.Println("Error sending browse event: ", err)
	}
}
