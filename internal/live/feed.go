// Package live streams server-pushed notifications into the
// notification store over a websocket.
package live

import (
	"context"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"gira-client/internal/models"
	"gira-client/internal/tokenstore"
)

// NotificationSink receives pushed notifications; the notification
// store satisfies it with Add.
type NotificationSink interface {
	Add(n models.Notification)
}

// Event is the wire frame pushed by the backend.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const EventNotification = "notification"

type Feed struct {
	wsURL  string
	tokens tokenstore.Store
	sink   NotificationSink
	log    *logrus.Logger
}

// New builds a feed for the given API base URL; the websocket endpoint
// is {base}/ws with the scheme switched to ws(s).
func New(baseURL string, tokens tokenstore.Store, sink NotificationSink, log *logrus.Logger) *Feed {
	if log == nil {
		log = logrus.StandardLogger()
	}

	wsURL := strings.TrimRight(baseURL, "/") + "/ws"
	if strings.HasPrefix(wsURL, "https://") {
		wsURL = "wss://" + strings.TrimPrefix(wsURL, "https://")
	} else if strings.HasPrefix(wsURL, "http://") {
		wsURL = "ws://" + strings.TrimPrefix(wsURL, "http://")
	}

	return &Feed{wsURL: wsURL, tokens: tokens, sink: sink, log: log}
}

// Run dials the feed and dispatches incoming notification events into
// the sink until the context is cancelled or the connection drops.
// Reconnecting is the caller's decision.
func (f *Feed) Run(ctx context.Context) error {
	dialURL := f.wsURL
	if token, err := f.tokens.Get(); err == nil && token != "" {
		dialURL += "?token=" + url.QueryEscape(token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, dialURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock ReadMessage when the context goes away.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			f.log.WithError(err).Debug("dropping malformed feed frame")
			continue
		}
		if event.Type != EventNotification {
			continue
		}

		var notification models.Notification
		if err := json.Unmarshal(event.Data, &notification); err != nil {
			f.log.WithError(err).Debug("dropping malformed notification event")
			continue
		}
		f.sink.Add(notification)
	}
}
