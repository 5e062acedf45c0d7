package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zedbee/gateway-wizard/internal/logging"
)

const (
	// Time allowed to read the next message from the gateway
	readWait = 60 * time.Second

	dialTimeout = 10 * time.Second
)

// Watcher streams telemetry over the gateway's websocket endpoint instead
// of polling. Callers typically try Watch first and fall back to a Poller
// when the dial fails.
type Watcher struct {
	// URL is the websocket endpoint, e.g. "ws://gateway:8090/ws/system-info".
	URL string
}

// Watch dials the endpoint and streams updates until ctx is cancelled or
// the connection drops. The returned channel is closed when the stream
// ends; the dial error itself is returned synchronously so callers can
// fall back to polling.
func (w *Watcher) Watch(ctx context.Context) (<-chan Update, error) {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.DialContext(ctx, w.URL, nil)
	if err != nil {
		return nil, err
	}

	updates := make(chan Update, 1)
	go func() {
		defer close(updates)
		defer func() { _ = conn.Close() }()

		// Unblock ReadMessage when the view is left
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				_ = conn.Close()
			case <-done:
			}
		}()

		for {
			if err := conn.SetReadDeadline(time.Now().Add(readWait)); err != nil {
				return
			}
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					logging.Debug("Telemetry stream closed", zap.Error(err))
				}
				return
			}

			var info SystemInfo
			if err := json.Unmarshal(data, &info); err != nil {
				logging.Warn("Malformed telemetry message", zap.Error(err))
				continue
			}

			select {
			case updates <- Update{Info: &info}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return updates, nil
}
