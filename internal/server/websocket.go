package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zedbee/gateway-wizard/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// streamInterval matches the client's polling cadence
	streamInterval = 3 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The setup client is not a browser; no origin restriction needed
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleSystemInfoStream upgrades the connection and pushes a telemetry
// snapshot every three seconds until the client disconnects.
func (s *Server) handleSystemInfoStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Failed to upgrade telemetry stream",
			zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
		return
	}
	logging.Info("Telemetry stream opened", zap.String("remote_addr", r.RemoteAddr))

	defer func() {
		_ = conn.Close()
		logging.Info("Telemetry stream closed", zap.String("remote_addr", r.RemoteAddr))
	}()

	// Drain control frames so close handshakes are processed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(s.sysinfo()); err != nil {
			logging.Debug("Failed to write telemetry frame",
				zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
			return
		}

		select {
		case <-closed:
			return
		case <-s.shutdown:
			return
		case <-ticker.C:
		}
	}
}
