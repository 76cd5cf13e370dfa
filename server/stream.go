package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	streamPoll         = 100 * time.Millisecond
	streamWriteTimeout = 5 * time.Second
)

// stream pushes a snapshot on connect and again whenever the game changes or a
// showing celebration clears. Client messages are ignored.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.Warn("stream accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")
	ctx := conn.CloseRead(r.Context())

	ticker := time.NewTicker(streamPoll)
	defer ticker.Stop()
	var (
		sent    bool
		version uint64
		slot    string
	)
	for {
		snap := s.game.Snapshot()
		if !sent || snap.Version != version || snap.Slot != slot {
			wctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
			err := wsjson.Write(wctx, conn, snap)
			cancel()
			if err != nil {
				return
			}
			sent, version, slot = true, snap.Version, snap.Slot
		}
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ticker.C:
		}
	}
}
