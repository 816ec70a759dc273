package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"presentcoach/internal/logging"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPingPeriod = 30 * time.Second
)

// handleStream pushes progress events over a websocket until the run is
// terminal or the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionParam(r)
	updates, cancel := s.jobs.Subscribe(sessionID)
	defer cancel()

	var fallback *ProgressResponse
	if _, ok := s.jobs.Progress(sessionID); !ok {
		rec, err := s.reports.Get(r.Context(), sessionID)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rec == nil {
			s.writeError(w, http.StatusNotFound, "no analysis for this session")
			return
		}
		resp := progressFromRecord(rec)
		fallback = &resp
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.WarnWithContext(s.logger, "websocket upgrade failed", "stream_upgrade_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "connect with a websocket client"),
			logging.String(logging.FieldImpact, "client receives no live progress"),
		)
		return
	}
	defer conn.Close()

	if fallback != nil {
		_ = s.writeEvent(conn, *fallback)
		s.closeStream(conn)
		return
	}

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()
	for {
		select {
		case job, ok := <-updates:
			if !ok {
				return
			}
			if err := s.writeEvent(conn, progressFromJob(job)); err != nil {
				return
			}
			if job.Terminal() {
				s.closeStream(conn)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

func (s *Server) writeEvent(conn *websocket.Conn, event ProgressResponse) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteJSON(event)
}

func (s *Server) closeStream(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "analysis finished")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(streamWriteWait))
}
