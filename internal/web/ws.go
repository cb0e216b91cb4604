package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"TraceTutor/internal/session"
	"TraceTutor/internal/tutor"
)

// Frame types exchanged on /ws.
const (
	FrameChat      = "chat"
	FrameRecommend = "recommend"
	FramePending   = "pending"
	FrameMessages  = "messages"
	FrameError     = "error"
)

const maxFrameSize = 64 << 10

// Frame is one websocket message in either direction.
type Frame struct {
	Type      string            `json:"type"`
	Text      string            `json:"text,omitempty"`
	Query     string            `json:"query,omitempty"`
	Pending   bool              `json:"pending,omitempty"`
	Messages  []session.Message `json:"messages,omitempty"`
	ActiveTab session.Tab       `json:"active_tab,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// handleWebSocket serves the live chat channel. Requests on one connection
// are handled in order; the transcript is pushed after every change. The
// session stays registered while the connection is open.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	header := http.Header{}
	id, st := s.lookupSession(header, r)

	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	release, _ := s.registry.Attach(id)
	defer release()
	conn.SetReadLimit(maxFrameSize)

	if err := conn.WriteJSON(messagesFrame(st)); err != nil {
		return
	}

	for {
		var in Frame
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		s.registry.Touch(id)
		if err := s.handleFrame(r.Context(), st, in, conn.WriteJSON); err != nil {
			s.logger.Warn("websocket write failed", "error", err)
			return
		}
	}
}

// handleFrame processes one client frame, writing replies through emit.
func (s *Server) handleFrame(ctx context.Context, st *session.State, in Frame, emit func(any) error) error {
	switch in.Type {
	case FrameChat:
		if strings.TrimSpace(in.Text) == "" {
			return nil
		}
		if st.Pending() {
			return emit(Frame{Type: FrameError, Error: tutor.ErrRoundTripPending.Error()})
		}
		if err := emit(Frame{Type: FramePending, Pending: true, Text: in.Text}); err != nil {
			return err
		}
		if _, err := s.tutor.Send(ctx, st, in.Text); err != nil {
			return emit(Frame{Type: FrameError, Error: err.Error()})
		}
		return emit(messagesFrame(st))

	case FrameRecommend:
		if strings.TrimSpace(in.Query) == "" {
			return nil
		}
		st.SetSearch(in.Query)
		if err := s.tutor.Recommend(ctx, st, in.Query); err != nil {
			return emit(Frame{Type: FrameError, Error: err.Error()})
		}
		return emit(messagesFrame(st))

	default:
		return emit(Frame{Type: FrameError, Error: "unknown frame type: " + in.Type})
	}
}

func messagesFrame(st *session.State) Frame {
	snap := st.Snapshot()
	return Frame{
		Type:      FrameMessages,
		Messages:  snap.Messages,
		Pending:   snap.Pending,
		ActiveTab: snap.ActiveTab,
	}
}
