package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"contentgen/internal/action"
	"contentgen/internal/gateway/session"
	"contentgen/internal/generation"
)

const (
	sessionWSWriteWait = 10 * time.Second
	sessionWSPongWait  = 60 * time.Second
	sessionWSPingEvery = (sessionWSPongWait * 9) / 10
)

var sessionWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type sessionWSInbound struct {
	Type     string `json:"type"`
	Kind     string `json:"kind,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
	Language string `json:"language,omitempty"`
	Target   string `json:"target,omitempty"`
}

// sessionWSOutbound is either a session event or a protocol reply.
type sessionWSOutbound struct {
	session.Event
	Code string `json:"code,omitempty"`
}

func (h *SessionHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	conn, err := sessionWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(sessionWSPongWait)); err != nil {
		log.Printf("session ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(sessionWSPongWait))
	})

	writeCh := make(chan sessionWSOutbound, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(sessionWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(sessionWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(sessionWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	events, unsubscribe := s.Subscribe()
	defer unsubscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					// Session unmounted: end the connection.
					cancel()
					_ = conn.Close()
					return
				}
				pushSessionWS(writeCh, sessionWSOutbound{Event: ev})
			}
		}
	}()

	for {
		var in sessionWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		if out, ok := h.handleInbound(ctx, s, in); ok {
			pushSessionWS(writeCh, out)
		}
	}
}

// handleInbound applies one command; it returns a reply when there is one.
func (h *SessionHandler) handleInbound(ctx context.Context, s *session.Session, in sessionWSInbound) (sessionWSOutbound, bool) {
	msgType := strings.ToLower(strings.TrimSpace(in.Type))
	if msgType == "" {
		return wsError("invalid_argument", "type is required"), true
	}
	if msgType == "ping" {
		return sessionWSOutbound{Event: session.Event{Type: "pong"}}, true
	}
	if msgType == "set_language" {
		return replyFor(s.SetLanguage(in.Language))
	}

	kind, err := generation.ParseKind(in.Kind)
	if err != nil {
		return wsError("invalid_argument", err.Error()), true
	}
	switch msgType {
	case "set_prompt":
		return replyFor(s.SetPrompt(kind, in.Prompt))
	case "generate":
		return replyFor(s.Generate(ctx, kind))
	case "copy":
		return replyFor(s.Copy(ctx, kind))
	case "download":
		return replyFor(s.Download(ctx, kind))
	case "share":
		target, err := action.ParseTarget(in.Target)
		if err != nil {
			return wsError("invalid_argument", err.Error()), true
		}
		return replyFor(s.Share(ctx, kind, target))
	default:
		return wsError("invalid_argument", "unsupported type: "+msgType), true
	}
}

// replyFor maps a command error to an error reply. Errors already reported
// to the user through a notice get no reply.
func replyFor(err error) (sessionWSOutbound, bool) {
	switch {
	case err == nil, errors.Is(err, generation.ErrEmptyPrompt):
		return sessionWSOutbound{}, false
	case errors.Is(err, generation.ErrRequestPending):
		return wsError("pending", err.Error()), true
	case errors.Is(err, generation.ErrInputLocked):
		return wsError("input_locked", err.Error()), true
	case errors.Is(err, generation.ErrUnknownLanguage), errors.Is(err, generation.ErrLanguageUnsupported):
		return wsError("invalid_argument", err.Error()), true
	case errors.Is(err, action.ErrNoArtifact):
		return wsError("no_artifact", err.Error()), true
	case errors.Is(err, action.ErrUnsupported):
		return wsError("unsupported", err.Error()), true
	case errors.Is(err, session.ErrClosed), errors.Is(err, generation.ErrClosed):
		return wsError("closed", err.Error()), true
	default:
		return wsError("internal", err.Error()), true
	}
}

func wsError(code, message string) sessionWSOutbound {
	return sessionWSOutbound{
		Event: session.Event{Type: "error", Message: message},
		Code:  code,
	}
}

func pushSessionWS(writeCh chan sessionWSOutbound, out sessionWSOutbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
