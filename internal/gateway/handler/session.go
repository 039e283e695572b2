package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"contentgen/internal/action"
	"contentgen/internal/gateway/session"
	"contentgen/internal/generation"
)

// SessionHandler serves session lifecycle endpoints and the session
// websocket.
type SessionHandler struct {
	registry *session.Registry
}

func NewSessionHandler(registry *session.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

// Register mounts the session routes on mux.
func (h *SessionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /sessions", h.HandleCreate)
	mux.HandleFunc("GET /sessions/{id}", h.HandleGet)
	mux.HandleFunc("DELETE /sessions/{id}", h.HandleDelete)
	mux.HandleFunc("GET /sessions/{id}/ws", h.HandleWS)
}

type languageView struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

type generatorView struct {
	Kind         string          `json:"kind"`
	Download     bool            `json:"download"`
	ShareTargets []action.Target `json:"shareTargets"`
}

type createSessionResponse struct {
	ID              string          `json:"id"`
	Generators      []generatorView `json:"generators"`
	Languages       []languageView  `json:"languages"`
	DefaultLanguage string          `json:"defaultLanguage"`
}

type getSessionResponse struct {
	ID     string          `json:"id"`
	States []session.Event `json:"states"`
}

func (h *SessionHandler) HandleCreate(w http.ResponseWriter, _ *http.Request) {
	s, err := h.registry.Create()
	if err != nil {
		log.Printf("session create failed: %v", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	out := createSessionResponse{ID: s.ID(), DefaultLanguage: generation.DefaultLanguage}
	for _, kind := range generation.Kinds {
		out.Generators = append(out.Generators, generatorView{
			Kind:         kind.String(),
			Download:     action.SupportsDownload(kind),
			ShareTargets: action.ShareTargets(kind),
		})
	}
	for _, lang := range generation.Languages {
		out.Languages = append(out.Languages, languageView{Tag: lang.Tag, Label: lang.Label})
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, getSessionResponse{ID: s.ID(), States: s.Snapshot()})
}

func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.registry.Remove(strings.TrimSpace(r.PathValue("id"))) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return nil, false
	}
	s, ok := h.registry.Get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response failed: %v", err)
	}
}
