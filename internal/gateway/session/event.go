package session

import (
	"contentgen/internal/generation"
)

// Outbound event types.
const (
	EventState     = "state"
	EventNotice    = "notice"
	EventClipboard = "clipboard"
	EventDownload  = "download"
	EventOpen      = "open"
)

// Event is one message for the browser. Platform events ask the browser to
// perform the effect.
type Event struct {
	Type         string      `json:"type"`
	Kind         string      `json:"kind,omitempty"`
	Phase        string      `json:"phase,omitempty"`
	Result       *ResultView `json:"result,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	InputLocked  *bool       `json:"inputLocked,omitempty"`
	Level        string      `json:"level,omitempty"`
	Message      string      `json:"message,omitempty"`
	Text         string      `json:"text,omitempty"`
	URL          string      `json:"url,omitempty"`
	Filename     string      `json:"filename,omitempty"`
}

type ResultView struct {
	Kind     string `json:"kind"`
	URL      string `json:"url,omitempty"`
	Body     string `json:"body,omitempty"`
	Language string `json:"language,omitempty"`
}

func stateEvent(kind generation.Kind, st generation.State) Event {
	locked := st.Pending()
	ev := Event{
		Type:        EventState,
		Kind:        kind.String(),
		Phase:       st.Phase().String(),
		InputLocked: &locked,
	}
	if a, ok := st.Result(); ok {
		ev.Result = resultView(a)
	}
	if msg, ok := st.ErrorMessage(); ok {
		ev.ErrorMessage = msg
	}
	return ev
}

func resultView(a generation.Artifact) *ResultView {
	v := &ResultView{Kind: a.Kind().String()}
	switch x := a.(type) {
	case generation.ImageArtifact:
		v.URL = x.URL
	case generation.TextArtifact:
		v.Body = x.Body
	case generation.CodeArtifact:
		v.Body = x.Body
		v.Language = x.Language
	}
	return v
}

func noticeEvent(n generation.Notice) Event {
	return Event{
		Type:    EventNotice,
		Kind:    n.Kind.String(),
		Level:   string(n.Level),
		Message: n.Message,
	}
}
