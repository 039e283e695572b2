package generation

import (
	"context"
	"encoding/json"
	"strings"
)

// Remote endpoint names, one per kind.
const (
	EndpointImage = "generate-image"
	EndpointText  = "generate-text"
	EndpointCode  = "generate-code"
)

// Payload is a decoded response body of a remote function.
type Payload map[string]json.RawMessage

// Invoker performs one call to a named remote function. Any returned error is
// treated as a transport failure.
type Invoker interface {
	Invoke(ctx context.Context, endpoint string, body map[string]any) (Payload, error)
}

type InvokerFunc func(ctx context.Context, endpoint string, body map[string]any) (Payload, error)

func (f InvokerFunc) Invoke(ctx context.Context, endpoint string, body map[string]any) (Payload, error) {
	return f(ctx, endpoint, body)
}

// ErrorMessage reports the service-provided error, if any. Both a plain string
// and an object with a message field are accepted.
func (p Payload) ErrorMessage() (string, bool) {
	raw, ok := p["error"]
	if !ok {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		msg = strings.TrimSpace(msg)
		return msg, msg != ""
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		msg = strings.TrimSpace(obj.Message)
		return msg, msg != ""
	}
	return "", false
}

func (p Payload) stringField(name string) (string, bool) {
	raw, ok := p[name]
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, strings.TrimSpace(v) != ""
}
