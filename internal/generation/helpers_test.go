package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type call struct {
	Endpoint string
	Body     map[string]any
}

// fakeInvoker records every call and answers through InvokeFunc.
type fakeInvoker struct {
	InvokeFunc func(ctx context.Context, endpoint string, body map[string]any) (Payload, error)

	mu    sync.Mutex
	calls []call
}

func (f *fakeInvoker) Invoke(ctx context.Context, endpoint string, body map[string]any) (Payload, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{Endpoint: endpoint, Body: body})
	f.mu.Unlock()
	if f.InvokeFunc != nil {
		return f.InvokeFunc(ctx, endpoint, body)
	}
	return Payload{}, nil
}

func (f *fakeInvoker) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func respond(fields map[string]any) func(context.Context, string, map[string]any) (Payload, error) {
	return func(context.Context, string, map[string]any) (Payload, error) {
		return payloadOf(fields), nil
	}
}

func payloadOf(fields map[string]any) Payload {
	p := Payload{}
	for k, v := range fields {
		raw, _ := json.Marshal(v)
		p[k] = raw
	}
	return p
}

type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) Notify(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

func (r *noticeRecorder) All() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// eventLog records states and notices in the order they are emitted.
type eventLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *eventLog) Notify(n Notice) {
	l.add(fmt.Sprintf("notice %s %s %s", n.Kind, n.Level, n.Message))
}

func (l *eventLog) ObserveState(kind Kind, s State) {
	l.add(fmt.Sprintf("state %s %s", kind, s.Phase()))
}

func (l *eventLog) add(entry string) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

func (l *eventLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}
