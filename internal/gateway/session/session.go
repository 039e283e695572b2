// Package session hosts one browser tab's generators. Each session owns an
// Image, a Text and a Code generator; nothing is shared between sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"contentgen/internal/action"
	"contentgen/internal/generation"
)

var (
	ErrClosed      = errors.New("session closed")
	ErrUnknownKind = errors.New("unknown generator kind")
)

type Session struct {
	id         string
	generators map[generation.Kind]*generation.Generator
	panels     map[generation.Kind]*action.Panel

	mu     sync.Mutex
	closed bool
	subs   map[chan Event]struct{}
}

func New(id string, invoker generation.Invoker) (*Session, error) {
	s := &Session{
		id:         id,
		generators: make(map[generation.Kind]*generation.Generator, len(generation.Kinds)),
		panels:     make(map[generation.Kind]*action.Panel, len(generation.Kinds)),
		subs:       make(map[chan Event]struct{}),
	}
	notifier := sessionNotifier{s}
	platform := browserPlatform{publish: s.publish}

	for _, kind := range generation.Kinds {
		g, err := generation.New(kind, invoker, notifier)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("new %s generator: %w", kind, err)
		}
		s.generators[kind] = g
		s.panels[kind] = action.NewPanel(g, platform, notifier)
	}
	return s, nil
}

func (s *Session) ID() string { return s.id }

// sessionNotifier publishes generator states and notices on the session's
// single event stream, in the order the generators emit them.
type sessionNotifier struct {
	s *Session
}

func (n sessionNotifier) Notify(notice generation.Notice) {
	n.s.publish(noticeEvent(notice))
}

func (n sessionNotifier) ObserveState(kind generation.Kind, st generation.State) {
	n.s.publish(stateEvent(kind, st))
}

// Subscribe streams events of this session, starting with the state of every
// generator. A slow reader loses the oldest events first.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)
	s.mu.Lock()
	for _, ev := range s.snapshotLocked() {
		pushEvent(ch, ev)
	}
	if s.closed {
		close(ch)
		s.mu.Unlock()
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
}

// Snapshot returns one state event per generator, in display order.
func (s *Session) Snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() []Event {
	out := make([]Event, 0, len(generation.Kinds))
	for _, kind := range generation.Kinds {
		if g, ok := s.generators[kind]; ok {
			out = append(out, stateEvent(kind, g.State()))
		}
	}
	return out
}

func (s *Session) generator(kind generation.Kind) (*generation.Generator, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	g, ok := s.generators[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return g, nil
}

func (s *Session) SetPrompt(kind generation.Kind, prompt string) error {
	g, err := s.generator(kind)
	if err != nil {
		return err
	}
	return g.Input().SetText(prompt)
}

// SetLanguage selects the code generator's target language.
func (s *Session) SetLanguage(language string) error {
	g, err := s.generator(generation.KindCode)
	if err != nil {
		return err
	}
	return g.Input().SetLanguage(language)
}

// Generate submits kind's current prompt and returns once the generator is
// Pending; the outcome arrives as events.
func (s *Session) Generate(ctx context.Context, kind generation.Kind) error {
	g, err := s.generator(kind)
	if err != nil {
		return err
	}
	_, err = g.Start(ctx)
	return err
}

func (s *Session) Copy(ctx context.Context, kind generation.Kind) error {
	p, err := s.panel(kind)
	if err != nil {
		return err
	}
	return p.Copy(ctx)
}

func (s *Session) Download(ctx context.Context, kind generation.Kind) error {
	p, err := s.panel(kind)
	if err != nil {
		return err
	}
	return p.Download(ctx)
}

func (s *Session) Share(ctx context.Context, kind generation.Kind, target action.Target) error {
	p, err := s.panel(kind)
	if err != nil {
		return err
	}
	return p.Share(ctx, target)
}

func (s *Session) panel(kind generation.Kind) (*action.Panel, error) {
	if _, err := s.generator(kind); err != nil {
		return nil, err
	}
	return s.panels[kind], nil
}

// Close unmounts the session: its generators' state is discarded and every
// subscriber is released. In-flight requests finish unobserved.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	for _, g := range s.generators {
		g.Close()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

func (s *Session) publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		pushEvent(ch, ev)
	}
}

// pushEvent never blocks; when the buffer is full the oldest event is dropped.
func pushEvent(ch chan Event, ev Event) {
	select {
	case ch <- ev:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- ev:
	default:
	}
}
