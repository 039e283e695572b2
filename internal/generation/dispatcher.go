package generation

import (
	"context"
	"errors"
	"log"
	"sync"
)

var errAttemptAborted = errors.New("attempt aborted before a response was handled")

// Attempt is the outcome of one dispatched request.
type Attempt struct {
	State State
	Err   error
}

// Dispatcher is the only writer of a generator's State. It runs at most one
// request at a time and never queues: a submit while Pending is rejected.
//
// A dispatched request cannot be cancelled and has no timeout of its own. If
// the remote call hangs, the instance stays Pending.
type Dispatcher struct {
	desc     Descriptor
	invoker  Invoker
	notifier Notifier
	observer StateObserver

	// emitMu orders state observations and outcome notices across attempts.
	emitMu sync.Mutex
	mu     sync.Mutex
	state  State
	closed bool
}

// NewDispatcher builds a dispatcher for desc. If notifier also implements
// StateObserver it is told about every state change as well.
func NewDispatcher(desc Descriptor, invoker Invoker, notifier Notifier) *Dispatcher {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	observer, _ := notifier.(StateObserver)
	return &Dispatcher{
		desc:     desc,
		invoker:  invoker,
		notifier: notifier,
		observer: observer,
		state:    idleState(),
	}
}

func (d *Dispatcher) Kind() Kind { return d.desc.Kind }

func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Start validates the prompt and, if it is usable, moves to Pending before
// returning. The request itself runs in the background; the returned channel
// yields its outcome once. ctx is used for values only: the request outlives it.
func (d *Dispatcher) Start(ctx context.Context, prompt string, opts Options) (<-chan Attempt, error) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, ErrClosed
	}
	req, err := NewRequest(d.desc.Kind, prompt, opts)
	if err != nil {
		d.mu.Unlock()
		d.notify(LevelError, NoticeEmptyPrompt)
		return nil, err
	}
	if d.state.Pending() {
		d.mu.Unlock()
		return nil, ErrRequestPending
	}
	d.state = pendingState()
	d.mu.Unlock()
	d.observe(pendingState())

	done := make(chan Attempt, 1)
	go func() {
		done <- d.run(context.WithoutCancel(ctx), req)
		close(done)
	}()
	return done, nil
}

// Submit runs one request and waits for its resting state. If ctx ends first,
// Submit stops waiting and returns ctx.Err(); the request still completes.
func (d *Dispatcher) Submit(ctx context.Context, prompt string, opts Options) (State, error) {
	done, err := d.Start(ctx, prompt, opts)
	if err != nil {
		return d.State(), err
	}
	select {
	case att := <-done:
		return att.State, att.Err
	case <-ctx.Done():
		return d.State(), ctx.Err()
	}
}

// Close discards the instance: further submits fail with ErrClosed. An
// in-flight request still runs to completion.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

func (d *Dispatcher) run(ctx context.Context, req Request) (out Attempt) {
	out = Attempt{
		State: failedState(d.desc.FailureMessage()),
		Err:   &TransportError{Kind: req.Kind(), Err: errAttemptAborted},
	}
	// Pending is cleared here whatever happened above, including a panic.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("generate %s: recovered: %v", req.Kind(), r)
		}
		d.finish(out.State)
	}()

	artifact, err := d.invoke(ctx, req)
	if err != nil {
		msg := d.desc.FailureMessage()
		var aErr *ApplicationError
		if errors.As(err, &aErr) {
			msg = aErr.Message
		}
		out = Attempt{State: failedState(msg), Err: err}
		return out
	}
	out = Attempt{State: succeededState(artifact)}
	return out
}

func (d *Dispatcher) invoke(ctx context.Context, req Request) (Artifact, error) {
	payload, err := d.invoker.Invoke(ctx, d.desc.Endpoint, d.desc.Body(req))
	if err != nil {
		log.Printf("generate %s failed: %v", req.Kind(), err)
		return nil, &TransportError{Kind: req.Kind(), Err: err}
	}
	artifact, err := d.desc.decode(req, payload)
	if err != nil && IsTransportError(err) {
		log.Printf("generate %s failed: %v", req.Kind(), err)
	}
	return artifact, err
}

// finish records the resting state, then emits its notice.
func (d *Dispatcher) finish(s State) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
	d.observe(s)
	if _, ok := s.Result(); ok {
		d.notify(LevelSuccess, d.desc.SuccessMessage())
		return
	}
	msg, _ := s.ErrorMessage()
	d.notify(LevelError, msg)
}

// observe runs on the goroutine that changed the state, outside the lock, so
// an observer may read the dispatcher.
func (d *Dispatcher) observe(s State) {
	if d.observer != nil {
		d.observer.ObserveState(d.desc.Kind, s)
	}
}

func (d *Dispatcher) notify(level Level, message string) {
	d.notifier.Notify(Notice{Kind: d.desc.Kind, Level: level, Message: message})
}
