// Package generation implements the request lifecycle shared by the image,
// text and code generators.
package generation

import (
	"context"
	"fmt"
)

// Generator is one isolated instance: a prompt input, its dispatcher and the
// result the dispatcher holds. Instances never share state.
type Generator struct {
	input      *PromptInput
	dispatcher *Dispatcher
}

func New(kind Kind, invoker Invoker, notifier Notifier) (*Generator, error) {
	desc, ok := DescriptorFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown generator kind %d", int(kind))
	}
	if invoker == nil {
		return nil, fmt.Errorf("invoker is required")
	}
	d := NewDispatcher(desc, invoker, notifier)
	return &Generator{
		input: newPromptInput(kind, func() bool {
			return d.State().Pending()
		}),
		dispatcher: d,
	}, nil
}

func (g *Generator) Kind() Kind { return g.dispatcher.Kind() }

func (g *Generator) Input() *PromptInput { return g.input }

func (g *Generator) State() State { return g.dispatcher.State() }

// Result is the artifact of the most recent successful request, if the
// generator is still resting in Succeeded.
func (g *Generator) Result() (Artifact, bool) {
	return g.dispatcher.State().Result()
}

// Generate submits the current prompt and waits for the outcome.
func (g *Generator) Generate(ctx context.Context) (State, error) {
	return g.dispatcher.Submit(ctx, g.input.Text(), g.input.Options())
}

// Start submits the current prompt without waiting.
func (g *Generator) Start(ctx context.Context) (<-chan Attempt, error) {
	return g.dispatcher.Start(ctx, g.input.Text(), g.input.Options())
}

func (g *Generator) Close() {
	g.dispatcher.Close()
}
