package llm

import (
	"context"
	"log"
	"time"
)

// Middleware decorates a Backend with a cross-cutting concern.
type Middleware func(Backend) Backend

// Wrap applies middlewares in left-to-right order: Wrap(inner, A, B) => A(B(inner)).
func Wrap(inner Backend, mws ...Middleware) Backend {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// Logging logs the duration and outcome of every call.
func Logging() Middleware {
	return func(next Backend) Backend {
		return &logged{next: next}
	}
}

type logged struct{ next Backend }

func (c *logged) Name() string { return c.next.Name() }
func (c *logged) Close() error { return c.next.Close() }

func (c *logged) GenerateText(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := c.next.GenerateText(ctx, prompt)
	c.log("text", len(prompt), start, err)
	return out, err
}

func (c *logged) GenerateCode(ctx context.Context, prompt, language string) (string, error) {
	start := time.Now()
	out, err := c.next.GenerateCode(ctx, prompt, language)
	c.log("code/"+language, len(prompt), start, err)
	return out, err
}

func (c *logged) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	start := time.Now()
	out, err := c.next.GenerateImage(ctx, prompt)
	c.log("image", len(prompt), start, err)
	return out, err
}

func (c *logged) log(kind string, promptLen int, start time.Time, err error) {
	if err != nil {
		log.Printf("LLM %s (%s): prompt=%dB failed after %v: %v", kind, c.next.Name(), promptLen, time.Since(start), err)
		return
	}
	log.Printf("LLM %s (%s): prompt=%dB ok in %v", kind, c.next.Name(), promptLen, time.Since(start))
}
