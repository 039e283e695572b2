// Package llm produces the text, code and images served by the functions
// service.
package llm

import (
	"context"
	"errors"
)

var (
	ErrEmptyResponse = errors.New("llm: empty response from model")
	ErrRateLimited   = errors.New("llm: rate limited")
)

// Image is raw image output of a model.
type Image struct {
	Data     []byte
	MIMEType string
}

type Backend interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateCode(ctx context.Context, prompt, language string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (Image, error)
	Close() error
}
