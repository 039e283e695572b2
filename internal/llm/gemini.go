package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image"
)

type GeminiConfig struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

// GeminiBackend is a thin wrapper around the official genai client.
type GeminiBackend struct {
	cli        *genai.Client
	textModel  string
	imageModel string
}

func NewGeminiBackend(ctx context.Context, cfg GeminiConfig) (*GeminiBackend, error) {
	// An empty key lets the SDK fall back to GEMINI_API_KEY / GOOGLE_API_KEY.
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	b := &GeminiBackend{cli: cli, textModel: cfg.TextModel, imageModel: cfg.ImageModel}
	if b.textModel == "" {
		b.textModel = DefaultTextModel
	}
	if b.imageModel == "" {
		b.imageModel = DefaultImageModel
	}
	return b, nil
}

func (g *GeminiBackend) Name() string { return "Gemini:" + g.textModel + "+" + g.imageModel }
func (g *GeminiBackend) Close() error { return nil }

func (g *GeminiBackend) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generateText(ctx, textPrompt(prompt))
}

func (g *GeminiBackend) GenerateCode(ctx context.Context, prompt, language string) (string, error) {
	out, err := g.generateText(ctx, codePrompt(prompt, language))
	if err != nil {
		return "", err
	}
	return StripCodeFences(out), nil
}

func (g *GeminiBackend) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.imageModel,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	)
	if err != nil {
		return Image{}, mapError(err, g.imageModel)
	}
	if resp == nil {
		return Image{}, ErrEmptyResponse
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return Image{Data: part.InlineData.Data, MIMEType: mime}, nil
			}
		}
	}
	return Image{}, ErrEmptyResponse
}

func (g *GeminiBackend) generateText(ctx context.Context, full string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.textModel,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: full}}}},
		nil,
	)
	if err != nil {
		return "", mapError(err, g.textModel)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// mapError marks quota errors so callers can tell them apart.
func mapError(err error, model string) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED" {
		return fmt.Errorf("%w (%s): %v", ErrRateLimited, model, err)
	}
	return err
}
