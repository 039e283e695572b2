package llm

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"
)

func TestStripCodeFences(t *testing.T) {
	tests := map[string]struct {
		in, want string
	}{
		"plain":        {in: "  x := 1  ", want: "x := 1"},
		"fenced":       {in: "```go\nfmt.Println(1)\n```", want: "fmt.Println(1)"},
		"untagged":     {in: "```\na\nb\n```\n", want: "a\nb"},
		"csharp tag":   {in: "```c#\nvar x = 1;\n```", want: "var x = 1;"},
		"inner fences": {in: "see ```x``` here", want: "see ```x``` here"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestCodePromptUsesLanguageLabel(t *testing.T) {
	assert.Contains(t, codePrompt("sort a list", "csharp"), "Write C# code")
	assert.Contains(t, codePrompt("sort a list", "zig"), "Write zig code")
}

func TestFakeBackendIsDeterministic(t *testing.T) {
	f := NewFakeBackend()
	ctx := context.Background()

	a, err := f.GenerateImage(ctx, "a fox")
	require.NoError(t, err)
	b, err := f.GenerateImage(ctx, "a fox")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "image/png", a.MIMEType)
	_, err = png.Decode(bytes.NewReader(a.Data))
	require.NoError(t, err)

	code, err := f.GenerateCode(ctx, "sort", "rust")
	require.NoError(t, err)
	assert.Contains(t, code, "rust")
}

func TestMapErrorMarksRateLimit(t *testing.T) {
	err := mapError(genai.APIError{Code: 429, Message: "quota"}, "m")
	assert.ErrorIs(t, err, ErrRateLimited)

	err = mapError(genai.APIError{Code: 500, Message: "boom"}, "m")
	assert.NotErrorIs(t, err, ErrRateLimited)

	plain := errors.New("dial tcp")
	assert.Equal(t, plain, mapError(plain, "m"))
}

type countingBackend struct {
	FakeBackend
	calls  int
	closes int
	err    error
}

func (c *countingBackend) GenerateText(ctx context.Context, prompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.FakeBackend.GenerateText(ctx, prompt)
}

func (c *countingBackend) Close() error {
	c.closes++
	return nil
}

func TestLoggingPassesCallsThrough(t *testing.T) {
	inner := &countingBackend{}
	b := Wrap(inner, Logging())

	out, err := b.GenerateText(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Generated text for: p", out)
	assert.Equal(t, "FakeLLM", b.Name())

	inner.err = errors.New("quota")
	_, err = b.GenerateText(context.Background(), "p")
	require.EqualError(t, err, "quota")
	assert.Equal(t, 2, inner.calls)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.Equal(t, 2, inner.closes)
}
