package llm

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
)

// FakeBackend returns deterministic output for offline runs and tests.
type FakeBackend struct{}

func NewFakeBackend() *FakeBackend { return &FakeBackend{} }

func (f *FakeBackend) Name() string { return "FakeLLM" }
func (f *FakeBackend) Close() error { return nil }

func (f *FakeBackend) GenerateText(_ context.Context, prompt string) (string, error) {
	return "Generated text for: " + prompt, nil
}

func (f *FakeBackend) GenerateCode(_ context.Context, prompt, language string) (string, error) {
	return fmt.Sprintf("// %s\n// %s\n", language, prompt), nil
}

// GenerateImage renders a small square whose colour is derived from prompt.
func (f *FakeBackend) GenerateImage(_ context.Context, prompt string) (Image, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	sum := h.Sum32()
	fill := color.RGBA{R: uint8(sum >> 16), G: uint8(sum >> 8), B: uint8(sum), A: 0xff}

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Image{}, err
	}
	return Image{Data: buf.Bytes(), MIMEType: "image/png"}, nil
}
