package functions

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"contentgen/internal/generation"
	"contentgen/internal/imagestore"
	"contentgen/internal/llm"
)

const (
	messageRateLimited = "Rate limit exceeded, please try again later"
	messageNoContent   = "The model returned no content"
)

// Handler serves the three generation endpoints. Application failures are
// answered with 200 and an error field; only protocol problems become
// Connect errors.
type Handler struct {
	backend llm.Backend
	images  imagestore.Store
}

func NewHandler(backend llm.Backend, images imagestore.Store) *Handler {
	return &Handler{backend: backend, images: images}
}

// Mount registers every endpoint on mux.
func (h *Handler) Mount(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux.Handle(Procedure(generation.EndpointImage), connect.NewUnaryHandler(Procedure(generation.EndpointImage), h.GenerateImage, opts...))
	mux.Handle(Procedure(generation.EndpointText), connect.NewUnaryHandler(Procedure(generation.EndpointText), h.GenerateText, opts...))
	mux.Handle(Procedure(generation.EndpointCode), connect.NewUnaryHandler(Procedure(generation.EndpointCode), h.GenerateCode, opts...))
}

func (h *Handler) GenerateImage(ctx context.Context, req *connect.Request[GenerateRequest]) (*connect.Response[GenerateResponse], error) {
	prompt, ok := promptOf(req)
	if !ok {
		return reply(GenerateResponse{Error: MessagePromptRequired}), nil
	}
	img, err := h.backend.GenerateImage(ctx, prompt)
	if err != nil {
		return reply(GenerateResponse{Error: failureMessage(generation.KindImage, err)}), nil
	}
	key := imagestore.NewKey(img.MIMEType)
	if err := h.images.Put(ctx, key, img.Data, img.MIMEType); err != nil {
		log.Printf("functions store %s failed: %v", key, err)
		return reply(GenerateResponse{Error: generation.ImageDescriptor.FailureMessage()}), nil
	}
	url, err := h.images.URL(ctx, key)
	if err != nil {
		log.Printf("functions url %s failed: %v", key, err)
		return reply(GenerateResponse{Error: generation.ImageDescriptor.FailureMessage()}), nil
	}
	return reply(GenerateResponse{ImageURL: url}), nil
}

func (h *Handler) GenerateText(ctx context.Context, req *connect.Request[GenerateRequest]) (*connect.Response[GenerateResponse], error) {
	prompt, ok := promptOf(req)
	if !ok {
		return reply(GenerateResponse{Error: MessagePromptRequired}), nil
	}
	text, err := h.backend.GenerateText(ctx, prompt)
	if err != nil {
		return reply(GenerateResponse{Error: failureMessage(generation.KindText, err)}), nil
	}
	return reply(GenerateResponse{Text: text}), nil
}

func (h *Handler) GenerateCode(ctx context.Context, req *connect.Request[GenerateRequest]) (*connect.Response[GenerateResponse], error) {
	prompt, ok := promptOf(req)
	if !ok {
		return reply(GenerateResponse{Error: MessagePromptRequired}), nil
	}
	language := strings.ToLower(strings.TrimSpace(req.Msg.Language))
	if language == "" {
		language = generation.DefaultLanguage
	}
	code, err := h.backend.GenerateCode(ctx, prompt, language)
	if err != nil {
		return reply(GenerateResponse{Error: failureMessage(generation.KindCode, err)}), nil
	}
	code = llm.StripCodeFences(code)
	if code == "" {
		return reply(GenerateResponse{Error: messageNoContent}), nil
	}
	return reply(GenerateResponse{Code: code}), nil
}

func promptOf(req *connect.Request[GenerateRequest]) (string, bool) {
	if req.Msg == nil {
		return "", false
	}
	p := strings.TrimSpace(req.Msg.Prompt)
	return p, p != ""
}

func reply(msg GenerateResponse) *connect.Response[GenerateResponse] {
	return connect.NewResponse(&msg)
}

func failureMessage(kind generation.Kind, err error) string {
	log.Printf("functions generate %s failed: %v", kind, err)
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return messageRateLimited
	case errors.Is(err, llm.ErrEmptyResponse):
		return messageNoContent
	default:
		return "Failed to generate " + kind.String()
	}
}
