package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"contentgen/internal/generation"
)

var tracer = otel.Tracer("functions-client")

type ClientConfig struct {
	BaseURL string
	// APIKey is sent as a bearer token and as the apikey header.
	APIKey     string
	HTTPClient connect.HTTPClient
}

// Client calls the generation service. It satisfies generation.Invoker.
type Client struct {
	apiKey  string
	clients map[string]*connect.Client[map[string]any, generation.Payload]
}

var _ generation.Invoker = (*Client)(nil)

func NewClient(cfg ClientConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("functions base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No timeout: a dispatched request runs until the service answers.
		httpClient = http.DefaultClient
	}
	c := &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		clients: make(map[string]*connect.Client[map[string]any, generation.Payload], len(Endpoints)),
	}
	for _, ep := range Endpoints {
		c.clients[ep] = connect.NewClient[map[string]any, generation.Payload](
			errorBodyClient{next: httpClient},
			base+Procedure(ep),
			connect.WithCodec(jsonCodec{}),
		)
	}
	return c, nil
}

// Invoke posts body to endpoint. A non-2xx reply whose JSON body carries an
// error field is returned as that payload; any other failure to obtain a
// decoded body is returned as an error.
func (c *Client) Invoke(ctx context.Context, endpoint string, body map[string]any) (generation.Payload, error) {
	ctx, span := tracer.Start(ctx, "functions_invoke")
	defer span.End()
	span.SetAttributes(attribute.String("functions.endpoint", endpoint))

	cli, ok := c.clients[endpoint]
	if !ok {
		err := fmt.Errorf("unknown endpoint %q", endpoint)
		span.RecordError(err)
		return nil, err
	}
	req := connect.NewRequest(&body)
	if c.apiKey != "" {
		req.Header().Set("Authorization", "Bearer "+c.apiKey)
		req.Header().Set("apikey", c.apiKey)
	}
	failed := &errorBody{}
	resp, err := cli.CallUnary(context.WithValue(ctx, errorBodyKey{}, failed), req)
	if err != nil {
		if p, ok := failed.payload(); ok {
			span.SetAttributes(attribute.Int("functions.status", failed.status))
			return p, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("invoke %s: %w", endpoint, err)
	}
	if resp.Msg == nil || *resp.Msg == nil {
		return generation.Payload{}, nil
	}
	return *resp.Msg, nil
}

const maxErrorBody = 64 << 10

type errorBodyKey struct{}

// errorBody holds the body of a non-2xx reply for the call that owns it.
type errorBody struct {
	status int
	body   []byte
}

// payload reports the body as a Payload if it is JSON with a non-blank error.
func (e *errorBody) payload() (generation.Payload, bool) {
	if len(e.body) == 0 {
		return nil, false
	}
	var p generation.Payload
	if err := json.Unmarshal(e.body, &p); err != nil {
		return nil, false
	}
	if _, ok := p.ErrorMessage(); !ok {
		return nil, false
	}
	return p, true
}

// errorBodyClient copies non-2xx bodies into the call's errorBody before
// connect reads them.
type errorBodyClient struct {
	next connect.HTTPClient
}

func (c errorBodyClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.next.Do(req)
	if err != nil || resp.StatusCode/100 == 2 {
		return resp, err
	}
	capture, ok := req.Context().Value(errorBodyKey{}).(*errorBody)
	if !ok {
		return resp, nil
	}
	body, rerr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
	capture.status = resp.StatusCode
	if rerr == nil {
		capture.body = body
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
