// Package functions is the wire contract of the generation service and both
// of its ends: a Connect client used as the dispatcher's Invoker and the
// Connect handlers that serve it.
package functions

import "contentgen/internal/generation"

const ServiceName = "contentgen.functions.v1.FunctionsService"

// Endpoints served, in registration order.
var Endpoints = []string{
	generation.EndpointImage,
	generation.EndpointText,
	generation.EndpointCode,
}

// Procedure is the HTTP path of an endpoint.
func Procedure(endpoint string) string {
	return "/" + ServiceName + "/" + endpoint
}

// MessagePromptRequired is returned in the error field for a blank prompt.
const MessagePromptRequired = "Prompt is required"

type GenerateRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language,omitempty"`
}

// GenerateResponse carries exactly one of the result fields or Error.
type GenerateResponse struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Text     string `json:"text,omitempty"`
	Code     string `json:"code,omitempty"`
	Error    string `json:"error,omitempty"`
}
