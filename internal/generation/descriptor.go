package generation

import "fmt"

// Descriptor captures everything that differs between the generator kinds.
// The dispatcher is written once against it.
type Descriptor struct {
	Kind     Kind
	Endpoint string
	// Field names the response property that carries the artifact.
	Field string
	Body  func(Request) map[string]any
	Build func(req Request, value string) Artifact
}

var (
	ImageDescriptor = Descriptor{
		Kind:     KindImage,
		Endpoint: EndpointImage,
		Field:    "imageUrl",
		Body:     promptBody,
		Build: func(_ Request, url string) Artifact {
			return ImageArtifact{URL: url}
		},
	}

	TextDescriptor = Descriptor{
		Kind:     KindText,
		Endpoint: EndpointText,
		Field:    "text",
		Body:     promptBody,
		Build: func(_ Request, body string) Artifact {
			return TextArtifact{Body: body}
		},
	}

	CodeDescriptor = Descriptor{
		Kind:     KindCode,
		Endpoint: EndpointCode,
		Field:    "code",
		Body: func(r Request) map[string]any {
			return map[string]any{
				"prompt":   r.Prompt(),
				"language": r.Options().Language,
			}
		},
		Build: func(r Request, body string) Artifact {
			return CodeArtifact{Body: body, Language: r.Options().Language}
		},
	}
)

func DescriptorFor(kind Kind) (Descriptor, bool) {
	switch kind {
	case KindImage:
		return ImageDescriptor, true
	case KindText:
		return TextDescriptor, true
	case KindCode:
		return CodeDescriptor, true
	default:
		return Descriptor{}, false
	}
}

// FailureMessage is the generic message used when no service text is available.
func (d Descriptor) FailureMessage() string {
	return "Failed to generate " + d.Kind.String()
}

func (d Descriptor) SuccessMessage() string {
	return d.Kind.Title() + " generated"
}

func (d Descriptor) decode(req Request, payload Payload) (Artifact, error) {
	if msg, ok := payload.ErrorMessage(); ok {
		return nil, &ApplicationError{Kind: d.Kind, Message: msg}
	}
	value, ok := payload.stringField(d.Field)
	if !ok {
		return nil, &TransportError{
			Kind: d.Kind,
			Err:  fmt.Errorf("%w: no %q in response", ErrMalformedResponse, d.Field),
		}
	}
	return d.Build(req, value), nil
}

func promptBody(r Request) map[string]any {
	return map[string]any{"prompt": r.Prompt()}
}
