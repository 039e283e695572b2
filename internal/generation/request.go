package generation

import "strings"

// Options carries kind-specific request options.
type Options struct {
	// Language is the target language tag; only the code generator uses it.
	Language string
}

// Request is an immutable generation request. The zero value is not valid;
// build one with NewRequest.
type Request struct {
	kind    Kind
	prompt  string
	options Options
}

// NewRequest trims prompt and rejects it when nothing is left.
func NewRequest(kind Kind, prompt string, opts Options) (Request, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Request{}, ErrEmptyPrompt
	}
	if kind != KindCode {
		opts = Options{}
	} else if strings.TrimSpace(opts.Language) == "" {
		opts.Language = DefaultLanguage
	} else {
		opts.Language = strings.ToLower(strings.TrimSpace(opts.Language))
	}
	return Request{kind: kind, prompt: prompt, options: opts}, nil
}

func (r Request) Kind() Kind       { return r.kind }
func (r Request) Prompt() string   { return r.prompt }
func (r Request) Options() Options { return r.options }
