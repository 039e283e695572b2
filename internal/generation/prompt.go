package generation

import (
	"strings"
	"sync"
)

// PromptInput mirrors what the user typed. It performs no validation beyond
// refusing edits while the owning generator is Pending.
type PromptInput struct {
	kind   Kind
	locked func() bool

	mu       sync.RWMutex
	text     string
	language string
}

func newPromptInput(kind Kind, locked func() bool) *PromptInput {
	p := &PromptInput{kind: kind, locked: locked}
	if kind == KindCode {
		p.language = DefaultLanguage
	}
	return p
}

func (p *PromptInput) Text() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.text
}

// Language is the selected language tag; empty for kinds other than code.
func (p *PromptInput) Language() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.language
}

// Locked reports whether the input is read-only right now.
func (p *PromptInput) Locked() bool {
	return p.locked != nil && p.locked()
}

func (p *PromptInput) SetText(text string) error {
	if p.Locked() {
		return ErrInputLocked
	}
	p.mu.Lock()
	p.text = text
	p.mu.Unlock()
	return nil
}

func (p *PromptInput) SetLanguage(tag string) error {
	if p.kind != KindCode {
		return ErrLanguageUnsupported
	}
	if p.Locked() {
		return ErrInputLocked
	}
	lang, ok := LookupLanguage(tag)
	if !ok {
		return ErrUnknownLanguage
	}
	p.mu.Lock()
	p.language = lang.Tag
	p.mu.Unlock()
	return nil
}

func (p *PromptInput) Options() Options {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Options{Language: strings.TrimSpace(p.language)}
}
