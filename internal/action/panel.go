// Package action implements the copy, download and share actions offered
// next to a generated artifact.
package action

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"contentgen/internal/generation"
)

var (
	// ErrNoArtifact is returned when there is nothing to act on yet.
	ErrNoArtifact = errors.New("no artifact to act on")
	// ErrUnsupported is returned for an action the kind or platform does not offer.
	ErrUnsupported = errors.New("action not supported")
)

const (
	NoticeCopied     = "Copied"
	NoticeDownloaded = "Downloaded"
)

// Source exposes the artifact a panel acts on. *generation.Generator
// satisfies it.
type Source interface {
	Kind() generation.Kind
	Result() (generation.Artifact, bool)
}

type Panel struct {
	source   Source
	platform Platform
	notifier generation.Notifier
	now      func() time.Time
}

type Option func(*Panel)

// WithClock replaces the clock used to stamp download filenames.
func WithClock(now func() time.Time) Option {
	return func(p *Panel) { p.now = now }
}

func NewPanel(source Source, platform Platform, notifier generation.Notifier, opts ...Option) *Panel {
	if notifier == nil {
		notifier = generation.NotifierFunc(func(generation.Notice) {})
	}
	p := &Panel{source: source, platform: platform, notifier: notifier, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SupportsDownload reports whether kind offers a download action.
func SupportsDownload(kind generation.Kind) bool {
	return kind == generation.KindImage
}

// DownloadFilename is the name suggested for a downloaded image.
func DownloadFilename(at time.Time) string {
	return fmt.Sprintf("image-%d.png", at.UnixMilli())
}

// Copy writes the artifact's text (body or image URL) to the clipboard.
func (p *Panel) Copy(ctx context.Context) error {
	artifact, ok := p.source.Result()
	if !ok {
		return ErrNoArtifact
	}
	if err := p.platform.WriteClipboard(ctx, artifact.Text()); err != nil {
		log.Printf("copy %s failed: %v", p.source.Kind(), err)
		return fmt.Errorf("copy: %w", err)
	}
	p.notify(NoticeCopied)
	return nil
}

// Download asks the platform to save the image. It does not wait for the
// transfer; the notice is sent once the download has been handed off.
func (p *Panel) Download(ctx context.Context) error {
	if !SupportsDownload(p.source.Kind()) {
		return ErrUnsupported
	}
	artifact, ok := p.source.Result()
	if !ok {
		return ErrNoArtifact
	}
	img, ok := artifact.(generation.ImageArtifact)
	if !ok {
		return ErrUnsupported
	}
	if err := p.platform.DownloadFile(ctx, img.URL, DownloadFilename(p.now())); err != nil {
		log.Printf("download %s failed: %v", img.URL, err)
		return fmt.Errorf("download: %w", err)
	}
	p.notify(NoticeDownloaded)
	return nil
}

// Share opens the share intent of target in an external browser.
func (p *Panel) Share(ctx context.Context, target Target) error {
	intent, ok := shareIntents[p.source.Kind()][target]
	if !ok {
		return ErrUnsupported
	}
	if _, ok := p.source.Result(); !ok {
		return ErrNoArtifact
	}
	if err := p.platform.OpenExternal(ctx, intent.url); err != nil {
		log.Printf("share %s to %s failed: %v", p.source.Kind(), target, err)
		return fmt.Errorf("share: %w", err)
	}
	p.notify(intent.notice)
	return nil
}

func (p *Panel) notify(msg string) {
	p.notifier.Notify(generation.Notice{
		Kind:    p.source.Kind(),
		Level:   generation.LevelSuccess,
		Message: msg,
	})
}
