package action

import "context"

// Platform is the host environment the Action Panel acts on. A browser
// session, a terminal or a test double can each provide one.
type Platform interface {
	WriteClipboard(ctx context.Context, text string) error
	DownloadFile(ctx context.Context, url, filename string) error
	OpenExternal(ctx context.Context, url string) error
}

// PlatformFuncs adapts plain functions to Platform. A nil field reports
// ErrUnsupported.
type PlatformFuncs struct {
	WriteClipboardFunc func(ctx context.Context, text string) error
	DownloadFileFunc   func(ctx context.Context, url, filename string) error
	OpenExternalFunc   func(ctx context.Context, url string) error
}

func (p PlatformFuncs) WriteClipboard(ctx context.Context, text string) error {
	if p.WriteClipboardFunc == nil {
		return ErrUnsupported
	}
	return p.WriteClipboardFunc(ctx, text)
}

func (p PlatformFuncs) DownloadFile(ctx context.Context, url, filename string) error {
	if p.DownloadFileFunc == nil {
		return ErrUnsupported
	}
	return p.DownloadFileFunc(ctx, url, filename)
}

func (p PlatformFuncs) OpenExternal(ctx context.Context, url string) error {
	if p.OpenExternalFunc == nil {
		return ErrUnsupported
	}
	return p.OpenExternalFunc(ctx, url)
}
