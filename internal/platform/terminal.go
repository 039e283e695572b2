// Package platform provides action.Platform for a terminal session.
package platform

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/term"

	"contentgen/internal/action"
)

// Terminal writes the clipboard through the OSC 52 escape sequence, saves
// downloads into a directory and opens URLs with the desktop opener.
type Terminal struct {
	out         io.Writer
	tty         bool
	downloadDir string
	httpClient  *http.Client
	open        func(ctx context.Context, url string) error
}

type Option func(*Terminal)

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Terminal) { t.httpClient = c }
}

// WithOpener replaces the command used to open URLs.
func WithOpener(open func(ctx context.Context, url string) error) Option {
	return func(t *Terminal) { t.open = open }
}

// WithTTY overrides terminal detection.
func WithTTY(tty bool) Option {
	return func(t *Terminal) { t.tty = tty }
}

func NewTerminal(out *os.File, downloadDir string, opts ...Option) *Terminal {
	t := &Terminal{
		out:         out,
		tty:         out != nil && term.IsTerminal(int(out.Fd())),
		downloadDir: downloadDir,
		httpClient:  http.DefaultClient,
		open:        openWithDesktop,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewWriterTerminal is NewTerminal over an arbitrary writer, which is never
// treated as a terminal unless WithTTY says so.
func NewWriterTerminal(out io.Writer, downloadDir string, opts ...Option) *Terminal {
	t := &Terminal{out: out, downloadDir: downloadDir, httpClient: http.DefaultClient, open: openWithDesktop}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var _ action.Platform = (*Terminal)(nil)

func (t *Terminal) WriteClipboard(_ context.Context, text string) error {
	if !t.tty {
		return fmt.Errorf("clipboard needs a terminal: %w", action.ErrUnsupported)
	}
	_, err := fmt.Fprintf(t.out, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}

// DownloadFile saves rawURL as filename in the download directory. Both
// http(s) and data: URLs are accepted.
func (t *Terminal) DownloadFile(ctx context.Context, rawURL, filename string) error {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid filename %q", filename)
	}
	dir := t.downloadDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	var data []byte
	var err error
	if strings.HasPrefix(rawURL, "data:") {
		data, err = decodeDataURL(rawURL)
	} else {
		data, err = t.fetch(ctx, rawURL)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}

func (t *Terminal) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("unsupported download url %q", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (t *Terminal) OpenExternal(ctx context.Context, rawURL string) error {
	return t.open(ctx, rawURL)
}

var errMalformedDataURL = errors.New("malformed data url")

func decodeDataURL(raw string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !ok {
		return nil, errMalformedDataURL
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedDataURL, err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedDataURL, err)
	}
	return []byte(s), nil
}

func openWithDesktop(ctx context.Context, rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", rawURL)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", rawURL)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", rawURL, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
