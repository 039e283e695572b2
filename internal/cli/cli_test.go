package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentgen/internal/action"
	"contentgen/internal/generation"
)

type recorder struct {
	calls     []map[string]any
	clipboard []string
	opened    []string
	downloads []string
}

func (r *recorder) invoker(fields map[string]string) generation.InvokerFunc {
	return func(_ context.Context, _ string, body map[string]any) (generation.Payload, error) {
		r.calls = append(r.calls, body)
		p := generation.Payload{}
		for k, v := range fields {
			raw, _ := json.Marshal(v)
			p[k] = raw
		}
		return p, nil
	}
}

func (r *recorder) platform() action.Platform {
	return action.PlatformFuncs{
		WriteClipboardFunc: func(_ context.Context, text string) error {
			r.clipboard = append(r.clipboard, text)
			return nil
		},
		DownloadFileFunc: func(_ context.Context, url, filename string) error {
			r.downloads = append(r.downloads, filename)
			return nil
		},
		OpenExternalFunc: func(_ context.Context, url string) error {
			r.opened = append(r.opened, url)
			return nil
		},
	}
}

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, deps Deps, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	deps.Stdout, deps.Stderr = &stdout, &stderr
	root := NewRootCmd(deps)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestImageCopyAndShare(t *testing.T) {
	rec := &recorder{}
	profile := writeProfile(t, "functions_url: http://unused\n")
	out, errOut, err := run(t, Deps{
		Invoker:  rec.invoker(map[string]string{"imageUrl": "https://cdn/x.png"}),
		Platform: rec.platform(),
	}, "image", "--profile", profile, "--copy", "--download", "--share", "instagram", "a", "red", "fox")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn/x.png\n", out)
	assert.Equal(t, []map[string]any{{"prompt": "a red fox"}}, rec.calls)
	assert.Equal(t, []string{"https://cdn/x.png"}, rec.clipboard)
	require.Len(t, rec.downloads, 1)
	assert.Regexp(t, `^image-\d+\.png$`, rec.downloads[0])
	assert.Equal(t, []string{"https://www.instagram.com/"}, rec.opened)
	assert.Contains(t, errOut, "✓ Image generated")
	assert.Contains(t, errOut, "✓ Copied")
	assert.Contains(t, errOut, "✓ Downloaded")
}

func TestCodeLanguageFromProfileAndFlag(t *testing.T) {
	profile := writeProfile(t, "language: python\n")

	rec := &recorder{}
	_, _, err := run(t, Deps{Invoker: rec.invoker(map[string]string{"code": "print(1)"}), Platform: rec.platform()},
		"code", "--profile", profile, "print one")
	require.NoError(t, err)
	assert.Equal(t, "python", rec.calls[0]["language"])

	rec = &recorder{}
	out, _, err := run(t, Deps{Invoker: rec.invoker(map[string]string{"code": "fn sort() {...}"}), Platform: rec.platform()},
		"code", "--profile", profile, "--language", "rust", "write a sort function")
	require.NoError(t, err)
	assert.Equal(t, "rust", rec.calls[0]["language"])
	assert.Equal(t, "fn sort() {...}\n", out)
}

func TestEmptyPromptFailsWithoutCall(t *testing.T) {
	rec := &recorder{}
	profile := writeProfile(t, "")
	_, errOut, err := run(t, Deps{Invoker: rec.invoker(nil), Platform: rec.platform()}, "text", "--profile", profile)
	require.ErrorIs(t, err, generation.ErrEmptyPrompt)
	assert.True(t, reported(err))
	assert.Empty(t, rec.calls)
	assert.Contains(t, errOut, "✗ Please enter a prompt")
}

func TestApplicationErrorIsPrinted(t *testing.T) {
	rec := &recorder{}
	profile := writeProfile(t, "")
	out, errOut, err := run(t, Deps{Invoker: rec.invoker(map[string]string{"error": "rate limited"}), Platform: rec.platform()},
		"text", "--profile", profile, "hello")
	require.Error(t, err)
	assert.True(t, reported(err))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "✗ rate limited")
}

func TestUnknownLanguageAndTarget(t *testing.T) {
	rec := &recorder{}
	profile := writeProfile(t, "")
	_, _, err := run(t, Deps{Invoker: rec.invoker(map[string]string{"code": "x"}), Platform: rec.platform()},
		"code", "--profile", profile, "--language", "cobol", "x")
	require.ErrorIs(t, err, generation.ErrUnknownLanguage)
	assert.False(t, reported(err))

	_, _, err = run(t, Deps{Invoker: rec.invoker(map[string]string{"text": "x"}), Platform: rec.platform()},
		"text", "--profile", profile, "--share", "x", "hello")
	require.Error(t, err, "text offers no share flag")
}

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8082", p.FunctionsURL)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"), true)
	require.Error(t, err)

	p, err = LoadProfile(writeProfile(t, "functions_url: http://f:1\napi_key: k\ndownload_dir: /tmp/x\n"), true)
	require.NoError(t, err)
	assert.Equal(t, Profile{FunctionsURL: "http://f:1", APIKey: "k", DownloadDir: "/tmp/x"}, p)

	_, err = LoadProfile(writeProfile(t, "functions_url: [\n"), true)
	require.Error(t, err)
}
