package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		prompt   string
		opts     Options
		wantErr  error
		wantText string
		wantLang string
	}{
		{name: "blank", kind: KindText, prompt: "  \t", wantErr: ErrEmptyPrompt},
		{name: "trimmed", kind: KindImage, prompt: "  a cat ", wantText: "a cat"},
		{name: "options dropped for text", kind: KindText, prompt: "x", opts: Options{Language: "go"}, wantText: "x"},
		{name: "code default language", kind: KindCode, prompt: "x", wantText: "x", wantLang: DefaultLanguage},
		{name: "code language normalised", kind: KindCode, prompt: "x", opts: Options{Language: " Rust"}, wantText: "x", wantLang: "rust"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.kind, tt.prompt, tt.opts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, req.Kind())
			assert.Equal(t, tt.wantText, req.Prompt())
			assert.Equal(t, tt.wantLang, req.Options().Language)
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(" " + k.Title())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("video")
	require.Error(t, err)
}

func TestStateAccessorsFollowPhase(t *testing.T) {
	s := succeededState(TextArtifact{Body: "hi"})
	_, ok := s.ErrorMessage()
	assert.False(t, ok)
	_, ok = s.Result()
	assert.True(t, ok)

	f := failedState("bad")
	_, ok = f.Result()
	assert.False(t, ok)
	msg, ok := f.ErrorMessage()
	assert.True(t, ok)
	assert.Equal(t, "bad", msg)

	assert.Equal(t, "pending", pendingState().Phase().String())
	assert.True(t, pendingState().Pending())
}
