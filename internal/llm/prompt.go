package llm

import (
	"fmt"
	"regexp"
	"strings"

	"contentgen/internal/generation"
)

func textPrompt(prompt string) string {
	return "You are a helpful writing assistant. Respond in plain text without markdown headings.\n\n" + prompt
}

func codePrompt(prompt, language string) string {
	label := language
	if lang, ok := generation.LookupLanguage(language); ok {
		label = lang.Label
	}
	return fmt.Sprintf("Write %s code for the following request. Reply with the code only, no explanations.\n\n%s", label, prompt)
}

var reFence = regexp.MustCompile("(?s)^```[A-Za-z0-9_+#.-]*[ \t]*\r?\n(.*?)\r?\n?```$")

// StripCodeFences removes one surrounding markdown code fence, if present.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if m := reFence.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
