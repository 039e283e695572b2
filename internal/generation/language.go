package generation

import "strings"

// DefaultLanguage is the language a code generator starts with.
const DefaultLanguage = "javascript"

type Language struct {
	Tag   string
	Label string
}

// Languages is the fixed set of targets offered by the code generator.
var Languages = []Language{
	{Tag: "javascript", Label: "JavaScript"},
	{Tag: "typescript", Label: "TypeScript"},
	{Tag: "python", Label: "Python"},
	{Tag: "java", Label: "Java"},
	{Tag: "csharp", Label: "C#"},
	{Tag: "cpp", Label: "C++"},
	{Tag: "go", Label: "Go"},
	{Tag: "rust", Label: "Rust"},
	{Tag: "php", Label: "PHP"},
	{Tag: "ruby", Label: "Ruby"},
	{Tag: "swift", Label: "Swift"},
	{Tag: "kotlin", Label: "Kotlin"},
}

func LookupLanguage(tag string) (Language, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, lang := range Languages {
		if lang.Tag == tag {
			return lang, true
		}
	}
	return Language{}, false
}
