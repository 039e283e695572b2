package generation

// Artifact is the payload of a successful request. The concrete types are
// ImageArtifact, TextArtifact and CodeArtifact.
type Artifact interface {
	Kind() Kind
	// Text is the representation placed on the clipboard.
	Text() string

	artifact()
}

type ImageArtifact struct {
	URL string
}

func (ImageArtifact) Kind() Kind     { return KindImage }
func (a ImageArtifact) Text() string { return a.URL }
func (ImageArtifact) artifact()      {}

type TextArtifact struct {
	Body string
}

func (TextArtifact) Kind() Kind     { return KindText }
func (a TextArtifact) Text() string { return a.Body }
func (TextArtifact) artifact()      {}

type CodeArtifact struct {
	Body     string
	Language string
}

func (CodeArtifact) Kind() Kind     { return KindCode }
func (a CodeArtifact) Text() string { return a.Body }
func (CodeArtifact) artifact()      {}
