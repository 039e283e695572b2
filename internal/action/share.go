package action

import (
	"fmt"
	"net/url"
	"strings"

	"contentgen/internal/generation"
)

// Target is a social platform an artifact can be shared to.
type Target string

const (
	TargetInstagram Target = "instagram"
	TargetFacebook  Target = "facebook"
	TargetLinkedIn  Target = "linkedin"
	TargetX         Target = "x"
)

const codeShareText = "Check out my generated code!"

type shareIntent struct {
	url    string
	notice string
}

// share intents per kind; a kind missing here offers no sharing.
var shareIntents = map[generation.Kind]map[Target]shareIntent{
	generation.KindImage: {
		TargetInstagram: {url: "https://www.instagram.com/", notice: "Opening Instagram - you can upload the downloaded image"},
	},
	generation.KindCode: {
		TargetInstagram: {url: "https://www.instagram.com/", notice: "Opening Instagram"},
		TargetFacebook:  {url: "https://www.facebook.com/sharer/sharer.php", notice: "Opening Facebook - paste your code there"},
		TargetLinkedIn:  {url: "https://www.linkedin.com/feed/", notice: "Opening LinkedIn - paste your code there"},
		TargetX:         {url: "https://twitter.com/intent/tweet?text=" + url.PathEscape(codeShareText), notice: "Opening X"},
	},
}

var targetOrder = []Target{TargetInstagram, TargetFacebook, TargetLinkedIn, TargetX}

func ParseTarget(s string) (Target, error) {
	switch t := Target(strings.ToLower(strings.TrimSpace(s))); t {
	case TargetInstagram, TargetFacebook, TargetLinkedIn, TargetX:
		return t, nil
	case "ig":
		return TargetInstagram, nil
	case "fb":
		return TargetFacebook, nil
	case "li":
		return TargetLinkedIn, nil
	case "twitter":
		return TargetX, nil
	default:
		return "", fmt.Errorf("unknown share target %q", s)
	}
}

// ShareTargets lists the targets offered for kind, in display order.
func ShareTargets(kind generation.Kind) []Target {
	intents := shareIntents[kind]
	out := make([]Target, 0, len(intents))
	for _, t := range targetOrder {
		if _, ok := intents[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
