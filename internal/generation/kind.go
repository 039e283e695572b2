package generation

import (
	"fmt"
	"strings"
)

// Kind identifies which artifact a generator produces.
type Kind int

const (
	KindImage Kind = iota + 1
	KindText
	KindCode
)

// Kinds lists every generator kind in display order.
var Kinds = []Kind{KindImage, KindText, KindCode}

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindText:
		return "text"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// Title is the capitalised kind name used in notices.
func (k Kind) Title() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return KindImage, nil
	case "text":
		return KindText, nil
	case "code":
		return KindCode, nil
	default:
		return 0, fmt.Errorf("unknown generator kind %q", s)
	}
}
