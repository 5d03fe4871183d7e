package textclean

import (
	"regexp"
	"strings"
	"unicode"
)

// Default markers of the repeating page banner printed on the course lecture notes.
const (
	DefaultHeaderMarker = "Programming Fundamentals"
	DefaultFooterMarker = "0332-7661819"
)

var (
	emailPattern     = regexp.MustCompile(`\S+@\S+`)
	longDigitPattern = regexp.MustCompile(`\b\d{11}\b`)
	urlPattern       = regexp.MustCompile(`http\S+|www\.\S+`)
)

// Normalizer strips layout noise (banners, contact details, links, page numbers)
// from raw extracted document text.
type Normalizer struct {
	HeaderMarker string
	FooterMarker string

	banner *regexp.Regexp
}

func NewNormalizer(headerMarker, footerMarker string) *Normalizer {
	n := &Normalizer{
		HeaderMarker: headerMarker,
		FooterMarker: footerMarker,
	}
	if headerMarker != "" && footerMarker != "" {
		n.banner = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(headerMarker) + `.*?` + regexp.QuoteMeta(footerMarker))
	}
	return n
}

// NewDefaultNormalizer uses the lecture-notes banner markers.
func NewDefaultNormalizer() *Normalizer {
	return NewNormalizer(DefaultHeaderMarker, DefaultFooterMarker)
}

// Normalize never fails; it may return an empty string.
func (n *Normalizer) Normalize(raw string) string {
	text := raw
	if n.banner != nil {
		text = n.banner.ReplaceAllString(text, "")
	}

	// Removals can expose new matches for an earlier step, so scrub to a fixed point.
	// Every changing pass shortens the text, which bounds the loop.
	for {
		next := scrub(text)
		if next == text {
			break
		}
		text = next
	}

	return strings.Join(strings.Fields(text), " ")
}

func scrub(text string) string {
	text = emailPattern.ReplaceAllString(text, "")
	text = longDigitPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	return dropPageNumberLines(text)
}

func dropPageNumberLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isPageNumber(strings.TrimSpace(line)) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isPageNumber(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
