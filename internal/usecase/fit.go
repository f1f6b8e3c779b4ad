package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"NewsThreader/internal/domain"
)

const (
	// PostLimit is the platform's hard character limit.
	PostLimit = 280
	// SourceBudget is the room a post and its appended source link share.
	SourceBudget = 278

	ellipsis = "..."
)

// DefaultSourcePattern matches the short links the shortener produces.
var DefaultSourcePattern = regexp.MustCompile(`https://tinyurl\.com/[a-zA-Z0-9]{8}`)

// MissingSourcePolicy decides what happens to a post whose source is not a
// recognised short link.
type MissingSourcePolicy string

const (
	DropUnsourced MissingSourcePolicy = "drop"
	KeepUnsourced MissingSourcePolicy = "keep"
)

// ParseMissingSourcePolicy validates a configuration value.
func ParseMissingSourcePolicy(v string) (MissingSourcePolicy, error) {
	switch p := MissingSourcePolicy(strings.ToLower(strings.TrimSpace(v))); p {
	case "":
		return DropUnsourced, nil
	case DropUnsourced, KeepUnsourced:
		return p, nil
	}
	return "", fmt.Errorf("unknown missing source policy %q", v)
}

// Fit cuts text so that a suffix of reserved characters still fits in budget.
func Fit(text string, reserved, budget int) string {
	return truncate(text, budget-reserved)
}

// HardFit guarantees the platform limit, marking the cut with an ellipsis.
func HardFit(text string) string {
	if runeLen(text) <= PostLimit {
		return text
	}
	return Fit(text, len(ellipsis)+1, PostLimit) + ellipsis
}

// PostFitter turns composer output into texts that are safe to submit.
type PostFitter struct {
	Pattern *regexp.Regexp
	Policy  MissingSourcePolicy
}

// Fit attaches sources to posts lacking one and enforces the platform limit
// on every result. Posts without any source pass through unsourced; the
// missing-source policy only decides posts whose source fails the pattern.
func (f PostFitter) Fit(posts []domain.PostUnit) []string {
	pattern := f.Pattern
	if pattern == nil {
		pattern = DefaultSourcePattern
	}

	texts := make([]string, 0, len(posts))
	for _, post := range posts {
		text := strings.TrimSpace(post.Text)
		if text == "" {
			continue
		}
		if !pattern.MatchString(text) {
			source := strings.TrimSpace(post.SourceURL)
			switch {
			case pattern.MatchString(source):
				text = Fit(text, runeLen(source), SourceBudget) + "\n" + source
			case source == "", f.Policy == KeepUnsourced:
			default:
				continue
			}
		}
		texts = append(texts, HardFit(text))
	}
	return texts
}
