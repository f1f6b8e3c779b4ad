package usecase

import (
	"fmt"
	"strings"

	"NewsThreader/internal/domain"
)

const (
	// MaxArticleChars caps each article body inside the digest.
	MaxArticleChars = 1000
	// MaxDigestChars caps the whole digest handed to the composer.
	MaxDigestChars = 4500

	digestSoftLimit = 30000
)

// FormatDigest renders resolved articles into the prompt block the composer
// reads. Blocks stop being appended once the output passes the soft limit;
// the result is then cut to MaxDigestChars.
func FormatDigest(articles []domain.ResolvedArticle) string {
	var (
		b     strings.Builder
		chars int
	)
	for i, article := range articles {
		if chars > digestSoftLimit {
			break
		}
		block := formatBlock(i+1, article)
		b.WriteString(block)
		chars += runeLen(block)
	}
	return truncate(b.String(), MaxDigestChars)
}

func formatBlock(n int, article domain.ResolvedArticle) string {
	body := strings.ReplaceAll(article.Text, "\n\n", "\n")
	return fmt.Sprintf("NEWS %[1]d TOPIC: %[2]s\nNEWS %[1]d TITLE: %[3]s\nNEWS %[1]d CONTENT: %[4]s\nNEWS %[1]d SOURCE: %[5]s\n\n",
		n, article.Label, article.Title, truncate(body, MaxArticleChars), article.DisplayURL())
}
