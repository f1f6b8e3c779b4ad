package usecase

import (
	"context"
	"fmt"
	"strings"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

// GeneratedTopics asks the composer for topics related to a keyword.
type GeneratedTopics struct {
	Composer ports.Composer
	Keyword  string
	Count    int
}

var _ ports.TopicSource = GeneratedTopics{}

// Topics returns the generated list with blanks and duplicates removed.
func (g GeneratedTopics) Topics(ctx context.Context) ([]string, error) {
	if g.Composer == nil {
		return nil, fmt.Errorf("topic generation needs a composer")
	}
	topics, err := g.Composer.GenerateTopics(ctx, g.Keyword, g.Count)
	if err != nil {
		return nil, fmt.Errorf("generate topics for %q: %w", g.Keyword, err)
	}
	topics = CleanTopics(topics)
	if len(topics) == 0 {
		return nil, domain.ErrNoTopics
	}
	return topics, nil
}

// CleanTopics trims topics and drops empty or repeated ones.
func CleanTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, topic := range topics {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		key := strings.ToLower(topic)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, topic)
	}
	return out
}
