package usecase

import "NewsThreader/internal/domain"

// LabelSeparator joins the labels of candidates sharing a URL.
const LabelSeparator = ", "

// Deduplicate collapses candidates by URL, keeping first-occurrence order and
// concatenating the labels of repeated URLs.
func Deduplicate(items []domain.CandidateItem) []domain.CandidateItem {
	if len(items) == 0 {
		return nil
	}

	index := make(map[string]int, len(items))
	result := make([]domain.CandidateItem, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.URL]; ok {
			result[i].Label += LabelSeparator + item.Label
			continue
		}
		index[item.URL] = len(result)
		result = append(result, item)
	}
	return result
}
