package usecase

import (
	"reflect"
	"testing"

	"NewsThreader/internal/domain"
)

func TestDeduplicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []domain.CandidateItem
		want []domain.CandidateItem
	}{
		{name: "empty", in: nil, want: nil},
		{
			name: "distinct urls keep order",
			in: []domain.CandidateItem{
				{URL: "https://b.example", Label: "Robotics"},
				{URL: "https://a.example", Label: "AI"},
			},
			want: []domain.CandidateItem{
				{URL: "https://b.example", Label: "Robotics"},
				{URL: "https://a.example", Label: "AI"},
			},
		},
		{
			name: "repeated url merges labels at first position",
			in: []domain.CandidateItem{
				{URL: "https://a.example", Label: "AI"},
				{URL: "https://b.example", Label: "Chips"},
				{URL: "https://a.example", Label: "Robotics"},
				{URL: "https://a.example", Label: "Startups"},
			},
			want: []domain.CandidateItem{
				{URL: "https://a.example", Label: "AI, Robotics, Startups"},
				{URL: "https://b.example", Label: "Chips"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Deduplicate(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected result:\n got  %#v\n want %#v", got, tt.want)
			}
		})
	}
}

func TestDeduplicateDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []domain.CandidateItem{
		{URL: "https://a.example", Label: "AI"},
		{URL: "https://a.example", Label: "ML"},
	}
	_ = Deduplicate(in)
	if in[0].Label != "AI" {
		t.Fatalf("input was modified: %q", in[0].Label)
	}
}
