package domain

import "slices"

const (
	MinScore = 1
	MaxScore = 5
)

// Criterion describes one point on the scoring scale
type Criterion struct {
	Score       int
	Label       string
	Description string
	Color       string
}

var scoreCriteria = map[int]Criterion{
	1: {Score: 1, Label: "非常に困難", Description: "かなりの支援が必要で、単独での実施が困難", Color: "#dc3545"},
	2: {Score: 2, Label: "支援が必要", Description: "継続的な支援があれば実施可能", Color: "#fd7e14"},
	3: {Score: 3, Label: "普通", Description: "時々支援が必要だが、概ね自立して実施可能", Color: "#ffc107"},
	4: {Score: 4, Label: "良好", Description: "ほとんど支援なく自立して実施可能", Color: "#20c997"},
	5: {Score: 5, Label: "非常に良好", Description: "完全に自立して実施でき、他者への支援も可能", Color: "#198754"},
}

// ValidScore reports whether score is on the 1..5 scale
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// CriterionFor returns the criterion for a score
func CriterionFor(score int) (Criterion, bool) {
	c, ok := scoreCriteria[score]
	return c, ok
}

// ScoreLabel returns the label for score, or "" when off-scale
func ScoreLabel(score int) string {
	return scoreCriteria[score].Label
}

// Criteria returns the whole scale in ascending order
func Criteria() []Criterion {
	out := make([]Criterion, 0, len(scoreCriteria))
	for _, c := range scoreCriteria {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Criterion) int { return a.Score - b.Score })
	return out
}

// ChartColor is the bar color used for a score in charts.
// Charts use their own palette, distinct from the criteria colors.
func ChartColor(score int) string {
	switch score {
	case 1:
		return "#0d6efd"
	case 2:
		return "#198754"
	case 3:
		return "#ffc107"
	case 4:
		return "#fd7e14"
	case 5:
		return "#dc3545"
	default:
		return "#94a3b8"
	}
}

// AverageScore returns the mean of the scores, or 0 when empty
func AverageScore(scores map[string]int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}
