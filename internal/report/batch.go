package report

import (
	"errors"
	"math"
	"sort"

	"alfredoptarigan/resume-matcher/internal/models"
)

var ErrNotEnoughCandidates = errors.New("need multiple candidates for batch analysis")

const topCandidateCount = 5

type TopCandidate struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Verdict string `json:"verdict"`
}

type BatchSummary struct {
	AverageScore    float64        `json:"avg_score"`
	MaxScore        int            `json:"max_score"`
	MinScore        int            `json:"min_score"`
	ExcellentCount  int            `json:"excellent_count"`
	GoodCount       int            `json:"good_count"`
	PoorCount       int            `json:"poor_count"`
	TotalCandidates int            `json:"total_candidates"`
	TopCandidates   []TopCandidate `json:"top_candidates"`
}

// SummarizeBatch computes score statistics over at least two candidates.
func SummarizeBatch(results []models.CandidateResult) (BatchSummary, error) {
	if len(results) <= 1 {
		return BatchSummary{}, ErrNotEnoughCandidates
	}

	summary := BatchSummary{
		MaxScore:        results[0].OverallScore,
		MinScore:        results[0].OverallScore,
		TotalCandidates: len(results),
	}

	sum := 0
	for _, r := range results {
		s := r.OverallScore
		sum += s
		summary.MaxScore = max(summary.MaxScore, s)
		summary.MinScore = min(summary.MinScore, s)
		switch {
		case s >= 75:
			summary.ExcellentCount++
		case s >= 50:
			summary.GoodCount++
		default:
			summary.PoorCount++
		}
	}
	summary.AverageScore = math.Round(float64(sum)/float64(len(results))*10) / 10

	ranked := append([]models.CandidateResult(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallScore > ranked[j].OverallScore
	})
	for i, r := range ranked[:min(topCandidateCount, len(ranked))] {
		summary.TopCandidates = append(summary.TopCandidates, TopCandidate{
			Rank:    i + 1,
			Name:    r.CandidateName,
			Score:   r.OverallScore,
			Verdict: r.Verdict,
		})
	}

	return summary, nil
}
