package services

import (
	"math"
	"strings"

	"alfredoptarigan/resume-matcher/internal/models"
)

const (
	baseSkillScore   = 25.0
	mustHaveWeight   = 60.0
	goodToHaveWeight = 15.0
)

// MatchSkills scores a resume by case-insensitive substring containment of the
// must-have and good-to-have skills. A skill is tested as a literal substring,
// without tokenization or stemming.
func MatchSkills(resumeText string, mustHave, goodToHave []string) models.SkillMatchResult {
	lower := strings.ToLower(resumeText)

	matchedMust := make([]string, 0, len(mustHave))
	missing := make([]string, 0)
	for _, skill := range mustHave {
		if strings.Contains(lower, strings.ToLower(skill)) {
			matchedMust = append(matchedMust, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	matchedGood := make([]string, 0, len(goodToHave))
	for _, skill := range goodToHave {
		if strings.Contains(lower, strings.ToLower(skill)) {
			matchedGood = append(matchedGood, skill)
		}
	}

	var mustScore, goodScore, matchRate float64
	if len(mustHave) > 0 {
		fraction := float64(len(matchedMust)) / float64(len(mustHave))
		mustScore = fraction * mustHaveWeight
		matchRate = fraction * 100
	}
	if len(goodToHave) > 0 {
		goodScore = float64(len(matchedGood)) / float64(len(goodToHave)) * goodToHaveWeight
	}

	total := int(math.Floor(baseSkillScore + mustScore + goodScore))

	return models.SkillMatchResult{
		TotalScore:     clampScore(total, 0, 100),
		MatchedSkills:  append(matchedMust, matchedGood...),
		MissingSkills:  missing,
		SkillMatchRate: matchRate,
	}
}

func clampScore(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
