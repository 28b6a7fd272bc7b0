package bidgen

import (
	"fmt"
	"strings"

	"github.com/gigbid/server/internal/models"
)

// quoteStripper removes straight and curly quotation marks and backticks.
var quoteStripper = strings.NewReplacer(
	`"`, "",
	"“", "", // left double curly
	"”", "", // right double curly
	"‘", "", // left single curly
	"’", "", // right single curly
	"'", "",
	"`", "",
)

// CleanText strips every quote character from generated bid/reply text and
// trims surrounding whitespace. Idempotent on already-clean text. Screening
// answers are never cleaned.
func CleanText(s string) string {
	return strings.TrimSpace(quoteStripper.Replace(s))
}

// Confidence derives a heuristic quality score for a generated answer,
// always within [0.70, 0.95]. It is a proxy, not a calibrated probability.
func Confidence(answer string, profile models.Profile) float64 {
	confidence := 0.7

	// longer, more detailed answers score higher
	if len(answer) > 200 {
		confidence += 0.1
	}
	if len(answer) > 500 {
		confidence += 0.05
	}

	// up to 0.10 for profile skills the answer actually mentions
	answerLower := strings.ToLower(answer)
	matched := 0
	for _, skill := range profile.Skills {
		if strings.Contains(answerLower, strings.ToLower(skill)) {
			matched++
		}
	}
	skillBonus := float64(matched) * 0.03
	if skillBonus > 0.1 {
		skillBonus = 0.1
	}
	confidence += skillBonus

	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}

// Suggestions derives up to three improvement hints for an answer. The
// evaluation order is fixed and determines which three survive the cap.
func Suggestions(answer string, profile models.Profile) []string {
	var suggestions []string
	answerLower := strings.ToLower(answer)

	var unmentioned []string
	for _, skill := range profile.Skills {
		if !strings.Contains(answerLower, strings.ToLower(skill)) {
			unmentioned = append(unmentioned, skill)
		}
	}
	if len(unmentioned) > 0 && len(unmentioned) <= 3 {
		mention := unmentioned
		if len(mention) > 2 {
			mention = mention[:2]
		}
		suggestions = append(suggestions, fmt.Sprintf("Mention %s", strings.Join(mention, ", ")))
	}

	if len(answer) < 150 {
		suggestions = append(suggestions, "Add more detail")
	}
	if len(answer) > 800 {
		suggestions = append(suggestions, "Consider shortening")
	}

	if !strings.Contains(answerLower, "experience") && profile.Experience != "" {
		suggestions = append(suggestions, "Reference your experience")
	}

	if !strings.Contains(answerLower, "portfolio") && len(profile.Portfolio) > 0 {
		suggestions = append(suggestions, "Mention portfolio examples")
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}
