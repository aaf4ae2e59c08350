package store

import (
	"math"

	"ai_course_backend/internal/model"
)

// PassThreshold is the minimum percentage score that unlocks the next
// topic.
const PassThreshold = 50

// gradedCorrectRatio is the normalized cutoff for out-of-band graded
// answers (theory, coding).
const gradedCorrectRatio = 0.7

// AssessmentSummary is the result of evaluating one assessment attempt.
type AssessmentSummary struct {
	Score       int  `json:"score"`
	Passed      bool `json:"passed"`
	AllAnswered bool `json:"allAnswered"`
	Answered    int  `json:"answered"`
	Total       int  `json:"total"`
}

// AnswerCorrect reports whether one recorded answer counts as correct:
// the mcq flag when present, otherwise score/maxScore at or above the
// graded cutoff.
func AnswerCorrect(a model.UserAnswer) bool {
	if a.IsCorrect != nil {
		return *a.IsCorrect
	}
	if a.Score != nil && a.MaxScore > 0 {
		return *a.Score/a.MaxScore >= gradedCorrectRatio
	}
	return false
}

// Evaluate computes the score over answered questions. Passing requires
// every question answered and a score at or above the threshold.
func Evaluate(assessment *model.Assessment, answers map[string]model.UserAnswer) AssessmentSummary {
	summary := AssessmentSummary{}
	if assessment == nil {
		return summary
	}
	summary.Total = len(assessment.Questions)

	correct := 0
	for _, q := range assessment.Questions {
		a, ok := answers[q.ID]
		if !ok {
			continue
		}
		summary.Answered++
		if AnswerCorrect(a) {
			correct++
		}
	}

	if summary.Answered > 0 {
		summary.Score = int(math.Round(float64(correct) / float64(summary.Answered) * 100))
	}
	summary.AllAnswered = summary.Total > 0 && summary.Answered == summary.Total
	summary.Passed = summary.AllAnswered && summary.Score >= PassThreshold
	return summary
}
