package store

import (
	"fmt"
	"testing"

	"ai_course_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool       { return &v }
func floatPtr(v float64) *float64 { return &v }

func assessmentOf(n int) *model.Assessment {
	a := &model.Assessment{ID: "a1", Subject: "python"}
	for i := 0; i < n; i++ {
		a.Questions = append(a.Questions, model.Question{
			ID:   fmt.Sprintf("q%d", i),
			Type: model.QuestionTypeMCQ,
		})
	}
	return a
}

func mcqAnswers(correct, total int) map[string]model.UserAnswer {
	answers := map[string]model.UserAnswer{}
	for i := 0; i < total; i++ {
		id := fmt.Sprintf("q%d", i)
		answers[id] = model.UserAnswer{
			QuestionID: id,
			Answer:     "x",
			IsCorrect:  boolPtr(i < correct),
		}
	}
	return answers
}

func TestEvaluateScores(t *testing.T) {
	tests := []struct {
		correct   int
		wantScore int
		wantPass  bool
	}{
		{correct: 6, wantScore: 60, wantPass: true},
		{correct: 3, wantScore: 30, wantPass: false},
		{correct: 5, wantScore: 50, wantPass: true},
		{correct: 4, wantScore: 40, wantPass: false},
		{correct: 10, wantScore: 100, wantPass: true},
		{correct: 0, wantScore: 0, wantPass: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_10", tt.correct), func(t *testing.T) {
			summary := Evaluate(assessmentOf(10), mcqAnswers(tt.correct, 10))
			assert.Equal(t, tt.wantScore, summary.Score)
			assert.Equal(t, tt.wantPass, summary.Passed)
			assert.True(t, summary.AllAnswered)
		})
	}
}

func TestEvaluateBlocksPartialCompletion(t *testing.T) {
	// All-correct partial attempts never pass; every answered count
	// below the total keeps the gate shut.
	assessment := assessmentOf(10)
	for answered := 0; answered < 10; answered++ {
		summary := Evaluate(assessment, mcqAnswers(answered, answered))
		assert.False(t, summary.Passed, "answered=%d", answered)
		assert.False(t, summary.AllAnswered, "answered=%d", answered)
	}
}

func TestEvaluateEmptyAssessment(t *testing.T) {
	summary := Evaluate(assessmentOf(0), map[string]model.UserAnswer{})
	assert.False(t, summary.Passed)
	assert.False(t, summary.AllAnswered)
	assert.Equal(t, 0, summary.Score)

	summary = Evaluate(nil, nil)
	assert.False(t, summary.Passed)
}

func TestAnswerCorrectGradedThreshold(t *testing.T) {
	tests := []struct {
		name   string
		answer model.UserAnswer
		want   bool
	}{
		{"mcq correct", model.UserAnswer{IsCorrect: boolPtr(true)}, true},
		{"mcq wrong", model.UserAnswer{IsCorrect: boolPtr(false)}, false},
		{"theory 7 of 10", model.UserAnswer{Score: floatPtr(7), MaxScore: 10}, true},
		{"theory 6.9 of 10", model.UserAnswer{Score: floatPtr(6.9), MaxScore: 10}, false},
		{"theory 14 of 20", model.UserAnswer{Score: floatPtr(14), MaxScore: 20}, true},
		{"theory 13 of 20", model.UserAnswer{Score: floatPtr(13), MaxScore: 20}, false},
		{"coding passed", model.UserAnswer{IsCorrect: boolPtr(true)}, true},
		{"no grade recorded", model.UserAnswer{}, false},
		{"zero max score", model.UserAnswer{Score: floatPtr(5), MaxScore: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnswerCorrect(tt.answer))
		})
	}
}

func TestEvaluateMixedQuestionTypes(t *testing.T) {
	a := &model.Assessment{
		ID: "a1",
		Questions: []model.Question{
			{ID: "q0", Type: model.QuestionTypeMCQ},
			{ID: "q1", Type: model.QuestionTypeTheory, MaxScore: 10},
			{ID: "q2", Type: model.QuestionTypeCoding},
			{ID: "q3", Type: model.QuestionTypeMCQ},
		},
	}
	answers := map[string]model.UserAnswer{
		"q0": {QuestionID: "q0", IsCorrect: boolPtr(true)},
		"q1": {QuestionID: "q1", Score: floatPtr(8), MaxScore: 10},
		"q2": {QuestionID: "q2", IsCorrect: boolPtr(false)},
		"q3": {QuestionID: "q3", IsCorrect: boolPtr(false)},
	}

	summary := Evaluate(a, answers)
	assert.Equal(t, 50, summary.Score)
	assert.True(t, summary.AllAnswered)
	assert.True(t, summary.Passed)
}
