package service

import (
	"ai_course_backend/internal/model"
	"ai_course_backend/internal/util"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuizFromCompletion(t *testing.T) {
	raw := `{
		"title": "Python Variables Quiz",
		"questions": [
			{
				"type": "mcq",
				"category": "theory",
				"question": "What is a variable?",
				"options": [
					{"id": "a", "text": "A", "isCorrect": false},
					{"id": "b", "text": "B", "isCorrect": true},
					{"id": "c", "text": "C", "isCorrect": false},
					{"id": "d", "text": "D", "isCorrect": false}
				],
				"explanation": "Variables store values."
			}
		]
	}`
	svc := NewQuizService(&MockGenerator{Responses: []string{raw}}, nil)

	assessment := svc.GenerateQuiz(context.Background(), "python", "Variables", "lesson text")
	require.NotNil(t, assessment)
	assert.Equal(t, "Python Variables Quiz", assessment.Title)
	assert.Equal(t, "python", assessment.Subject)
	require.Len(t, assessment.Questions, 1)

	q := assessment.Questions[0]
	assert.True(t, strings.HasPrefix(q.ID, "python-Variables-q1-"))
	assert.Equal(t, "What is a variable?", q.Question)
	require.Len(t, q.Options, 4)
}

func TestGenerateQuizFallsBackOnGeneratorError(t *testing.T) {
	svc := NewQuizService(&MockGenerator{Err: errors.New("upstream down")}, nil)

	assessment := svc.GenerateQuiz(context.Background(), "python", "Variables", "lesson text")
	require.NotNil(t, assessment)
	assert.Equal(t, "Assessment for python - Variables", assessment.Title)
	require.Len(t, assessment.Questions, 2)

	for _, q := range assessment.Questions {
		assert.Equal(t, model.QuestionTypeMCQ, q.Type)
		require.Len(t, q.Options, 4)
		correct := q.CorrectOption()
		require.NotNil(t, correct)
		assert.Equal(t, "b", correct.ID)
	}
	assert.Equal(t, "Variables", assessment.Questions[0].Options[1].Text)
}

func TestGenerateQuizFallsBackOnUnparsableCompletion(t *testing.T) {
	svc := NewQuizService(&MockGenerator{Responses: []string{"Sorry, I cannot do that."}}, nil)

	assessment := svc.GenerateQuiz(context.Background(), "history", "The Renaissance", "lesson text")
	require.NotNil(t, assessment)
	require.Len(t, assessment.Questions, 2)
	assert.NotEmpty(t, assessment.Questions[0].ID)
	assert.NotEmpty(t, assessment.Questions[1].ID)
}

func TestGradeTheory(t *testing.T) {
	svc := NewQuizService(&MockGenerator{Responses: []string{`{"score": 8, "feedback": "Solid answer."}`}}, nil)

	grading, err := svc.GradeTheory(context.Background(), "Explain scope.", "Scope is...", []string{"mentions lifetime"}, 10)
	require.NoError(t, err)
	assert.Equal(t, float64(8), grading.Score)
	assert.Equal(t, "Solid answer.", grading.Feedback)
}

func TestGradeTheoryFallback(t *testing.T) {
	svc := NewQuizService(&MockGenerator{Responses: []string{"Sorry, I cannot grade this."}}, nil)

	grading, err := svc.GradeTheory(context.Background(), "Explain scope.", "Scope is...", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, float64(5), grading.Score)
	assert.Contains(t, grading.Feedback, "Unable to grade")
}

func TestCheckCodeFallback(t *testing.T) {
	svc := NewQuizService(&MockGenerator{Responses: []string{"Sorry, no evaluation today."}}, nil)

	check, err := svc.CheckCode(context.Background(), "print('hi')", "python", []string{"prints hi"})
	require.NoError(t, err)
	assert.False(t, check.Passed)
	assert.Contains(t, check.Feedback, "Unable to evaluate")
}

func TestCheckCodeGeneratorError(t *testing.T) {
	svc := NewQuizService(&MockGenerator{Err: errors.New("upstream down")}, nil)

	_, err := svc.CheckCode(context.Background(), "print('hi')", "python", nil)
	assert.Error(t, err)
}

func TestReinforcementParsesQuestions(t *testing.T) {
	raw := "```json\n" + `[
		{
			"id": "r1",
			"question": "Which keyword defines a function?",
			"options": [
				{"id": "a", "text": "func", "isCorrect": false},
				{"id": "b", "text": "def", "isCorrect": true},
				{"id": "c", "text": "fn", "isCorrect": false},
				{"id": "d", "text": "define", "isCorrect": false}
			]
		}
	]` + "\n```"
	svc := NewQuizService(&MockGenerator{Responses: []string{raw}}, nil)

	questions, err := svc.Reinforcement(context.Background(), "What defines a function?", "func", "def", "python")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, model.QuestionTypeMCQ, questions[0].Type)
	assert.Equal(t, "def", questions[0].CorrectOption().Text)
}

func TestReinforcementUnparsable(t *testing.T) {
	svc := NewQuizService(&MockGenerator{Responses: []string{"Sorry, nothing useful here."}}, nil)

	_, err := svc.Reinforcement(context.Background(), "q", "a", "b", "python")
	assert.ErrorIs(t, err, util.ErrUnparsableResponse)
}

func TestExplainPassesThrough(t *testing.T) {
	gen := &MockGenerator{Responses: []string{"## Why B is correct\n\nBecause..."}}
	svc := NewQuizService(gen, nil)

	explanation, err := svc.Explain(context.Background(), "What is 2+2?", "3", "4")
	require.NoError(t, err)
	assert.Contains(t, explanation, "Why B is correct")
	require.Equal(t, 1, gen.CallCount())
	assert.Contains(t, gen.Calls[0][0].Parts[0].Text, "What is 2+2?")
}
