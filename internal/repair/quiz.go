package repair

import (
	"encoding/json"
	"fmt"

	"ai_course_backend/internal/model"
)

const maxQuizQuestions = 10

// Category quotas for a 10-question quiz.
type quota struct {
	theory         int
	code           int
	problemSolving int
}

func quotaFor(programming bool) quota {
	if programming {
		return quota{theory: 4, code: 4, problemSolving: 2}
	}
	// Concept-only subjects have no syntax to quiz.
	return quota{theory: 6, code: 0, problemSolving: 4}
}

// QuizData is the recovered quiz payload before it becomes an Assessment.
type QuizData struct {
	Title     string           `json:"title"`
	Questions []model.Question `json:"questions"`
}

// Grading is the recovered theory-grading payload.
type Grading struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// CodeCheck is the recovered code-evaluation payload.
type CodeCheck struct {
	Passed   bool   `json:"passed"`
	Feedback string `json:"feedback"`
}

// RecoverQuiz is total: any input yields a usable quiz. When the cascade
// is exhausted a deterministic two-question stub takes its place.
func RecoverQuiz(raw, subject, topic string, programming bool) QuizData {
	var data QuizData
	recovered, err := Recover(raw, SchemaQuiz)
	if err != nil || json.Unmarshal(recovered, &data) != nil || len(data.Questions) == 0 {
		data = fallbackQuiz(subject, topic)
	}
	data.Questions = NormalizeQuestions(data.Questions, programming)
	return data
}

// RecoverGrading falls back to a neutral mid-scale grade.
func RecoverGrading(raw string) Grading {
	recovered, err := Recover(raw, SchemaGrading)
	if err == nil {
		var g Grading
		if json.Unmarshal(recovered, &g) == nil {
			return g
		}
	}
	return Grading{
		Score:    5,
		Feedback: "Unable to grade your answer automatically. Here's a default score and feedback.",
	}
}

// RecoverCodeCheck falls back to a conservative failure.
func RecoverCodeCheck(raw string) CodeCheck {
	recovered, err := Recover(raw, SchemaCodeCheck)
	if err == nil {
		var c CodeCheck
		if json.Unmarshal(recovered, &c) == nil {
			return c
		}
	}
	return CodeCheck{
		Passed:   false,
		Feedback: "Unable to evaluate your code automatically. Please check your code for syntax errors.",
	}
}

// RecoverQuestionArray has no stub fallback: reinforcement questions are
// an enrichment, so an unrecoverable response surfaces as a typed error.
func RecoverQuestionArray(raw string) ([]model.Question, error) {
	recovered, err := Recover(raw, SchemaQuestionArray)
	if err != nil {
		return nil, err
	}
	var questions []model.Question
	if err := json.Unmarshal(recovered, &questions); err != nil {
		return nil, ErrUnrecoverable
	}
	for i := range questions {
		questions[i].Type = model.QuestionTypeMCQ
		questions[i].Options = normalizeOptions(questions[i].Options)
	}
	return questions, nil
}

// NormalizeQuestions enforces the quiz shape guarantees: every question
// is an mcq with exactly 4 options and one correct answer, uncategorized
// questions are relabeled in order until the category quota is met, and
// an oversized quiz is truncated to 10 while preserving the quota.
func NormalizeQuestions(questions []model.Question, programming bool) []model.Question {
	q := quotaFor(programming)

	counts := map[string]int{}
	for _, question := range questions {
		counts[question.Category]++
	}

	for i := range questions {
		switch questions[i].Category {
		case model.CategoryTheory, model.CategoryCode, model.CategoryProblemSolving:
		default:
			counts[questions[i].Category]--
			switch {
			case counts[model.CategoryTheory] < q.theory:
				questions[i].Category = model.CategoryTheory
			case counts[model.CategoryCode] < q.code:
				questions[i].Category = model.CategoryCode
			default:
				questions[i].Category = model.CategoryProblemSolving
			}
			counts[questions[i].Category]++
		}

		questions[i].Type = model.QuestionTypeMCQ
		questions[i].Options = normalizeOptions(questions[i].Options)
	}

	if len(questions) > maxQuizQuestions {
		questions = truncateByQuota(questions, q)
	}
	return questions
}

func truncateByQuota(questions []model.Question, q quota) []model.Question {
	limits := map[string]int{
		model.CategoryTheory:         q.theory,
		model.CategoryCode:           q.code,
		model.CategoryProblemSolving: q.problemSolving,
	}

	out := make([]model.Question, 0, maxQuizQuestions)
	for _, category := range []string{model.CategoryTheory, model.CategoryCode, model.CategoryProblemSolving} {
		taken := 0
		for _, question := range questions {
			if question.Category != category || taken >= limits[category] {
				continue
			}
			out = append(out, question)
			taken++
		}
	}
	return out
}

// normalizeOptions guarantees exactly 4 options with exactly one flagged
// correct. A short or missing option set is replaced wholesale by the
// deterministic fallback set.
func normalizeOptions(options []model.MCQOption) []model.MCQOption {
	if len(options) < 4 {
		return fallbackOptions("Option B")
	}
	options = options[:4]

	correct := -1
	for i := range options {
		if !options[i].IsCorrect {
			continue
		}
		if correct == -1 {
			correct = i
		} else {
			options[i].IsCorrect = false
		}
	}
	if correct == -1 {
		options[1].IsCorrect = true
	}
	return options
}

func fallbackOptions(correctText string) []model.MCQOption {
	return []model.MCQOption{
		{ID: "a", Text: "Option A", IsCorrect: false},
		{ID: "b", Text: correctText, IsCorrect: true},
		{ID: "c", Text: "Option C", IsCorrect: false},
		{ID: "d", Text: "Option D", IsCorrect: false},
	}
}

// fallbackQuiz is the deterministic stub used when nothing can be
// recovered from the completion.
func fallbackQuiz(subject, topic string) QuizData {
	return QuizData{
		Title: fmt.Sprintf("Assessment for %s - %s", subject, topic),
		Questions: []model.Question{
			{
				Type:        model.QuestionTypeMCQ,
				Category:    model.CategoryTheory,
				Question:    "What is the main topic of this course?",
				Options:     fallbackOptions(topic),
				Explanation: "This is the main topic of the course.",
			},
			{
				Type:        model.QuestionTypeMCQ,
				Category:    model.CategoryCode,
				Question:    "Which of the following code examples is correct?",
				Options:     fallbackOptions("Option B"),
				Explanation: "Option B follows the correct syntax.",
			},
		},
	}
}
