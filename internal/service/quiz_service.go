package service

import (
	"ai_course_backend/internal/curriculum"
	"ai_course_backend/internal/model"
	"ai_course_backend/internal/repair"
	"ai_course_backend/internal/util"
	"ai_course_backend/pkg/monitoring"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// QuizService generates assessments and grades free-text answers, with
// every semi-structured completion routed through the repair cascade.
type QuizService struct {
	generator Generator
	logger    *zap.Logger
}

func NewQuizService(generator Generator, logger *zap.Logger) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{generator: generator, logger: logger}
}

// GenerateQuiz is total: a generation failure or an unrecoverable
// completion still yields a valid assessment via the deterministic stub.
func (s *QuizService) GenerateQuiz(ctx context.Context, subject, topic, courseContent string) *model.Assessment {
	programming := curriculum.IsProgramming(subject)
	prompt := buildQuizPrompt(subject, courseContent)

	raw, err := s.generator.Generate(ctx, []Message{JSONPrompt(prompt)}, GenerationOptions{
		Temperature:     0.7,
		MaxOutputTokens: 2048,
	})
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("quiz", "error").Inc()
		s.logger.Warn("quiz generation failed, using fallback",
			zap.String("subject", subject),
			zap.String("topic", topic),
			zap.Error(err))
		raw = ""
	} else {
		monitoring.GenerationCounter.WithLabelValues("quiz", "ok").Inc()
	}

	quiz := repair.RecoverQuiz(raw, subject, topic, programming)

	now := time.Now().UnixMilli()
	assessment := &model.Assessment{
		ID:      fmt.Sprintf("%s-%s-%d", subject, topic, now),
		Title:   quiz.Title,
		Subject: subject,
	}
	if assessment.Title == "" {
		assessment.Title = fmt.Sprintf("%s Assessment", topic)
	}
	for i, q := range quiz.Questions {
		q.ID = fmt.Sprintf("%s-%s-q%d-%d", subject, topic, i+1, now)
		assessment.Questions = append(assessment.Questions, q)
	}
	return assessment
}

// CheckCode evaluates submitted code against test cases. Unparsable
// evaluations degrade to a conservative failure, never an error.
func (s *QuizService) CheckCode(ctx context.Context, code, language string, testCases []string) (repair.CodeCheck, error) {
	prompt := buildCheckCodePrompt(code, language, testCases)
	raw, err := s.generator.Generate(ctx, []Message{JSONPrompt(prompt)}, GenerationOptions{
		Temperature:     0.7,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("check_code", "error").Inc()
		return repair.CodeCheck{}, err
	}
	monitoring.GenerationCounter.WithLabelValues("check_code", "ok").Inc()
	return repair.RecoverCodeCheck(raw), nil
}

// GradeTheory grades a free-text answer against criteria out of maxScore.
func (s *QuizService) GradeTheory(ctx context.Context, question, answer string, criteria []string, maxScore float64) (repair.Grading, error) {
	prompt := buildGradeTheoryPrompt(question, answer, criteria, maxScore)
	raw, err := s.generator.Generate(ctx, []Message{JSONPrompt(prompt)}, GenerationOptions{
		Temperature:     0.7,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("grade_theory", "error").Inc()
		return repair.Grading{}, err
	}
	monitoring.GenerationCounter.WithLabelValues("grade_theory", "ok").Inc()
	return repair.RecoverGrading(raw), nil
}

// Explain produces the free-text explanation shown after a wrong answer.
func (s *QuizService) Explain(ctx context.Context, question, selectedOption, correctOption string) (string, error) {
	prompt := fmt.Sprintf(`Explain why the answer to the following question is %s:

Question: %s

The user selected: %s
The correct answer is: %s

Provide a clear, educational explanation of why the correct answer is right and why the user's answer (if different) is wrong. Include relevant concepts and examples to help reinforce understanding.

Format your response as markdown with:
- Clear headings (## for main sections)
- Bullet points for key concepts
- **Bold** for important terms
- Code examples in code blocks if relevant
- A summary at the end`, correctOption, question, selectedOption, correctOption)

	explanation, err := s.generator.Generate(ctx, []Message{UserMessage(prompt)}, GenerationOptions{
		Temperature:     0.7,
		MaxOutputTokens: 512,
	})
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("explanation", "error").Inc()
		return "", err
	}
	monitoring.GenerationCounter.WithLabelValues("explanation", "ok").Inc()
	return explanation, nil
}

// Reinforcement generates follow-up questions for a concept the learner
// struggled with. An unrecoverable completion is a typed failure here,
// not a stub: reinforcement is an enrichment the caller can skip.
func (s *QuizService) Reinforcement(ctx context.Context, question, selectedOption, correctOption, subject string) ([]model.Question, error) {
	prompt := buildReinforcementPrompt(question, selectedOption, correctOption, subject)
	raw, err := s.generator.Generate(ctx, []Message{JSONPrompt(prompt)}, GenerationOptions{
		Temperature:     0.7,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("reinforcement", "error").Inc()
		return nil, err
	}
	monitoring.GenerationCounter.WithLabelValues("reinforcement", "ok").Inc()

	questions, err := repair.RecoverQuestionArray(raw)
	if errors.Is(err, repair.ErrUnrecoverable) {
		return nil, util.ErrUnparsableResponse
	}
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func buildQuizPrompt(subject, courseContent string) string {
	return fmt.Sprintf(`Generate an assessment quiz for a %s course based on the following content:

%s

Create a quiz with 10 multiple-choice questions (MCQs) with the following distribution:
1. 4 theory/concept-related MCQs that test understanding of basic concepts and terminology
2. 4 code/syntax-related MCQs that test understanding of programming syntax and structure
3. 2 problem-solving and practical usage MCQs that test application of concepts

Each MCQ should have 4 options with exactly one correct answer.

Format your response as a structured JSON object with the following format:
{
  "title": "Quiz title",
  "questions": [
    {
      "type": "mcq",
      "category": "theory",
      "question": "Question text",
      "options": [
        {"id": "a", "text": "Option A", "isCorrect": false},
        {"id": "b", "text": "Option B", "isCorrect": true},
        {"id": "c", "text": "Option C", "isCorrect": false},
        {"id": "d", "text": "Option D", "isCorrect": false}
      ],
      "explanation": "Explanation of the correct answer"
    }
  ]
}

Make sure the questions are directly related to the content provided.
The passing score for this assessment is 50%%.
IMPORTANT: Return ONLY the JSON object with no additional text, markdown formatting, or code blocks.`, subject, courseContent)
}

func buildCheckCodePrompt(code, language string, testCases []string) string {
	var cases strings.Builder
	for _, tc := range testCases {
		fmt.Fprintf(&cases, "- %s\n", tc)
	}
	return fmt.Sprintf(`Evaluate the following %s code:

%s

Test cases:
%s
Analyze the code and determine if it passes all test cases. Provide:
1. Whether the code passes all test cases (true/false)
2. Detailed feedback explaining any issues or suggesting improvements
3. If there are errors, explain how to fix them

Format your feedback as markdown with:
- Clear headings (## for sections)
- Code examples in code blocks
- Bullet points for issues
- **Bold** for important points
- A summary of suggestions at the end

Format your response as a structured JSON object with the following format:
{
  "passed": true/false,
  "feedback": "Detailed markdown feedback here..."
}`, language, code, cases.String())
}

func buildGradeTheoryPrompt(question, answer string, criteria []string, maxScore float64) string {
	var crit strings.Builder
	for _, c := range criteria {
		fmt.Fprintf(&crit, "- %s\n", c)
	}
	return fmt.Sprintf(`Grade the following answer to a theory question:

Question: %s

Answer: %s

Grading criteria:
%s
Maximum score: %g

Provide:
1. A numerical score out of %g
2. Detailed feedback explaining the strengths and weaknesses of the answer
3. Suggestions for improvement

Format your feedback as markdown with:
- Clear headings (## for sections)
- Bullet points for strengths and weaknesses
- **Bold** for important points
- A summary of suggestions at the end

Format your response as a structured JSON object with the following format:
{
  "score": 7,
  "feedback": "Detailed markdown feedback here..."
}`, question, answer, crit.String(), maxScore, maxScore)
}

func buildReinforcementPrompt(question, selectedOption, correctOption, subject string) string {
	return fmt.Sprintf(`Generate 2 reinforcement multiple-choice questions related to the following concept that the user is struggling with:

Original question: %s
User's incorrect answer: %s
Correct answer: %s
Subject: %s

Create questions that will help reinforce the concept and address the user's misunderstanding. Format your response as a structured JSON array with the following format:
[
  {
    "id": "r1",
    "question": "Question text",
    "options": [
      {"id": "a", "text": "Option A", "isCorrect": false},
      {"id": "b", "text": "Option B", "isCorrect": true},
      {"id": "c", "text": "Option C", "isCorrect": false},
      {"id": "d", "text": "Option D", "isCorrect": false}
    ]
  }
]`, question, selectedOption, correctOption, subject)
}
