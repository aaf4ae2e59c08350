package service

import (
	"ai_course_backend/internal/curriculum"
	"ai_course_backend/internal/model"
	"ai_course_backend/internal/store"
	"ai_course_backend/internal/util"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Navigation refusal reasons. Refusals are guarded no-ops with explicit
// flags, not errors.
const (
	ReasonAssessmentRequired  = "assessment_required"
	ReasonAssessmentNotPassed = "assessment_not_passed"
	ReasonAtBeginning         = "at_beginning"
)

type StartResult struct {
	Contents     []model.CourseContent `json:"contents"`
	Topics       []model.CourseTopic   `json:"topics"`
	CurrentIndex int                   `json:"currentIndex"`
	Restored     bool                  `json:"restored"`
}

type NavigationResult struct {
	Allowed      bool                 `json:"allowed"`
	Reason       string               `json:"reason,omitempty"`
	Content      *model.CourseContent `json:"content,omitempty"`
	CurrentIndex int                  `json:"currentIndex"`
}

// AnswerRequest is one answer submission for the active assessment.
type AnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
	OptionID   string `json:"optionId"`
}

// CourseService bridges the progress store and the generation services:
// it decides what to generate next and feeds results back. Every write
// is keyed by the subject captured at request time, so a slow response
// landing after navigation cannot touch another subject's state.
type CourseService struct {
	stores  *store.Manager
	content *ContentService
	quiz    *QuizService
	logger  *zap.Logger
}

func NewCourseService(stores *store.Manager, content *ContentService, quiz *QuizService, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{stores: stores, content: content, quiz: quiz, logger: logger}
}

// StartSubject enters a subject: builds the topic index from the fixed
// curriculum, generates the first lesson, and restores saved progress.
func (s *CourseService) StartSubject(ctx context.Context, learnerID, subject string) (StartResult, error) {
	st, err := s.stores.Get(ctx, learnerID)
	if err != nil {
		return StartResult{}, err
	}

	st.SetCurrentSubject(ctx, subject)
	st.ResetChat(ctx)
	st.ResetAssessment(ctx)

	if titles := curriculum.Topics(subject); len(titles) > 0 {
		now := time.Now().UnixMilli()
		topics := make([]model.CourseTopic, len(titles))
		for i, title := range titles {
			topics[i] = model.CourseTopic{
				ID:          fmt.Sprintf("%s-topic-%d-%d", subject, i, now),
				Title:       title,
				Description: fmt.Sprintf("Learn about %s in this comprehensive lesson.", title),
				Order:       i,
			}
		}
		st.SetCourseTopics(ctx, topics)
	}

	view := st.View()
	first, err := s.content.Generate(ctx, learnerID, subject, curriculum.FirstTopic(subject), view.UserProfile, nil)
	if err != nil {
		return StartResult{}, err
	}
	st.SetCourseContents(ctx, []model.CourseContent{first})

	restored := st.LoadSavedProgress(ctx, subject)
	if restored {
		s.logger.Info("restored saved progress",
			zap.String("learner_id", learnerID),
			zap.String("subject", subject))
	}

	view = st.View()
	return StartResult{
		Contents:     view.CourseContents,
		Topics:       view.CourseTopics,
		CurrentIndex: view.CurrentContentIndex,
		Restored:     restored,
	}, nil
}

// NextTopic advances to the next lesson, gated on the current
// assessment: one must exist and be passed. At the end of generated
// content the next curriculum topic is generated and appended.
func (s *CourseService) NextTopic(ctx context.Context, learnerID, subject string) (NavigationResult, error) {
	st, err := s.stores.Get(ctx, learnerID)
	if err != nil {
		return NavigationResult{}, err
	}

	view := st.View()
	result := NavigationResult{CurrentIndex: view.CurrentContentIndex}

	if view.Assessment == nil {
		result.Reason = ReasonAssessmentRequired
		return result, nil
	}
	if !st.HasPassedCurrentAssessment(subject) {
		result.Reason = ReasonAssessmentNotPassed
		return result, nil
	}
	if len(view.CourseContents) == 0 {
		return result, util.ErrNoCourseContent
	}

	current := view.CourseContents[view.CurrentContentIndex]
	st.MarkTopicCompleted(ctx, subject, current.Title)

	nextIndex := view.CurrentContentIndex + 1
	if nextIndex >= len(view.CourseContents) {
		title := curriculum.NextTopicTitle(subject, view.CurrentContentIndex)
		next, err := s.content.Generate(ctx, learnerID, subject, title, view.UserProfile, &current)
		if err != nil {
			return NavigationResult{CurrentIndex: view.CurrentContentIndex}, err
		}

		st.AppendCourseContent(ctx, next)
		description := next.Content
		if len(description) > 100 {
			description = description[:100] + "..."
		}
		st.AppendCourseTopic(ctx, model.CourseTopic{
			ID:          fmt.Sprintf("topic-%d", time.Now().UnixMilli()),
			Title:       next.Title,
			Description: description,
			Order:       len(view.CourseTopics),
		})
	}

	st.SetCurrentContentIndex(ctx, nextIndex, subject)
	st.SaveCourseProgress(ctx, subject)
	st.ResetAssessment(ctx)

	after := st.View()
	content := after.CourseContents[after.CurrentContentIndex]
	return NavigationResult{
		Allowed:      true,
		Content:      &content,
		CurrentIndex: after.CurrentContentIndex,
	}, nil
}

// PreviousTopic steps back one lesson. Completed topics stay accessible;
// no gate applies going backwards.
func (s *CourseService) PreviousTopic(ctx context.Context, learnerID, subject string) (NavigationResult, error) {
	st, err := s.stores.Get(ctx, learnerID)
	if err != nil {
		return NavigationResult{}, err
	}

	view := st.View()
	if view.CurrentContentIndex == 0 {
		return NavigationResult{Reason: ReasonAtBeginning, CurrentIndex: 0}, nil
	}

	st.SetCurrentContentIndex(ctx, view.CurrentContentIndex-1, subject)
	st.SaveCourseProgress(ctx, subject)
	st.ResetAssessment(ctx)

	after := st.View()
	content := after.CourseContents[after.CurrentContentIndex]
	return NavigationResult{
		Allowed:      true,
		Content:      &content,
		CurrentIndex: after.CurrentContentIndex,
	}, nil
}

// RegenerateCurrent replaces the current lesson's text in place. Same
// title, same order, no index movement, no new topic entry. Confirmation
// has already happened in the chat flow by the time this is called.
func (s *CourseService) RegenerateCurrent(ctx context.Context, learnerID, subject, userMessage string) (model.CourseContent, error) {
	st, err := s.stores.Get(ctx, learnerID)
	if err != nil {
		return model.CourseContent{}, err
	}

	view := st.View()
	if len(view.CourseContents) == 0 {
		return model.CourseContent{}, util.ErrNoCourseContent
	}
	index := view.CurrentContentIndex
	current := view.CourseContents[index]

	regenerated, err := s.content.Regenerate(ctx, learnerID, subject, userMessage, view.UserProfile, current)
	if err != nil {
		return model.CourseContent{}, err
	}

	st.ReplaceContentAt(ctx, index, regenerated)
	return regenerated, nil
}

// GenerateAssessment builds a fresh quiz for the current lesson and
// makes it the active assessment, fully replacing any previous attempt.
func (s *CourseService) GenerateAssessment(ctx context.Context, learnerID, subject string) (*model.Assessment, error) {
	st, err := s.stores.Get(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	view := st.View()
	if len(view.CourseContents) == 0 {
		return nil, util.ErrNoCourseContent
	}
	current := view.CourseContents[view.CurrentContentIndex]

	assessment := s.quiz.GenerateQuiz(ctx, subject, current.Title, current.Content)
	st.SetAssessment(ctx, assessment)
	return assessment, nil
}

// SubmitAnswer grades one answer: mcq locally against the options,
// theory and coding out of band through the generator.
func (s *CourseService) SubmitAnswer(ctx context.Context, learnerID string, req AnswerRequest) (model.UserAnswer, error) {
	st, err := s.stores.Get(ctx, learnerID)
	if err != nil {
		return model.UserAnswer{}, err
	}

	view := st.View()
	if view.Assessment == nil {
		return model.UserAnswer{}, util.ErrNoActiveAssessment
	}

	var question *model.Question
	for i := range view.Assessment.Questions {
		if view.Assessment.Questions[i].ID == req.QuestionID {
			question = &view.Assessment.Questions[i]
			break
		}
	}
	if question == nil {
		return model.UserAnswer{}, util.ErrQuestionNotFound
	}

	answer := model.UserAnswer{QuestionID: req.QuestionID, Answer: req.Answer}

	switch question.Type {
	case model.QuestionTypeMCQ:
		selected := req.OptionID
		if selected == "" {
			selected = req.Answer
		}
		correct := false
		if opt := question.CorrectOption(); opt != nil {
			correct = opt.ID == selected
		}
		answer.Answer = selected
		answer.IsCorrect = &correct

	case model.QuestionTypeTheory:
		grading, err := s.quiz.GradeTheory(ctx, question.Question, req.Answer, question.Criteria, question.MaxScore)
		if err != nil {
			return model.UserAnswer{}, err
		}
		answer.Score = &grading.Score
		answer.MaxScore = question.MaxScore
		answer.Feedback = grading.Feedback

	case model.QuestionTypeCoding:
		check, err := s.quiz.CheckCode(ctx, req.Answer, question.Language, question.TestCases)
		if err != nil {
			return model.UserAnswer{}, err
		}
		answer.IsCorrect = &check.Passed
		answer.Feedback = check.Feedback

	default:
		return model.UserAnswer{}, util.ErrQuestionNotFound
	}

	st.SetUserAnswer(ctx, req.QuestionID, answer)
	return answer, nil
}

// CompleteAssessment scores the attempt. A fully answered attempt has
// its score recorded pass or fail; a pass additionally records the
// assessment id and marks the current topic completed. All of that is
// idempotent, so closing the panel twice changes nothing.
func (s *CourseService) CompleteAssessment(ctx context.Context, learnerID, subject string) (store.AssessmentSummary, error) {
	st, err := s.stores.Get(ctx, learnerID)
	if err != nil {
		return store.AssessmentSummary{}, err
	}

	view := st.View()
	if view.Assessment == nil {
		return store.AssessmentSummary{}, util.ErrNoActiveAssessment
	}

	summary := store.Evaluate(view.Assessment, view.UserAnswers)
	// A fully answered attempt is recorded whether it passed or not;
	// only the pass marking and topic completion are gated on passing.
	if summary.AllAnswered {
		st.SaveTestScore(ctx, subject, view.Assessment.ID, float64(summary.Score))
	}
	if summary.Passed {
		st.MarkAssessmentPassed(ctx, subject, view.Assessment.ID)
		if len(view.CourseContents) > 0 {
			st.MarkTopicCompleted(ctx, subject, view.CourseContents[view.CurrentContentIndex].Title)
		}
		st.SaveCourseProgress(ctx, subject)
	}
	return summary, nil
}
