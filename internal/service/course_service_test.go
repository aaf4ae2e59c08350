package service

import (
	"ai_course_backend/internal/curriculum"
	"ai_course_backend/internal/model"
	"ai_course_backend/internal/store"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memPersister struct {
	mu    sync.Mutex
	snaps map[string]model.Snapshot
	saves int
}

func (p *memPersister) Save(_ context.Context, learnerID string, snap model.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snaps == nil {
		p.snaps = map[string]model.Snapshot{}
	}
	p.snaps[learnerID] = snap
	p.saves++
	return nil
}

func (p *memPersister) Load(_ context.Context, learnerID string) (*model.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap, ok := p.snaps[learnerID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func newCourseHarness(responses ...string) (*CourseService, *MockGenerator, *store.Manager, *memPersister) {
	gen := &MockGenerator{Responses: responses}
	persister := &memPersister{}
	stores := store.NewManager(persister, zap.NewNop())
	content := NewContentService(gen, nil, zap.NewNop())
	quiz := NewQuizService(gen, zap.NewNop())
	svc := NewCourseService(stores, content, quiz, zap.NewNop())
	return svc, gen, stores, persister
}

// passCurrentAssessment generates the fallback quiz (the scripted
// completion is not JSON) and answers both stub questions correctly.
func passCurrentAssessment(t *testing.T, svc *CourseService, learnerID, subject string) *model.Assessment {
	t.Helper()
	ctx := context.Background()

	assessment, err := svc.GenerateAssessment(ctx, learnerID, subject)
	require.NoError(t, err)
	require.Len(t, assessment.Questions, 2)

	for _, q := range assessment.Questions {
		answer, err := svc.SubmitAnswer(ctx, learnerID, AnswerRequest{
			QuestionID: q.ID,
			OptionID:   "b",
		})
		require.NoError(t, err)
		require.NotNil(t, answer.IsCorrect)
		require.True(t, *answer.IsCorrect)
	}

	summary, err := svc.CompleteAssessment(ctx, learnerID, subject)
	require.NoError(t, err)
	require.True(t, summary.Passed)
	require.Equal(t, 100, summary.Score)
	return assessment
}

func TestStartSubjectGeneratesFirstLesson(t *testing.T) {
	svc, gen, _, _ := newCourseHarness("# Variables\n\nLesson text.")

	result, err := svc.StartSubject(context.Background(), "learner-1", "python")
	require.NoError(t, err)

	require.Len(t, result.Contents, 1)
	assert.Equal(t, curriculum.FirstTopic("python"), result.Contents[0].Title)
	assert.Equal(t, "# Variables\n\nLesson text.", result.Contents[0].Content)
	assert.Equal(t, 0, result.CurrentIndex)
	assert.False(t, result.Restored)
	assert.Len(t, result.Topics, len(curriculum.Topics("python")))
	assert.Equal(t, 1, gen.CallCount())
}

func TestStartSubjectGenerationError(t *testing.T) {
	svc, gen, _, _ := newCourseHarness()
	gen.Err = errors.New("upstream down")

	_, err := svc.StartSubject(context.Background(), "learner-1", "python")
	assert.Error(t, err)
}

func TestNextTopicRequiresAssessment(t *testing.T) {
	svc, _, _, _ := newCourseHarness("lesson one")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)

	result, err := svc.NextTopic(ctx, "learner-1", "python")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonAssessmentRequired, result.Reason)
	assert.Equal(t, 0, result.CurrentIndex)
}

func TestNextTopicRequiresPass(t *testing.T) {
	svc, _, _, _ := newCourseHarness("lesson one", "not json")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)

	_, err = svc.GenerateAssessment(ctx, "learner-1", "python")
	require.NoError(t, err)

	result, err := svc.NextTopic(ctx, "learner-1", "python")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonAssessmentNotPassed, result.Reason)
}

func TestNextTopicAdvancesAfterPass(t *testing.T) {
	svc, _, stores, _ := newCourseHarness("lesson one", "not json", "lesson two")

	ctx := context.Background()
	start, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)
	firstTitle := start.Contents[0].Title

	passCurrentAssessment(t, svc, "learner-1", "python")

	result, err := svc.NextTopic(ctx, "learner-1", "python")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.CurrentIndex)
	require.NotNil(t, result.Content)
	assert.Equal(t, curriculum.NextTopicTitle("python", 0), result.Content.Title)

	st, err := stores.Get(ctx, "learner-1")
	require.NoError(t, err)
	view := st.View()

	assert.Len(t, view.CourseContents, 2)
	assert.Contains(t, view.CourseProgress["python"].CompletedTopics, firstTitle)
	assert.Equal(t, 1, view.CourseProgress["python"].CurrentTopic)
	// The title already exists in the curriculum index, so no duplicate.
	assert.Len(t, view.CourseTopics, len(curriculum.Topics("python")))
	// Advancing consumes the pass.
	assert.Nil(t, view.Assessment)
}

func TestNextTopicGenerationFailureKeepsPosition(t *testing.T) {
	svc, gen, stores, _ := newCourseHarness("lesson one", "not json")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)
	passCurrentAssessment(t, svc, "learner-1", "python")

	gen.Err = errors.New("upstream down")
	_, err = svc.NextTopic(ctx, "learner-1", "python")
	assert.Error(t, err)

	st, err := stores.Get(ctx, "learner-1")
	require.NoError(t, err)
	view := st.View()
	assert.Equal(t, 0, view.CurrentContentIndex)
	assert.Len(t, view.CourseContents, 1)
}

func TestPreviousTopicAtBeginning(t *testing.T) {
	svc, _, _, _ := newCourseHarness("lesson one")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)

	result, err := svc.PreviousTopic(ctx, "learner-1", "python")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonAtBeginning, result.Reason)
	assert.Equal(t, 0, result.CurrentIndex)
}

func TestPreviousTopicStepsBack(t *testing.T) {
	svc, _, stores, _ := newCourseHarness("lesson one", "not json", "lesson two")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)
	passCurrentAssessment(t, svc, "learner-1", "python")
	_, err = svc.NextTopic(ctx, "learner-1", "python")
	require.NoError(t, err)

	result, err := svc.PreviousTopic(ctx, "learner-1", "python")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 0, result.CurrentIndex)

	st, err := stores.Get(ctx, "learner-1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.View().CourseProgress["python"].CurrentTopic)
}

func TestRegenerateReplacesInPlace(t *testing.T) {
	svc, _, stores, _ := newCourseHarness("original lesson", "simplified lesson")

	ctx := context.Background()
	start, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)
	title := start.Contents[0].Title

	regenerated, err := svc.RegenerateCurrent(ctx, "learner-1", "python", "make simpler")
	require.NoError(t, err)
	assert.Equal(t, title, regenerated.Title)
	assert.Equal(t, "simplified lesson", regenerated.Content)

	st, err := stores.Get(ctx, "learner-1")
	require.NoError(t, err)
	view := st.View()
	require.Len(t, view.CourseContents, 1)
	assert.Equal(t, "simplified lesson", view.CourseContents[0].Content)
	assert.Equal(t, 0, view.CurrentContentIndex)
}

func TestSubmitAnswerWrongOption(t *testing.T) {
	svc, _, _, _ := newCourseHarness("lesson one", "not json")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)

	assessment, err := svc.GenerateAssessment(ctx, "learner-1", "python")
	require.NoError(t, err)

	answer, err := svc.SubmitAnswer(ctx, "learner-1", AnswerRequest{
		QuestionID: assessment.Questions[0].ID,
		OptionID:   "c",
	})
	require.NoError(t, err)
	require.NotNil(t, answer.IsCorrect)
	assert.False(t, *answer.IsCorrect)
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	svc, _, _, _ := newCourseHarness("lesson one", "not json")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)
	_, err = svc.GenerateAssessment(ctx, "learner-1", "python")
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, "learner-1", AnswerRequest{QuestionID: "nope", OptionID: "a"})
	assert.Error(t, err)
}

func TestCompleteAssessmentPersistsPass(t *testing.T) {
	svc, _, _, persister := newCourseHarness("lesson one", "not json")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)

	assessment := passCurrentAssessment(t, svc, "learner-1", "python")

	snap, err := persister.Load(ctx, "learner-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	prog := snap.CourseProgress["python"]
	require.NotNil(t, prog)
	assert.Contains(t, prog.PassedAssessments, assessment.ID)
	assert.Equal(t, float64(100), prog.TestScores[assessment.ID])
	assert.NotEmpty(t, prog.CompletedTopics)
}

func TestCompleteAssessmentRecordsFailingScore(t *testing.T) {
	svc, _, stores, _ := newCourseHarness("lesson one", "not json")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)

	assessment, err := svc.GenerateAssessment(ctx, "learner-1", "python")
	require.NoError(t, err)

	// Answer every question wrong; the attempt is complete but fails.
	for _, q := range assessment.Questions {
		_, err := svc.SubmitAnswer(ctx, "learner-1", AnswerRequest{
			QuestionID: q.ID,
			OptionID:   "c",
		})
		require.NoError(t, err)
	}

	summary, err := svc.CompleteAssessment(ctx, "learner-1", "python")
	require.NoError(t, err)
	assert.False(t, summary.Passed)
	assert.True(t, summary.AllAnswered)
	assert.Equal(t, 0, summary.Score)

	st, err := stores.Get(ctx, "learner-1")
	require.NoError(t, err)
	prog := st.View().CourseProgress["python"]
	require.NotNil(t, prog)

	// The failing score is recorded; nothing is pass-marked.
	require.Contains(t, prog.TestScores, assessment.ID)
	assert.Equal(t, float64(0), prog.TestScores[assessment.ID])
	assert.Empty(t, prog.PassedAssessments)
	assert.Empty(t, prog.CompletedTopics)
}

func TestCompleteAssessmentIsIdempotent(t *testing.T) {
	svc, _, stores, _ := newCourseHarness("lesson one", "not json")

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)
	passCurrentAssessment(t, svc, "learner-1", "python")

	summary, err := svc.CompleteAssessment(ctx, "learner-1", "python")
	require.NoError(t, err)
	assert.True(t, summary.Passed)

	st, err := stores.Get(ctx, "learner-1")
	require.NoError(t, err)
	prog := st.View().CourseProgress["python"]
	assert.Len(t, prog.PassedAssessments, 1)
	assert.Len(t, prog.CompletedTopics, 1)
}

func TestStartSubjectKeepsSavedProfile(t *testing.T) {
	persister := &memPersister{}
	name := "Ada"
	require.NoError(t, persister.Save(context.Background(), "learner-1", model.Snapshot{
		UserProfile: &model.UserProfile{
			ID:                  "learner-1",
			Name:                name,
			LearningPreferences: model.DefaultPreferences(),
		},
		CourseProgress: map[string]*model.SubjectProgress{},
	}))

	gen := &MockGenerator{Responses: []string{"lesson one"}}
	stores := store.NewManager(persister, zap.NewNop())
	svc := NewCourseService(stores, NewContentService(gen, nil, zap.NewNop()), NewQuizService(gen, zap.NewNop()), zap.NewNop())

	ctx := context.Background()
	_, err := svc.StartSubject(ctx, "learner-1", "python")
	require.NoError(t, err)

	st, err := stores.Get(ctx, "learner-1")
	require.NoError(t, err)
	require.NotNil(t, st.View().UserProfile)
	assert.Equal(t, name, st.View().UserProfile.Name)
}
