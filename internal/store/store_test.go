package store

import (
	"context"
	"sync"
	"testing"

	"ai_course_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	mu    sync.Mutex
	snaps map[string]model.Snapshot
	saves int
}

func newMemPersister() *memPersister {
	return &memPersister{snaps: map[string]model.Snapshot{}}
}

func (p *memPersister) Save(_ context.Context, learnerID string, snap model.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
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

func contentsOf(n int) []model.CourseContent {
	out := make([]model.CourseContent, n)
	for i := range out {
		out[i] = model.CourseContent{ID: model.GenerateUUID(), Title: "Topic", Order: i}
	}
	return out
}

func TestMarkTopicCompletedIdempotent(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	st.EnrollInCourse(ctx, "python")

	st.MarkTopicCompleted(ctx, "python", "Variables")
	st.MarkTopicCompleted(ctx, "python", "Variables")

	prog := st.View().CourseProgress["python"]
	require.NotNil(t, prog)
	assert.Equal(t, []string{"Variables"}, prog.CompletedTopics)
}

func TestMarkAssessmentPassedIdempotent(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	st.EnrollInCourse(ctx, "python")

	st.MarkAssessmentPassed(ctx, "python", "assess-1")
	st.MarkAssessmentPassed(ctx, "python", "assess-1")

	prog := st.View().CourseProgress["python"]
	assert.Equal(t, []string{"assess-1"}, prog.PassedAssessments)
}

func TestSetCurrentContentIndexRejectsOutOfBounds(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	st.SetCourseContents(ctx, contentsOf(3))

	st.SetCurrentContentIndex(ctx, 5, "python")
	assert.Equal(t, 0, st.View().CurrentContentIndex)

	st.SetCurrentContentIndex(ctx, -1, "python")
	assert.Equal(t, 0, st.View().CurrentContentIndex)

	st.SetCurrentContentIndex(ctx, 2, "")
	assert.Equal(t, 0, st.View().CurrentContentIndex)
}

func TestSetCurrentContentIndexKeepsProgressInSync(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	st.SetCourseContents(ctx, contentsOf(3))

	st.SetCurrentContentIndex(ctx, 2, "python")

	view := st.View()
	assert.Equal(t, 2, view.CurrentContentIndex)
	assert.Equal(t, 2, view.CourseProgress["python"].CurrentTopic)
}

func TestLoadSavedProgressClampsStaleIndex(t *testing.T) {
	// Saved currentTopic=5 against 3 contents must clamp to 2 and
	// persist the clamp.
	ctx := context.Background()
	p := newMemPersister()
	st := NewStore("l1", NewState(), p, nil)
	st.EnrollInCourse(ctx, "python")

	// Force a stale saved index directly through the reducer path.
	st.apply(ctx, true, func(s State) (State, bool) {
		out := s.clone()
		out.progressFor("python", true).CurrentTopic = 5
		return out, true
	})

	st.SetCourseContents(ctx, contentsOf(3))
	restored := st.LoadSavedProgress(ctx, "python")

	view := st.View()
	assert.True(t, restored)
	assert.Equal(t, 2, view.CurrentContentIndex)
	assert.Equal(t, 2, view.CourseProgress["python"].CurrentTopic)

	snap, err := p.Load(ctx, "l1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 2, snap.CourseProgress["python"].CurrentTopic)
}

func TestLoadSavedProgressRestoresPosition(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	st.SetCourseContents(ctx, contentsOf(4))
	st.SetCurrentContentIndex(ctx, 2, "python")

	// Simulate re-entry: transient index resets, progress survives.
	st.SetCurrentSubject(ctx, "python")
	st.SetCourseContents(ctx, contentsOf(4))

	assert.Equal(t, 0, st.View().CurrentContentIndex)
	assert.True(t, st.LoadSavedProgress(ctx, "python"))
	assert.Equal(t, 2, st.View().CurrentContentIndex)

	// A second call from the same position reports nothing restored.
	assert.False(t, st.LoadSavedProgress(ctx, "python"))
}

func TestLoadSavedProgressWithoutContents(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	st.EnrollInCourse(ctx, "python")

	assert.False(t, st.LoadSavedProgress(ctx, "python"))
	assert.False(t, st.LoadSavedProgress(ctx, ""))
}

func TestEnrollUnenroll(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)

	st.EnrollInCourse(ctx, "python")
	st.EnrollInCourse(ctx, "python")
	view := st.View()
	assert.Equal(t, []string{"python"}, view.EnrolledCourses)
	require.NotNil(t, view.CourseProgress["python"])

	st.UnenrollFromCourse(ctx, "python")
	view = st.View()
	assert.Empty(t, view.EnrolledCourses)
	assert.NotContains(t, view.CourseProgress, "python")
}

func TestSetCurrentSubjectKeepsProgress(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	st.EnrollInCourse(ctx, "python")
	st.SetCourseContents(ctx, contentsOf(2))
	st.SetCurrentContentIndex(ctx, 1, "python")

	st.SetCurrentSubject(ctx, "javascript")

	view := st.View()
	assert.Equal(t, "javascript", view.CurrentSubject)
	assert.Empty(t, view.CourseContents)
	assert.Equal(t, 0, view.CurrentContentIndex)
	assert.Equal(t, 1, view.CourseProgress["python"].CurrentTopic)
}

func TestHasPassedCurrentAssessment(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	st.EnrollInCourse(ctx, "python")

	assert.False(t, st.HasPassedCurrentAssessment("python"))

	st.SetAssessment(ctx, &model.Assessment{ID: "a1", Subject: "python"})
	assert.False(t, st.HasPassedCurrentAssessment("python"))

	st.MarkAssessmentPassed(ctx, "python", "a1")
	assert.True(t, st.HasPassedCurrentAssessment("python"))

	// A fresh assessment resets the gate.
	st.SetAssessment(ctx, &model.Assessment{ID: "a2", Subject: "python"})
	assert.False(t, st.HasPassedCurrentAssessment("python"))
}

func TestResetAssessmentClearsAnswers(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	ok := true
	st.SetAssessment(ctx, &model.Assessment{ID: "a1"})
	st.SetUserAnswer(ctx, "q1", model.UserAnswer{QuestionID: "q1", Answer: "x", IsCorrect: &ok})

	st.ResetAssessment(ctx)

	view := st.View()
	assert.Nil(t, view.Assessment)
	assert.Empty(t, view.UserAnswers)
}

func TestUpdateUserProfileNoChangeSkipsPersist(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	st := NewStore("l1", NewState(), p, nil)

	name := "Dana"
	st.UpdateUserProfile(ctx, model.ProfileUpdate{Name: &name})
	before := p.saves

	// An empty update and a same-name update must not write a snapshot.
	st.UpdateUserProfile(ctx, model.ProfileUpdate{})
	st.UpdateUserProfile(ctx, model.ProfileUpdate{Name: &name})

	assert.Equal(t, before, p.saves)
	require.NotNil(t, st.View().UserProfile)
	assert.Equal(t, "Dana", st.View().UserProfile.Name)
}

func TestPersistenceScopeAcrossRehydration(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	st := NewStore("l1", NewState(), p, nil)

	name := "Dana"
	st.UpdateUserProfile(ctx, model.ProfileUpdate{Name: &name})
	st.EnrollInCourse(ctx, "python")
	st.SetCourseContents(ctx, contentsOf(3))
	st.SetCurrentContentIndex(ctx, 1, "python")
	st.SetAssessment(ctx, &model.Assessment{ID: "a1"})
	st.AddChatMessage(ctx, "user", "hello")

	// Simulate a reload through the manager.
	mgr := NewManager(p, nil)
	st2, err := mgr.Get(ctx, "l1")
	require.NoError(t, err)

	view := st2.View()
	require.NotNil(t, view.UserProfile)
	assert.Equal(t, "Dana", view.UserProfile.Name)
	assert.Equal(t, []string{"python"}, view.EnrolledCourses)
	assert.Equal(t, 1, view.CourseProgress["python"].CurrentTopic)

	// Transient state must reset to defaults.
	assert.Nil(t, view.Assessment)
	assert.Empty(t, view.ChatMessages)
	assert.Empty(t, view.CourseContents)
	assert.Equal(t, 0, view.CurrentContentIndex)
}

func TestManagerReturnsSameStore(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(newMemPersister(), nil)

	a, err := mgr.Get(ctx, "l1")
	require.NoError(t, err)
	b, err := mgr.Get(ctx, "l1")
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := mgr.Get(ctx, "l2")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestViewIsACopy(t *testing.T) {
	ctx := context.Background()
	st := NewStore("l1", NewState(), newMemPersister(), nil)
	st.EnrollInCourse(ctx, "python")

	view := st.View()
	view.CourseProgress["python"].CompletedTopics = append(view.CourseProgress["python"].CompletedTopics, "hacked")

	assert.Empty(t, st.View().CourseProgress["python"].CompletedTopics)
}
