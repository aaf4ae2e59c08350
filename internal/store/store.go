package store

import (
	"ai_course_backend/internal/model"
	"context"
	"sync"

	"go.uber.org/zap"
)

// Persister saves and loads the durable subset of a learner's state.
type Persister interface {
	Save(ctx context.Context, learnerID string, snap model.Snapshot) error
	Load(ctx context.Context, learnerID string) (*model.Snapshot, error)
}

// Store owns one learner's state. All mutations go through reducers
// under the mutex (single writer); mutations touching the persisted
// subset are written through to the Persister.
type Store struct {
	mu        sync.Mutex
	learnerID string
	state     State
	persister Persister
	logger    *zap.Logger
}

func NewStore(learnerID string, initial State, persister Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		learnerID: learnerID,
		state:     initial,
		persister: persister,
		logger:    logger,
	}
}

func (st *Store) LearnerID() string {
	return st.learnerID
}

// View returns a copy of the current state for reading.
func (st *Store) View() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.clone()
}

func (st *Store) apply(ctx context.Context, persist bool, reduce func(State) (State, bool)) bool {
	st.mu.Lock()
	next, changed := reduce(st.state)
	if changed {
		st.state = next
	}
	var snap model.Snapshot
	if changed && persist {
		snap = st.state.SnapshotView()
	}
	st.mu.Unlock()

	if changed && persist && st.persister != nil {
		if err := st.persister.Save(ctx, st.learnerID, snap); err != nil {
			st.logger.Error("failed to persist snapshot",
				zap.String("learner_id", st.learnerID),
				zap.Error(err))
		}
	}
	return changed
}

func (st *Store) SetUserProfile(ctx context.Context, profile model.UserProfile) {
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceSetUserProfile(s, profile)
	})
}

func (st *Store) UpdateUserProfile(ctx context.Context, update model.ProfileUpdate) {
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceUpdateUserProfile(s, st.learnerID, update)
	})
}

func (st *Store) UpdateLearningPreferences(ctx context.Context, update model.PreferencesUpdate) {
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceUpdateLearningPreferences(s, st.learnerID, update)
	})
}

func (st *Store) SetCurrentSubject(ctx context.Context, subject string) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceSetCurrentSubject(s, subject)
	})
}

func (st *Store) SetCourseContents(ctx context.Context, contents []model.CourseContent) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceSetCourseContents(s, contents)
	})
}

func (st *Store) AppendCourseContent(ctx context.Context, content model.CourseContent) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceAppendCourseContent(s, content)
	})
}

func (st *Store) ReplaceContentAt(ctx context.Context, index int, content model.CourseContent) bool {
	return st.apply(ctx, false, func(s State) (State, bool) {
		return reduceReplaceContentAt(s, index, content)
	})
}

func (st *Store) SetCurrentContentIndex(ctx context.Context, index int, subject string) {
	changed := st.apply(ctx, true, func(s State) (State, bool) {
		return reduceSetCurrentContentIndex(s, index, subject)
	})
	if !changed {
		st.logger.Debug("content index update ignored",
			zap.Int("index", index),
			zap.String("subject", subject))
	}
}

// LoadSavedProgress restores the saved position for a subject and
// reports whether the position moved, the signal for showing a
// "progress restored" notice.
func (st *Store) LoadSavedProgress(ctx context.Context, subject string) bool {
	before := st.View().CurrentContentIndex
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceLoadSavedProgress(s, subject)
	})
	return st.View().CurrentContentIndex != before
}

func (st *Store) EnrollInCourse(ctx context.Context, courseID string) {
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceEnrollInCourse(s, courseID)
	})
}

func (st *Store) UnenrollFromCourse(ctx context.Context, courseID string) {
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceUnenrollFromCourse(s, courseID)
	})
}

func (st *Store) MarkTopicCompleted(ctx context.Context, subject, topicTitle string) {
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceMarkTopicCompleted(s, subject, topicTitle)
	})
}

func (st *Store) SaveTestScore(ctx context.Context, subject, testID string, score float64) {
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceSaveTestScore(s, subject, testID, score)
	})
}

func (st *Store) MarkAssessmentPassed(ctx context.Context, subject, assessmentID string) {
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceMarkAssessmentPassed(s, subject, assessmentID)
	})
}

// HasPassedCurrentAssessment is the sole gate checked before topic
// advancement.
func (st *Store) HasPassedCurrentAssessment(subject string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.state.Assessment == nil {
		return false
	}
	prog, ok := st.state.CourseProgress[subject]
	if !ok {
		return false
	}
	return contains(prog.PassedAssessments, st.state.Assessment.ID)
}

func (st *Store) SaveCourseProgress(ctx context.Context, subject string) {
	st.apply(ctx, true, func(s State) (State, bool) {
		return reduceSaveCourseProgress(s, subject)
	})
}

func (st *Store) SetCourseTopics(ctx context.Context, topics []model.CourseTopic) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceSetCourseTopics(s, topics)
	})
}

func (st *Store) AppendCourseTopic(ctx context.Context, topic model.CourseTopic) bool {
	return st.apply(ctx, false, func(s State) (State, bool) {
		return reduceAppendCourseTopic(s, topic)
	})
}

func (st *Store) UpdateCourseTopic(ctx context.Context, topicID string, completed bool) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceUpdateCourseTopic(s, topicID, completed)
	})
}

func (st *Store) SetAssessment(ctx context.Context, assessment *model.Assessment) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceSetAssessment(s, assessment)
	})
}

func (st *Store) SetUserAnswer(ctx context.Context, questionID string, answer model.UserAnswer) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceSetUserAnswer(s, questionID, answer)
	})
}

func (st *Store) ResetAssessment(ctx context.Context) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceResetAssessment(s)
	})
}

func (st *Store) AddChatMessage(ctx context.Context, role, content string) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceAddChatMessage(s, role, content)
	})
}

func (st *Store) ResetChat(ctx context.Context) {
	st.apply(ctx, false, func(s State) (State, bool) {
		return reduceResetChat(s)
	})
}
