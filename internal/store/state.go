package store

import "ai_course_backend/internal/model"

// State is one learner's complete learning state. Values are treated as
// immutable: reducers clone before mutating and return a new snapshot.
// Only the Snapshot subset survives rehydration; the rest is
// process-lifetime.
type State struct {
	UserProfile     *model.UserProfile
	CourseProgress  map[string]*model.SubjectProgress
	EnrolledCourses []string

	CurrentSubject      string
	CourseContents      []model.CourseContent
	CurrentContentIndex int
	CourseTopics        []model.CourseTopic

	Assessment  *model.Assessment
	UserAnswers map[string]model.UserAnswer

	ChatMessages []model.ChatMessage
}

func NewState() State {
	return State{
		CourseProgress:  map[string]*model.SubjectProgress{},
		EnrolledCourses: []string{},
		UserAnswers:     map[string]model.UserAnswer{},
	}
}

// FromSnapshot rebuilds state from the persisted subset. Everything
// transient starts from defaults, matching reload semantics.
func FromSnapshot(snap *model.Snapshot) State {
	s := NewState()
	if snap == nil {
		return s
	}
	if snap.UserProfile != nil {
		p := *snap.UserProfile
		s.UserProfile = &p
	}
	for subject, prog := range snap.CourseProgress {
		if prog == nil {
			continue
		}
		cp := cloneProgress(prog)
		s.CourseProgress[subject] = cp
	}
	if len(snap.EnrolledCourses) > 0 {
		s.EnrolledCourses = append([]string{}, snap.EnrolledCourses...)
	}
	return s
}

// SnapshotView extracts the persisted subset.
func (s State) SnapshotView() model.Snapshot {
	snap := model.Snapshot{
		CourseProgress:  map[string]*model.SubjectProgress{},
		EnrolledCourses: append([]string{}, s.EnrolledCourses...),
	}
	if s.UserProfile != nil {
		p := *s.UserProfile
		snap.UserProfile = &p
	}
	for subject, prog := range s.CourseProgress {
		snap.CourseProgress[subject] = cloneProgress(prog)
	}
	return snap
}

func cloneProgress(p *model.SubjectProgress) *model.SubjectProgress {
	cp := &model.SubjectProgress{
		CurrentTopic:       p.CurrentTopic,
		CompletedTopics:    append([]string{}, p.CompletedTopics...),
		TestScores:         map[string]float64{},
		NeedsReinforcement: append([]string{}, p.NeedsReinforcement...),
		PassedAssessments:  append([]string{}, p.PassedAssessments...),
	}
	for k, v := range p.TestScores {
		cp.TestScores[k] = v
	}
	return cp
}

func (s State) clone() State {
	out := s
	out.CourseProgress = map[string]*model.SubjectProgress{}
	for subject, prog := range s.CourseProgress {
		out.CourseProgress[subject] = cloneProgress(prog)
	}
	out.EnrolledCourses = append([]string{}, s.EnrolledCourses...)
	out.CourseContents = append([]model.CourseContent{}, s.CourseContents...)
	out.CourseTopics = append([]model.CourseTopic{}, s.CourseTopics...)
	out.UserAnswers = map[string]model.UserAnswer{}
	for k, v := range s.UserAnswers {
		out.UserAnswers[k] = v
	}
	out.ChatMessages = append([]model.ChatMessage{}, s.ChatMessages...)
	if s.UserProfile != nil {
		p := *s.UserProfile
		out.UserProfile = &p
	}
	if s.Assessment != nil {
		a := *s.Assessment
		a.Questions = append([]model.Question{}, s.Assessment.Questions...)
		out.Assessment = &a
	}
	return out
}

// progressFor returns the subject's progress entry, creating a default
// one when create is set. Operates on an already-cloned state.
func (s *State) progressFor(subject string, create bool) *model.SubjectProgress {
	if p, ok := s.CourseProgress[subject]; ok {
		return p
	}
	if !create {
		return nil
	}
	p := model.NewSubjectProgress()
	s.CourseProgress[subject] = p
	return p
}
