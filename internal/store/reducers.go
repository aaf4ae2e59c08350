package store

import "ai_course_backend/internal/model"

// Reducers are pure: they take a state value and return a new one plus
// a flag saying whether anything changed. Invalid input (bad index,
// empty subject) yields the input state unchanged rather than an error,
// so rapid navigation can never corrupt the store.

func reduceSetUserProfile(s State, profile model.UserProfile) (State, bool) {
	out := s.clone()
	out.UserProfile = &profile
	return out, true
}

func reduceUpdateUserProfile(s State, learnerID string, update model.ProfileUpdate) (State, bool) {
	out := s.clone()
	changed := false
	if out.UserProfile == nil {
		out.UserProfile = model.NewGuestProfile(learnerID)
		changed = true
	}
	if update.Name != nil && *update.Name != out.UserProfile.Name {
		out.UserProfile.Name = *update.Name
		changed = true
	}
	return out, changed
}

func reduceUpdateLearningPreferences(s State, learnerID string, update model.PreferencesUpdate) (State, bool) {
	out := s.clone()
	if out.UserProfile == nil {
		out.UserProfile = model.NewGuestProfile(learnerID)
	}
	prefs := &out.UserProfile.LearningPreferences
	if update.Difficulty != nil {
		prefs.Difficulty = *update.Difficulty
	}
	if update.Pacing != nil {
		prefs.Pacing = *update.Pacing
	}
	if update.ExplanationDetail != nil {
		prefs.ExplanationDetail = *update.ExplanationDetail
	}
	if update.ExamplePreference != nil {
		prefs.ExamplePreference = *update.ExamplePreference
	}
	if update.CustomPreferences != nil {
		prefs.CustomPreferences = *update.CustomPreferences
	}
	if update.FocusAreas != nil {
		prefs.FocusAreas = append([]string{}, (*update.FocusAreas)...)
	}
	return out, true
}

// reduceSetCurrentSubject switches the active subject and resets the
// transient content view. The subject's persisted progress is untouched.
func reduceSetCurrentSubject(s State, subject string) (State, bool) {
	out := s.clone()
	out.CurrentSubject = subject
	out.CourseContents = []model.CourseContent{}
	out.CurrentContentIndex = 0
	out.CourseTopics = []model.CourseTopic{}
	return out, true
}

func reduceSetCourseContents(s State, contents []model.CourseContent) (State, bool) {
	out := s.clone()
	out.CourseContents = append([]model.CourseContent{}, contents...)
	return out, true
}

func reduceAppendCourseContent(s State, content model.CourseContent) (State, bool) {
	out := s.clone()
	out.CourseContents = append(out.CourseContents, content)
	return out, true
}

func reduceReplaceContentAt(s State, index int, content model.CourseContent) (State, bool) {
	if index < 0 || index >= len(s.CourseContents) {
		return s, false
	}
	out := s.clone()
	out.CourseContents[index] = content
	return out, true
}

// reduceSetCurrentContentIndex updates the transient index and the
// persisted currentTopic for the subject together, so the two never
// diverge for the active subject. Out-of-range input is a silent no-op.
func reduceSetCurrentContentIndex(s State, index int, subject string) (State, bool) {
	if subject == "" || index < 0 || index >= len(s.CourseContents) {
		return s, false
	}
	out := s.clone()
	out.CurrentContentIndex = index
	out.progressFor(subject, true).CurrentTopic = index
	return out, true
}

// reduceLoadSavedProgress restores the saved position when entering a
// subject. A stale index beyond the loaded contents is clamped to the
// last valid position and the clamp is persisted. The flag reports
// whether the position moved.
func reduceLoadSavedProgress(s State, subject string) (State, bool) {
	if subject == "" || len(s.CourseContents) == 0 {
		return s, false
	}
	prog, ok := s.CourseProgress[subject]
	if !ok {
		return s, false
	}

	validIndex := prog.CurrentTopic
	if validIndex > len(s.CourseContents)-1 {
		validIndex = len(s.CourseContents) - 1
	}
	if validIndex < 0 {
		validIndex = 0
	}
	if validIndex == s.CurrentContentIndex && validIndex == prog.CurrentTopic {
		return s, false
	}

	out := s.clone()
	out.CurrentContentIndex = validIndex
	out.progressFor(subject, true).CurrentTopic = validIndex
	return out, true
}

func reduceEnrollInCourse(s State, courseID string) (State, bool) {
	out := s.clone()
	changed := false
	if !contains(out.EnrolledCourses, courseID) {
		out.EnrolledCourses = append(out.EnrolledCourses, courseID)
		changed = true
	}
	if _, ok := out.CourseProgress[courseID]; !ok {
		out.CourseProgress[courseID] = model.NewSubjectProgress()
		changed = true
	}
	return out, changed
}

func reduceUnenrollFromCourse(s State, courseID string) (State, bool) {
	out := s.clone()
	changed := false
	for i, id := range out.EnrolledCourses {
		if id == courseID {
			out.EnrolledCourses = append(out.EnrolledCourses[:i], out.EnrolledCourses[i+1:]...)
			changed = true
			break
		}
	}
	if _, ok := out.CourseProgress[courseID]; ok {
		delete(out.CourseProgress, courseID)
		changed = true
	}
	return out, changed
}

func reduceMarkTopicCompleted(s State, subject, topicTitle string) (State, bool) {
	if subject == "" || topicTitle == "" {
		return s, false
	}
	prog, ok := s.CourseProgress[subject]
	if ok && contains(prog.CompletedTopics, topicTitle) {
		return s, false
	}
	out := s.clone()
	p := out.progressFor(subject, true)
	p.CompletedTopics = append(p.CompletedTopics, topicTitle)
	for i := range out.CourseTopics {
		if out.CourseTopics[i].Title == topicTitle {
			out.CourseTopics[i].Completed = true
		}
	}
	return out, true
}

func reduceSaveTestScore(s State, subject, testID string, score float64) (State, bool) {
	if subject == "" || testID == "" {
		return s, false
	}
	out := s.clone()
	out.progressFor(subject, true).TestScores[testID] = score
	return out, true
}

func reduceMarkAssessmentPassed(s State, subject, assessmentID string) (State, bool) {
	if subject == "" || assessmentID == "" {
		return s, false
	}
	prog, ok := s.CourseProgress[subject]
	if ok && contains(prog.PassedAssessments, assessmentID) {
		return s, false
	}
	out := s.clone()
	p := out.progressFor(subject, true)
	p.PassedAssessments = append(p.PassedAssessments, assessmentID)
	return out, true
}

// reduceSaveCourseProgress mirrors the navigate-and-save path: it folds
// the topic index completion flags into the subject's persisted record
// and pins currentTopic to the transient index.
func reduceSaveCourseProgress(s State, subject string) (State, bool) {
	if subject == "" || len(s.CourseContents) == 0 {
		return s, false
	}
	out := s.clone()
	p := out.progressFor(subject, true)
	p.CurrentTopic = out.CurrentContentIndex
	for _, topic := range out.CourseTopics {
		if topic.Completed && !contains(p.CompletedTopics, topic.Title) {
			p.CompletedTopics = append(p.CompletedTopics, topic.Title)
		}
	}
	return out, true
}

func reduceSetCourseTopics(s State, topics []model.CourseTopic) (State, bool) {
	out := s.clone()
	out.CourseTopics = append([]model.CourseTopic{}, topics...)
	return out, true
}

func reduceAppendCourseTopic(s State, topic model.CourseTopic) (State, bool) {
	for _, t := range s.CourseTopics {
		if t.Title == topic.Title {
			return s, false
		}
	}
	out := s.clone()
	out.CourseTopics = append(out.CourseTopics, topic)
	return out, true
}

func reduceUpdateCourseTopic(s State, topicID string, completed bool) (State, bool) {
	out := s.clone()
	changed := false
	for i := range out.CourseTopics {
		if out.CourseTopics[i].ID == topicID && out.CourseTopics[i].Completed != completed {
			out.CourseTopics[i].Completed = completed
			changed = true
		}
	}
	return out, changed
}

func reduceSetAssessment(s State, assessment *model.Assessment) (State, bool) {
	out := s.clone()
	out.Assessment = assessment
	out.UserAnswers = map[string]model.UserAnswer{}
	return out, true
}

func reduceSetUserAnswer(s State, questionID string, answer model.UserAnswer) (State, bool) {
	if questionID == "" {
		return s, false
	}
	out := s.clone()
	out.UserAnswers[questionID] = answer
	return out, true
}

// reduceResetAssessment clears the active assessment and answers so no
// assessment state leaks across topics.
func reduceResetAssessment(s State) (State, bool) {
	if s.Assessment == nil && len(s.UserAnswers) == 0 {
		return s, false
	}
	out := s.clone()
	out.Assessment = nil
	out.UserAnswers = map[string]model.UserAnswer{}
	return out, true
}

func reduceAddChatMessage(s State, role, content string) (State, bool) {
	out := s.clone()
	out.ChatMessages = append(out.ChatMessages, model.ChatMessage{Role: role, Content: content})
	return out, true
}

func reduceResetChat(s State) (State, bool) {
	if len(s.ChatMessages) == 0 {
		return s, false
	}
	out := s.clone()
	out.ChatMessages = []model.ChatMessage{}
	return out, true
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
