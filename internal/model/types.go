package model

// LearningPreferences condition every generation prompt.
type LearningPreferences struct {
	Difficulty        string   `json:"difficulty"`        // beginner | intermediate | advanced
	Pacing            string   `json:"pacing"`            // slow | standard | accelerated
	ExplanationDetail string   `json:"explanationDetail"` // concise | balanced | detailed
	ExamplePreference string   `json:"examplePreference"` // minimal | moderate | extensive
	CustomPreferences string   `json:"customPreferences,omitempty"`
	FocusAreas        []string `json:"focusAreas,omitempty"`
}

func DefaultPreferences() LearningPreferences {
	return LearningPreferences{
		Difficulty:        "intermediate",
		Pacing:            "standard",
		ExplanationDetail: "balanced",
		ExamplePreference: "moderate",
	}
}

type UserProfile struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	LearningPreferences LearningPreferences `json:"learningPreferences"`
}

// NewGuestProfile builds the profile created on first contact.
func NewGuestProfile(learnerID string) *UserProfile {
	return &UserProfile{
		ID:                  learnerID,
		Name:                "Guest",
		LearningPreferences: DefaultPreferences(),
	}
}

// CourseContent is one generated lesson. Content is markdown text and
// is only ever replaced in place through regeneration.
type CourseContent struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// CourseTopic is one entry of the topic index shown alongside a course.
type CourseTopic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Order       int    `json:"order"`
}

const (
	QuestionTypeMCQ    = "mcq"
	QuestionTypeTheory = "theory"
	QuestionTypeCoding = "coding"
)

const (
	CategoryTheory         = "theory"
	CategoryCode           = "code"
	CategoryProblemSolving = "problem-solving"
)

type MCQOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is the tagged union over mcq, theory and coding variants.
// Type selects the variant; the other fields are populated per variant.
type Question struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Question string `json:"question"`

	// mcq
	Options     []MCQOption `json:"options,omitempty"`
	Explanation string      `json:"explanation,omitempty"`
	Category    string      `json:"category,omitempty"`

	// theory
	Criteria []string `json:"criteria,omitempty"`
	MaxScore float64  `json:"maxScore,omitempty"`

	// coding
	Language    string   `json:"language,omitempty"`
	StarterCode string   `json:"starterCode,omitempty"`
	TestCases   []string `json:"testCases,omitempty"`
}

// CorrectOption returns the option flagged correct, or nil.
func (q *Question) CorrectOption() *MCQOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

type Assessment struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subject   string     `json:"subject"`
	Questions []Question `json:"questions"`
}

// UserAnswer records one attempt at one question. IsCorrect is set for
// mcq answers; Score/MaxScore for out-of-band graded answers.
type UserAnswer struct {
	QuestionID string   `json:"questionId"`
	Answer     string   `json:"answer"`
	IsCorrect  *bool    `json:"isCorrect,omitempty"`
	Score      *float64 `json:"score,omitempty"`
	MaxScore   float64  `json:"maxScore,omitempty"`
	Feedback   string   `json:"feedback,omitempty"`
}

// SubjectProgress is the durable per-subject record.
type SubjectProgress struct {
	CurrentTopic       int                `json:"currentTopic"`
	CompletedTopics    []string           `json:"completedTopics"`
	TestScores         map[string]float64 `json:"testScores"`
	NeedsReinforcement []string           `json:"needsReinforcement"`
	PassedAssessments  []string           `json:"passedAssessments"`
}

func NewSubjectProgress() *SubjectProgress {
	return &SubjectProgress{
		CompletedTopics:    []string{},
		TestScores:         map[string]float64{},
		NeedsReinforcement: []string{},
		PassedAssessments:  []string{},
	}
}

type ChatMessage struct {
	Role    string `json:"role"` // user | model
	Content string `json:"content"`
}

// Snapshot is the serializable subset that survives reloads. Everything
// else in the store is process-lifetime only.
type Snapshot struct {
	UserProfile     *UserProfile                `json:"userProfile"`
	CourseProgress  map[string]*SubjectProgress `json:"courseProgress"`
	EnrolledCourses []string                    `json:"enrolledCourses"`
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name *string `json:"name,omitempty"`
}

// PreferencesUpdate merge-updates learning preferences; nil means unchanged.
type PreferencesUpdate struct {
	Difficulty        *string   `json:"difficulty,omitempty"`
	Pacing            *string   `json:"pacing,omitempty"`
	ExplanationDetail *string   `json:"explanationDetail,omitempty"`
	ExamplePreference *string   `json:"examplePreference,omitempty"`
	CustomPreferences *string   `json:"customPreferences,omitempty"`
	FocusAreas        *[]string `json:"focusAreas,omitempty"`
}
