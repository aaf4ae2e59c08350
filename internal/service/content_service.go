package service

import (
	"ai_course_backend/internal/model"
	"ai_course_backend/pkg/monitoring"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const contentMaxTokens = 8192

// ArchiveRecorder keeps generated lessons for regeneration history.
type ArchiveRecorder interface {
	Record(ctx context.Context, entry *model.ContentArchive) error
}

// ContentService builds lesson prompts and turns completions into
// CourseContent values.
type ContentService struct {
	generator Generator
	archive   ArchiveRecorder
	logger    *zap.Logger
}

func NewContentService(generator Generator, archive ArchiveRecorder, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{generator: generator, archive: archive, logger: logger}
}

func preferencesOf(profile *model.UserProfile) model.LearningPreferences {
	if profile == nil {
		return model.DefaultPreferences()
	}
	return profile.LearningPreferences
}

// Generate produces the lesson for one topic. The content id embeds the
// subject, topic and request time so late responses can never be
// mistaken for another topic's content.
func (s *ContentService) Generate(ctx context.Context, learnerID, subject, topic string, profile *model.UserProfile, previous *model.CourseContent) (model.CourseContent, error) {
	prefs := preferencesOf(profile)
	prompt := buildContentPrompt(subject, topic, prefs)

	text, err := s.generator.Generate(ctx, []Message{UserMessage(prompt)}, GenerationOptions{
		Temperature:     0.7,
		MaxOutputTokens: contentMaxTokens,
	})
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("content", "error").Inc()
		return model.CourseContent{}, err
	}
	monitoring.GenerationCounter.WithLabelValues("content", "ok").Inc()

	order := 1
	if previous != nil {
		order = previous.Order + 1
	}
	content := model.CourseContent{
		ID:      fmt.Sprintf("%s-%s-%d", subject, topic, time.Now().UnixMilli()),
		Title:   topic,
		Content: text,
		Order:   order,
	}

	s.record(ctx, learnerID, subject, content, false)
	return content, nil
}

// Regenerate replaces the current lesson's text in place: same title,
// same order, new content shaped by the user's request.
func (s *ContentService) Regenerate(ctx context.Context, learnerID, subject, userMessage string, profile *model.UserProfile, current model.CourseContent) (model.CourseContent, error) {
	prefs := preferencesOf(profile)
	intents := DetectIntents(userMessage)
	prompt := buildRegeneratePrompt(subject, userMessage, prefs, current, intents)

	text, err := s.generator.Generate(ctx, []Message{UserMessage(prompt)}, GenerationOptions{
		Temperature:     0.7,
		MaxOutputTokens: contentMaxTokens,
	})
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("regenerate", "error").Inc()
		return model.CourseContent{}, err
	}
	monitoring.GenerationCounter.WithLabelValues("regenerate", "ok").Inc()

	content := model.CourseContent{
		ID:      fmt.Sprintf("%s-%s-%d", subject, current.Title, time.Now().UnixMilli()),
		Title:   current.Title,
		Content: text,
		Order:   current.Order,
	}

	s.record(ctx, learnerID, subject, content, true)
	return content, nil
}

func (s *ContentService) record(ctx context.Context, learnerID, subject string, content model.CourseContent, regenerated bool) {
	if s.archive == nil {
		return
	}
	err := s.archive.Record(ctx, &model.ContentArchive{
		LearnerID:   learnerID,
		Subject:     subject,
		Title:       content.Title,
		Order:       content.Order,
		Content:     content.Content,
		Regenerated: regenerated,
	})
	if err != nil {
		s.logger.Warn("content archive write failed",
			zap.String("learner_id", learnerID),
			zap.String("subject", subject),
			zap.Error(err))
	}
}

const markdownGuidelines = `Ensure the content is well-structured, easy to read, and visually appealing.
Use proper markdown formatting:
- Use # for main title
- Use ## for section headings
- Use ### for subsection headings
- Use **bold** for important terms
- Use *italic* for emphasis
- Use ` + "`code`" + ` for inline code
- Use ` + "```" + ` for code blocks
- Use > for blockquotes
- Use - or * for bullet points
- Use 1. 2. 3. for numbered lists
- Use --- for horizontal rules to separate sections`

func difficultyGuideline(difficulty string) string {
	switch difficulty {
	case "beginner":
		return "Keep explanations simple and avoid complex terminology without explanation."
	case "advanced":
		return "Include in-depth explanations and advanced concepts."
	default:
		return "Balance between fundamental concepts and more advanced topics."
	}
}

func buildContentPrompt(subject, topic string, prefs model.LearningPreferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Generate educational content for a %s course.
The topic is: %s.

User learning preferences:
- Difficulty level: %s

`, subject, topic, prefs.Difficulty)

	b.WriteString(`Format the content with clear markdown. Include:
1. A clear title (use # for heading)
2. An introduction to the topic (2-3 paragraphs)
3. Main content with explanations organized with proper headings (## for section headings)
4. Multiple detailed examples that demonstrate practical applications (use code blocks for code examples)
5. Real-world applications and where this knowledge is used in industry or daily life
6. A brief summary

Make the content in-depth and comprehensive. Provide multiple examples for each concept.
Keep the content educational, accurate, and engaging. Tailor it to the user's difficulty level.

`)
	b.WriteString(difficultyGuideline(prefs.Difficulty))
	b.WriteString("\n\n")
	b.WriteString(markdownGuidelines)
	return b.String()
}

func buildRegeneratePrompt(subject, userMessage string, prefs model.LearningPreferences, current model.CourseContent, intents []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Regenerate educational content for a %s course. The current topic is "%s".

The user has requested: "%s"

Based on their request, I need you to:
`, subject, current.Title, userMessage)

	if hasIntent(intents, IntentSimplify) {
		b.WriteString("- Simplify the content, use more accessible language and explanations\n")
	}
	if hasIntent(intents, IntentAdvanced) {
		b.WriteString("- Make the content more advanced, go into deeper technical details\n")
	}
	if hasIntent(intents, IntentMoreExamples) {
		b.WriteString("- Include more examples to illustrate the concepts\n")
	}
	if hasIntent(intents, IntentExplain) {
		b.WriteString("- Provide more thorough explanations of concepts\n")
	}
	if hasIntent(intents, IntentChildExplain) {
		b.WriteString("- Explain concepts in very simple terms, as if to a young learner\n")
	}

	fmt.Fprintf(&b, `
User learning preferences:
- Difficulty level: %s
- Pacing: %s
- Explanation detail: %s
- Example preference: %s
`, prefs.Difficulty, prefs.Pacing, prefs.ExplanationDetail, prefs.ExamplePreference)
	if prefs.CustomPreferences != "" {
		fmt.Fprintf(&b, "- Custom preferences: %s\n", prefs.CustomPreferences)
	}

	b.WriteString("\n")
	b.WriteString(difficultyGuideline(prefs.Difficulty))
	b.WriteString("\n\n")
	b.WriteString(markdownGuidelines)
	fmt.Fprintf(&b, `

Current content to regenerate:
%s

Please maintain the same topic and learning objectives, but adapt the content according to the user's request and preferences.`, current.Content)
	return b.String()
}
