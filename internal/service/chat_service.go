package service

import (
	"ai_course_backend/internal/model"
	"ai_course_backend/pkg/monitoring"
	"context"
	"fmt"
)

const chatContextChars = 1500

// ChatResult is the tutor's reply plus what the intent rules saw. When
// ModificationIntents is non-empty the client must ask the user to
// confirm before calling the regenerate endpoint.
type ChatResult struct {
	Response            string   `json:"response"`
	ModificationIntents []string `json:"modificationIntents,omitempty"`
	NeedsConfirmation   bool     `json:"needsConfirmation"`
}

// ChatService is the lesson-aware tutor conversation.
type ChatService struct {
	generator Generator
}

func NewChatService(generator Generator) *ChatService {
	return &ChatService{generator: generator}
}

// Send answers one chat message with the lesson as context. A message
// that looks like a content-modification request short-circuits into a
// confirmation prompt without calling the generator; regeneration only
// ever happens through the explicit regenerate endpoint.
func (s *ChatService) Send(ctx context.Context, message, subject string, history []model.ChatMessage, currentContent *model.CourseContent) (ChatResult, error) {
	if IsModificationRequest(message) && currentContent != nil {
		return ChatResult{
			Response:            "I can modify the current topic based on your request. Would you like me to regenerate the content with these changes?",
			ModificationIntents: DetectIntents(message),
			NeedsConfirmation:   true,
		}, nil
	}

	messages := []Message{UserMessage(buildChatSystemPrompt(subject, currentContent))}
	for _, msg := range history {
		if msg.Role == "user" {
			messages = append(messages, UserMessage(msg.Content))
		} else {
			messages = append(messages, ModelMessage(msg.Content))
		}
	}
	messages = append(messages, UserMessage(message))

	response, err := s.generator.Generate(ctx, messages, GenerationOptions{
		Temperature:     0.7,
		MaxOutputTokens: 2048,
	})
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("chat", "error").Inc()
		return ChatResult{}, err
	}
	monitoring.GenerationCounter.WithLabelValues("chat", "ok").Inc()

	return ChatResult{Response: response}, nil
}

func buildChatSystemPrompt(subject string, currentContent *model.CourseContent) string {
	title := fmt.Sprintf("Introduction to %s", subject)
	excerpt := "Not available yet"
	if currentContent != nil {
		if currentContent.Title != "" {
			title = currentContent.Title
		}
		excerpt = currentContent.Content
		if len(excerpt) > chatContextChars {
			excerpt = excerpt[:chatContextChars]
		}
	}

	return fmt.Sprintf(`You are an AI learning assistant specializing in %s.
Provide helpful, accurate, and concise responses to help the user learn.

CURRENT TOPIC: "%s"

You have access to the current lesson content, which you can reference to provide accurate help.
If the user asks about something in the current lesson, refer to the content to provide specific help.

If the user asks you to modify the lesson content (like simplifying, adding more examples),
ask them to confirm if they want you to regenerate the content with their requested changes.

Be conversational, helpful, and adapt your explanations to match the user's needs.

CURRENT LESSON CONTENT (beginning):
%s...`, subject, title, excerpt)
}
