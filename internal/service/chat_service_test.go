package service

import (
	"ai_course_backend/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendModificationShortCircuits(t *testing.T) {
	gen := &MockGenerator{Responses: []string{"should not be used"}}
	svc := NewChatService(gen)

	lesson := &model.CourseContent{Title: "Variables", Content: "lesson text"}
	result, err := svc.Send(context.Background(), "change content to simple language", "python", nil, lesson)
	require.NoError(t, err)

	assert.True(t, result.NeedsConfirmation)
	assert.Contains(t, result.Response, "regenerate the content")
	assert.Contains(t, result.ModificationIntents, IntentGenericModify)
	assert.Equal(t, 0, gen.CallCount())
}

func TestSendModificationWithoutLessonFallsThrough(t *testing.T) {
	gen := &MockGenerator{Responses: []string{"There is no lesson open yet."}}
	svc := NewChatService(gen)

	result, err := svc.Send(context.Background(), "change content to simple language", "python", nil, nil)
	require.NoError(t, err)

	assert.False(t, result.NeedsConfirmation)
	assert.Equal(t, "There is no lesson open yet.", result.Response)
	assert.Equal(t, 1, gen.CallCount())
}

func TestSendIncludesLessonAndHistory(t *testing.T) {
	gen := &MockGenerator{Responses: []string{"A list holds ordered values."}}
	svc := NewChatService(gen)

	history := []model.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello, what are we learning?"},
	}
	lesson := &model.CourseContent{Title: "Lists", Content: "Lists are ordered collections."}

	result, err := svc.Send(context.Background(), "what is a list?", "python", history, lesson)
	require.NoError(t, err)
	assert.Equal(t, "A list holds ordered values.", result.Response)

	require.Equal(t, 1, gen.CallCount())
	messages := gen.Calls[0]
	require.Len(t, messages, 4)

	system := messages[0].Parts[0].Text
	assert.Contains(t, system, "python")
	assert.Contains(t, system, `CURRENT TOPIC: "Lists"`)
	assert.Contains(t, system, "Lists are ordered collections.")

	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "model", messages[2].Role)
	assert.Equal(t, "what is a list?", messages[3].Parts[0].Text)
}

func TestSendTruncatesLongLessonContext(t *testing.T) {
	gen := &MockGenerator{Responses: []string{"ok"}}
	svc := NewChatService(gen)

	long := make([]byte, chatContextChars*2)
	for i := range long {
		long[i] = 'x'
	}
	lesson := &model.CourseContent{Title: "Big", Content: string(long)}

	_, err := svc.Send(context.Background(), "summarize this", "python", nil, lesson)
	require.NoError(t, err)

	system := gen.Calls[0][0].Parts[0].Text
	assert.Less(t, len(system), chatContextChars+1000)
}
