package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntents(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "plain question",
			message: "what is a variable?",
			want:    nil,
		},
		{
			name:    "simplify",
			message: "can you make this easier to follow",
			want:    []string{IntentSimplify},
		},
		{
			name:    "explain like a child",
			message: "explain like I'm 5",
			want:    []string{IntentChildExplain, IntentExplain},
		},
		{
			name:    "more examples with generic modify",
			message: "please give more examples",
			want:    []string{IntentMoreExamples, IntentGenericModify},
		},
		{
			name:    "advanced",
			message: "I want a more detailed, in-depth version",
			want:    []string{IntentAdvanced},
		},
		{
			name:    "translate",
			message: "translate content to hindi please",
			want:    []string{IntentGenericModify},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIntents(tt.message))
		})
	}
}

func TestIsModificationRequest(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"change content to simple language", true},
		{"explain like I'm 5", true},
		{"make simpler please", true},
		{"please give more examples", true},
		{"what is a variable?", false},
		{"explain this in more depth", false},
		{"can you make this easier to follow", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, IsModificationRequest(tt.message))
		})
	}
}
