package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "web_development", Normalize("Web-Development"))
	assert.Equal(t, "python", Normalize("PYTHON"))
	assert.Equal(t, "c++", Normalize("C++"))
}

func TestIsProgramming(t *testing.T) {
	assert.True(t, IsProgramming("python"))
	assert.True(t, IsProgramming("web-development"))
	assert.True(t, IsProgramming("JavaScript"))
	assert.False(t, IsProgramming("history"))
	assert.False(t, IsProgramming(""))
}

func TestTopics(t *testing.T) {
	assert.NotEmpty(t, Topics("python"))
	assert.NotEmpty(t, Topics("web-development"))
	assert.Nil(t, Topics("history"))
}

func TestFirstTopic(t *testing.T) {
	assert.Equal(t, "What is Python & Why Learn It?", FirstTopic("python"))
	assert.Equal(t, "Introduction to history", FirstTopic("history"))
}

func TestNextTopicTitle(t *testing.T) {
	assert.Equal(t, "Setting Up Your Python Environment", NextTopicTitle("python", 0))

	last := len(Topics("python")) - 1
	assert.Equal(t, "Next topic in python", NextTopicTitle("python", last))
	assert.Equal(t, "Next topic in history", NextTopicTitle("history", 0))
}

func TestTopicAt(t *testing.T) {
	title, ok := TopicAt("python", 0)
	assert.True(t, ok)
	assert.Equal(t, "What is Python & Why Learn It?", title)

	_, ok = TopicAt("python", -1)
	assert.False(t, ok)
	_, ok = TopicAt("python", 100000)
	assert.False(t, ok)
}
