package util

import "errors"

var (
	ErrNoCourseContent    = errors.New("no course content loaded")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrNoActiveAssessment = errors.New("no active assessment")
	ErrUnparsableResponse = errors.New("model response could not be parsed")
)
