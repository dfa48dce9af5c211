package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID        int64
	Title     string
	CreatedBy uuid.UUID
	CreatedAt time.Time

	// Filled on single-quiz fetch only
	Questions []Question
}

type Question struct {
	ID     int64
	QuizID int64
	Title  string

	// Derived: true when more than one answer is marked correct
	IsMultiSelect bool

	Answers []Answer
}

type Answer struct {
	ID         int64
	QuestionID int64
	Title      string
	IsCorrect  bool
}
