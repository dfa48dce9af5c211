package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GroupTask struct {
	ID          int64
	GroupID     int64
	Title       string
	Description string

	// Maximum grade for the task, nil when the task is not graded
	MaxScore *decimal.Decimal

	CreatedBy uuid.UUID
	CreatedAt time.Time
}
