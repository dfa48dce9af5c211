// Package scope holds the ownership decisions shared by resource services.
// Creation stamping (creator id always taken from the token) lives in the
// services themselves, scope only compares identities.
package scope

import (
	"github.com/google/uuid"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/models"
)

// OwnedQuizzes narrows the candidate set to quizzes owned by the user
// Order of the input is preserved
func OwnedQuizzes(userID uuid.UUID, quizzes []models.Quiz) []models.Quiz {
	owned := make([]models.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if q.CreatedBy == userID {
			owned = append(owned, q)
		}
	}
	return owned
}

// RequireCreator authorizes a mutating operation on a resource:
// the acting user must be the one who created it
func RequireCreator(userID uuid.UUID, createdBy uuid.UUID) error {
	if userID != createdBy {
		return apperrors.ErrNotResourceOwner
	}
	return nil
}
