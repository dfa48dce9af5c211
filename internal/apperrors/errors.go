package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token is expired")

	// Access token verification sub-kinds
	// All of them mean the caller is not authenticated
	ErrTokenExpired          = errors.New("access token is expired")
	ErrTokenSignatureInvalid = errors.New("access token signature is invalid")
	ErrTokenMalformed        = errors.New("access token is malformed")

	ErrNoAuthToken  = errors.New("no bearer token in request")
	ErrClaimMissing = errors.New("required claim is missing in token")

	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrAnswerNotFound    = errors.New("answer not found")
	ErrGroupTaskNotFound = errors.New("group task not found")

	ErrEmptyAnswerList  = errors.New("answer list must not be empty")
	ErrNotResourceOwner = errors.New("resource belongs to another user")
)
