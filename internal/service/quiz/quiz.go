package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iqurastudy/quizapi/internal/apperrors"
	"github.com/iqurastudy/quizapi/internal/models"
	"github.com/iqurastudy/quizapi/internal/repository"
	"github.com/iqurastudy/quizapi/internal/service/scope"
)

// CreateAnswer is one answer of a question to be created
type CreateAnswer struct {
	Title     string
	IsCorrect bool
}

// CreateQuestionParams describes a question created together with its answers
type CreateQuestionParams struct {
	Title   string
	Answers []CreateAnswer
}

// QuizService owns the quiz aggregate: quizzes, their questions and answers.
// Multi row writes go through one db transaction so no partial aggregate
// state is ever visible.
type QuizService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) (*QuizService, error) {
	if storage == nil {
		return nil, errors.New("storage must not be nil")
	}

	return &QuizService{storage: storage}, nil
}

// ListQuizzes returns the quizzes owned by the user, in stable id order
func (s *QuizService) ListQuizzes(ctx context.Context, userID uuid.UUID) ([]models.Quiz, error) {
	quizzes, err := s.storage.Quiz().ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}

	return scope.OwnedQuizzes(userID, quizzes), nil
}

// GetQuiz returns a single quiz with its questions and answers.
// Single item reads are open: ownership narrows lists only.
func (s *QuizService) GetQuiz(ctx context.Context, id int64) (models.Quiz, error) {
	quiz, err := s.storage.Quiz().GetQuiz(ctx, id)
	if err != nil {
		return quiz, err
	}

	questions, err := s.storage.Question().ListQuestionsByQuiz(ctx, id)
	if err != nil {
		return quiz, err
	}
	answers, err := s.storage.Answer().ListAnswersByQuiz(ctx, id)
	if err != nil {
		return quiz, err
	}

	byQuestion := make(map[int64][]models.Answer, len(questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	for i := range questions {
		questions[i].Answers = byQuestion[questions[i].ID]
	}
	quiz.Questions = questions

	return quiz, nil
}

func (s *QuizService) CreateQuiz(ctx context.Context, userID uuid.UUID, title string) (models.Quiz, error) {
	return s.storage.Quiz().CreateQuiz(ctx, title, userID)
}

// DeleteQuiz removes the quiz and all descendant questions and answers.
// Only the creator may delete. Children are deleted explicitly, leaf first,
// in one transaction, so no orphan survives regardless of db cascade rules.
func (s *QuizService) DeleteQuiz(ctx context.Context, userID uuid.UUID, id int64) error {
	quiz, err := s.storage.Quiz().GetQuiz(ctx, id)
	if err != nil {
		return err
	}

	if err := scope.RequireCreator(userID, quiz.CreatedBy); err != nil {
		return err
	}

	return s.storage.InTx(ctx, func(st repository.Storage) error {
		if err := st.Answer().DeleteAnswersByQuiz(ctx, id); err != nil {
			return err
		}
		if err := st.Question().DeleteQuestionsByQuiz(ctx, id); err != nil {
			return err
		}
		return st.Quiz().DeleteQuiz(ctx, id)
	})
}

// CreateQuestionWithAnswers creates the question and its nested answers
// in one transaction and derives the multi select flag
func (s *QuizService) CreateQuestionWithAnswers(ctx context.Context, quizID int64, arg CreateQuestionParams) (models.Question, error) {
	var question models.Question

	if _, err := s.storage.Quiz().GetQuiz(ctx, quizID); err != nil {
		return question, err
	}

	err := s.storage.InTx(ctx, func(st repository.Storage) error {
		var err error
		question, err = st.Question().CreateQuestion(ctx, quizID, arg.Title)
		if err != nil {
			return err
		}

		for _, a := range arg.Answers {
			answer, err := st.Answer().CreateAnswer(ctx, question.ID, a.Title, a.IsCorrect)
			if err != nil {
				return err
			}
			question.Answers = append(question.Answers, answer)
		}

		return s.deriveMultiSelect(ctx, st, &question)
	})
	if err != nil {
		return models.Question{}, fmt.Errorf("error while creating question. Err: %w", err)
	}

	return question, nil
}

// GetQuestion returns the question with its answers
func (s *QuizService) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	question, err := s.storage.Question().GetQuestion(ctx, id)
	if err != nil {
		return question, err
	}

	question.Answers, err = s.storage.Answer().ListAnswersByQuestion(ctx, id)
	if err != nil {
		return question, err
	}

	return question, nil
}

// DeleteQuestion removes the question and all its answers in one transaction
func (s *QuizService) DeleteQuestion(ctx context.Context, id int64) error {
	if _, err := s.storage.Question().GetQuestion(ctx, id); err != nil {
		return err
	}

	return s.storage.InTx(ctx, func(st repository.Storage) error {
		if err := st.Answer().DeleteAnswersByQuestion(ctx, id); err != nil {
			return err
		}
		return st.Question().DeleteQuestion(ctx, id)
	})
}

// CreateAnswers attaches answers to an existing question and rederives
// the multi select flag from the full answer set
func (s *QuizService) CreateAnswers(ctx context.Context, questionID int64, answers []CreateAnswer) ([]models.Answer, error) {
	// Checked before touching storage: an empty payload is a caller error
	if len(answers) == 0 {
		return nil, apperrors.ErrEmptyAnswerList
	}

	question, err := s.storage.Question().GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	created := make([]models.Answer, 0, len(answers))
	err = s.storage.InTx(ctx, func(st repository.Storage) error {
		for _, a := range answers {
			answer, err := st.Answer().CreateAnswer(ctx, questionID, a.Title, a.IsCorrect)
			if err != nil {
				return err
			}
			created = append(created, answer)
		}

		return s.deriveMultiSelect(ctx, st, &question)
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating answers. Err: %w", err)
	}

	return created, nil
}

// GetAnswer returns one answer by id
func (s *QuizService) GetAnswer(ctx context.Context, id int64) (models.Answer, error) {
	return s.storage.Answer().GetAnswer(ctx, id)
}

// deriveMultiSelect recomputes the flag from the persisted answer set:
// multi select iff more than one answer is marked correct
func (s *QuizService) deriveMultiSelect(ctx context.Context, st repository.Storage, question *models.Question) error {
	correct, err := st.Answer().CountCorrect(ctx, question.ID)
	if err != nil {
		return err
	}

	question.IsMultiSelect = correct > 1
	return st.Question().SetMultiSelect(ctx, question.ID, question.IsMultiSelect)
}
