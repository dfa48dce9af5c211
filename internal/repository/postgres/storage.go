package postgres

import (
	"context"
	"fmt"

	"github.com/iqurastudy/quizapi/internal/repository"
)

type Storage struct {
	db DBTX
}

func NewStorage(db DBTX) repository.Storage {
	return &Storage{db: db}
}

func (s *Storage) User() repository.UserRepo {
	return &UserRepo{DB: s.db}
}

func (s *Storage) Quiz() repository.QuizRepo {
	return &QuizRepo{DB: s.db}
}

func (s *Storage) Question() repository.QuestionRepo {
	return &QuestionRepo{DB: s.db}
}

func (s *Storage) Answer() repository.AnswerRepo {
	return &AnswerRepo{DB: s.db}
}

func (s *Storage) GroupTask() repository.GroupTaskRepo {
	return &GroupTaskRepo{DB: s.db}
}

func (s *Storage) InTx(ctx context.Context, fn func(s repository.Storage) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db tx error: %w", err)
	}

	defer func() {
		switch err {
		case nil:
			err = tx.Commit(ctx)
		default:
			_ = tx.Rollback(ctx)
		}
	}()

	err = fn(NewStorage(tx))

	return err
}
