package gratitude

import (
	"context"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/gratitude-api/pkg/apperr"
	"github.com/taiwoajasa245/gratitude-api/pkg/util"
)

const resourceName = "gratitude note"

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return Service{repo: repo, log: log}
}

// Create validates req before anything reaches storage.
func (s *Service) Create(ctx context.Context, req CreateNoteRequest) (*Note, error) {
	if err := util.Validate(req); err != nil {
		return nil, err
	}

	note, err := s.repo.Insert(ctx, req.toNote())
	if err != nil {
		return nil, err
	}

	s.log.Debug("gratitude note created", zap.Int64("id", note.ID))
	return note, nil
}

func (s *Service) List(ctx context.Context) ([]Note, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NewNotFoundError(resourceName, id)
	}

	s.log.Debug("gratitude note deleted", zap.Int64("id", id))
	return nil
}

// Reset removes every gratitude note. Scriptures are left alone.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}
	s.log.Info("gratitude notes reset")
	return nil
}
