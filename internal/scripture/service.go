package scripture

import (
	"context"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/gratitude-api/pkg/apperr"
	"github.com/taiwoajasa245/gratitude-api/pkg/util"
)

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

func (s *Service) Create(ctx context.Context, req CreateScriptureRequest) (*Scripture, error) {
	if err := util.Validate(req); err != nil {
		return nil, err
	}

	entry, err := s.repo.Insert(ctx, req.toScripture())
	if err != nil {
		return nil, err
	}

	s.log.Debug("scripture created", zap.Int64("id", entry.ID), zap.String("reference", entry.Reference))
	return entry, nil
}

func (s *Service) List(ctx context.Context) ([]Scripture, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NewNotFoundError("scripture", id)
	}
	return nil
}
