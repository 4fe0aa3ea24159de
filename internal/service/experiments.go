package service

import (
	"context"

	"solartap/internal/models"
	"solartap/internal/repository"
)

type ExperimentsService struct {
	runs repository.ExperimentRepo
}

func NewExperimentsService(runs repository.ExperimentRepo) *ExperimentsService {
	return &ExperimentsService{runs: runs}
}

func (s *ExperimentsService) List(ctx context.Context) ([]models.ExperimentRun, error) {
	return s.runs.List(ctx)
}
