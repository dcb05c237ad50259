package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/dto"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/repository"
)

// CatalogService exposes the read-only reference data (degrees, subjects,
// rooms) backing the frontend pickers and the alias resolver.
type CatalogService interface {
	ListDegrees(ctx context.Context) ([]dto.DegreeResponse, error)
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) ListDegrees(ctx context.Context) ([]dto.DegreeResponse, error) {
	degrees, err := s.repo.Degree.List(ctx)
	if err != nil {
		s.logger.Error("listing degrees failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DegreeResponse, 0, len(degrees))
	for _, d := range degrees {
		result = append(result, dto.DegreeResponse{ID: d.ID, Name: d.Name, Slug: d.Slug})
	}
	return result, nil
}

func (s *catalogService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		s.logger.Error("listing subjects failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		result = append(result, dto.SubjectResponse{ID: sub.ID, Name: sub.Name})
	}
	return result, nil
}

func (s *catalogService) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		s.logger.Error("listing rooms failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, dto.RoomResponse{ID: r.ID, Name: r.Name})
	}
	return result, nil
}
