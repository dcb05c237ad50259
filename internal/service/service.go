package service

import (
	"go.uber.org/zap"

	"github.com/mohamedbel-ymam/school-vfr-sub000/config"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/alias"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/repository"
)

// Service is the aggregate entry point for all services.
type Service struct {
	Timetable   TimetableService
	MonthlyPlan MonthlyPlanService
	Catalog     CatalogService
	Export      ExportService
}

// NewService creates the Service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	resolver *alias.Resolver,
	logger *zap.Logger,
) *Service {
	return &Service{
		Timetable:   NewTimetableService(repo, resolver, logger),
		MonthlyPlan: NewMonthlyPlanService(cfg, repo, resolver, logger),
		Catalog:     NewCatalogService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
