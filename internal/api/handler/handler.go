package handler

import "github.com/mohamedbel-ymam/school-vfr-sub000/internal/service"

// Handler is the aggregate entry point for all handlers.
type Handler struct {
	Timetable   *TimetableHandler
	MonthlyPlan *MonthlyPlanHandler
	Catalog     *CatalogHandler
	Export      *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Timetable:   NewTimetableHandler(svc.Timetable),
		MonthlyPlan: NewMonthlyPlanHandler(svc.MonthlyPlan),
		Catalog:     NewCatalogHandler(svc.Catalog),
		Export:      NewExportHandler(svc.Export),
	}
}
