package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/service"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/response"
)

// CatalogHandler serves the read-only reference catalogs.
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListDegrees returns the degree catalog.
// GET /api/v1/degrees
func (h *CatalogHandler) ListDegrees(c *gin.Context) {
	degrees, err := h.catalogSvc.ListDegrees(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": degrees})
}

// ListSubjects returns the subject catalog.
// GET /api/v1/subjects
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.catalogSvc.ListSubjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": subjects})
}

// ListRooms returns the room catalog.
// GET /api/v1/rooms
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	rooms, err := h.catalogSvc.ListRooms(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": rooms})
}
