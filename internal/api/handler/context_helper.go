package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/service"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/response"
)

// parseIDParam parses the :id path parameter. Returns false after writing
// a 400 when it is not a positive integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || n == 0 {
		response.BadRequest(c, 10001, "invalid id")
		return 0, false
	}
	return uint(n), true
}

// toResponseFields converts service field errors to the response shape.
func toResponseFields(fields []service.FieldError) []response.FieldError {
	out := make([]response.FieldError, len(fields))
	for i, f := range fields {
		out[i] = response.FieldError{Field: f.Field, Message: f.Message}
	}
	return out
}
