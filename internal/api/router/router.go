package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohamedbel-ymam/school-vfr-sub000/config"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/alias"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/api/handler"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/api/middleware"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/jwt"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
//
// Write access: timetable mutations are admin-only; monthly-plan mutations
// are open to teachers as well, since teachers maintain their own
// curriculum plans. Reads only require authentication.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, resolver *alias.Resolver, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.RateLimit(rdb, 300, time.Minute))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, resolver))
		{
			// reference catalogs
			authorized.GET("/degrees", h.Catalog.ListDegrees)
			authorized.GET("/subjects", h.Catalog.ListSubjects)
			authorized.GET("/rooms", h.Catalog.ListRooms)

			// weekly timetable
			timetables := authorized.Group("/timetables")
			{
				timetables.GET("", h.Timetable.ListWeeklySlots)
				timetables.POST("", middleware.RoleAuth("admin"), h.Timetable.CreateWeeklySlot)
				timetables.PUT("/:id", middleware.RoleAuth("admin"), h.Timetable.UpdateWeeklySlot)
				timetables.DELETE("/:id", middleware.RoleAuth("admin"), h.Timetable.DeleteWeeklySlot)
			}

			// monthly curriculum plans
			plans := authorized.Group("/monthly-plans")
			{
				plans.GET("", h.MonthlyPlan.ListMonthlyPlans)
				plans.POST("", middleware.RoleAuth("admin", "teacher"), h.MonthlyPlan.UpsertMonthlyPlan)
				plans.PATCH("/:id", middleware.RoleAuth("admin", "teacher"), h.MonthlyPlan.UpdateMonthlyPlan)
				plans.DELETE("/:id", middleware.RoleAuth("admin", "teacher"), h.MonthlyPlan.DeleteMonthlyPlan)
			}

			// exports
			export := authorized.Group("/export")
			{
				export.GET("/timetable", h.Export.ExportTimetableXLSX)
				export.GET("/timetable.ics", h.Export.ExportTimetableICS)
			}
		}
	}

	return r
}
