package calendar

import (
	"github.com/ymnkynp/monkey-timeoff/internal/middleware"
	"github.com/ymnkynp/monkey-timeoff/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	cal := r.Group("/calendar")
	cal.Use(middleware.AuthMiddleware())
	{
		cal.GET("/leaves.ics", middleware.RBACAuthorize(rbacService, "calendar", "read"), handler.GetICS)
		cal.GET("/leaves.csv", middleware.RBACAuthorize(rbacService, "calendar", "read"), handler.GetCSV)
	}
}
