package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), handler.GetAll)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "department", "read"), handler.GetById)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Create)
		departments.PUT("/:id/manager", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.AssignManager)
	}
}
