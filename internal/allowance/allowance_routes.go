package allowance

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
	allowances := r.Group("/allowances")
	allowances.Use(middleware.AuthMiddleware())
	{
		allowances.GET("/:employee_id", middleware.RBACAuthorize(rbacService, "allowance", "read"), handler.GetBalance)
		allowances.PUT("", middleware.RBACAuthorize(rbacService, "allowance", "manage"), handler.SetEntitlement)
	}
}
