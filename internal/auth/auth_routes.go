package auth

import (
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/middleware"
	"github.com/ymnkynp/monkey-timeoff/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Every(time.Second), 5), handler.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
		authGroup.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "user", "manage"),
			handler.Register,
		)
	}
}
