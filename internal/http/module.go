package http

import "github.com/gin-gonic/gin"

// Module is a bounded context that mounts its own routes.
type Module interface {
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext hands modules the two /api/v1 groups. Public carries no
// authentication and is reserved for provider callbacks; everything an agent
// calls goes on Protected.
type RouterContext struct {
	Public    *gin.RouterGroup
	Protected *gin.RouterGroup
}
