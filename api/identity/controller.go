package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OperatorController exposes the claims of the calling operator.
type OperatorController struct{}

// NewOperatorController creates a new OperatorController.
func NewOperatorController() *OperatorController {
	return &OperatorController{}
}

// RegisterPublic registers public routes.
func (c *OperatorController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers privileged routes.
func (c *OperatorController) RegisterProtected(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.GET("/me", c.me)
	}
}

// me echoes the claims Authoriz attached to the request.
func (c *OperatorController) me(ctx *gin.Context) {
	claims, ok := ctx.Get(ContextOperatorClaims)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"claims": claims})
}
