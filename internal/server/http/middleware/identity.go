package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PrincipalContextKey stores the resolved caller identity in gin context.
const PrincipalContextKey = "principal"

// Principal is the caller identity attached to admin requests.
type Principal struct {
	UserID     uuid.UUID
	IsAdmin    bool
	IsApproved bool
}

// Provider resolves the caller identity from a request. A nil principal with
// nil error means the request carries no identity at all.
type Provider interface {
	Resolve(c *gin.Context) (*Principal, error)
}

// RequireAdmin guards administrative routes: 401 without an identity, 403 for
// anyone who is not an approved administrator.
func RequireAdmin(provider Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := provider.Resolve(c)
		if err != nil || principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !principal.IsAdmin || !principal.IsApproved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// HeaderProvider trusts identity headers set by the fronting auth proxy.
// The portal itself never issues credentials.
type HeaderProvider struct{}

func (HeaderProvider) Resolve(c *gin.Context) (*Principal, error) {
	rawID := c.GetHeader("X-Auth-User")
	if rawID == "" {
		return nil, nil
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	return &Principal{
		UserID:     userID,
		IsAdmin:    c.GetHeader("X-Auth-Role") == "admin",
		IsApproved: c.GetHeader("X-Auth-Approved") == "true",
	}, nil
}
