package middleware

import (
	"errors"
	"net/http"
	"strings"

	"vetclinic/internal/auth"
	"vetclinic/internal/domain"
	"vetclinic/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	userRoleKey = "userRole"
)

// Auth is stage two of the gate: extracts the bearer token, validates it
// and attaches the caller's Identity to the context. The login and system
// endpoints skip this stage (no identity exists yet) but not stage one.
func Auth(ts auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			rejectUnauthorized(c, "missing_token")
			return
		}

		identity, err := ts.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			kind := "malformed"
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				kind = "expired"
			case errors.Is(err, auth.ErrTokenSignature):
				kind = "bad_signature"
			}
			rejectUnauthorized(c, kind)
			return
		}

		c.Set(identityKey, identity)
		c.Set(userRoleKey, identity.Role)
		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, kind string) {
	// the kind goes to the log only; the body stays generic
	utils.LogEvent(GetRequestID(c), "auth", "token_rejected", kind)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// GetIdentity returns the identity the gate attached, if any.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
