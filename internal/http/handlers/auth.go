package handlers

import (
	"net/http"

	"vetclinic/internal/auth"
	"vetclinic/internal/domain"
	"vetclinic/internal/http/middleware"
	"vetclinic/internal/repositories"
	"vetclinic/internal/utils"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login issues a bearer token for an active user. Wrong email and wrong
// password produce the same response so neither can be probed.
//
// POST /api/users/login
func Login(ts auth.TokenService, repo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.Email == "" || req.Password == "" {
			RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "email and password are required"})
			return
		}

		reqID := middleware.GetRequestID(c)

		user, err := repo.GetByEmail(req.Email)
		if err != nil {
			if domain.IsNotFound(err) {
				utils.LogEvent(reqID, "auth", "login_rejected", "unknown_email")
				RespondDomainError(c, domain.UnauthorizedError{Kind: "bad_credentials"})
				return
			}
			RespondDomainError(c, err)
			return
		}

		if !auth.VerifyPassword(req.Password, user.PasswordHash) {
			utils.LogEvent(reqID, "auth", "login_rejected", "bad_password")
			RespondDomainError(c, domain.UnauthorizedError{Kind: "bad_credentials"})
			return
		}

		token, err := ts.Issue(user.ID, user.Role)
		if err != nil {
			RespondDomainError(c, err)
			return
		}

		utils.LogEvent(reqID, "auth", "login_ok", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  user,
		})
	}
}

// Me returns the identity carried by the bearer token.
//
// GET /api/auth/me
func Me(repo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.GetIdentity(c)
		if !ok {
			RespondDomainError(c, domain.UnauthorizedError{Kind: "missing_token"})
			return
		}
		user, err := repo.GetByID(ident.UserID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
