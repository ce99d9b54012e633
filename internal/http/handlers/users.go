package handlers

import (
	"net/http"
	"strings"

	"vetclinic/internal/auth"
	"vetclinic/internal/domain"
	"vetclinic/internal/repositories"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	LicenseNumber *string `json:"license_number"`
}

type updateUserRequest struct {
	Email         *string `json:"email"`
	Password      *string `json:"password"`
	Name          *string `json:"name"`
	Role          *string `json:"role"`
	LicenseNumber *string `json:"license_number"`
	IsActive      *bool   `json:"is_active"`
}

// GET /api/users
func ListUsers(repo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := repositories.UserFilter{
			Email:         c.Query("email"),
			Role:          c.Query("role"),
			LicenseNumber: c.Query("license_number"),
			IsActive:      c.Query("is_active"),
			CreatedAfter:  c.Query("created_after"),
			CreatedBefore: c.Query("created_before"),
			Limit:         c.Query("limit"),
			Offset:        c.Query("offset"),
		}
		users, err := repo.List(f)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// GET /api/users/:id
func GetUser(repo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		user, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST /api/users
func CreateUser(repo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createUserRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if err := validateNewUser(req); err != nil {
			RespondDomainError(c, err)
			return
		}

		exists, err := repo.EmailExists(req.Email, 0)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if exists {
			RespondDomainError(c, domain.ConflictError{Resource: "user", Msg: "email already registered"})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			RespondDomainError(c, err)
			return
		}

		user, err := repo.Create(req.Email, hash, req.Name, req.Role, req.LicenseNumber)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// PUT /api/users/:id
func UpdateUser(repo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		var req updateUserRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		patch := repositories.UserPatch{
			Email:         req.Email,
			Name:          req.Name,
			Role:          req.Role,
			LicenseNumber: req.LicenseNumber,
			IsActive:      req.IsActive,
		}

		if req.Password != nil {
			if len(*req.Password) < 8 {
				RespondDomainError(c, domain.ValidationError{Field: "password", Msg: "password must be at least 8 characters"})
				return
			}
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			patch.PasswordHash = &hash
		}

		if req.Email != nil {
			exists, err := repo.EmailExists(*req.Email, id)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			if exists {
				RespondDomainError(c, domain.ConflictError{Resource: "user", Msg: "email already registered"})
				return
			}
		}

		user, err := repo.Update(id, patch)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DELETE /api/users/:id
//
// Users are deactivated, never removed, so appointments and records
// keep a valid author.
func DeleteUser(repo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		if err := repo.Deactivate(id); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user deactivated"})
	}
}

func validateNewUser(req createUserRequest) error {
	if !strings.Contains(req.Email, "@") {
		return domain.ValidationError{Field: "email", Msg: "invalid email"}
	}
	if len(req.Password) < 8 {
		return domain.ValidationError{Field: "password", Msg: "password must be at least 8 characters"}
	}
	if strings.TrimSpace(req.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	role, ok := domain.Roles.Canonical(req.Role)
	if !ok {
		return domain.ValidationError{Field: "role", Msg: "unknown role"}
	}
	if role == domain.RoleVeterinarian && (req.LicenseNumber == nil || strings.TrimSpace(*req.LicenseNumber) == "") {
		return domain.ValidationError{Field: "license_number", Msg: "veterinarians require a license number"}
	}
	return nil
}
