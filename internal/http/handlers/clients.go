package handlers

import (
	"net/http"
	"strings"

	"vetclinic/internal/domain"
	"vetclinic/internal/repositories"

	"github.com/gin-gonic/gin"
)

type clientRequest struct {
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	Phone      string  `json:"phone"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
	AssignedTo *int64  `json:"assigned_to"`
}

type clientPatchRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
	AssignedTo *int64  `json:"assigned_to"`
}

// GET /api/clients
func ListClients(repo repositories.ClientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := repositories.ClientFilter{
			Name:       c.Query("name"),
			Phone:      c.Query("phone"),
			AssignedTo: c.Query("assigned_to"),
			Limit:      c.Query("limit"),
			Offset:     c.Query("offset"),
		}
		clients, err := repo.List(f)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, clients)
	}
}

// GET /api/clients/:id
func GetClient(repo repositories.ClientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		client, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

// POST /api/clients
func CreateClient(repo repositories.ClientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req clientRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "name is required"})
			return
		}
		if strings.TrimSpace(req.Phone) == "" {
			RespondDomainError(c, domain.ValidationError{Field: "phone", Msg: "phone is required"})
			return
		}
		if req.Email != nil {
			exists, err := repo.EmailExists(*req.Email, 0)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			if exists {
				RespondDomainError(c, domain.ConflictError{Resource: "client", Msg: "email already registered"})
				return
			}
		}

		client, err := repo.Create(repositories.Client{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			Notes:      req.Notes,
			AssignedTo: req.AssignedTo,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, client)
	}
}

// PUT /api/clients/:id
func UpdateClient(repo repositories.ClientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		var req clientPatchRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.Email != nil {
			exists, err := repo.EmailExists(*req.Email, id)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			if exists {
				RespondDomainError(c, domain.ConflictError{Resource: "client", Msg: "email already registered"})
				return
			}
		}

		client, err := repo.Update(id, repositories.ClientPatch{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			Notes:      req.Notes,
			AssignedTo: req.AssignedTo,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

// DELETE /api/clients/:id
//
// Refused while the client still owns patients.
func DeleteClient(repo repositories.ClientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		has, err := repo.HasPatients(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if has {
			RespondDomainError(c, domain.ConflictError{Resource: "client", Msg: "client still has patients"})
			return
		}
		if err := repo.Delete(id); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
	}
}
