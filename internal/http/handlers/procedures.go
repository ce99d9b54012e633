package handlers

import (
	"net/http"
	"strings"

	"vetclinic/internal/domain"
	"vetclinic/internal/repositories"

	"github.com/gin-gonic/gin"
)

type procedureRequest struct {
	Name            string  `json:"name"`
	ProcedureType   string  `json:"procedure_type"`
	Description     *string `json:"description"`
	DurationMinutes *int64  `json:"duration_minutes"`
}

type procedurePatchRequest struct {
	Name            *string `json:"name"`
	ProcedureType   *string `json:"procedure_type"`
	Description     *string `json:"description"`
	DurationMinutes *int64  `json:"duration_minutes"`
}

// GET /api/procedures
func ListProcedures(repo repositories.ProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := repositories.ProcedureFilter{
			NameContains:  c.Query("name"),
			ProcedureType: c.Query("procedure_type"),
			MinDuration:   c.Query("min_duration"),
			MaxDuration:   c.Query("max_duration"),
			Limit:         c.Query("limit"),
			Offset:        c.Query("offset"),
		}
		procs, err := repo.List(f)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, procs)
	}
}

// GET /api/procedures/:id
func GetProcedure(repo repositories.ProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		proc, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, proc)
	}
}

// POST /api/procedures
func CreateProcedure(repo repositories.ProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req procedureRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "name is required"})
			return
		}
		if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "duration_minutes", Msg: "duration must be positive"})
			return
		}

		proc, err := repo.Create(req.Name, req.ProcedureType, req.Description, req.DurationMinutes)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, proc)
	}
}

// PUT /api/procedures/:id
func UpdateProcedure(repo repositories.ProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		var req procedurePatchRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "duration_minutes", Msg: "duration must be positive"})
			return
		}

		proc, err := repo.Update(id, repositories.ProcedurePatch{
			Name:            req.Name,
			ProcedureType:   req.ProcedureType,
			Description:     req.Description,
			DurationMinutes: req.DurationMinutes,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, proc)
	}
}

// DELETE /api/procedures/:id
func DeleteProcedure(repo repositories.ProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		if err := repo.Delete(id); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "procedure deleted"})
	}
}
