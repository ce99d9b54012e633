package handlers

import (
	"net/http"
	"strings"

	"vetclinic/internal/domain"
	"vetclinic/internal/repositories"

	"github.com/gin-gonic/gin"
)

type breedRequest struct {
	Species string `json:"species"`
	Name    string `json:"name"`
}

type breedPatchRequest struct {
	Species *string `json:"species"`
	Name    *string `json:"name"`
}

// GET /api/breeds
func ListBreeds(repo repositories.BreedRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := repositories.BreedFilter{
			Species: c.Query("species"),
			Name:    c.Query("name"),
			Limit:   c.Query("limit"),
			Offset:  c.Query("offset"),
		}
		breeds, err := repo.List(f)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, breeds)
	}
}

// GET /api/breeds/:id
func GetBreed(repo repositories.BreedRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		breed, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, breed)
	}
}

// POST /api/breeds
func CreateBreed(repo repositories.BreedRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req breedRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "name is required"})
			return
		}
		exists, err := repo.NameExists(req.Species, req.Name, 0)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if exists {
			RespondDomainError(c, domain.ConflictError{Resource: "breed", Msg: "breed already exists for this species"})
			return
		}

		breed, err := repo.Create(req.Species, req.Name)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, breed)
	}
}

// PUT /api/breeds/:id
func UpdateBreed(repo repositories.BreedRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		var req breedPatchRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		// the uniqueness rule applies to the effective species+name pair
		current, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		species := current.Species
		if req.Species != nil {
			species = *req.Species
		}
		name := current.Name
		if req.Name != nil {
			name = *req.Name
		}
		exists, err := repo.NameExists(species, name, id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if exists {
			RespondDomainError(c, domain.ConflictError{Resource: "breed", Msg: "breed already exists for this species"})
			return
		}

		breed, err := repo.Update(id, req.Species, req.Name)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, breed)
	}
}

// DELETE /api/breeds/:id
//
// Refused while any patient still references the breed.
func DeleteBreed(repo repositories.BreedRepository) gin.HandlerFunc {
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
			RespondDomainError(c, domain.ConflictError{Resource: "breed", Msg: "breed still has patients"})
			return
		}
		if err := repo.Delete(id); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "breed deleted"})
	}
}
