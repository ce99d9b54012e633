package handlers

import (
	"net/http"
	"strings"

	"vetclinic/internal/domain"
	"vetclinic/internal/repositories"

	"github.com/gin-gonic/gin"
)

type patientRequest struct {
	Name      string   `json:"name"`
	Species   string   `json:"species"`
	BreedID   *int64   `json:"breed_id"`
	BirthDate *string  `json:"birth_date"`
	Gender    *string  `json:"gender"`
	WeightKg  *float64 `json:"weight_kg"`
	ClientID  int64    `json:"client_id"`
	PhotoURL  *string  `json:"photo_url"`
}

type patientPatchRequest struct {
	Name      *string  `json:"name"`
	Species   *string  `json:"species"`
	BreedID   *int64   `json:"breed_id"`
	BirthDate *string  `json:"birth_date"`
	Gender    *string  `json:"gender"`
	WeightKg  *float64 `json:"weight_kg"`
	ClientID  *int64   `json:"client_id"`
	PhotoURL  *string  `json:"photo_url"`
}

// GET /api/patients
func ListPatients(repo repositories.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := repositories.PatientFilter{
			Name:     c.Query("name"),
			Species:  c.Query("species"),
			BreedID:  c.Query("breed_id"),
			ClientID: c.Query("client_id"),
			Gender:   c.Query("gender"),
			Limit:    c.Query("limit"),
			Offset:   c.Query("offset"),
		}
		patients, err := repo.List(f)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, patients)
	}
}

// GET /api/patients/:id
func GetPatient(repo repositories.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		patient, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, patient)
	}
}

// POST /api/patients
func CreatePatient(repo repositories.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req patientRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "name is required"})
			return
		}
		if req.ClientID <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "client_id", Msg: "client_id is required"})
			return
		}
		if req.WeightKg != nil && *req.WeightKg <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "weight_kg", Msg: "weight must be positive"})
			return
		}
		exists, err := repo.ClientExists(req.ClientID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if !exists {
			RespondDomainError(c, domain.ValidationError{Field: "client_id", Msg: "client does not exist"})
			return
		}

		patient, err := repo.Create(repositories.Patient{
			Name:      req.Name,
			Species:   req.Species,
			BreedID:   req.BreedID,
			BirthDate: req.BirthDate,
			Gender:    req.Gender,
			WeightKg:  req.WeightKg,
			ClientID:  req.ClientID,
			PhotoURL:  req.PhotoURL,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, patient)
	}
}

// PUT /api/patients/:id
func UpdatePatient(repo repositories.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		var req patientPatchRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.WeightKg != nil && *req.WeightKg <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "weight_kg", Msg: "weight must be positive"})
			return
		}
		if req.ClientID != nil {
			exists, err := repo.ClientExists(*req.ClientID)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			if !exists {
				RespondDomainError(c, domain.ValidationError{Field: "client_id", Msg: "client does not exist"})
				return
			}
		}

		patient, err := repo.Update(id, repositories.PatientPatch{
			Name:      req.Name,
			Species:   req.Species,
			BreedID:   req.BreedID,
			BirthDate: req.BirthDate,
			Gender:    req.Gender,
			WeightKg:  req.WeightKg,
			ClientID:  req.ClientID,
			PhotoURL:  req.PhotoURL,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, patient)
	}
}

// DELETE /api/patients/:id
func DeletePatient(repo repositories.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		if err := repo.Delete(id); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "patient deleted"})
	}
}
