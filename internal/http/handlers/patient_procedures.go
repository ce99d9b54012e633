package handlers

import (
	"net/http"
	"time"

	"vetclinic/internal/domain"
	"vetclinic/internal/repositories"

	"github.com/gin-gonic/gin"
)

type patientProcedureRequest struct {
	PatientID      int64   `json:"patient_id"`
	ProcedureID    int64   `json:"procedure_id"`
	VeterinarianID *int64  `json:"veterinarian_id"`
	Date           string  `json:"date"`
	NextDueDate    *string `json:"next_due_date"`
	Notes          *string `json:"notes"`
}

type patientProcedurePatchRequest struct {
	PatientID      *int64  `json:"patient_id"`
	ProcedureID    *int64  `json:"procedure_id"`
	VeterinarianID *int64  `json:"veterinarian_id"`
	Date           *string `json:"date"`
	NextDueDate    *string `json:"next_due_date"`
	Notes          *string `json:"notes"`
}

// GET /api/patient-procedures
func ListPatientProcedures(repo repositories.PatientProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := repositories.PatientProcedureFilter{
			PatientID:      c.Query("patient_id"),
			ProcedureID:    c.Query("procedure_id"),
			VeterinarianID: c.Query("veterinarian_id"),
			StartDate:      c.Query("start_date"),
			EndDate:        c.Query("end_date"),
			Limit:          c.Query("limit"),
			Offset:         c.Query("offset"),
		}
		pps, err := repo.List(f)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, pps)
	}
}

// GET /api/patient-procedures/:id
func GetPatientProcedure(repo repositories.PatientProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		pp, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, pp)
	}
}

// POST /api/patient-procedures
func CreatePatientProcedure(repo repositories.PatientProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req patientProcedureRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.PatientID <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "patient_id", Msg: "patient_id is required"})
			return
		}
		if req.ProcedureID <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "procedure_id", Msg: "procedure_id is required"})
			return
		}
		if err := validateProcedureDates(req.Date, req.NextDueDate); err != nil {
			RespondDomainError(c, err)
			return
		}

		pp, err := repo.Create(repositories.PatientProcedure{
			PatientID:      req.PatientID,
			ProcedureID:    req.ProcedureID,
			VeterinarianID: req.VeterinarianID,
			Date:           req.Date,
			NextDueDate:    req.NextDueDate,
			Notes:          req.Notes,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, pp)
	}
}

// PUT /api/patient-procedures/:id
func UpdatePatientProcedure(repo repositories.PatientProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		var req patientProcedurePatchRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		if req.Date != nil || req.NextDueDate != nil {
			current, err := repo.GetByID(id)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			date := current.Date
			if req.Date != nil {
				date = *req.Date
			}
			due := current.NextDueDate
			if req.NextDueDate != nil {
				due = req.NextDueDate
			}
			if err := validateProcedureDates(date, due); err != nil {
				RespondDomainError(c, err)
				return
			}
		}

		pp, err := repo.Update(id, repositories.PatientProcedurePatch{
			PatientID:      req.PatientID,
			ProcedureID:    req.ProcedureID,
			VeterinarianID: req.VeterinarianID,
			Date:           req.Date,
			NextDueDate:    req.NextDueDate,
			Notes:          req.Notes,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, pp)
	}
}

// DELETE /api/patient-procedures/:id
func DeletePatientProcedure(repo repositories.PatientProcedureRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		if err := repo.Delete(id); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "patient procedure deleted"})
	}
}

func validateProcedureDates(date string, nextDue *string) error {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.ValidationError{Field: "date", Msg: "date must be yyyy-mm-dd"}
	}
	if nextDue != nil {
		nd, err := time.Parse("2006-01-02", *nextDue)
		if err != nil {
			return domain.ValidationError{Field: "next_due_date", Msg: "next_due_date must be yyyy-mm-dd"}
		}
		if nd.Before(d) {
			return domain.ValidationError{Field: "next_due_date", Msg: "next_due_date cannot be before date"}
		}
	}
	return nil
}
