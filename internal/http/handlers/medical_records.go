package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"vetclinic/internal/domain"
	"vetclinic/internal/http/middleware"
	"vetclinic/internal/repositories"
	"vetclinic/internal/services"

	"github.com/gin-gonic/gin"
)

type medicalRecordRequest struct {
	PatientID      int64    `json:"patient_id"`
	VeterinarianID int64    `json:"veterinarian_id"`
	Diagnosis      string   `json:"diagnosis"`
	Treatment      *string  `json:"treatment"`
	Notes          *string  `json:"notes"`
	WeightAtVisit  *float64 `json:"weight_at_visit"`
}

type medicalRecordPatchRequest struct {
	PatientID      *int64   `json:"patient_id"`
	VeterinarianID *int64   `json:"veterinarian_id"`
	Diagnosis      *string  `json:"diagnosis"`
	Treatment      *string  `json:"treatment"`
	Notes          *string  `json:"notes"`
	WeightAtVisit  *float64 `json:"weight_at_visit"`
}

// GET /api/medical-records
func ListMedicalRecords(repo repositories.MedicalRecordRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := repositories.MedicalRecordFilter{
			PatientID:         c.Query("patient_id"),
			VeterinarianID:    c.Query("veterinarian_id"),
			StartDate:         c.Query("start_date"),
			EndDate:           c.Query("end_date"),
			DiagnosisContains: c.Query("diagnosis_contains"),
			Limit:             c.Query("limit"),
			Offset:            c.Query("offset"),
		}
		records, err := repo.List(f)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

// GET /api/medical-records/:id
func GetMedicalRecord(repo repositories.MedicalRecordRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		record, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// POST /api/medical-records
func CreateMedicalRecord(repo repositories.MedicalRecordRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req medicalRecordRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.PatientID <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "patient_id", Msg: "patient_id is required"})
			return
		}
		if req.VeterinarianID <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "veterinarian_id", Msg: "veterinarian_id is required"})
			return
		}
		if strings.TrimSpace(req.Diagnosis) == "" {
			RespondDomainError(c, domain.ValidationError{Field: "diagnosis", Msg: "diagnosis is required"})
			return
		}
		if req.WeightAtVisit != nil && *req.WeightAtVisit <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "weight_at_visit", Msg: "weight must be positive"})
			return
		}

		record, err := repo.Create(repositories.MedicalRecord{
			PatientID:      req.PatientID,
			VeterinarianID: req.VeterinarianID,
			Diagnosis:      req.Diagnosis,
			Treatment:      req.Treatment,
			Notes:          req.Notes,
			WeightAtVisit:  req.WeightAtVisit,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, record)
	}
}

// PUT /api/medical-records/:id
func UpdateMedicalRecord(repo repositories.MedicalRecordRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		var req medicalRecordPatchRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.WeightAtVisit != nil && *req.WeightAtVisit <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "weight_at_visit", Msg: "weight must be positive"})
			return
		}

		record, err := repo.Update(id, repositories.MedicalRecordPatch{
			PatientID:      req.PatientID,
			VeterinarianID: req.VeterinarianID,
			Diagnosis:      req.Diagnosis,
			Treatment:      req.Treatment,
			Notes:          req.Notes,
			WeightAtVisit:  req.WeightAtVisit,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// DELETE /api/medical-records/:id
func DeleteMedicalRecord(repo repositories.MedicalRecordRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		if err := repo.Delete(id); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "medical record deleted"})
	}
}

// GET /api/medical-records/:id/summary-pdf
func MedicalRecordSummaryPDF(recordRepo repositories.MedicalRecordRepository, patientRepo repositories.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		svc := services.DocsService{
			RecordRepo:  recordRepo,
			PatientRepo: patientRepo,
			RequestID:   middleware.GetRequestID(c),
		}
		pdf, filename, err := svc.GenerateRecordSummary(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
