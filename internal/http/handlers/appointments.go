package handlers

import (
	"net/http"
	"time"

	"vetclinic/internal/domain"
	"vetclinic/internal/repositories"

	"github.com/gin-gonic/gin"
)

const (
	minAppointmentLength = 5 * time.Minute
	maxAppointmentLength = 4 * time.Hour
)

type appointmentRequest struct {
	PatientID      *int64    `json:"patient_id"`
	ClientID       *int64    `json:"client_id"`
	VeterinarianID int64     `json:"veterinarian_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Reason         string    `json:"reason"`
}

type appointmentPatchRequest struct {
	PatientID      *int64     `json:"patient_id"`
	ClientID       *int64     `json:"client_id"`
	VeterinarianID *int64     `json:"veterinarian_id"`
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	Status         *string    `json:"status"`
	Reason         *string    `json:"reason"`
}

// GET /api/appointments
func ListAppointments(repo repositories.AppointmentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := repositories.AppointmentFilter{
			PatientID:      c.Query("patient_id"),
			ClientID:       c.Query("client_id"),
			VeterinarianID: c.Query("veterinarian_id"),
			Status:         c.Query("status"),
			StartDate:      c.Query("start_date"),
			EndDate:        c.Query("end_date"),
			ReasonContains: c.Query("reason_contains"),
			Limit:          c.Query("limit"),
			Offset:         c.Query("offset"),
		}
		appts, err := repo.List(f)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, appts)
	}
}

// GET /api/appointments/:id
func GetAppointment(repo repositories.AppointmentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		appt, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// POST /api/appointments
func CreateAppointment(repo repositories.AppointmentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appointmentRequest
		if !BindJSONOrError(c, &req) {
			return
		}
		if req.VeterinarianID <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "veterinarian_id", Msg: "veterinarian_id is required"})
			return
		}
		if err := validateAppointmentWindow(req.StartTime, req.EndTime, true); err != nil {
			RespondDomainError(c, err)
			return
		}

		busy, err := repo.VeterinarianBusy(req.VeterinarianID, req.StartTime, req.EndTime, 0)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if busy {
			RespondDomainError(c, domain.ConflictError{Resource: "appointment", Msg: "veterinarian already booked in that window"})
			return
		}

		appt, err := repo.Create(repositories.Appointment{
			PatientID:      req.PatientID,
			ClientID:       req.ClientID,
			VeterinarianID: req.VeterinarianID,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Reason:         req.Reason,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, appt)
	}
}

// PUT /api/appointments/:id
func UpdateAppointment(repo repositories.AppointmentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		var req appointmentPatchRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		current, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}

		// the overlap check runs against the effective schedule, so a
		// patch moving only one endpoint still gets validated
		start := current.StartTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		end := current.EndTime
		if req.EndTime != nil {
			end = *req.EndTime
		}
		vetID := current.VeterinarianID
		if req.VeterinarianID != nil {
			vetID = *req.VeterinarianID
		}

		rescheduled := req.StartTime != nil || req.EndTime != nil || req.VeterinarianID != nil
		if rescheduled {
			if err := validateAppointmentWindow(start, end, req.StartTime != nil); err != nil {
				RespondDomainError(c, err)
				return
			}
			busy, err := repo.VeterinarianBusy(vetID, start, end, id)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			if busy {
				RespondDomainError(c, domain.ConflictError{Resource: "appointment", Msg: "veterinarian already booked in that window"})
				return
			}
		}

		appt, err := repo.Update(id, repositories.AppointmentPatch{
			PatientID:      req.PatientID,
			ClientID:       req.ClientID,
			VeterinarianID: req.VeterinarianID,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Status:         req.Status,
			Reason:         req.Reason,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// DELETE /api/appointments/:id
//
// Completed and canceled appointments are history and cannot be removed.
func DeleteAppointment(repo repositories.AppointmentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		current, err := repo.GetByID(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if current.Status == "Completed" || current.Status == "Canceled" {
			RespondDomainError(c, domain.ConflictError{Resource: "appointment", Msg: "completed or canceled appointments cannot be deleted"})
			return
		}
		if err := repo.Delete(id); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "appointment deleted"})
	}
}

func validateAppointmentWindow(start, end time.Time, requireFuture bool) error {
	if start.IsZero() || end.IsZero() {
		return domain.ValidationError{Field: "start_time", Msg: "start_time and end_time are required"}
	}
	if !end.After(start) {
		return domain.ValidationError{Field: "end_time", Msg: "end_time must be after start_time"}
	}
	length := end.Sub(start)
	if length < minAppointmentLength {
		return domain.ValidationError{Field: "end_time", Msg: "appointment must last at least 5 minutes"}
	}
	if length > maxAppointmentLength {
		return domain.ValidationError{Field: "end_time", Msg: "appointment cannot last more than 4 hours"}
	}
	if requireFuture && start.Before(time.Now()) {
		return domain.ValidationError{Field: "start_time", Msg: "start_time must be in the future"}
	}
	return nil
}
