package handlers

import (
	"net/http"
	"strconv"

	"vetclinic/internal/domain"
	"vetclinic/internal/http/middleware"
	"vetclinic/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/stats/admin
//
// ?type=appointments|users|procedures|patients narrows the response to a
// single section; without it every section is computed.
func AdminStats(repo repositories.StatsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		startDate := c.Query("start_date")
		endDate := c.Query("end_date")
		section := c.Query("type")

		out := gin.H{}

		if section == "" || section == "appointments" {
			byMonth, err := repo.AppointmentsByMonth(startDate, endDate)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			out["appointments_by_month"] = byMonth
		}
		if section == "" || section == "users" {
			users, err := repo.CountUsers()
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			out["users"] = users
		}
		if section == "" || section == "procedures" {
			byType, err := repo.ProceduresByType(startDate, endDate, 0)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			out["procedures_by_type"] = byType
		}
		if section == "" || section == "patients" {
			bySpecies, err := repo.PatientsBySpecies()
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			out["patients_by_species"] = bySpecies
		}

		c.JSON(http.StatusOK, out)
	}
}

// GET /api/stats/veterinarian
//
// Veterinarians see their own numbers. Admins may inspect any
// veterinarian via ?veterinarian_id=N.
func VeterinarianStats(repo repositories.StatsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.GetIdentity(c)
		if !ok {
			RespondDomainError(c, domain.UnauthorizedError{Kind: "missing_token"})
			return
		}

		vetID := ident.UserID
		switch ident.Role {
		case domain.RoleVeterinarian:
			// always self, the query param is ignored
		case domain.RoleAdmin:
			if raw := c.Query("veterinarian_id"); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || id <= 0 {
					RespondDomainError(c, domain.ValidationError{Field: "veterinarian_id", Msg: "invalid veterinarian_id"})
					return
				}
				vetID = id
			}
		default:
			RespondDomainError(c, domain.ForbiddenError{Msg: "veterinarian statistics require a veterinarian or admin role"})
			return
		}

		stats, err := repo.VeterinarianStats(vetID, c.Query("start_date"), c.Query("end_date"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
