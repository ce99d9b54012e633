package api

import (
	"log"
	stdhttp "net/http"

	"vetclinic/internal/auth"
	intconfig "vetclinic/internal/config"
	"vetclinic/internal/domain"
	h "vetclinic/internal/http/handlers"
	"vetclinic/internal/http/middleware"
	"vetclinic/internal/repositories"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the two-stage gate: every /api route requires the
// clinic API key, and everything except login and the health probes
// additionally requires a bearer token.
func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	tokens := auth.NewTokenService(env.JWTSecret)

	userRepo := repositories.UserRepository{}
	clientRepo := repositories.ClientRepository{}
	patientRepo := repositories.PatientRepository{}
	breedRepo := repositories.BreedRepository{}
	apptRepo := repositories.AppointmentRepository{}
	procRepo := repositories.ProcedureRepository{}
	ppRepo := repositories.PatientProcedureRepository{}
	recordRepo := repositories.MedicalRecordRepository{}
	statsRepo := repositories.StatsRepository{}

	api := r.Group("/api", middleware.APIKey(env.APIKey))
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.POST("/users/login", h.Login(tokens, userRepo))

		protected := api.Group("", middleware.Auth(tokens))
		{
			protected.GET("/auth/me", h.Me(userRepo))
			protected.GET("/routes", h.Routes)

			// Users: admin only
			users := protected.Group("/users", middleware.RequireRoles(domain.RoleAdmin))
			users.GET("", h.ListUsers(userRepo))
			users.GET("/:id", h.GetUser(userRepo))
			users.POST("", h.CreateUser(userRepo))
			users.PUT("/:id", h.UpdateUser(userRepo))
			users.DELETE("/:id", h.DeleteUser(userRepo))

			// Clients
			clients := protected.Group("/clients")
			clients.GET("", h.ListClients(clientRepo))
			clients.GET("/:id", h.GetClient(clientRepo))
			clients.POST("", h.CreateClient(clientRepo))
			clients.PUT("/:id", h.UpdateClient(clientRepo))
			clients.DELETE("/:id", h.DeleteClient(clientRepo))

			// Patients
			patients := protected.Group("/patients")
			patients.GET("", h.ListPatients(patientRepo))
			patients.GET("/:id", h.GetPatient(patientRepo))
			patients.POST("", h.CreatePatient(patientRepo))
			patients.PUT("/:id", h.UpdatePatient(patientRepo))
			patients.DELETE("/:id", h.DeletePatient(patientRepo))

			// Breeds
			breeds := protected.Group("/breeds")
			breeds.GET("", h.ListBreeds(breedRepo))
			breeds.GET("/:id", h.GetBreed(breedRepo))
			breeds.POST("", h.CreateBreed(breedRepo))
			breeds.PUT("/:id", h.UpdateBreed(breedRepo))
			breeds.DELETE("/:id", h.DeleteBreed(breedRepo))

			// Appointments
			appts := protected.Group("/appointments")
			appts.GET("", h.ListAppointments(apptRepo))
			appts.GET("/:id", h.GetAppointment(apptRepo))
			appts.POST("", h.CreateAppointment(apptRepo))
			appts.PUT("/:id", h.UpdateAppointment(apptRepo))
			appts.DELETE("/:id", h.DeleteAppointment(apptRepo))

			// Procedure catalog
			procs := protected.Group("/procedures")
			procs.GET("", h.ListProcedures(procRepo))
			procs.GET("/:id", h.GetProcedure(procRepo))
			procs.POST("", h.CreateProcedure(procRepo))
			procs.PUT("/:id", h.UpdateProcedure(procRepo))
			procs.DELETE("/:id", h.DeleteProcedure(procRepo))

			// Procedures applied to patients
			pps := protected.Group("/patient-procedures")
			pps.GET("", h.ListPatientProcedures(ppRepo))
			pps.GET("/:id", h.GetPatientProcedure(ppRepo))
			pps.POST("", h.CreatePatientProcedure(ppRepo))
			pps.PUT("/:id", h.UpdatePatientProcedure(ppRepo))
			pps.DELETE("/:id", h.DeletePatientProcedure(ppRepo))

			// Medical records
			records := protected.Group("/medical-records")
			records.GET("", h.ListMedicalRecords(recordRepo))
			records.GET("/:id", h.GetMedicalRecord(recordRepo))
			records.POST("", h.CreateMedicalRecord(recordRepo))
			records.PUT("/:id", h.UpdateMedicalRecord(recordRepo))
			records.DELETE("/:id", h.DeleteMedicalRecord(recordRepo))
			records.GET("/:id/summary-pdf", h.MedicalRecordSummaryPDF(recordRepo, patientRepo))

			// Statistics
			stats := protected.Group("/stats")
			stats.GET("/admin", middleware.RequireRoles(domain.RoleAdmin), h.AdminStats(statsRepo))
			stats.GET("/veterinarian", middleware.RequireRoles(domain.RoleVeterinarian, domain.RoleAdmin), h.VeterinarianStats(statsRepo))
		}
	}

	h.SetRouter(r)
	return r
}
