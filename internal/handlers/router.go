package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formflow/forms-service/internal/services"
	"github.com/formflow/forms-service/internal/validator"
)

type HandlerManager struct {
	formHandler    *FormHandler
	sessionHandler *SessionHandler
	exportHandler  *ExportHandler
	backupHandler  *BackupHandler
}

func NewHandlerManager(
	formService services.FormService,
	submissionService services.SubmissionService,
	aggregatorService services.AggregatorService,
	backupService services.BackupService,
	sessions *services.SessionManager,
	validator *validator.Validator,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		formHandler:    NewFormHandler(formService, validator, logger),
		sessionHandler: NewSessionHandler(formService, sessions, submissionService, validator, logger),
		exportHandler:  NewExportHandler(submissionService, aggregatorService, validator, logger),
		backupHandler:  NewBackupHandler(backupService, formService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Form definition routes
		forms := v1.Group("/forms")
		{
			forms.POST("", hm.formHandler.CreateForm)
			forms.GET("", hm.formHandler.ListForms)
			forms.GET("/:id", hm.formHandler.GetForm)
			forms.PUT("/:id", hm.formHandler.SaveForm)
			forms.DELETE("/:id", hm.formHandler.DeleteForm)

			// Question editing
			forms.POST("/:id/questions", hm.formHandler.AddQuestion)
			forms.PATCH("/:id/questions/:question_id", hm.formHandler.UpdateQuestion)
			forms.DELETE("/:id/questions/:question_id", hm.formHandler.RemoveQuestion)

			// Option editing
			forms.POST("/:id/questions/:question_id/options", hm.formHandler.AddOption)
			forms.PUT("/:id/questions/:question_id/options/:index", hm.formHandler.UpdateOption)
			forms.DELETE("/:id/questions/:question_id/options/:index", hm.formHandler.RemoveOption)

			// Wizard session entry point
			forms.POST("/:id/sessions", hm.sessionHandler.StartSession)
		}

		// Wizard session routes
		sessions := v1.Group("/sessions")
		{
			sessions.GET("/:session_id", hm.sessionHandler.GetSession)
			sessions.POST("/:session_id/answers", hm.sessionHandler.Answer)
			sessions.POST("/:session_id/next", hm.sessionHandler.Next)
			sessions.POST("/:session_id/previous", hm.sessionHandler.Previous)
			sessions.POST("/:session_id/submit", hm.sessionHandler.Submit)
			sessions.POST("/:session_id/edit", hm.sessionHandler.Edit)
			sessions.POST("/:session_id/confirm", hm.sessionHandler.ConfirmSend)
		}

		// Data dashboard routes
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/table", hm.exportHandler.GetTable)
			dashboard.GET("/counts", hm.exportHandler.GetCounts)
			dashboard.GET("/export", hm.exportHandler.Export)
		}

		// Backup routes
		backup := v1.Group("/backup")
		{
			backup.POST("", hm.backupHandler.SaveBackup)
			backup.POST("/restore", hm.backupHandler.RestoreBackup)
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
