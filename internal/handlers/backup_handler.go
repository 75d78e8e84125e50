package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formflow/forms-service/internal/models"
	"github.com/formflow/forms-service/internal/services"
)

// BackupHandler exposes the manual save/restore of the whole application
// snapshot.
type BackupHandler struct {
	BaseHandler
	backup      services.BackupService
	formService services.FormService
}

func NewBackupHandler(backup services.BackupService, formService services.FormService, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{
		BaseHandler: NewBaseHandler(logger),
		backup:      backup,
		formService: formService,
	}
}

// SaveBackupRequest names the screen and optional current form to snapshot
// alongside the stored forms.
type SaveBackupRequest struct {
	CurrentFormID *string `json:"current_form_id,omitempty"`
	View          string  `json:"view,omitempty"`
}

// SaveBackup snapshots the current forms, form-in-progress and view. Both
// request fields are optional; a body-less POST saves the defaults.
func (h *BackupHandler) SaveBackup(c *gin.Context) {
	var req SaveBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if req.View == "" {
		req.View = "list"
	}

	forms, err := h.formService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	state := &models.BackupState{
		Forms: make([]models.Form, 0, len(forms)),
		View:  req.View,
	}
	for _, form := range forms {
		state.Forms = append(state.Forms, *form)
	}
	if req.CurrentFormID != nil {
		current, err := h.formService.GetByID(c.Request.Context(), *req.CurrentFormID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		state.CurrentForm = current
	}

	h.LogRequest(c, "Saving backup state", "forms", len(state.Forms), "view", state.View)
	if err := h.backup.Save(c.Request.Context(), state); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Current state saved"})
}

// RestoreBackup returns the last saved snapshot
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	h.LogRequest(c, "Restoring backup state")

	state, err := h.backup.Restore(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Last saved state restored",
		Data:    state,
	})
}
