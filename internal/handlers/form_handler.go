package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/formflow/forms-service/internal/models"
	"github.com/formflow/forms-service/internal/services"
	"github.com/formflow/forms-service/internal/validator"
)

type FormHandler struct {
	BaseHandler
	formService services.FormService
	validator   *validator.Validator
}

func NewFormHandler(formService services.FormService, validator *validator.Validator, logger *slog.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
		validator:   validator,
	}
}

// ===== REQUEST STRUCTURES =====

// SaveFormRequest replaces a form's title and question list wholesale.
type SaveFormRequest struct {
	Title     string            `json:"title" validate:"required"`
	Questions []models.Question `json:"questions" validate:"omitempty,dive"`
}

// AddQuestionRequest appends a question of the given type.
type AddQuestionRequest struct {
	Type models.QuestionType `json:"type" validate:"required,question_type"`
}

// UpdateOptionRequest replaces one option value.
type UpdateOptionRequest struct {
	Value string `json:"value"`
}

// FormListEntry is one card of the form list view.
type FormListEntry struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

// CreateForm creates a new empty form
func (h *FormHandler) CreateForm(c *gin.Context) {
	h.LogRequest(c, "Creating form")

	form, err := h.formService.Create(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, form)
}

// ListForms returns every stored form as list entries
func (h *FormHandler) ListForms(c *gin.Context) {
	forms, err := h.formService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	entries := make([]FormListEntry, 0, len(forms))
	for _, form := range forms {
		entries = append(entries, FormListEntry{
			ID:            form.ID,
			Title:         form.Title,
			QuestionCount: len(form.Questions),
		})
	}
	c.JSON(http.StatusOK, entries)
}

// GetForm returns one form definition
func (h *FormHandler) GetForm(c *gin.Context) {
	form, err := h.formService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// SaveForm overwrites a form's title and questions
func (h *FormHandler) SaveForm(c *gin.Context) {
	var req SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	form := &models.Form{
		ID:        c.Param("id"),
		Title:     req.Title,
		Questions: req.Questions,
	}
	if form.Questions == nil {
		form.Questions = []models.Question{}
	}

	h.LogRequest(c, "Saving form", "form_id", form.ID)
	if err := h.formService.Save(c.Request.Context(), form); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// DeleteForm removes a form definition
func (h *FormHandler) DeleteForm(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting form", "form_id", id)

	if err := h.formService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Form deleted"})
}

// AddQuestion appends a new question to the form
func (h *FormHandler) AddQuestion(c *gin.Context) {
	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	h.mutateForm(c, func(builder *services.FormBuilder) (interface{}, bool) {
		question := builder.AddQuestion(req.Type)
		return question, true
	}, http.StatusCreated)
}

// UpdateQuestion merges a partial edit into one question
func (h *FormHandler) UpdateQuestion(c *gin.Context) {
	var req services.QuestionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	questionID := c.Param("question_id")
	h.mutateForm(c, func(builder *services.FormBuilder) (interface{}, bool) {
		applied := builder.UpdateQuestion(questionID, req)
		return AppliedResponse{Applied: applied}, applied
	}, http.StatusOK)
}

// RemoveQuestion deletes one question
func (h *FormHandler) RemoveQuestion(c *gin.Context) {
	questionID := c.Param("question_id")
	h.mutateForm(c, func(builder *services.FormBuilder) (interface{}, bool) {
		applied := builder.RemoveQuestion(questionID)
		return AppliedResponse{Applied: applied}, applied
	}, http.StatusOK)
}

// AddOption appends an empty option to a choice question
func (h *FormHandler) AddOption(c *gin.Context) {
	questionID := c.Param("question_id")
	h.mutateForm(c, func(builder *services.FormBuilder) (interface{}, bool) {
		applied := builder.AddOption(questionID)
		return AppliedResponse{Applied: applied}, applied
	}, http.StatusOK)
}

// UpdateOption replaces one option value
func (h *FormHandler) UpdateOption(c *gin.Context) {
	var req UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	questionID := c.Param("question_id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid option index"})
		return
	}

	h.mutateForm(c, func(builder *services.FormBuilder) (interface{}, bool) {
		applied := builder.UpdateOption(questionID, index, req.Value)
		return AppliedResponse{Applied: applied}, applied
	}, http.StatusOK)
}

// RemoveOption deletes one option
func (h *FormHandler) RemoveOption(c *gin.Context) {
	questionID := c.Param("question_id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid option index"})
		return
	}

	h.mutateForm(c, func(builder *services.FormBuilder) (interface{}, bool) {
		applied := builder.RemoveOption(questionID, index)
		return AppliedResponse{Applied: applied}, applied
	}, http.StatusOK)
}

// mutateForm loads the form, applies one builder mutation and saves the
// result. Mutations that did not apply (stale references) skip the save and
// still respond 200 so stale UI events never surface as failures.
func (h *FormHandler) mutateForm(c *gin.Context, mutate func(*services.FormBuilder) (interface{}, bool), successStatus int) {
	form, err := h.formService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	builder := services.NewFormBuilder(form)
	response, applied := mutate(builder)
	if applied {
		if err := h.formService.Save(c.Request.Context(), builder.Form()); err != nil {
			h.handleServiceError(c, err)
			return
		}
	}
	c.JSON(successStatus, response)
}
