package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formflow/forms-service/internal/models"
	"github.com/formflow/forms-service/internal/services"
	"github.com/formflow/forms-service/internal/validator"
)

// SessionHandler drives the wizard state machine over HTTP. Each session owns
// one collector; navigation and answers are discrete events against it.
type SessionHandler struct {
	BaseHandler
	formService services.FormService
	sessions    *services.SessionManager
	recorder    services.SubmissionRecorder
	validator   *validator.Validator
}

func NewSessionHandler(
	formService services.FormService,
	sessions *services.SessionManager,
	recorder services.SubmissionRecorder,
	validator *validator.Validator,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
		sessions:    sessions,
		recorder:    recorder,
		validator:   validator,
	}
}

// AnswerRequest carries one answer event. Value answers a single-valued
// question; Option+Checked toggles one checkbox option.
type AnswerRequest struct {
	QuestionID string  `json:"question_id" validate:"required"`
	Value      *string `json:"value,omitempty"`
	Option     *string `json:"option,omitempty"`
	Checked    *bool   `json:"checked,omitempty"`
}

// SessionState is the wizard view rendered after every transition.
type SessionState struct {
	SessionID       string                    `json:"session_id"`
	FormID          string                    `json:"form_id"`
	FormTitle       string                    `json:"form_title"`
	Phase           services.Phase            `json:"phase"`
	CurrentIndex    int                       `json:"current_index"`
	QuestionCount   int                       `json:"question_count"`
	CurrentQuestion *models.Question          `json:"current_question,omitempty"`
	Answers         models.AnswerSet          `json:"answers"`
	Summary         []models.SubmissionAnswer `json:"summary,omitempty"`
}

func (h *SessionHandler) state(sessionID string, collector *services.Collector) SessionState {
	form := collector.Form()
	state := SessionState{
		SessionID:     sessionID,
		FormID:        form.ID,
		FormTitle:     form.Title,
		Phase:         collector.Phase(),
		CurrentIndex:  collector.CurrentIndex(),
		QuestionCount: len(form.Questions),
		Answers:       collector.Answers(),
	}
	if q, ok := collector.CurrentQuestion(); ok && state.Phase == services.PhaseCollecting {
		state.CurrentQuestion = &q
	}
	if state.Phase != services.PhaseCollecting {
		state.Summary = collector.Summary()
	}
	return state
}

// StartSession opens a wizard session over a form
func (h *SessionHandler) StartSession(c *gin.Context) {
	form, err := h.formService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sessionID, collector := h.sessions.Create(form, h.recorder, h.logger)
	h.LogRequest(c, "Session started", "session_id", sessionID, "form_id", form.ID)
	c.JSON(http.StatusCreated, h.state(sessionID, collector))
}

// GetSession returns the current wizard state
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	collector, ok := h.sessions.Get(sessionID)
	if !ok {
		h.handleServiceError(c, services.ErrSessionNotFound)
		return
	}
	c.JSON(http.StatusOK, h.state(sessionID, collector))
}

// Answer records one answer event against the session
func (h *SessionHandler) Answer(c *gin.Context) {
	sessionID := c.Param("session_id")
	collector, ok := h.sessions.Get(sessionID)
	if !ok {
		h.handleServiceError(c, services.ErrSessionNotFound)
		return
	}

	var req AnswerRequest
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

	var applied bool
	switch {
	case req.Option != nil && req.Checked != nil:
		applied = collector.ToggleOption(req.QuestionID, *req.Option, *req.Checked)
	case req.Value != nil:
		applied = collector.SetAnswer(req.QuestionID, *req.Value)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Either value or option+checked must be provided",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applied": applied,
		"state":   h.state(sessionID, collector),
	})
}

// Next advances one step, submitting on the last question
func (h *SessionHandler) Next(c *gin.Context) {
	h.transition(c, func(collector *services.Collector) error {
		return collector.Next()
	})
}

// Previous steps back one question
func (h *SessionHandler) Previous(c *gin.Context) {
	h.transition(c, func(collector *services.Collector) error {
		collector.Previous()
		return nil
	})
}

// Submit validates required questions and freezes the answers for review
func (h *SessionHandler) Submit(c *gin.Context) {
	h.transition(c, func(collector *services.Collector) error {
		return collector.Submit()
	})
}

// Edit returns from review to the first question, answers preserved
func (h *SessionHandler) Edit(c *gin.Context) {
	h.transition(c, func(collector *services.Collector) error {
		return collector.Edit()
	})
}

func (h *SessionHandler) transition(c *gin.Context, apply func(*services.Collector) error) {
	sessionID := c.Param("session_id")
	collector, ok := h.sessions.Get(sessionID)
	if !ok {
		h.handleServiceError(c, services.ErrSessionNotFound)
		return
	}
	if err := apply(collector); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.state(sessionID, collector))
}

// ConfirmSend performs the one external send and confirms the submission
func (h *SessionHandler) ConfirmSend(c *gin.Context) {
	sessionID := c.Param("session_id")
	collector, ok := h.sessions.Get(sessionID)
	if !ok {
		h.handleServiceError(c, services.ErrSessionNotFound)
		return
	}

	h.LogRequest(c, "Confirming submission", "session_id", sessionID)
	record, err := collector.ConfirmSend(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record": record,
		"state":  h.state(sessionID, collector),
	})
}
