package services

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	apperrors "github.com/formflow/forms-service/internal/errors"
	"github.com/formflow/forms-service/internal/models"
)

// Phase is the wizard state. Collecting accepts answers and navigation,
// Reviewing exposes the frozen summary, Confirmed is terminal.
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseReviewing  Phase = "reviewing"
	PhaseConfirmed  Phase = "confirmed"
)

// SubmissionRecorder is the collaborator that turns a finalized answer set
// into a stored submission record. The concrete implementation also performs
// the external send.
type SubmissionRecorder interface {
	Record(ctx context.Context, form *models.Form, answers models.AnswerSet) (*models.SubmissionRecord, error)
}

// Collector runs the answer-collection state machine over one form for one
// respondent. All mutations go through the mutex; the in-flight guard
// ensures at most one send per collector regardless of how triggers arrive.
type Collector struct {
	mu       sync.Mutex
	form     *models.Form
	answers  models.AnswerSet
	index    int
	phase    Phase
	sending  bool
	recorder SubmissionRecorder
	logger   *slog.Logger
}

// NewCollector starts a wizard at the first question. Date questions are
// pre-seeded with today's date before the respondent interacts at all.
func NewCollector(form *models.Form, recorder SubmissionRecorder, logger *slog.Logger) *Collector {
	answers := make(models.AnswerSet)
	today := time.Now().Format("2006-01-02")
	for _, q := range form.Questions {
		if q.Type == models.QuestionDate {
			answers[q.ID] = models.Answer{Value: today}
		}
	}
	return &Collector{
		form:     form,
		answers:  answers,
		phase:    PhaseCollecting,
		recorder: recorder,
		logger:   logger,
	}
}

// Form returns the form this collector runs over.
func (c *Collector) Form() *models.Form {
	return c.form
}

// Phase returns the current wizard phase.
func (c *Collector) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// CurrentIndex returns the current question index.
func (c *Collector) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// CurrentQuestion returns the question at the current step, or false when the
// form has no questions.
func (c *Collector) CurrentQuestion() (models.Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index < 0 || c.index >= len(c.form.Questions) {
		return models.Question{}, false
	}
	return c.form.Questions[c.index], true
}

// Answers returns a copy of the answer set collected so far.
func (c *Collector) Answers() models.AnswerSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answers.Clone()
}

// SetAnswer overwrites the answer for a single-valued question. It reports
// false for unknown question ids (stale events), for checkbox questions,
// whose set is only ever changed one option at a time through ToggleOption,
// and outside the collecting phase: once submit freezes the answers, late
// answer events no longer apply.
func (c *Collector) SetAnswer(questionID, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseCollecting {
		return false
	}
	q, ok := c.form.Question(questionID)
	if !ok || q.Type == models.QuestionCheckbox {
		return false
	}
	c.answers[questionID] = models.Answer{Value: value}
	return true
}

// ToggleOption adds the option to a checkbox question's current set when
// checked, or removes it when unchecked. Toggling the same option twice
// returns the set to its prior value. Like SetAnswer, it only applies while
// collecting.
func (c *Collector) ToggleOption(questionID, option string, checked bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseCollecting {
		return false
	}
	q, ok := c.form.Question(questionID)
	if !ok || q.Type != models.QuestionCheckbox {
		return false
	}
	current := c.answers[questionID].Selected
	if checked {
		if !slices.Contains(current, option) {
			current = append(current, option)
		}
	} else {
		current = slices.DeleteFunc(slices.Clone(current), func(o string) bool { return o == option })
	}
	c.answers[questionID] = models.Answer{Selected: current}
	return true
}

// Next advances to the following question. On the last question it attempts
// to submit instead; the returned error is then the submit outcome.
func (c *Collector) Next() error {
	c.mu.Lock()
	if c.index < len(c.form.Questions)-1 {
		c.index++
		c.mu.Unlock()
		return nil
	}
	defer c.mu.Unlock()
	return c.submitLocked()
}

// Previous steps back one question; it is a no-op at the first question.
func (c *Collector) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index > 0 {
		c.index--
	}
}

// Submit validates required questions and, when all are answered, freezes the
// answers and moves to the reviewing phase. On failure the collector stays in
// the collecting phase and the error names every unanswered question.
func (c *Collector) Submit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitLocked()
}

func (c *Collector) submitLocked() error {
	if c.phase == PhaseConfirmed {
		return ErrAlreadyConfirmed
	}
	if c.phase == PhaseReviewing {
		return nil
	}

	var unanswered apperrors.ValidationErrors
	for _, q := range c.form.Questions {
		if q.IsRequired && c.answers[q.ID].IsEmpty() {
			unanswered = append(unanswered, apperrors.ValidationError{
				Field:   q.ID,
				Message: "is required",
				Value:   q.Text,
				Rule:    "required",
			})
		}
	}
	if len(unanswered) > 0 {
		c.logger.Info("Submit rejected, required questions unanswered",
			"form_id", c.form.ID,
			"unanswered", len(unanswered))
		return unanswered
	}

	c.phase = PhaseReviewing
	c.logger.Info("Answers frozen for review", "form_id", c.form.ID, "answers", len(c.answers))
	return nil
}

// Edit returns from the review screen to the first question. Answers are
// preserved, not cleared.
func (c *Collector) Edit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseConfirmed {
		return ErrAlreadyConfirmed
	}
	if c.phase != PhaseReviewing {
		return ErrNotReviewing
	}
	c.phase = PhaseCollecting
	c.index = 0
	return nil
}

// Summary renders one question/answer row per form question, in form order,
// with the same rules the submission record uses.
func (c *Collector) Summary() []models.SubmissionAnswer {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]models.SubmissionAnswer, 0, len(c.form.Questions))
	for _, q := range c.form.Questions {
		rows = append(rows, models.SubmissionAnswer{
			Question: q.Text,
			Answer:   q.Render(c.answers[q.ID]),
		})
	}
	return rows
}

// ConfirmSend hands the frozen answers to the recorder. At most one send can
// be in flight: concurrent triggers get ErrSendInFlight until the pending one
// resolves, and once the send completes the collector is terminally
// confirmed. There is no cancellation; an invoked send always runs to
// completion.
func (c *Collector) ConfirmSend(ctx context.Context) (*models.SubmissionRecord, error) {
	c.mu.Lock()
	switch {
	case c.phase == PhaseConfirmed:
		c.mu.Unlock()
		return nil, ErrAlreadyConfirmed
	case c.phase != PhaseReviewing:
		c.mu.Unlock()
		return nil, ErrNotReviewing
	case c.sending:
		c.mu.Unlock()
		return nil, ErrSendInFlight
	}
	c.sending = true
	answers := c.answers.Clone()
	c.mu.Unlock()

	record, err := c.recorder.Record(ctx, c.form, answers)

	c.mu.Lock()
	c.sending = false
	if err == nil {
		c.phase = PhaseConfirmed
	}
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return record, nil
}
