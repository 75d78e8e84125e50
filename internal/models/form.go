package models

// QuestionType identifies the input kind of a question. The set is fixed;
// choice types carry an option list, the rest take free-form input.
type QuestionType string

const (
	QuestionText       QuestionType = "text"
	QuestionNumber     QuestionType = "number"
	QuestionDate       QuestionType = "date"
	QuestionRadio      QuestionType = "radio"
	QuestionCheckbox   QuestionType = "checkbox"
	QuestionSelect     QuestionType = "select"
	QuestionCardSelect QuestionType = "card-select"
)

// IsChoiceType reports whether the type requires a predefined option list.
func (t QuestionType) IsChoiceType() bool {
	switch t {
	case QuestionRadio, QuestionCheckbox, QuestionSelect, QuestionCardSelect:
		return true
	}
	return false
}

// IsValid reports whether the type belongs to the fixed enumeration.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionText, QuestionNumber, QuestionDate,
		QuestionRadio, QuestionCheckbox, QuestionSelect, QuestionCardSelect:
		return true
	}
	return false
}

// Question is one prompt unit of a form.
// Options is non-nil if and only if the type is a choice type.
type Question struct {
	ID         string       `json:"id" validate:"required"`
	Type       QuestionType `json:"type" validate:"required,question_type"`
	Text       string       `json:"text"`
	Options    []string     `json:"options,omitempty"`
	IsRequired bool         `json:"isRequired"`
}

// Form is an ordered list of questions. Question order is the presentation
// order and drives the wizard step indices.
type Form struct {
	ID        string     `json:"id" validate:"required"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question returns a pointer into the form's question slice, or false if no
// question carries the given id.
func (f *Form) Question(id string) (*Question, bool) {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return &f.Questions[i], true
		}
	}
	return nil, false
}

// QuestionIndex returns the position of a question within the form, or -1.
func (f *Form) QuestionIndex(id string) int {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return i
		}
	}
	return -1
}
