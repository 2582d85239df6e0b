// Package wizard implements the multi-step signup flows. Each step is a form
// whose validity gates the transition to the next step.
package wizard

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrIncomplete is returned when moving past a step whose form is invalid.
	ErrIncomplete = errors.New("current step is incomplete")
	// ErrNotFinal is returned by Submit before the last step is reached.
	ErrNotFinal = errors.New("signup is not on its final step")
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("past", func(fl validator.FieldLevel) bool {
			t, ok := fl.Field().Interface().(time.Time)
			return ok && !t.IsZero() && t.Before(time.Now())
		})
	})
	return validate
}

// Step is one page of a wizard. Form returns the struct whose validate tags
// decide whether the user may continue.
type Step struct {
	Name string
	Form func() any
}

// Wizard tracks the current step of a signup flow.
type Wizard struct {
	steps   []Step
	current int
}

// New creates a wizard positioned on the first step.
func New(steps ...Step) *Wizard {
	return &Wizard{steps: steps}
}

// Current returns the zero-based index of the current step.
func (w *Wizard) Current() int {
	return w.current
}

// Len returns the number of steps.
func (w *Wizard) Len() int {
	return len(w.steps)
}

// StepName returns the name of the current step.
func (w *Wizard) StepName() string {
	return w.steps[w.current].Name
}

// IsFinal reports whether the current step is the last one.
func (w *Wizard) IsFinal() bool {
	return w.current == len(w.steps)-1
}

// CanContinue reports whether the current step's form is valid.
func (w *Wizard) CanContinue() bool {
	return w.Validate() == nil
}

// Validate returns the reasons the current step cannot continue, or nil.
func (w *Wizard) Validate() error {
	if err := formValidator().Struct(w.steps[w.current].Form()); err != nil {
		return describe(err)
	}
	return nil
}

// Next advances one step. It stays put and returns ErrIncomplete while the
// current step is invalid, and is a no-op on the final step.
func (w *Wizard) Next() error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrIncomplete, err)
	}
	if !w.IsFinal() {
		w.current++
	}
	return nil
}

// Back returns to the previous step. It is a no-op on the first step.
func (w *Wizard) Back() {
	if w.current > 0 {
		w.current--
	}
}

// describe turns validator errors into a short user-facing message.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("select at least %s %s", fe.Param(), field)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eq":
		return fmt.Sprintf("%s must be %s", field, fe.Param())
	case "past":
		return field + " must be in the past"
	default:
		return field + " is invalid"
	}
}
