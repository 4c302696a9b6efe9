package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance.
// Field names in reported errors use the json tag of the field.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s against its `validate` tags.
func (v *Validator) Struct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError("body", err.Error(), nil)
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

// ValidateSubmitQuizResult checks the tags of req and then the score against the answers.
func (v *Validator) ValidateSubmitQuizResult(req *dto.SubmitQuizResultRequest) domain.ValidationErrors {
	if req == nil {
		return domain.NewValidationError("body", "is required", nil)
	}
	if errs := v.Struct(req); len(errs) > 0 {
		return errs
	}

	var errs domain.ValidationErrors
	score, total := *req.Score, *req.TotalQuestions
	if score > total {
		errs = append(errs, domain.ValidationError{
			Field:   "score",
			Message: fmt.Sprintf("must not exceed totalQuestions (%d)", total),
			Value:   score,
		})
	}

	correct := 0
	for _, q := range req.Questions {
		if *q.IsCorrect {
			correct++
		}
	}
	if correct != score {
		errs = append(errs, domain.ValidationError{
			Field:   "score",
			Message: fmt.Sprintf("must equal the number of correct answers (%d)", correct),
			Value:   score,
		})
	}
	return errs
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	ve := domain.ValidationError{Field: field, Message: messageFor(fe)}
	if fe.Tag() != "required" && !isSecret(fe.Field()) {
		ve.Value = fe.Value()
	}
	return ve
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func isSecret(field string) bool {
	return strings.Contains(strings.ToLower(field), "password")
}
