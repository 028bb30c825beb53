package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// credentials is the input for every account-creating path.
type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,max=72"`
}

var fieldNames = map[string]string{
	"Title":          "title",
	"QuestionCount":  "question count",
	"OptionCount":    "option count",
	"CorrectAnswers": "answer",
	"Email":          "email",
	"Password":       "password",
}

var bounds = map[string]string{
	"Title":         fmt.Sprintf("at most %d characters", MaxTitle),
	"QuestionCount": fmt.Sprintf("between 1 and %d", MaxQuestions),
	"OptionCount":   fmt.Sprintf("between 1 and %d", MaxOptions),
	"Password":      fmt.Sprintf("at most %d characters", maxPasswordBytes),
}

// fieldProblem turns the first validation failure into a short sentence
// fit for a form error.
func fieldProblem(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	// dive failures are reported as CorrectAnswers[i]
	field, idx, _ := strings.Cut(fe.StructField(), "[")
	name := fieldNames[field]
	if name == "" {
		name = strings.ToLower(field)
	}
	if i, err := strconv.Atoi(strings.TrimSuffix(idx, "]")); err == nil {
		name = fmt.Sprintf("%s %d", name, i+1)
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min", "max":
		return fmt.Sprintf("%s must be %s", name, bounds[field])
	case "excludesall":
		return name + " must not contain a comma"
	}
	return name + " is invalid"
}
