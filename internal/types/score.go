// Package types provides the request and response types shared by the scoring pipeline, the HTTP server and the CLI.
package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ScoreRequest is the input to the weighted ATS score calculation.
type ScoreRequest struct {
	JD     string `json:"jd" validate:"required,notblank"`
	Resume string `json:"resume" validate:"required,notblank"`
}

// ScoreResponse is the result of a weighted ATS score calculation.
type ScoreResponse struct {
	ATSScore  float64        `json:"ats_score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Keywords  KeywordMatch   `json:"keywords"`
}

// ScoreBreakdown holds per-section similarity percentages and the bonus points awarded.
type ScoreBreakdown struct {
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Education  float64 `json:"education"`
	Bonus      int     `json:"bonus"`
}

// KeywordMatch lists JD keywords found in the resume and those missing from it.
// Both lists are sorted ascending; Missing is truncated after sorting.
type KeywordMatch struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// ScoreErrorResponse is returned when a score request cannot be processed.
type ScoreErrorResponse struct {
	Error    string  `json:"error"`
	ATSScore float64 `json:"ats_score"`
}

// KeyphraseRequest is the input to JD keyphrase extraction.
type KeyphraseRequest struct {
	JD string `json:"jd" validate:"required,notblank"`
}

// KeyphraseResponse lists the top keyphrases of a JD, best first.
type KeyphraseResponse struct {
	Keywords []string `json:"keywords"`
}

// ValidationError indicates a request field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// fieldMessages maps JSON field names to the message surfaced to API callers.
var fieldMessages = map[string]string{
	"jd":     "Job description (jd) is required",
	"resume": "Resume text (resume) is required",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// Validate checks that both jd and resume are present and not blank.
func (r *ScoreRequest) Validate() error {
	return toValidationError(validate.Struct(r))
}

// Validate checks that jd is present and not blank.
func (r *KeyphraseRequest) Validate() error {
	return toValidationError(validate.Struct(r))
}

// toValidationError reports the first failing field as a *ValidationError.
// Struct fields are declared in the order errors should be reported.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	field := verrs[0].Field()
	msg, ok := fieldMessages[field]
	if !ok {
		msg = fmt.Sprintf("%s failed %q validation", field, verrs[0].Tag())
	}
	return &ValidationError{Field: field, Message: msg}
}
