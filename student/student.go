package student

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FirstID is the id given to the first student added to an empty store
const FirstID = 1000

// Age limits applied when a student is created.
// Updates only require a positive age, see ParseUpdatedAge.
const (
	MinAge = 5
	MaxAge = 100
)

type Gender string

const (
	Male   Gender = "MALE"
	Female Gender = "FEMALE"
	Others Gender = "OTHERS"
)

// Genders lists valid genders in the order they're shown to the operator
var Genders = []Gender{Male, Female, Others}

// ParseGender accepts gender in any case, surrounding spaces are ignored
func ParseGender(s string) (Gender, bool) {
	g := Gender(strings.ToUpper(strings.TrimSpace(s)))
	switch g {
	case Male, Female, Others:
		return g, true
	}
	return "", false
}

// Student is a single student record.
// ID and RegNo never change after the record is created.
type Student struct {
	ID     int
	Name   string
	RegNo  string
	Grade  string
	Gender Gender
	Age    int
}

func (s *Student) String() string {
	return fmt.Sprintf("%-8d %-25s %-18s %-12s %-8s %3d", s.ID, s.Name, s.RegNo, s.Grade, s.Gender, s.Age)
}

// newStudent is what operator provides when adding a student
type newStudent struct {
	Name   string `validate:"required"`
	RegNo  string `validate:"required"`
	Grade  string `validate:"required"`
	Gender string `validate:"required,oneof=MALE FEMALE OTHERS"`
	Age    int    `validate:"min=5,max=100"`
}

// validator.Validate caches struct info and is meant to be shared
var validate = validator.New(validator.WithRequiredStructEnabled())

func fieldErrorToValidationError(fe validator.FieldError) *ValidationError {
	v := fmt.Sprintf("%v", fe.Value())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: fe.Field(), Value: v, Reason: "cannot be empty"}
	case "oneof":
		return &ValidationError{Field: fe.Field(), Value: v, Reason: "must be one of " + fe.Param()}
	case "min", "max":
		return &ValidationError{Field: fe.Field(), Value: v, Reason: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)}
	}
	return &ValidationError{Field: fe.Field(), Value: v, Reason: fe.Error()}
}

func validateNew(ns *newStudent) error {
	err := validate.Struct(ns)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return fieldErrorToValidationError(verrs[0])
	}
	return err
}

// CheckRequired returns *ValidationError if trimmed value is empty
func CheckRequired(field string, value string) error {
	if err := validate.Var(strings.TrimSpace(value), "required"); err != nil {
		return &ValidationError{Field: field, Value: value, Reason: "cannot be empty"}
	}
	return nil
}

func parseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "Age", Value: s, Reason: "not a valid number"}
	}
	return n, nil
}

// ParseNewAge parses age of a student being created, which must be in MinAge..MaxAge range
func ParseNewAge(s string) (int, error) {
	n, err := parseAge(s)
	if err != nil {
		return 0, err
	}
	if err = validate.Var(n, fmt.Sprintf("min=%d,max=%d", MinAge, MaxAge)); err != nil {
		return 0, &ValidationError{Field: "Age", Value: s, Reason: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)}
	}
	return n, nil
}

// ParseUpdatedAge parses age given when updating a student.
// Only positive is required, unlike ParseNewAge. Existing data
// depends on it so it's kept that way.
func ParseUpdatedAge(s string) (int, error) {
	n, err := parseAge(s)
	if err != nil {
		return 0, err
	}
	if err = validate.Var(n, "gt=0"); err != nil {
		return 0, &ValidationError{Field: "Age", Value: s, Reason: "must be positive"}
	}
	return n, nil
}
