package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrRecordNotFound is returned by stores when no record has the requested id.
var ErrRecordNotFound = errors.New("record not found")

// EntityKind names a kind of record. It keys not-found classification.
type EntityKind string

const (
	KindTransaction      EntityKind = "transaction"
	KindPortfolio        EntityKind = "portfolio"
	KindNotification     EntityKind = "notification"
	KindUser             EntityKind = "user"
	KindFinancingProfile EntityKind = "financing profile"
)

// NotFoundError reports a missing record of a given kind.
type NotFoundError struct {
	Kind EntityKind
	ID   string
}

func NewNotFoundError(kind EntityKind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// DependentsExistError blocks a delete while other records still reference
// the target.
type DependentsExistError struct {
	Kind      EntityKind
	ID        string
	Dependent EntityKind
	Count     int64
}

func (e *DependentsExistError) Error() string {
	return fmt.Sprintf("%s %q still has %d %s record(s)", e.Kind, e.ID, e.Count, e.Dependent)
}

// InvalidEnumValueError is returned when a raw string is not a member of the
// closed symbol set declared for a field.
type InvalidEnumValueError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %s, expected one of [%s]",
		e.Value, e.Field, strings.Join(e.Allowed, ", "))
}

// InvalidFileError reports an uploaded file whose content cannot be used.
type InvalidFileError struct {
	Name   string
	Line   int
	Reason string
}

func (e *InvalidFileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("file %s: line %d: %s", e.Name, e.Line, e.Reason)
	}
	return fmt.Sprintf("file %s: %s", e.Name, e.Reason)
}

// InsufficientInstrumentsError reports a portfolio that does not hold enough
// instruments for the requested operation. No record operation returns it; it
// exists so the HTTP error classifier can map it to INSUFFICIENT_INSTRUMENTS.
type InsufficientInstrumentsError struct {
	PortfolioID string
	Required    int
	Available   int
}

func (e *InsufficientInstrumentsError) Error() string {
	return fmt.Sprintf("portfolio %q holds %d instrument(s), %d required",
		e.PortfolioID, e.Available, e.Required)
}

// Violation is one failed business constraint on a request field.
type Violation struct {
	Path    string
	Message string
}

// ConstraintViolationError groups the constraints a request failed after it was
// bound successfully.
type ConstraintViolationError struct {
	Violations []Violation
}

func (e *ConstraintViolationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Path + ": " + v.Message
	}
	return "constraint violation: " + strings.Join(parts, "; ")
}

// Constraints collects violations; Err returns nil when none were added.
type Constraints struct {
	violations []Violation
}

func (c *Constraints) Add(path, message string) {
	c.violations = append(c.violations, Violation{Path: path, Message: message})
}

func (c *Constraints) Check(ok bool, path, message string) {
	if !ok {
		c.Add(path, message)
	}
}

// MaxLength checks that value holds at most limit characters.
func (c *Constraints) MaxLength(value string, limit int, path string) {
	c.Check(utf8.RuneCountInString(value) <= limit, path, fmt.Sprintf("must be at most %d characters", limit))
}

func (c *Constraints) Err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &ConstraintViolationError{Violations: c.violations}
}
