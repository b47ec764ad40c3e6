package filter

import (
	"fmt"

	"github.com/kailas-cloud/firemock/internal/domain"
	"github.com/kailas-cloud/firemock/internal/domain/value"
)

// Operator is a predicate comparison operator.
type Operator string

// Supported operators.
const (
	Equal          Operator = "=="
	LessThan       Operator = "<"
	LessOrEqual    Operator = "<="
	GreaterThan    Operator = ">"
	GreaterOrEqual Operator = ">="
	ArrayContains  Operator = "array-contains"
)

// IsValid checks if the operator is one of the supported values.
func (o Operator) IsValid() bool {
	switch o {
	case Equal, LessThan, LessOrEqual, GreaterThan, GreaterOrEqual, ArrayContains:
		return true
	}
	return false
}

// IsRange reports whether the operator is an ordering comparison.
func (o Operator) IsRange() bool {
	switch o {
	case LessThan, LessOrEqual, GreaterThan, GreaterOrEqual:
		return true
	}
	return false
}

// Field is anything that can resolve a field path to a normalized value.
type Field interface {
	Field(path string) (any, bool)
}

// Predicate is a single filter condition: field, operator, operand.
type Predicate struct {
	field   string
	op      Operator
	operand any
}

// New validates and creates a Predicate. The operand is normalized and copied.
func New(field string, op Operator, operand any) (Predicate, error) {
	if field == "" {
		return Predicate{}, domain.NewValidationError("where", field, "field path is required")
	}
	if !op.IsValid() {
		return Predicate{}, domain.NewValidationError("where", field, fmt.Sprintf("unsupported operator %q", op))
	}
	norm, err := value.Normalize(operand)
	if err != nil {
		return Predicate{}, fmt.Errorf("where(%q) operand: %w", field, err)
	}
	return Predicate{field: field, op: op, operand: norm}, nil
}

// Field returns the field path.
func (p Predicate) Field() string { return p.field }

// Operator returns the comparison operator.
func (p Predicate) Operator() Operator { return p.op }

// Operand returns the normalized operand.
func (p Predicate) Operand() any { return p.operand }

// Matches evaluates the predicate against a document.
// An absent field never matches. array-contains against a present non-array
// field is a validation error.
func (p Predicate) Matches(doc Field) (bool, error) {
	v, ok := doc.Field(p.field)
	if !ok {
		return false, nil
	}

	switch p.op {
	case Equal:
		return value.Equal(v, p.operand), nil
	case ArrayContains:
		arr, isArr := v.([]any)
		if !isArr {
			return false, domain.NewValidationError(
				"where", p.field,
				fmt.Sprintf("array-contains requires an array field, got %s", value.KindOf(v)),
			)
		}
		for _, e := range arr {
			if value.Equal(e, p.operand) {
				return true, nil
			}
		}
		return false, nil
	}

	if !p.op.IsRange() || !value.Comparable(v, p.operand) {
		return false, nil
	}
	c := value.Compare(v, p.operand)
	switch p.op {
	case LessThan:
		return c < 0, nil
	case LessOrEqual:
		return c <= 0, nil
	case GreaterThan:
		return c > 0, nil
	case GreaterOrEqual:
		return c >= 0, nil
	}
	return false, nil
}

// MatchAll evaluates predicates in order with AND semantics.
// Every predicate is evaluated, so the first validation error in predicate
// order is returned even when an earlier predicate already failed to match.
func MatchAll(doc Field, preds []Predicate) (bool, error) {
	matched := true
	for _, p := range preds {
		ok, err := p.Matches(doc)
		if err != nil {
			return false, err
		}
		matched = matched && ok
	}
	return matched, nil
}
