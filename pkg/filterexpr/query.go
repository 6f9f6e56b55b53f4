// Package filterexpr turns the filter and order_by strings of list requests
// into a validated Query. Filters are a CEL subset: comparisons and
// startsWith/in calls joined by &&.
package filterexpr

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Msg is a list request exposing its raw filter and order_by inputs.
type Msg interface {
	GetFilter() string
	GetOrderBy() string
}

// Kind is the literal type a filter field accepts.
type Kind int

const (
	KindString Kind = iota + 1
	KindTimestamp
)

// Op is a comparison allowed in filters.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// Field declares a filterable field and the operators it accepts.
type Field struct {
	Kind Kind
	Ops  []Op
}

// Term is one order_by key.
type Term struct {
	Key  string
	Desc bool
}

// Schema whitelists what a resource can be filtered and ordered by.
type Schema struct {
	Fields map[string]Field
	// OrderKeys are the keys accepted in order_by.
	OrderKeys []string
	// DefaultOrder applies when order_by is empty.
	DefaultOrder []Term
	// TieBreaker is appended ascending unless order_by already names it.
	TieBreaker string
	// MaxOrderTerms caps order_by keys; zero means two.
	MaxOrderTerms int
}

// Condition is a single validated predicate. Value is a string, []string or
// time.Time depending on the field kind and operator.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Text returns the string value, or "" for other kinds.
func (c Condition) Text() string {
	s, _ := c.Value.(string)
	return s
}

// List returns the values of an in condition.
func (c Condition) List() []string {
	l, _ := c.Value.([]string)
	return l
}

// Time returns the timestamp value.
func (c Condition) Time() time.Time {
	t, _ := c.Value.(time.Time)
	return t
}

// Query is the parsed form of a list request.
type Query struct {
	Conditions []Condition
	Order      []Term
}

// ErrInvalidExpression wraps every filter or order_by rejection caused by the caller's input.
var ErrInvalidExpression = errors.New("invalid list expression")

// Parse validates msg against schema.
func Parse(msg Msg, schema Schema) (*Query, error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}

	conds, err := parseFilter(msg.GetFilter(), schema.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: filter: %w", ErrInvalidExpression, err)
	}

	order, err := parseOrder(msg.GetOrderBy(), schema)
	if err != nil {
		return nil, fmt.Errorf("%w: order_by: %w", ErrInvalidExpression, err)
	}

	return &Query{Conditions: conds, Order: order}, nil
}

func (s Schema) validate() error {
	for name, f := range s.Fields {
		if f.Kind != KindString && f.Kind != KindTimestamp {
			return fmt.Errorf("filterexpr: field %q has no kind", name)
		}
	}
	if s.TieBreaker != "" && !slices.Contains(s.OrderKeys, s.TieBreaker) {
		return fmt.Errorf("filterexpr: tie breaker %q is not an order key", s.TieBreaker)
	}
	for _, t := range s.DefaultOrder {
		if !slices.Contains(s.OrderKeys, t.Key) {
			return fmt.Errorf("filterexpr: default order key %q is not an order key", t.Key)
		}
	}
	return nil
}
