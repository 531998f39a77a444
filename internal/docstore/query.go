package docstore

import (
	"fmt"
	"regexp"
)

type Op string

const (
	OpEqual         Op = "=="
	OpNotEqual      Op = "!="
	OpLess          Op = "<"
	OpLessEqual     Op = "<="
	OpGreater       Op = ">"
	OpGreaterEqual  Op = ">="
	OpIn            Op = "in"
	OpArrayContains Op = "array-contains"
)

// IDField фильтрует и сортирует по идентификатору документа.
const IDField = "id"

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Filter struct {
	Field string
	Op    Op
	Value any
}

type Order struct {
	Field string
	Desc  bool
}

// Query - фильтры, сортировка и лимит для чтения коллекции.
type Query struct {
	Filters []Filter
	Orders  []Order
	Limit   uint64
	Offset  uint64
}

func Where(field string, op Op, value any) Query {
	return Query{}.Where(field, op, value)
}

func (q Query) Where(field string, op Op, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) OrderBy(field string, desc bool) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), Order{Field: field, Desc: desc})
	return q
}

func (q Query) WithLimit(limit uint64) Query {
	q.Limit = limit
	return q
}

func (q Query) WithOffset(offset uint64) Query {
	q.Offset = offset
	return q
}

func ValidateField(field string) error {
	if !fieldPattern.MatchString(field) {
		return fmt.Errorf("%w: недопустимое имя поля %q", ErrInvalidQuery, field)
	}
	return nil
}

func ValidateCollection(name string) error {
	if !fieldPattern.MatchString(name) {
		return fmt.Errorf("%w: недопустимое имя коллекции %q", ErrInvalidQuery, name)
	}
	return nil
}

func (q Query) Validate() error {
	for _, f := range q.Filters {
		if err := ValidateField(f.Field); err != nil {
			return err
		}
		switch f.Op {
		case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpArrayContains:
		case OpIn:
			if _, ok := f.Value.([]any); !ok {
				return fmt.Errorf("%w: оператор in требует список значений", ErrInvalidQuery)
			}
		default:
			return fmt.Errorf("%w: неизвестный оператор %q", ErrInvalidQuery, f.Op)
		}
	}
	for _, o := range q.Orders {
		if err := ValidateField(o.Field); err != nil {
			return err
		}
	}
	return nil
}
