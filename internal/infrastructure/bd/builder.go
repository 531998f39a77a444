package db

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gearguard/internal/docstore"
	"gearguard/pkg/types"
)

// Field - поле документа, доступное для filter[...] и sort[...].
// Значения из строки запроса всегда строки, поэтому числовые поля
// помечаются и приводятся к float64 до сравнения с JSON-числом.
type Field struct {
	Path   string
	Number bool
}

// AllowedFields сопоставляет параметр запроса с полем документа.
type AllowedFields map[string]Field

func Text(path string) Field { return Field{Path: path} }

func Number(path string) Field { return Field{Path: path, Number: true} }

// ApplyListParams переносит filter[...] и sort[...] из запроса в запрос к
// хранилищу. Параметры, которых нет в allowed, молча отбрасываются.
func ApplyListParams(q docstore.Query, filter types.Filter, allowed AllowedFields) (docstore.Query, error) {
	fields := make([]string, 0, len(filter.Filter))
	for jsonField := range filter.Filter {
		fields = append(fields, jsonField)
	}
	sort.Strings(fields)

	for _, jsonField := range fields {
		field, ok := allowed[jsonField]
		if !ok {
			continue
		}

		s, ok := filter.Filter[jsonField].(string)
		if !ok {
			q = q.Where(field.Path, docstore.OpEqual, filter.Filter[jsonField])
			continue
		}

		values := make([]any, 0)
		for _, v := range strings.Split(s, ",") {
			if v = strings.TrimSpace(v); v == "" {
				continue
			}
			value, err := field.parse(v)
			if err != nil {
				return q, fmt.Errorf("%w: filter[%s]: %v", docstore.ErrInvalidQuery, jsonField, err)
			}
			values = append(values, value)
		}
		switch {
		case len(values) == 1 && !strings.Contains(s, ","):
			q = q.Where(field.Path, docstore.OpEqual, values[0])
		default:
			q = q.Where(field.Path, docstore.OpIn, values)
		}
	}

	sortFields := make([]string, 0, len(filter.Sort))
	for jsonField := range filter.Sort {
		sortFields = append(sortFields, jsonField)
	}
	sort.Strings(sortFields)

	for _, jsonField := range sortFields {
		field, ok := allowed[jsonField]
		if !ok {
			continue
		}
		q = q.OrderBy(field.Path, strings.ToLower(filter.Sort[jsonField]) == "desc")
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			q = q.WithLimit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			q = q.WithOffset(uint64(filter.Offset))
		}
	}

	return q, nil
}

func (f Field) parse(raw string) (any, error) {
	if !f.Number {
		return raw, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("ожидается число, получено %q", raw)
	}
	return n, nil
}
