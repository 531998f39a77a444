package docstore

import (
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	documentsTable   = "documents"
	documentsColumns = "id, data, create_time, update_time"
)

// dialect переводит фильтры в выражения над JSON-колонкой data.
type dialect interface {
	placeholder() sq.PlaceholderFormat
	fieldExpr(field string) string
	compare(field string, op Op, value any) (sq.Sqlizer, error)
}

func selectDocuments(d dialect, collection string, q Query) (sq.SelectBuilder, error) {
	if err := q.Validate(); err != nil {
		return sq.SelectBuilder{}, err
	}
	builder := sq.Select(documentsColumns).
		From(documentsTable).
		Where(sq.Eq{"collection": collection}).
		PlaceholderFormat(d.placeholder())

	builder, err := applyFilters(d, builder, q.Filters)
	if err != nil {
		return builder, err
	}

	for _, o := range q.Orders {
		direction := "ASC NULLS LAST"
		if o.Desc {
			direction = "DESC NULLS FIRST"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", d.fieldExpr(o.Field), direction))
	}
	// Стабильный порядок для одинаковых значений и запросов без сортировки.
	builder = builder.OrderBy("create_time ASC", "id ASC")

	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}
	if q.Offset > 0 {
		if q.Limit == 0 {
			// SQLite не принимает OFFSET без LIMIT.
			builder = builder.Limit(1<<62 - 1)
		}
		builder = builder.Offset(q.Offset)
	}
	return builder, nil
}

func countDocuments(d dialect, collection string, q Query) (sq.SelectBuilder, error) {
	if err := q.Validate(); err != nil {
		return sq.SelectBuilder{}, err
	}
	builder := sq.Select("COUNT(*)").
		From(documentsTable).
		Where(sq.Eq{"collection": collection}).
		PlaceholderFormat(d.placeholder())
	return applyFilters(d, builder, q.Filters)
}

func applyFilters(d dialect, builder sq.SelectBuilder, filters []Filter) (sq.SelectBuilder, error) {
	for _, f := range filters {
		cond, err := d.compare(f.Field, f.Op, f.Value)
		if err != nil {
			return builder, err
		}
		builder = builder.Where(cond)
	}
	return builder, nil
}

func sqlOperator(op Op) string {
	switch op {
	case OpNotEqual:
		return "<>"
	case OpEqual:
		return "="
	}
	return string(op)
}

func canonicalValue(value any) (any, error) {
	return normalizeValue(value, time.Time{})
}

// --- PostgreSQL: data jsonb ---

type postgresDialect struct{}

func (postgresDialect) placeholder() sq.PlaceholderFormat { return sq.Dollar }

func (postgresDialect) fieldExpr(field string) string {
	if field == IDField {
		return "id"
	}
	return fmt.Sprintf("data->'%s'", field)
}

func (d postgresDialect) compare(field string, op Op, value any) (sq.Sqlizer, error) {
	if field == IDField {
		return compareID(op, value)
	}
	expr := d.fieldExpr(field)

	if op == OpIn {
		values := value.([]any)
		if len(values) == 0 {
			return sq.Expr("FALSE"), nil
		}
		or := sq.Or{}
		for _, v := range values {
			cond, err := d.compare(field, OpEqual, v)
			if err != nil {
				return nil, err
			}
			or = append(or, cond)
		}
		return or, nil
	}

	canon, err := canonicalValue(value)
	if err != nil {
		return nil, err
	}

	if op == OpArrayContains {
		raw, err := json.Marshal([]any{canon})
		if err != nil {
			return nil, err
		}
		return sq.Expr(fmt.Sprintf("%s @> ?::jsonb", expr), string(raw)), nil
	}

	if canon == nil {
		switch op {
		case OpEqual:
			return sq.Expr(fmt.Sprintf("COALESCE(%s, 'null'::jsonb) = 'null'::jsonb", expr)), nil
		case OpNotEqual:
			return sq.Expr(fmt.Sprintf("COALESCE(%s, 'null'::jsonb) <> 'null'::jsonb", expr)), nil
		}
		return nil, fmt.Errorf("%w: сравнение %s с null", ErrInvalidQuery, op)
	}

	raw, err := json.Marshal(canon)
	if err != nil {
		return nil, err
	}
	return sq.Expr(fmt.Sprintf("%s %s ?::jsonb", expr, sqlOperator(op)), string(raw)), nil
}

// --- SQLite: data TEXT + JSON1 ---

type sqliteDialect struct{}

func (sqliteDialect) placeholder() sq.PlaceholderFormat { return sq.Question }

func (sqliteDialect) fieldExpr(field string) string {
	if field == IDField {
		return "id"
	}
	return fmt.Sprintf("json_extract(data, '$.%s')", field)
}

func (d sqliteDialect) compare(field string, op Op, value any) (sq.Sqlizer, error) {
	if field == IDField {
		return compareID(op, value)
	}
	expr := d.fieldExpr(field)

	if op == OpIn {
		values := value.([]any)
		if len(values) == 0 {
			return sq.Expr("0 = 1"), nil
		}
		args := make([]any, 0, len(values))
		for _, v := range values {
			arg, err := sqliteScalar(v)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return sq.Eq{expr: args}, nil
	}

	arg, err := sqliteScalar(value)
	if err != nil {
		return nil, err
	}

	if op == OpArrayContains {
		return sq.Expr(fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(data, '$.%s') WHERE json_each.value = ?)", field), arg), nil
	}

	if arg == nil {
		switch op {
		case OpEqual:
			return sq.Expr(fmt.Sprintf("%s IS NULL", expr)), nil
		case OpNotEqual:
			return sq.Expr(fmt.Sprintf("%s IS NOT NULL", expr)), nil
		}
		return nil, fmt.Errorf("%w: сравнение %s с null", ErrInvalidQuery, op)
	}
	return sq.Expr(fmt.Sprintf("%s %s ?", expr, sqlOperator(op)), arg), nil
}

// sqliteScalar: json_extract возвращает true/false как 1/0.
func sqliteScalar(value any) (any, error) {
	canon, err := canonicalValue(value)
	if err != nil {
		return nil, err
	}
	switch v := canon.(type) {
	case nil, string, float64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return nil, fmt.Errorf("%w: составные значения нельзя сравнивать", ErrInvalidQuery)
}

func compareID(op Op, value any) (sq.Sqlizer, error) {
	if op == OpIn {
		ids := make([]string, 0)
		for _, v := range value.([]any) {
			ids = append(ids, fmt.Sprint(v))
		}
		if len(ids) == 0 {
			return sq.Expr("1 = 0"), nil
		}
		return sq.Eq{"id": ids}, nil
	}
	if op == OpArrayContains {
		return nil, fmt.Errorf("%w: array-contains неприменим к id", ErrInvalidQuery)
	}
	return sq.Expr(fmt.Sprintf("id %s ?", sqlOperator(op)), fmt.Sprint(value)), nil
}
