package docstore

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// TimeLayout - формат хранения времени. Фиксированная ширина и UTC дают
// совпадение лексикографического и хронологического порядка.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// Fields - данные документа без идентификатора.
type Fields map[string]any

type Document struct {
	ID         string    `json:"id"`
	Data       Fields    `json:"data"`
	CreateTime time.Time `json:"create_time"`
	UpdateTime time.Time `json:"update_time"`
}

type sentinel int

const (
	// ServerTimestamp заменяется временем хранилища при записи.
	ServerTimestamp sentinel = iota + 1
	// Delete в патче Update удаляет поле из документа.
	Delete
)

func (s sentinel) String() string {
	switch s {
	case ServerTimestamp:
		return "ServerTimestamp"
	case Delete:
		return "Delete"
	}
	return fmt.Sprintf("sentinel(%d)", int(s))
}

func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format(TimeLayout)
}

// prepareFields приводит значения к JSON-совместимому виду и подставляет
// серверное время. Delete сохраняется как маркер для mergeFields.
func prepareFields(in Fields, now time.Time) (Fields, error) {
	out := make(Fields, len(in))
	for key, value := range in {
		if err := ValidateField(key); err != nil {
			return nil, err
		}
		if key == "id" {
			continue
		}
		if value == Delete {
			out[key] = Delete
			continue
		}
		normalized, err := normalizeValue(value, now)
		if err != nil {
			return nil, fmt.Errorf("поле %q: %w", key, err)
		}
		out[key] = normalized
	}
	return out, nil
}

func normalizeValue(value any, now time.Time) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case sentinel:
		if v == ServerTimestamp {
			return FormatTime(now), nil
		}
		return nil, fmt.Errorf("%s допустим только на верхнем уровне патча", v)
	case time.Time:
		return FormatTime(v), nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return FormatTime(*v), nil
	case string, bool, float64:
		return v, nil
	case Fields:
		return normalizeMap(v, now)
	case map[string]any:
		return normalizeMap(v, now)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			n, err := normalizeValue(item, now)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			n, err := normalizeValue(rv.Index(i).Interface(), now)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}

	// Остальное (числа, именованные типы, null.*) приводим через JSON.
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var canonical any
	if err := json.Unmarshal(raw, &canonical); err != nil {
		return nil, err
	}
	return canonical, nil
}

func normalizeMap(in map[string]any, now time.Time) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		n, err := normalizeValue(value, now)
		if err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, nil
}

// mergeFields применяет патч поверх документа: поля вне патча не меняются.
func mergeFields(existing, patch Fields) Fields {
	merged := make(Fields, len(existing)+len(patch))
	for key, value := range existing {
		merged[key] = value
	}
	for key, value := range patch {
		if value == Delete {
			delete(merged, key)
			continue
		}
		merged[key] = value
	}
	return merged
}

func stripSentinels(data Fields) Fields {
	out := make(Fields, len(data))
	for key, value := range data {
		if value == Delete {
			continue
		}
		out[key] = value
	}
	return out
}

func encodeData(data Fields) ([]byte, error) {
	return json.Marshal(stripSentinels(data))
}

func decodeData(raw []byte) (Fields, error) {
	data := Fields{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("повреждённые данные документа: %w", err)
	}
	return data, nil
}

// Decode превращает документ в типизированную запись, добавляя id в данные.
func Decode[T any](doc Document) (T, error) {
	var out T
	shape := make(map[string]any, len(doc.Data)+1)
	for key, value := range doc.Data {
		shape[key] = value
	}
	shape["id"] = doc.ID

	raw, err := json.Marshal(shape)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("не удалось преобразовать документ %s: %w", doc.ID, err)
	}
	return out, nil
}

// DecodeAll сохраняет порядок документов.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := Decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
