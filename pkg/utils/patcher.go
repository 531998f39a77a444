// Файл: pkg/utils/patcher.go
package utils

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"gearguard/internal/docstore"

	"github.com/aarondl/null/v8"
)

// BuildPatch собирает патч документа из DTO. Учитываются только поля,
// присланные в теле запроса; явный null превращается в docstore.Delete.
func BuildPatch(patchDTO interface{}, rawRequestBody []byte) (docstore.Fields, error) {
	var sentFields map[string]json.RawMessage
	if err := json.Unmarshal(rawRequestBody, &sentFields); err != nil {
		return nil, err
	}

	patchDTOValue := reflect.ValueOf(patchDTO)
	if patchDTOValue.Kind() == reflect.Ptr {
		patchDTOValue = patchDTOValue.Elem()
	}

	patch := docstore.Fields{}
	for i := 0; i < patchDTOValue.NumField(); i++ {
		patchField := patchDTOValue.Field(i)
		jsonFieldName := strings.Split(patchDTOValue.Type().Field(i).Tag.Get("json"), ",")[0]
		if jsonFieldName == "" || jsonFieldName == "-" {
			continue
		}

		raw, fieldWasSent := sentFields[jsonFieldName]
		if !fieldWasSent {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			patch[jsonFieldName] = docstore.Delete
			continue
		}

		switch patchValue := patchField.Interface().(type) {
		case null.String:
			patch[jsonFieldName] = patchValue.String
		case null.Int:
			patch[jsonFieldName] = patchValue.Int
		case null.Float64:
			patch[jsonFieldName] = patchValue.Float64
		case null.Bool:
			patch[jsonFieldName] = patchValue.Bool
		case null.Time:
			patch[jsonFieldName] = patchValue.Time
		default:
			if patchField.Kind() == reflect.Ptr {
				if patchField.IsNil() {
					patch[jsonFieldName] = docstore.Delete
					continue
				}
				patchField = patchField.Elem()
			}
			patch[jsonFieldName] = patchField.Interface()
		}
	}
	return patch, nil
}
