package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"gearguard/internal/docstore"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	"gearguard/pkg/customvalidator"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const equipmentSheet = "Оборудование"

type importColumn struct {
	header  string
	aliases []string
	value   func(e entities.Equipment) string
	apply   func(p *dto.CreateEquipmentDTO, v string) error
}

var equipmentColumns = []importColumn{
	{"Название", []string{"name", "наименование"},
		func(e entities.Equipment) string { return e.Name },
		func(p *dto.CreateEquipmentDTO, v string) error { p.Name = v; return nil }},
	{"Серийный номер", []string{"serialnumber", "serial", "с/н", "№"},
		func(e entities.Equipment) string { return e.SerialNumber },
		func(p *dto.CreateEquipmentDTO, v string) error { p.SerialNumber = v; return nil }},
	{"Статус", []string{"status"},
		func(e entities.Equipment) string { return e.Status },
		func(p *dto.CreateEquipmentDTO, v string) error { p.Status = strings.ToLower(v); return nil }},
	{"Категория", []string{"categoryid", "category"},
		func(e entities.Equipment) string { return e.CategoryID },
		func(p *dto.CreateEquipmentDTO, v string) error { p.CategoryID = v; return nil }},
	{"Отдел", []string{"department"},
		func(e entities.Equipment) string { return e.Department },
		func(p *dto.CreateEquipmentDTO, v string) error { p.Department = v; return nil }},
	{"Расположение", []string{"location", "адрес"},
		func(e entities.Equipment) string { return e.Location },
		func(p *dto.CreateEquipmentDTO, v string) error { p.Location = v; return nil }},
	{"Дата покупки", []string{"purchasedate"},
		func(e entities.Equipment) string { return formatCellDate(e.PurchaseDate) },
		func(p *dto.CreateEquipmentDTO, v string) (err error) { p.PurchaseDate, err = parseCellDate(v); return }},
	{"Гарантия до", []string{"warrantyexpiry", "гарантия"},
		func(e entities.Equipment) string { return formatCellDate(e.WarrantyExpiry) },
		func(p *dto.CreateEquipmentDTO, v string) (err error) { p.WarrantyExpiry, err = parseCellDate(v); return }},
	{"Команда", []string{"teamid", "team"},
		func(e entities.Equipment) string { return e.TeamID },
		func(p *dto.CreateEquipmentDTO, v string) error { p.TeamID = v; return nil }},
	{"Техник", []string{"technicianid", "technician"},
		func(e entities.Equipment) string { return e.TechnicianID },
		func(p *dto.CreateEquipmentDTO, v string) error { p.TechnicianID = v; return nil }},
	{"Сотрудник", []string{"assignedemployee", "employee"},
		func(e entities.Equipment) string { return e.AssignedEmployee },
		func(p *dto.CreateEquipmentDTO, v string) error { p.AssignedEmployee = v; return nil }},
	{"Рабочий центр", []string{"workcenterid", "workcenter"},
		func(e entities.Equipment) string { return e.WorkCenterID },
		func(p *dto.CreateEquipmentDTO, v string) error { p.WorkCenterID = v; return nil }},
	{"Примечание", []string{"notes", "комментарий"},
		func(e entities.Equipment) string { return e.Notes },
		func(p *dto.CreateEquipmentDTO, v string) error { p.Notes = v; return nil }},
}

var cellDateLayouts = []string{"2006-01-02", "02.01.2006", "01-02-06", time.RFC3339, docstore.TimeLayout}

func parseCellDate(v string) (*time.Time, error) {
	for _, layout := range cellDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("не удалось разобрать дату %q", v)
}

func formatCellDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// EquipmentImportService переносит оборудование в XLSX и обратно.
// Импорт идёт через EquipmentService, поэтому проверки те же, что и в API.
type EquipmentImportService struct {
	equipmentService EquipmentServiceInterface
	validate         *validator.Validate
	logger           *zap.Logger
}

func NewEquipmentImportService(equipmentService EquipmentServiceInterface, validate *validator.Validate, logger *zap.Logger) *EquipmentImportService {
	return &EquipmentImportService{equipmentService: equipmentService, validate: validate, logger: logger}
}

// Import читает первый лист с шапкой. Строка с уже существующим серийным
// номером пропускается, ошибочные строки попадают в отчёт и не прерывают импорт.
func (s *EquipmentImportService) Import(ctx context.Context, r io.Reader) (*dto.EquipmentImportResultDTO, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("не удалось открыть файл XLSX: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewInvalidInputError("файл не содержит листов")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения листа %s: %w", sheets[0], err)
	}

	headerRow, mapping := findHeader(rows)
	if headerRow == -1 {
		return nil, apperrors.NewInvalidInputError("не найдена шапка таблицы: нужны колонки 'Название' и 'Серийный номер'")
	}

	result := &dto.EquipmentImportResultDTO{}
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1
		if isBlankRow(row) {
			continue
		}

		payload, err := buildImportPayload(row, mapping)
		if err == nil {
			err = s.validateRow(payload)
		}
		if err == nil {
			_, err = s.equipmentService.CreateEquipment(ctx, *payload)
		}

		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, apperrors.ErrConflict):
			result.Skipped++
		case apperrors.IsNotConfigured(err):
			return nil, err
		default:
			result.Errors = append(result.Errors, dto.ImportRowErrDTO{Row: lineNum, Message: err.Error()})
		}
	}

	s.logger.Info("Импорт оборудования завершён",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (s *EquipmentImportService) validateRow(payload *dto.CreateEquipmentDTO) error {
	if !customvalidator.IsSerialNumber(payload.SerialNumber) {
		return apperrors.NewInvalidInputError("некорректный серийный номер %q", payload.SerialNumber)
	}
	if s.validate == nil {
		return nil
	}
	if err := s.validate.Struct(payload); err != nil {
		return apperrors.NewInvalidInputError("%v", err)
	}
	return nil
}

// Export пишет всё оборудование на один лист, отсортированным по названию.
func (s *EquipmentImportService) Export(ctx context.Context, w io.Writer) (int, error) {
	items, _, err := s.equipmentService.GetEquipments(ctx, types.Filter{
		Sort: map[string]string{"name": "asc"},
	})
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), equipmentSheet); err != nil {
		return 0, err
	}

	header := make([]interface{}, len(equipmentColumns))
	for i, col := range equipmentColumns {
		header[i] = col.header
	}
	if err := f.SetSheetRow(equipmentSheet, "A1", &header); err != nil {
		return 0, err
	}

	for i, item := range items {
		values := make([]interface{}, len(equipmentColumns))
		for j, col := range equipmentColumns {
			values[j] = col.value(item)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(equipmentSheet, cell, &values); err != nil {
			return 0, err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("ошибка записи XLSX: %w", err)
	}
	return len(items), nil
}

// findHeader ищет первую строку, где есть колонки названия и серийного номера,
// и возвращает соответствие "индекс колонки в таблице" -> колонка импорта.
func findHeader(rows [][]string) (int, map[int]importColumn) {
	for rIdx, row := range rows {
		mapping := map[int]importColumn{}
		for cIdx, cell := range row {
			if col, ok := matchColumn(cell); ok {
				mapping[cIdx] = col
			}
		}
		hasName, hasSerial := false, false
		for _, col := range mapping {
			hasName = hasName || col.header == equipmentColumns[0].header
			hasSerial = hasSerial || col.header == equipmentColumns[1].header
		}
		if hasName && hasSerial {
			return rIdx, mapping
		}
	}
	return -1, nil
}

func matchColumn(cell string) (importColumn, bool) {
	name := strings.ToLower(strings.TrimSpace(cell))
	name = strings.ReplaceAll(name, " ", "")
	if name == "" {
		return importColumn{}, false
	}
	for _, col := range equipmentColumns {
		if name == strings.ToLower(strings.ReplaceAll(col.header, " ", "")) || slices.Contains(col.aliases, name) {
			return col, true
		}
	}
	return importColumn{}, false
}

func buildImportPayload(row []string, mapping map[int]importColumn) (*dto.CreateEquipmentDTO, error) {
	payload := &dto.CreateEquipmentDTO{Status: constants.EquipmentStatusActive}
	for cIdx, col := range mapping {
		if cIdx >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[cIdx])
		if value == "" {
			continue
		}
		if err := col.apply(payload, value); err != nil {
			return nil, apperrors.NewInvalidInputError("колонка '%s': %v", col.header, err)
		}
	}
	if payload.Name == "" {
		return nil, apperrors.NewInvalidInputError("не заполнено название")
	}
	return payload, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
