// Package filters - клиентская фильтрация уже загруженных записей.
// Все фильтры чистые и идемпотентные: повторное применение ничего не меняет.
package filters

import (
	"slices"
	"strings"
	"time"

	"gearguard/internal/entities"
)

type Predicate[T any] func(T) bool

// Apply возвращает новый срез с записями, прошедшими все предикаты.
// Порядок записей сохраняется.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if p != nil && !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func normalize(search string) string {
	return strings.ToLower(strings.TrimSpace(search))
}

// oneOf - пустой список означает «без ограничения».
func oneOf(values []string, v string) bool {
	return len(values) == 0 || slices.Contains(values, v)
}

// --- Оборудование ---

func EquipmentByStatus(statuses ...string) Predicate[entities.Equipment] {
	return func(e entities.Equipment) bool { return oneOf(statuses, e.Status) }
}

func EquipmentByCategory(categoryIDs ...string) Predicate[entities.Equipment] {
	return func(e entities.Equipment) bool { return oneOf(categoryIDs, e.CategoryID) }
}

func EquipmentByTeam(teamIDs ...string) Predicate[entities.Equipment] {
	return func(e entities.Equipment) bool { return oneOf(teamIDs, e.TeamID) }
}

// EquipmentSearch ищет по названию, серийному номеру и расположению.
func EquipmentSearch(search string) Predicate[entities.Equipment] {
	needle := normalize(search)
	return func(e entities.Equipment) bool {
		if needle == "" {
			return true
		}
		return containsFold(e.Name, needle) ||
			containsFold(e.SerialNumber, needle) ||
			containsFold(e.Location, needle)
	}
}

// --- Заявки ---

func RequestsByStatus(statuses ...string) Predicate[entities.MaintenanceRequest] {
	return func(r entities.MaintenanceRequest) bool { return oneOf(statuses, r.Status) }
}

func RequestsByPriority(priorities ...string) Predicate[entities.MaintenanceRequest] {
	return func(r entities.MaintenanceRequest) bool { return oneOf(priorities, r.Priority) }
}

func RequestsByEquipment(equipmentIDs ...string) Predicate[entities.MaintenanceRequest] {
	return func(r entities.MaintenanceRequest) bool { return oneOf(equipmentIDs, r.EquipmentID) }
}

func RequestsByTeam(teamIDs ...string) Predicate[entities.MaintenanceRequest] {
	return func(r entities.MaintenanceRequest) bool { return oneOf(teamIDs, r.TeamID) }
}

func OpenRequests() Predicate[entities.MaintenanceRequest] {
	return func(r entities.MaintenanceRequest) bool { return r.IsOpen() }
}

func OverdueRequests(now time.Time) Predicate[entities.MaintenanceRequest] {
	return func(r entities.MaintenanceRequest) bool { return r.IsOverdue(now) }
}

func RequestSearch(search string) Predicate[entities.MaintenanceRequest] {
	needle := normalize(search)
	return func(r entities.MaintenanceRequest) bool {
		return needle == "" || containsFold(r.Subject, needle) || containsFold(r.Description, needle)
	}
}

// --- Команды, категории, рабочие центры ---

func TeamSearch(search string) Predicate[entities.Team] {
	needle := normalize(search)
	return func(t entities.Team) bool {
		if needle == "" || containsFold(t.Name, needle) || containsFold(t.Description, needle) {
			return true
		}
		for _, m := range t.Members {
			if containsFold(m, needle) {
				return true
			}
		}
		return false
	}
}

func CategorySearch(search string) Predicate[entities.EquipmentCategory] {
	needle := normalize(search)
	return func(c entities.EquipmentCategory) bool {
		return needle == "" || containsFold(c.Name, needle) || containsFold(c.Responsible, needle)
	}
}

func WorkCenterSearch(search string) Predicate[entities.WorkCenter] {
	needle := normalize(search)
	return func(w entities.WorkCenter) bool {
		return needle == "" || containsFold(w.Name, needle) || containsFold(w.Code, needle) || containsFold(w.Tag, needle)
	}
}

// Page вырезает страницу после клиентской фильтрации.
func Page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
