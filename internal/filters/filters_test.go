package filters

import (
	"testing"
	"time"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEquipment() []entities.Equipment {
	return []entities.Equipment{
		{ID: "1", Name: "Pump A", SerialNumber: "SN-1", Status: constants.EquipmentStatusActive, TeamID: "t1", Location: "Hall 1"},
		{ID: "2", Name: "Compressor", SerialNumber: "CMP-7", Status: constants.EquipmentStatusMaintenance, TeamID: "t2", CategoryID: "c1"},
		{ID: "3", Name: "Lathe", SerialNumber: "LT/3", Status: constants.EquipmentStatusMaintenance, TeamID: "t1", Location: "Workshop"},
		{ID: "4", Name: "Old press", SerialNumber: "OP_1", Status: constants.EquipmentStatusScrapped, CategoryID: "c1"},
	}
}

func ids(items []entities.Equipment) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}

func TestEquipmentByStatus_Idempotent(t *testing.T) {
	items := sampleEquipment()

	once := Apply(items, EquipmentByStatus(constants.EquipmentStatusMaintenance))
	twice := Apply(once, EquipmentByStatus(constants.EquipmentStatusMaintenance))

	assert.Equal(t, []string{"2", "3"}, ids(once))
	assert.Equal(t, once, twice, "повторное применение фильтра не должно ничего менять")
	for _, e := range once {
		assert.Equal(t, constants.EquipmentStatusMaintenance, e.Status)
	}
	assert.Len(t, items, 4, "исходный срез не должен меняться")
}

func TestEquipmentFilters(t *testing.T) {
	items := sampleEquipment()

	tests := []struct {
		name  string
		preds []Predicate[entities.Equipment]
		want  []string
	}{
		{"без фильтров", nil, []string{"1", "2", "3", "4"}},
		{"пустой список статусов", []Predicate[entities.Equipment]{EquipmentByStatus()}, []string{"1", "2", "3", "4"}},
		{"несколько статусов", []Predicate[entities.Equipment]{EquipmentByStatus("active", "scrapped")}, []string{"1", "4"}},
		{"категория", []Predicate[entities.Equipment]{EquipmentByCategory("c1")}, []string{"2", "4"}},
		{"команда и статус", []Predicate[entities.Equipment]{EquipmentByTeam("t1"), EquipmentByStatus("maintenance")}, []string{"3"}},
		{"поиск по серийному номеру", []Predicate[entities.Equipment]{EquipmentSearch("cmp")}, []string{"2"}},
		{"поиск по расположению", []Predicate[entities.Equipment]{EquipmentSearch("  WORKSHOP ")}, []string{"3"}},
		{"пустой поиск", []Predicate[entities.Equipment]{EquipmentSearch("")}, []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(items, tt.preds...)))
		})
	}
}

func TestOverdueRequests(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	requests := []entities.MaintenanceRequest{
		{ID: "a", Status: constants.RequestStatusNew, ScheduledDate: &past},
		{ID: "b", Status: constants.RequestStatusRepaired, ScheduledDate: &past},
		{ID: "c", Status: constants.RequestStatusInProgress, ScheduledDate: &future},
		{ID: "d", Status: constants.RequestStatusInProgress},
	}

	overdue := Apply(requests, OverdueRequests(now))
	require.Len(t, overdue, 1)
	assert.Equal(t, "a", overdue[0].ID)

	open := Apply(requests, OpenRequests())
	assert.Len(t, open, 3)
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Page(items, 2, 2))
	assert.Equal(t, []int{5}, Page(items, 4, 10))
	assert.Equal(t, []int{}, Page(items, 10, 2))
	assert.Equal(t, items, Page(items, 0, 0))
}

func TestTeamSearch(t *testing.T) {
	teams := []entities.Team{
		{ID: "1", Name: "Electricians", Members: []string{"Ivan", "Olga"}},
		{ID: "2", Name: "Mechanics", Description: "Hydraulics and pumps"},
	}
	assert.Len(t, Apply(teams, TeamSearch("olga")), 1)
	assert.Len(t, Apply(teams, TeamSearch("pumps")), 1)
	assert.Len(t, Apply(teams, TeamSearch("")), 2)
}
