package constants

// --- СТАТУСЫ ОБОРУДОВАНИЯ ---
const (
	EquipmentStatusActive      = "active"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusInactive    = "inactive"
	EquipmentStatusScrapped    = "scrapped"
)

// --- ЭТАПЫ ЗАЯВОК НА ОБСЛУЖИВАНИЕ ---
const (
	RequestStatusNew        = "new"
	RequestStatusInProgress = "in_progress"
	RequestStatusRepaired   = "repaired"
	RequestStatusScrap      = "scrap"
)

// --- ПРИОРИТЕТЫ ---
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// --- ТИПЫ ЗАЯВОК ---
const (
	RequestTypeCorrective = "corrective"
	RequestTypePreventive = "preventive"
)

var EquipmentStatuses = []string{
	EquipmentStatusActive,
	EquipmentStatusMaintenance,
	EquipmentStatusInactive,
	EquipmentStatusScrapped,
}

var RequestStatuses = []string{
	RequestStatusNew,
	RequestStatusInProgress,
	RequestStatusRepaired,
	RequestStatusScrap,
}

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// IsClosedRequestStatus - заявка завершена и больше не считается открытой.
func IsClosedRequestStatus(status string) bool {
	return status == RequestStatusRepaired || status == RequestStatusScrap
}
