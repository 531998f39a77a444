package dto

// DashboardSectionDTO - состояние загрузки одного раздела панели.
type DashboardSectionDTO struct {
	Count int         `json:"count"`
	Items interface{} `json:"items,omitempty"`
	Error string      `json:"error,omitempty"`
}

type DashboardDTO struct {
	Equipment   DashboardSectionDTO `json:"equipment"`
	Teams       DashboardSectionDTO `json:"teams"`
	Requests    DashboardSectionDTO `json:"requests"`
	Categories  DashboardSectionDTO `json:"categories"`
	WorkCenters DashboardSectionDTO `json:"workCenters"`

	OpenRequests      int            `json:"openRequests"`
	OverdueRequests   int            `json:"overdueRequests"`
	CriticalEquipment int            `json:"criticalEquipment"`
	ByStatus          map[string]int `json:"equipmentByStatus"`
}

// SetupStatusDTO отвечает на вопрос «настроен ли бэкенд».
type SetupStatusDTO struct {
	Configured bool   `json:"configured"`
	Driver     string `json:"driver,omitempty"`
	Message    string `json:"message,omitempty"`
}
