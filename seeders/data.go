package seeders

import "gearguard/pkg/constants"

var categoriesData = []struct {
	Name        string
	Description string
	Responsible string
}{
	{Name: "Станки", Description: "Металлообрабатывающее оборудование", Responsible: "Главный механик"},
	{Name: "Насосы и компрессоры", Description: "Пневматика и гидравлика", Responsible: "Главный механик"},
	{Name: "Компьютеры", Description: "Рабочие станции и периферия", Responsible: "ИТ-отдел"},
	{Name: "Транспорт", Description: "Погрузчики и внутрицеховой транспорт", Responsible: "Начальник склада"},
}

var workCentersData = []struct {
	Name        string
	Tag         string
	CostPerHour float64
	Capacity    float64
	OEETarget   float64
}{
	{Name: "Сборочная линия 1", Tag: "assembly", CostPerHour: 120, Capacity: 1, OEETarget: 85},
	{Name: "Механический цех", Tag: "machining", CostPerHour: 95, Capacity: 2, OEETarget: 80},
}

var teamsData = []struct {
	Name        string
	Description string
	Members     []string
}{
	{Name: "Механики", Description: "Ремонт станков и приводов", Members: []string{"Иван Петров", "Сергей Смирнов"}},
	{Name: "Электрики", Description: "Электрооборудование и автоматика", Members: []string{"Анна Кузнецова"}},
	{Name: "ИТ-поддержка", Description: "Компьютеры и сеть", Members: []string{"Олег Соколов"}},
}

var equipmentData = []struct {
	Name         string
	SerialNumber string
	Category     string
	Team         string
	WorkCenter   string
	Department   string
	Location     string
	Status       string
}{
	{Name: "Токарный станок CNC-200", SerialNumber: "CNC-200-0001", Category: "Станки", Team: "Механики", WorkCenter: "Механический цех", Department: "Производство", Location: "Цех 1", Status: constants.EquipmentStatusActive},
	{Name: "Фрезерный станок FM-32", SerialNumber: "FM-32-0042", Category: "Станки", Team: "Механики", WorkCenter: "Механический цех", Department: "Производство", Location: "Цех 1", Status: constants.EquipmentStatusMaintenance},
	{Name: "Компрессор AirMax 500", SerialNumber: "AM500-1187", Category: "Насосы и компрессоры", Team: "Электрики", WorkCenter: "Сборочная линия 1", Department: "Производство", Location: "Цех 2", Status: constants.EquipmentStatusActive},
	{Name: "Ноутбук мастера смены", SerialNumber: "NB-7731", Category: "Компьютеры", Team: "ИТ-поддержка", Department: "Администрация", Location: "Офис 12", Status: constants.EquipmentStatusActive},
	{Name: "Погрузчик Toyota 8FBE", SerialNumber: "TY8FBE-310", Category: "Транспорт", Team: "Механики", Department: "Склад", Location: "Склад А", Status: constants.EquipmentStatusInactive},
}

var requestsData = []struct {
	Subject     string
	Equipment   string
	Priority    string
	RequestType string
	Status      string
	InDays      int
	Hours       float64
}{
	{Subject: "Вибрация шпинделя", Equipment: "CNC-200-0001", Priority: constants.PriorityHigh, RequestType: constants.RequestTypeCorrective, Status: constants.RequestStatusNew, InDays: 1, Hours: 4},
	{Subject: "Плановая замена масла", Equipment: "FM-32-0042", Priority: constants.PriorityMedium, RequestType: constants.RequestTypePreventive, Status: constants.RequestStatusInProgress, InDays: 3, Hours: 2},
	{Subject: "Утечка воздуха в магистрали", Equipment: "AM500-1187", Priority: constants.PriorityCritical, RequestType: constants.RequestTypeCorrective, Status: constants.RequestStatusNew, InDays: -1, Hours: 6},
	{Subject: "Переустановка ОС", Equipment: "NB-7731", Priority: constants.PriorityLow, RequestType: constants.RequestTypeCorrective, Status: constants.RequestStatusRepaired, InDays: -5, Hours: 1},
}
