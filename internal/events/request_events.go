package events

import "gearguard/pkg/constants"

// RequestScrappedEvent - заявка переведена на этап «списание».
type RequestScrappedEvent struct {
	RequestID   string
	EquipmentID string
}

// Name - реализуем интерфейс eventbus.Event
func (e RequestScrappedEvent) Name() string {
	return constants.EventRequestScrapped
}
