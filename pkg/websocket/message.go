package websocket

import "time"

const (
	MessageTypeSnapshot = "snapshot"
	MessageTypeError    = "error"
)

// Envelope — это "конверт", в котором мы отправляем наши сообщения.
// Он содержит тип сообщения, что позволяет фронтенду понять, что делать.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorPayload - ошибка подписки: хранилище не настроено, неверный фильтр и т.п.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
