package domain

// Response - конверт ответа API-клиента: HTTP-статус и декодированное тело.
type Response[T any] struct {
	Status int
	Data   T
}

// BackendStatus - общая для всех ответов бэкенда пара success/message.
type BackendStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Failed сообщает, что бэкенд вернул success=false.
func (s BackendStatus) Failed() bool {
	return !s.Success
}

// AsError превращает отказ бэкенда в *BackendError, успешный статус дает nil.
func (s BackendStatus) AsError(operation string) error {
	if s.Success {
		return nil
	}
	return &BackendError{Operation: operation, Message: s.Message}
}
