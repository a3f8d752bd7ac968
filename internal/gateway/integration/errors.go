package integration

import "fmt"

// TransportError означает, что зависимый сервис не ответил вовсе: нет
// соединения, таймаут, обрыв. Статуса и тела ответа в этом случае нет.
type TransportError struct {
	Service string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s is unreachable: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError несёт неуспешный ответ зависимого сервиса как есть:
// статус и тело ретранслируются клиенту без изменений.
type UpstreamError struct {
	Service     string
	Status      int
	ContentType string
	Body        []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, string(e.Body))
}
