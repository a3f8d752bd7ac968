package integration

// RelayResponse хранит ответ зависимого сервиса для дословной передачи
// клиенту: статус, тело и заголовки содержимого без пересборки.
type RelayResponse struct {
	Status             int
	ContentType        string
	ContentDisposition string
	Body               []byte
}
