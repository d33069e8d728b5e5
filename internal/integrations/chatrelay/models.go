package chatrelay

// Message тело запроса к релею
type Message struct {
	To      string   `json:"to"`
	Message string   `json:"message"`
	Images  []string `json:"images"`
}

// SendResult ответ релея на успешную отправку
type SendResult struct {
	MessageID string `json:"messageId"`
}

// ErrorResponse тело ошибки, если релей его присылает
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
