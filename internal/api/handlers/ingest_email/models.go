package ingest_email

// WebhookResponse ответ почтовому провайдеру
type WebhookResponse struct {
	Success   bool   `json:"success"`
	EmailID   string `json:"emailId,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Error     string `json:"error,omitempty"`
}
