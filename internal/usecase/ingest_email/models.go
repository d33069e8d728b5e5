package ingest_email

// Исходы обработки для метрик
const (
	OutcomeStored    = "stored"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

// Request письмо, приведенное к единому виду из полей разных почтовых провайдеров
type Request struct {
	From        string
	To          string
	Subject     string
	Text        string
	HTML        string
	MessageID   string // пусто - будет сгенерирован
	Attachments []Attachment
}

// Attachment описание вложения из вебхука
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

// Response результат обработки
type Response struct {
	EmailID     string
	MessageID   string
	Attachments int
	Duplicate   bool
}
