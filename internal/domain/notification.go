package domain

// Channel канал доставки уведомлений через чат-релей
type Channel string

const (
	ChannelTelegram Channel = "telegram"
	ChannelWhatsApp Channel = "whatsapp"
)

// IsValid проверяет, что канал поддерживается
func (c Channel) IsValid() bool {
	return c == ChannelTelegram || c == ChannelWhatsApp
}
