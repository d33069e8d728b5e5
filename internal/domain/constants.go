package domain

// Форматы даты и времени
const (
	TimeFormat        = "15:04"      // HH:MM
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat = "02/01/2006" // формат даты в сообщениях
)

// Ограничения бизнес-валидации
const (
	MaxNameLength    = 100
	MaxPhoneLength   = 32
	MaxNotesLength   = 2000
	MaxDesignImages  = 20
	MaxSearchLength  = 100
	DefaultEmailPage = 50
	MaxEmailPage     = 200
)

// DefaultCurrencySymbol символ валюты по умолчанию для сумм в сообщениях
const DefaultCurrencySymbol = "€"
