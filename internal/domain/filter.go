package domain

import (
	"strconv"
	"strings"
	"time"
)

// ReservationFilter фильтр списка записей
type ReservationFilter struct {
	Query string
	From  *time.Time
	To    *time.Time
}

// MatchesSearch проверяет вхождение запроса без учета регистра
// в номер, имя, фамилию или телефон. Пустой запрос подходит под все.
func MatchesSearch(r *Reservation, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	fields := []string{
		strconv.FormatInt(r.Number, 10),
		r.FirstName,
		r.LastName,
		r.Phone,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// InDateRange проверяет попадание даты сеанса в границы включительно.
// Сравниваются календарные даты, время суток игнорируется. Любая граница может отсутствовать.
func InDateRange(r *Reservation, from, to *time.Time) bool {
	day := calendarDay(r.AppointmentDate)
	if from != nil && day < calendarDay(*from) {
		return false
	}
	if to != nil && day > calendarDay(*to) {
		return false
	}
	return true
}

// Match применяет оба предиката фильтра
func (f ReservationFilter) Match(r *Reservation) bool {
	return MatchesSearch(r, f.Query) && InDateRange(r, f.From, f.To)
}

// FilterReservations возвращает записи, подходящие под фильтр, сохраняя порядок
func FilterReservations(list []*Reservation, f ReservationFilter) []*Reservation {
	result := make([]*Reservation, 0, len(list))
	for _, r := range list {
		if f.Match(r) {
			result = append(result, r)
		}
	}
	return result
}

// calendarDay ключ календарной даты в собственной зоне значения
func calendarDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
