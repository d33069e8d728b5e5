package list_reservations

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
)

// errQueryTooLong поисковый запрос длиннее domain.MaxSearchLength символов
var errQueryTooLong = errors.New("list_reservations: search query too long")

// queryParams параметры строки запроса
type queryParams struct {
	request *models.ListReservationsRequest
	refresh bool
}

// parseQuery разбирает q, from, to (YYYY-MM-DD) и refresh
func parseQuery(values url.Values) (*queryParams, error) {
	req := &models.ListReservationsRequest{
		Query: strings.TrimSpace(values.Get("q")),
	}

	if utf8.RuneCountInString(req.Query) > domain.MaxSearchLength {
		return nil, errQueryTooLong
	}

	from, err := parseOptionalDate(values.Get("from"))
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(values.Get("to"))
	if err != nil {
		return nil, err
	}
	req.From, req.To = from, to

	refresh := false
	if raw := values.Get("refresh"); raw != "" {
		refresh, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
	}

	return &queryParams{request: req, refresh: refresh}, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
