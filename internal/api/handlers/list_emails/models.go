package list_emails

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-TattooStudio/internal/service/emails/models"
)

// parseQuery разбирает archived, unread, limit, offset
func parseQuery(values url.Values) (*models.ListEmailsRequest, error) {
	req := &models.ListEmailsRequest{}

	if raw := values.Get("archived"); raw != "" {
		archived, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.Archived = &archived
	}

	if raw := values.Get("unread"); raw != "" {
		unread, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.UnreadOnly = unread
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Offset = offset
	}

	return req, nil
}
