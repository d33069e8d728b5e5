package ingest_email

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Варианты имен полей у разных почтовых провайдеров, в порядке приоритета
var (
	fromKeys        = []string{"from", "sender", "From"}
	toKeys          = []string{"to", "recipient", "To"}
	subjectKeys     = []string{"subject", "Subject"}
	textKeys        = []string{"text", "body-plain", "stripped-text", "plain"}
	htmlKeys        = []string{"html", "body-html", "stripped-html"}
	messageIDKeys   = []string{"messageId", "message-id", "Message-Id"}
	contentTypeKeys = []string{"contentType", "content-type", "content_type"}
)

const attachmentsKey = "attachments"

// FromJSON разбирает JSON-тело вебхука
func FromJSON(body []byte) (*Request, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	get := func(keys []string) string {
		for _, k := range keys {
			if s, ok := raw[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return ""
	}

	req := newRequest(get)

	switch v := raw[attachmentsKey].(type) {
	case nil:
	case []interface{}:
		attachments, err := attachmentsFromList(v)
		if err != nil {
			return nil, err
		}
		req.Attachments = attachments
	case string:
		attachments, err := attachmentsFromString(v)
		if err != nil {
			return nil, err
		}
		req.Attachments = attachments
	default:
		return nil, fmt.Errorf("%w: attachments must be an array", ErrInvalidPayload)
	}

	return req, nil
}

// FromForm разбирает form-encoded или multipart тело.
// Вложения ожидаются JSON-массивом в поле attachments.
func FromForm(values url.Values) (*Request, error) {
	get := func(keys []string) string {
		for _, k := range keys {
			if s := strings.TrimSpace(values.Get(k)); s != "" {
				return s
			}
		}
		return ""
	}

	req := newRequest(get)

	attachments, err := attachmentsFromString(values.Get(attachmentsKey))
	if err != nil {
		return nil, err
	}
	req.Attachments = attachments

	return req, nil
}

func newRequest(get func(keys []string) string) *Request {
	return &Request{
		From:      get(fromKeys),
		To:        get(toKeys),
		Subject:   get(subjectKeys),
		Text:      get(textKeys),
		HTML:      get(htmlKeys),
		MessageID: get(messageIDKeys),
	}
}

func attachmentsFromString(s string) ([]Attachment, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var list []interface{}
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, fmt.Errorf("%w: attachments: %v", ErrInvalidPayload, err)
	}
	return attachmentsFromList(list)
}

func attachmentsFromList(list []interface{}) ([]Attachment, error) {
	result := make([]Attachment, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: attachment %d is not an object", ErrInvalidPayload, i)
		}

		a := Attachment{
			Filename: stringField(obj, []string{"filename", "name"}),
			URL:      stringField(obj, []string{"url", "path", "storagePath"}),
		}
		a.ContentType = stringField(obj, contentTypeKeys)

		size, err := sizeField(obj["size"])
		if err != nil {
			return nil, fmt.Errorf("%w: attachment %d: %v", ErrInvalidPayload, i, err)
		}
		a.Size = size

		result = append(result, a)
	}
	return result, nil
}

func stringField(obj map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func sizeField(v interface{}) (int64, error) {
	switch s := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if s < 0 {
			return 0, nil
		}
		return int64(s), nil
	case string:
		if strings.TrimSpace(s) == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("size %q is not a number", s)
		}
		if n < 0 {
			return 0, nil
		}
		return n, nil
	default:
		return 0, fmt.Errorf("size has unsupported type %T", v)
	}
}
