package chatrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// maxErrorBody сколько байт тела ошибки попадает в текст ошибки
const maxErrorBody = 512

// Client клиент чат-релеев (Telegram/WhatsApp).
// Одна попытка на сообщение, без повторов и очереди.
type Client struct {
	endpoints  map[domain.Channel]string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиента. Каналы с пустым адресом считаются ненастроенными.
func NewClient(endpoints map[domain.Channel]string, timeout time.Duration, log Logger) *Client {
	configured := make(map[domain.Channel]string, len(endpoints))
	for ch, url := range endpoints {
		if url != "" {
			configured[ch] = url
		}
	}

	return &Client{
		endpoints: configured,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Configured true, если для канала задан адрес релея
func (c *Client) Configured(channel domain.Channel) bool {
	_, ok := c.endpoints[channel]
	return ok
}

// Send отправляет одно сообщение через релей канала
func (c *Client) Send(ctx context.Context, channel domain.Channel, msg Message) (*SendResult, error) {
	url, ok := c.endpoints[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}

	if msg.Images == nil {
		msg.Images = []string{}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Info("Sending relay message: channel=%s, to=%s, images=%d", channel, msg.To, len(msg.Images))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status code %d: %s", ErrRelayRejected, resp.StatusCode, describeError(body))
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Relay accepted message: channel=%s, message_id=%s", channel, result.MessageID)
	return &result, nil
}

func describeError(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Error != "" {
			return errResp.Error
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}
	return string(body)
}
