package chatrelay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/pkg/logger"
)

func TestClient_Send_Success(t *testing.T) {
	var received Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"messageId":"tg-77"}`))
	}))
	defer server.Close()

	client := NewClient(map[domain.Channel]string{domain.ChannelTelegram: server.URL}, time.Second, logger.NewNop())

	res, err := client.Send(context.Background(), domain.ChannelTelegram, Message{To: "@studio", Message: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "tg-77", res.MessageID)
	assert.Equal(t, "@studio", received.To)
	assert.Equal(t, []string{}, received.Images)
}

func TestClient_Send_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"session not ready"}`))
	}))
	defer server.Close()

	client := NewClient(map[domain.Channel]string{domain.ChannelWhatsApp: server.URL}, time.Second, logger.NewNop())

	_, err := client.Send(context.Background(), domain.ChannelWhatsApp, Message{To: "+34600"})

	require.ErrorIs(t, err, ErrRelayRejected)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "session not ready")
}

func TestClient_Send_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(map[domain.Channel]string{domain.ChannelTelegram: server.URL}, time.Second, logger.NewNop())

	_, err := client.Send(context.Background(), domain.ChannelTelegram, Message{To: "x"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Send_Unconfigured(t *testing.T) {
	client := NewClient(map[domain.Channel]string{domain.ChannelTelegram: ""}, time.Second, logger.NewNop())

	assert.False(t, client.Configured(domain.ChannelTelegram))
	_, err := client.Send(context.Background(), domain.ChannelTelegram, Message{To: "x"})
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestClient_Send_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(map[domain.Channel]string{domain.ChannelTelegram: url}, time.Second, logger.NewNop())

	_, err := client.Send(context.Background(), domain.ChannelTelegram, Message{To: "x"})
	assert.ErrorIs(t, err, ErrInternal)
}
