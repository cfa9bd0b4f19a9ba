package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FearGreed/internal/model"
)

func TestFormatLatest(t *testing.T) {
	msg := FormatLatest([]model.HistoryPoint{
		{Date: "2024-01-01", Value: 20, Status: model.StatusExtremeFear},
		{Date: "2024-01-02", Value: 60, Status: model.StatusGreed},
	})
	assert.Contains(t, msg, "2024-01-02")
	assert.Contains(t, msg, "<b>60</b> (Greed)")
	assert.Contains(t, msg, "+40.0")
	assert.Contains(t, msg, "Fear &amp; Greed")

	assert.Contains(t, FormatLatest(nil), "❌")
}

func TestFormatHistory(t *testing.T) {
	msg := FormatHistory([]model.HistoryPoint{
		{Date: "2024-01-01", Value: 20, Status: model.StatusExtremeFear},
		{Date: "2024-01-02", Value: 60, Status: model.StatusGreed},
	})
	assert.Contains(t, msg, "최근 2일")
	assert.Contains(t, msg, "2024-01-01   20  Extreme Fear")
	assert.Contains(t, msg, "평균 40.0 | 최고 60 | 최저 20")
	assert.Contains(t, msg, "구간 내 위치: 100%")
}

func TestSend(t *testing.T) {
	var got map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	require.NoError(t, n.Send(context.Background(), "hello"))
	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSend_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	err := n.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestStartPolling_RepliesToCommands(t *testing.T) {
	var mu sync.Mutex
	var sent []string
	served := false

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			if served {
				_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
				return
			}
			served = true
			_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":7,"message":{"text":" /latest "}}]}`))
		case "/botTOKEN/sendMessage":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			sent = append(sent, body["text"])
		}
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.StartPolling(ctx, func(_ context.Context, cmd string) string { return "reply to " + cmd })
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 1
	}, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"reply to /latest"}, sent)
}
