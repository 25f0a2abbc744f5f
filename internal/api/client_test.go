package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetJSONAttachesToken(t *testing.T) {
	var receivedToken, receivedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedToken = r.Header.Get("X-Telegram-Init-Data")
		receivedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`["funny","cats"]`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")
	categories, err := GetJSON[[]string](context.Background(), client, "/categories", "init-data")

	require.NoError(t, err)
	assert.Equal(t, []string{"funny", "cats"}, categories)
	assert.Equal(t, "init-data", receivedToken)
	assert.Equal(t, "/categories", receivedPath)
}

func TestClient_CustomHeaderName(t *testing.T) {
	var receivedToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedToken = r.Header.Get("X-Session")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithHeaderName("X-Session"))
	_, err := client.Get(context.Background(), "/profile", "tok")

	require.NoError(t, err)
	assert.Equal(t, "tok", receivedToken)
}

func TestClient_PostEncodesJSON(t *testing.T) {
	var receivedContentType, receivedMethod string
	var receivedBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedMethod = r.Method
		receivedContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &receivedBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ack, err := PostJSON[map[string]string](context.Background(), client, "/bookmark", "tok",
		map[string]any{"video_uuid": "abc", "bookmarked": true})

	require.NoError(t, err)
	assert.Equal(t, "ok", ack["status"])
	assert.Equal(t, http.MethodPost, receivedMethod)
	assert.Equal(t, "application/json", receivedContentType)
	assert.Equal(t, "abc", receivedBody["video_uuid"])
	assert.Equal(t, true, receivedBody["bookmarked"])
}

func TestClient_PostEmptyAcknowledgement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ack, err := PostJSON[map[string]string](context.Background(), NewClient(server.URL), "/bookmark", "tok", map[string]any{})

	require.NoError(t, err)
	assert.Nil(t, ack)
}

func TestClient_BinaryResponse(t *testing.T) {
	payload := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Get(context.Background(), "/stream/abc", "tok")

	require.NoError(t, err)
	assert.False(t, resp.IsJSON())
	assert.Equal(t, payload, resp.Bytes())
	assert.Error(t, resp.Decode(&map[string]any{}))
}

func TestClient_ErrorDetailIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"Subscription required"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Get(context.Background(), "/feed/premium", "tok")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Subscription required", apiErr.Message)
}

func TestClient_NonJSONErrorUsesStatusMessage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"html body", "text/html", "<html><body>Bad Gateway</body></html>"},
		{"empty body", "", ""},
		{"json without detail", "application/json", `{"error":"nope"}`},
		{"json with empty detail", "application/json", `{"detail":""}`},
		{"json with structured detail", "application/json", `{"detail":[{"loc":["body"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Get(context.Background(), "/categories", "tok")

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadGateway, apiErr.Status)
			assert.Equal(t, "HTTP error! status: 502", apiErr.Message)
		})
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Get(context.Background(), "/categories", "tok")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotContains(t, err.Error(), "refused")
	assert.NotContains(t, err.Error(), url)
	assert.Equal(t, networkErrorMessage, UserMessage(err, "fallback"))
}

func TestClient_CancelledContextIsNotNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).Get(ctx, "/categories", "tok")

	assert.True(t, IsCanceled(err))
	var netErr *NetworkError
	assert.False(t, errors.As(err, &netErr))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "nope", UserMessage(&Error{Status: 404, Message: "nope"}, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", UserMessage(nil, "fallback"))
}
