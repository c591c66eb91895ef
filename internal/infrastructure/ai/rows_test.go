package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRows_MarkdownYNumeros(t *testing.T) {
	text := "Here you go:\n```json\n[{\"name\":\"CAT D6\",\"quantity\":3,\"price\":125000.50,\"serial_number\":null}]\n```"
	rows, err := decodeRows(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CAT D6", rows[0]["name"])
	assert.Equal(t, "3", rows[0]["quantity"])
	assert.Equal(t, "125000.50", rows[0]["price"])
	_, ok := rows[0]["serial_number"]
	assert.False(t, ok)
}

func TestDecodeRows_SinArreglo(t *testing.T) {
	_, err := decodeRows("lo siento, no puedo")
	assert.Error(t, err)
}

func TestAnthropicExtractRows_ServidorFalso(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Messages[0].Content, "payments")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"[{\"amount\":\"1500\",\"method\":\"Check\"}]"}]}`))
	}))
	defer srv.Close()

	s := NewAnthropicService("k", "claude-test")
	s.url = srv.URL
	rows, err := s.ExtractRows(context.Background(), "paid 1500 by check", "payments")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1500", rows[0]["amount"])
}

func TestGeminiExtractRows_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	defer srv.Close()

	s := NewGeminiService("k", "gemini-test")
	s.baseURL = srv.URL + "/%s?key=%s"
	_, err := s.ExtractRows(context.Background(), "x", "customers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestExtractRows_SinAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "m").ExtractRows(context.Background(), "x", "customers")
	assert.Error(t, err)
	_, err = NewAnthropicService("", "m").ExtractRows(context.Background(), "x", "customers")
	assert.Error(t, err)
}
