package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSend(t *testing.T) {
	var gotID, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	resp, err := Send(context.Background(), nil, srv.URL, map[string]any{"prompt": "hi"},
		map[string]string{"Authorization": "Bearer x"}, "test.http", nil)
	if err != nil {
		t.Fatalf("Send error = %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Status)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("Expected body {\"ok\":true}, got %s", resp.Body)
	}
	if resp.ContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", resp.ContentType)
	}
	if gotID == "" || gotID != resp.RequestID {
		t.Errorf("Expected request id header %q, got %q", resp.RequestID, gotID)
	}
	if gotAuth != "Bearer x" {
		t.Errorf("Expected Authorization header, got %q", gotAuth)
	}
	if gotBody["prompt"] != "hi" {
		t.Errorf("Expected prompt hi, got %v", gotBody["prompt"])
	}
}

func TestSendStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	resp, err := Send(context.Background(), srv.Client(), srv.URL, map[string]any{}, nil, "test.http", nil)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("Expected ErrStatus, got %v", err)
	}
	if resp == nil || resp.Status != http.StatusBadGateway {
		t.Errorf("Expected response with status 502, got %+v", resp)
	}
}

func TestSendEncodeError(t *testing.T) {
	_, err := Send(context.Background(), nil, "http://127.0.0.1:0", map[string]any{"bad": make(chan int)}, nil, "test.http", nil)
	if err == nil {
		t.Error("Expected encode error")
	}
}
