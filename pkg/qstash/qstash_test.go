package qstash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientDisabled(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{URL: "https://qstash.upstash.io", Token: "tok"})
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("NewClient() error = %v, want ErrDisabled", err)
	}
}

func TestPublish(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotType, gotTitle, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotTitle = r.Header.Get("Upstash-Forward-Note-Title")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"messageId":"msg_1"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		URL:         server.URL,
		Token:       "tok",
		Destination: "notes-hook",
	}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	res, err := client.Publish(context.Background(), []byte("# Note"), "text/markdown", map[string]string{
		"Note-Title": "Test Note",
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if res.MessageID != "msg_1" {
		t.Fatalf("MessageID = %q, want msg_1", res.MessageID)
	}
	if gotPath != "/v2/publish/notes-hook" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotType != "text/markdown" {
		t.Fatalf("Content-Type = %q", gotType)
	}
	if gotTitle != "Test Note" {
		t.Fatalf("forward header = %q", gotTitle)
	}
	if gotBody != "# Note" {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestPublishNon2xx(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Token: "bad", Destination: "d"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Publish(context.Background(), []byte("x"), "", nil); err == nil {
		t.Fatal("expected error on 401")
	}
}
