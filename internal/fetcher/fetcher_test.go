package fetcher

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetSendsProfileHeaders(t *testing.T) {
	var gotUA, gotAccept, gotReferer, gotExtra string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotReferer = r.Header.Get("Referer")
		gotExtra = r.Header.Get("X-Requested-With")
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	body, err := c.Get(srv.URL, HeaderProfile{
		UserAgent: "NewsNowBot/1.0",
		Accept:    "application/json, text/plain, */*",
		Referer:   "https://example.com/",
		Extra:     map[string]string{"X-Requested-With": "fetch"},
	})
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if body != "hello" {
		t.Fatalf("body = %q, want %q", body, "hello")
	}
	if gotUA != "NewsNowBot/1.0" {
		t.Fatalf("User-Agent = %q", gotUA)
	}
	if gotAccept == "" || gotReferer == "" || gotExtra != "fetch" {
		t.Fatalf("profile headers not sent: accept=%q referer=%q extra=%q", gotAccept, gotReferer, gotExtra)
	}
}

func TestGetNon2xxIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	_, err := c.Get(srv.URL, HeaderProfile{})
	if err == nil {
		t.Fatalf("expected error on 502")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fe.URL != srv.URL {
		t.Fatalf("FetchError.URL = %q, want %q", fe.URL, srv.URL)
	}
}

func TestGetTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	c := NewClient(50 * time.Millisecond)
	start := time.Now()
	_, err := c.Get(srv.URL, HeaderProfile{})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Fatalf("timeout not enforced, took %v", elapsed)
	}
}

func TestPostRawSendsBody(t *testing.T) {
	var gotBody string
	var gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		gotCT = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	body, err := c.PostRaw(srv.URL, []byte(`{"cursor_score":""}`), "application/json", HeaderProfile{})
	if err != nil {
		t.Fatalf("PostRaw error: %v", err)
	}
	if body != `{"ok":true}` {
		t.Fatalf("body = %q", body)
	}
	if gotBody != `{"cursor_score":""}` {
		t.Fatalf("request body = %q", gotBody)
	}
	if gotCT != "application/json" {
		t.Fatalf("content type = %q", gotCT)
	}
}
