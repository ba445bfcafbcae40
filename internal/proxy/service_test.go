package proxy

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestFetchInjectsBaseAndInterceptScript(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Hello</title></head><body>hi</body></html>`))
	}))
	defer upstream.Close()

	svc := NewService(testLogger())

	page, err := svc.Fetch(context.Background(), upstream.URL+"/page")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if page.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type: %q", page.ContentType)
	}

	body := string(page.Body)
	baseTag := `<base href="` + upstream.URL + `/" target="_self">`
	if !strings.Contains(body, baseTag) {
		t.Fatalf("base tag not injected: %s", body)
	}
	if !strings.Contains(body, "proxy-navigate") {
		t.Fatal("intercept script not injected")
	}
	if strings.Contains(body, "__TARGET_URL__") {
		t.Fatal("target placeholder left unsubstituted")
	}
	if !strings.Contains(body, upstream.URL+"/page") {
		t.Fatal("target url missing from intercept script")
	}

	// Injection lands right after <head>, before the page's own content.
	if strings.Index(body, baseTag) > strings.Index(body, "<title>") {
		t.Fatal("injection placed after existing head content")
	}
}

func TestFetchHeadlessDocumentGetsPrependedInjection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<p>bare fragment</p>`))
	}))
	defer upstream.Close()

	svc := NewService(testLogger())

	page, err := svc.Fetch(context.Background(), upstream.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	body := string(page.Body)
	if !strings.HasPrefix(body, "<base href=") {
		t.Fatalf("injection not prepended: %s", body[:40])
	}
	if !strings.HasSuffix(body, "<p>bare fragment</p>") {
		t.Fatal("original fragment lost")
	}
}

func TestFetchNonHTMLPassesThrough(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer upstream.Close()

	svc := NewService(testLogger())

	page, err := svc.Fetch(context.Background(), upstream.URL+"/logo.png")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if page.ContentType != "image/png" {
		t.Fatalf("unexpected content type: %q", page.ContentType)
	}
	if !bytes.Equal(page.Body, payload) {
		t.Fatal("binary body modified in transit")
	}
}

func TestFetchRejectsMalformedURLs(t *testing.T) {
	svc := NewService(testLogger())

	for _, target := range []string{"", "not a url", "/relative/only", "example.com"} {
		if _, err := svc.Fetch(context.Background(), target); err == nil {
			t.Fatalf("expected error for %q", target)
		}
	}
}
