package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveLanguageCode_CatalogMatches(t *testing.T) {
	langs := []Language{
		{Code: "en", Name: "English"},
		{Code: "fr", Name: "French"},
	}

	tests := []struct {
		label string
		want  string
	}{
		{"French", "fr"},
		{"french", "fr"},
		{"FR", "fr"},
		{"  en  ", "en"},
	}
	for _, tt := range tests {
		got, err := ResolveLanguageCode(tt.label, langs)
		if err != nil {
			t.Errorf("ResolveLanguageCode(%q) err = %v, want nil", tt.label, err)
		}
		if got != tt.want {
			t.Errorf("ResolveLanguageCode(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestResolveLanguageCode_ShortLabelUsedAsCode(t *testing.T) {
	got, err := ResolveLanguageCode("De", nil)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
	if got != "de" {
		t.Errorf("ResolveLanguageCode = %q, want %q", got, "de")
	}
}

func TestResolveLanguageCode_FirstTokenHeuristic(t *testing.T) {
	got, err := ResolveLanguageCode("pt brazilian portuguese", nil)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
	if got != "pt" {
		t.Errorf("ResolveLanguageCode = %q, want %q", got, "pt")
	}
}

func TestResolveLanguageCode_LastResortVerbatim(t *testing.T) {
	got, err := ResolveLanguageCode("xx-unknown-language", nil)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
	if got != "xx-unknown-language" {
		t.Errorf("ResolveLanguageCode = %q, want the normalized label back", got)
	}
}

func newTranslateTestServer(t *testing.T, langsStatus int, wantTarget, translated string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/languages", func(w http.ResponseWriter, r *http.Request) {
		if langsStatus != http.StatusOK {
			w.WriteHeader(langsStatus)
			return
		}
		json.NewEncoder(w).Encode([]Language{{Code: "fr", Name: "French"}})
	})
	mux.HandleFunc("/translate", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode translate payload: %v", err)
		}
		if payload["source"] != "auto" || payload["format"] != "text" {
			t.Errorf("payload = %v, want source=auto format=text", payload)
		}
		if payload["target"] != wantTarget {
			t.Errorf("target = %q, want %q", payload["target"], wantTarget)
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": translated})
	})
	return httptest.NewServer(mux)
}

func TestTranslateText_CatalogMatch(t *testing.T) {
	srv := newTranslateTestServer(t, http.StatusOK, "fr", "Bonjour le monde")
	defer srv.Close()

	service := NewTranslateService(srv.URL)
	got, ok := service.TranslateText(context.Background(), "Hello world", "French")
	if !ok {
		t.Fatal("TranslateText failed, want success")
	}
	if got != "Bonjour le monde" {
		t.Errorf("TranslateText = %q, want %q", got, "Bonjour le monde")
	}
}

func TestTranslateText_CatalogDownStillTranslates(t *testing.T) {
	// 语言目录不可用时降级为启发式解析，不中止翻译
	srv := newTranslateTestServer(t, http.StatusInternalServerError, "fr", "Bonjour")
	defer srv.Close()

	service := NewTranslateService(srv.URL)
	got, ok := service.TranslateText(context.Background(), "Hello", "fr")
	if !ok || got != "Bonjour" {
		t.Errorf("TranslateText = (%q, %v), want (%q, true)", got, ok, "Bonjour")
	}
}

func TestTranslateText_ServiceUnreachable(t *testing.T) {
	service := NewTranslateService("http://127.0.0.1:1")

	got, ok := service.TranslateText(context.Background(), "Hello", "fr")
	if ok || got != "" {
		t.Errorf("TranslateText = (%q, %v), want (\"\", false)", got, ok)
	}
}

func TestTranslateText_MissingTranslatedText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/languages", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Language{})
	})
	mux.HandleFunc("/translate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	service := NewTranslateService(srv.URL)
	if _, ok := service.TranslateText(context.Background(), "Hello", "fr"); ok {
		t.Error("TranslateText succeeded, want failure on missing translatedText")
	}
}

func TestTranslateText_EmptyText(t *testing.T) {
	service := NewTranslateService("http://127.0.0.1:1")

	if _, ok := service.TranslateText(context.Background(), "   ", "fr"); ok {
		t.Error("TranslateText succeeded on empty text, want failure")
	}
}

func TestSupportedLanguages_ErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	service := NewTranslateService(srv.URL)
	if _, err := service.SupportedLanguages(context.Background()); !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("err = %v, want ErrServiceUnavailable", err)
	}
}
