package api

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"membership_system/internal/card"
)

func writeCardTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template_kartu.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 150, 80))); err != nil {
		t.Fatalf("encode template: %v", err)
	}
	return path
}

func newCardRouter(t *testing.T, store MemberStore, gen *card.Generator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/members/:username/card", CardHandler(store, gen))
	return r
}

func TestCardDownload(t *testing.T) {
	gen := card.NewGenerator(writeCardTemplate(t), "missing.ttf")
	r := newCardRouter(t, seededStore(), gen)

	req := httptest.NewRequest(http.MethodGet, "/admin/members/jdoe/card", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want %q", ct, "image/png")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Kartu_jdoe.PNG") {
		t.Errorf("content disposition = %q, want filename Kartu_jdoe.PNG", cd)
	}
	if _, err := png.Decode(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Errorf("response body is not a valid PNG: %v", err)
	}
}

func TestCardUnknownMember(t *testing.T) {
	gen := card.NewGenerator(writeCardTemplate(t), "missing.ttf")
	r := newCardRouter(t, seededStore(), gen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/members/ghost/card", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCardTemplateMissing(t *testing.T) {
	gen := card.NewGenerator(filepath.Join(t.TempDir(), "missing.png"), "missing.ttf")
	r := newCardRouter(t, seededStore(), gen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/members/jdoe/card", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestCardStoreUnavailable(t *testing.T) {
	gen := card.NewGenerator(writeCardTemplate(t), "missing.ttf")
	r := newCardRouter(t, nil, gen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/members/jdoe/card", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
