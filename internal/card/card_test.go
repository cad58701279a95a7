package card

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"membership_system/internal/domain"
)

func writeTemplate(t *testing.T, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template_kartu.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode template: %v", err)
	}
	return path
}

func sampleMember() domain.Member {
	return domain.Member{
		Nama:     "Jane Doe",
		Username: "jdoe",
		Email:    "jane@x.com",
		Password: "digest",
		NoWA:     "081234567890",
		Link:     "https://link",
	}
}

func TestGenerateMissingTemplate(t *testing.T) {
	gen := NewGenerator(filepath.Join(t.TempDir(), "missing.png"), DefaultFont)

	_, err := gen.Generate(sampleMember())
	if !errors.Is(err, ErrTemplateMissing) {
		t.Errorf("err = %v, want ErrTemplateMissing", err)
	}
}

func TestGenerateWithFallbackFont(t *testing.T) {
	// No roboto.ttf present: rendering degrades to the built-in face
	// instead of failing.
	template := writeTemplate(t, 200, 100)
	gen := NewGenerator(template, filepath.Join(t.TempDir(), "missing.ttf"))

	b, err := gen.Generate(sampleMember())
	if err != nil {
		t.Fatalf("generate card: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 100 {
		t.Errorf("output bounds = %dx%d, want 200x100", bounds.Dx(), bounds.Dy())
	}
}

func TestGenerateDoesNotMutateInputs(t *testing.T) {
	template := writeTemplate(t, 100, 100)
	gen := NewGenerator(template, "missing.ttf")

	m := sampleMember()
	if _, err := gen.Generate(m); err != nil {
		t.Fatalf("generate card: %v", err)
	}
	if m != sampleMember() {
		t.Error("member record changed during generation")
	}

	// The template on disk is untouched.
	first, err := os.ReadFile(template)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if _, err := gen.Generate(m); err != nil {
		t.Fatalf("generate card: %v", err)
	}
	second, err := os.ReadFile(template)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("template asset changed during generation")
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("jdoe"); got != "Kartu_jdoe.PNG" {
		t.Errorf("Filename(\"jdoe\") = %q, want %q", got, "Kartu_jdoe.PNG")
	}
}
