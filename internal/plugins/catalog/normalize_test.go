package catalog

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
)

func TestNormalizeModality(t *testing.T) {
	tests := map[string]Modality{
		"online":     ModalityOnline,
		" Home ":     ModalityHome,
		"TRAVEL":     ModalityTravel,
		"hybrid":     ModalityHybrid,
		"presencial": ModalityPresencial,
		"xyz":        ModalityOnline,
		"":           ModalityOnline,
		"in-person":  ModalityOnline,
	}
	for in, want := range tests {
		if got := NormalizeModality(in); got != want {
			t.Errorf("NormalizeModality(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeModalities(t *testing.T) {
	got := NormalizeModalities([]string{"Home", "online", "bogus", "home", " travel"})
	want := []string{"home", "online", "travel"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", DefaultDuration},
		{"null", DefaultDuration},
		{"0", 15},
		{"-30", 15},
		{"14", 15},
		{"15", 15},
		{"90", 90},
		{"89.6", 90},
		{"600", 600},
		{"601", 600},
		{"1e9", 600},
		{"1e400", 600},
		{`"1e400"`, 600},
		{"-1e400", 15},
		{`"Inf"`, DefaultDuration},
		{`"NaN"`, DefaultDuration},
		{`"45"`, 45},
		{`" 120 "`, 120},
		{`"abc"`, DefaultDuration},
		{`""`, DefaultDuration},
		{"true", DefaultDuration},
		{`{"m":30}`, DefaultDuration},
	}
	for _, tt := range tests {
		if got := NormalizeDuration(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("NormalizeDuration(%s) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	p, err := ParseAmount(json.RawMessage(`49.999`), "price")
	if err != nil || p == nil || *p != 50 {
		t.Errorf("expected 50, got %v err=%v", p, err)
	}

	p, err = ParseAmount(json.RawMessage(`"80.256"`), "price")
	if err != nil || p == nil || *p != 80.26 {
		t.Errorf("expected 80.26 from string, got %v err=%v", p, err)
	}

	p, err = ParseAmount(nil, "price")
	if err != nil || p != nil {
		t.Errorf("expected nil for absent price, got %v err=%v", p, err)
	}

	if _, err := ParseAmount(json.RawMessage(`-1`), "price"); apperror.SafeCode(err) != http.StatusBadRequest {
		t.Errorf("expected 400 for negative price, got %v", err)
	}
	if _, err := ParseAmount(json.RawMessage(`"cheap"`), "price"); apperror.SafeCode(err) != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric price, got %v", err)
	}

	p, err = ParseAmount(json.RawMessage(`99999999.99`), "price")
	if err != nil || p == nil || *p != MaxAmount {
		t.Errorf("expected the column maximum to be accepted, got %v err=%v", p, err)
	}
	for _, raw := range []string{`100000000`, `99999999.999`, `"1e400"`, `1e400`} {
		_, err := ParseAmount(json.RawMessage(raw), "hourlyRate")
		if apperror.SafeCode(err) != http.StatusBadRequest || apperror.SafeMessage(err) != "hourlyRate is too large" {
			t.Errorf("%s: expected 400 too large, got %v", raw, err)
		}
	}
	if _, err := ParseAmount(json.RawMessage(`-1e400`), "price"); apperror.SafeMessage(err) != "price must not be negative" {
		t.Errorf("expected negative rejection for -1e400, got %v", err)
	}
}

func TestClassSlug(t *testing.T) {
	if got := ClassSlug("Álgebra Linear"); got != "algebra-linear" {
		t.Errorf("unexpected slug %q", got)
	}

	for _, title := range []string{strings.Repeat("& ", 100), strings.Repeat("数学", 100), strings.Repeat("x", 300)} {
		got := ClassSlug(title)
		if len(got) == 0 || len(got) > MaxSlugLength {
			t.Errorf("slug of %d-rune title has length %d", len([]rune(title)), len(got))
		}
		if strings.HasSuffix(got, "-") {
			t.Errorf("slug %q ends with a separator", got)
		}
	}
	if got := ClassSlug(strings.Repeat("& ", 100)); !strings.HasPrefix(got, "and-and-") {
		t.Errorf("expected transliterated slug, got %q", got)
	}
}

func TestClampTake(t *testing.T) {
	tests := map[int]int{0: 12, -4: 1, 1: 1, 12: 12, 50: 50, 51: 50, 1000: 50}
	for in, want := range tests {
		if got := ClampTake(in); got != want {
			t.Errorf("ClampTake(%d) = %d, want %d", in, got, want)
		}
	}
}
