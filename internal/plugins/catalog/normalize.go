package catalog

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
)

// Class duration bounds, in minutes.
const (
	MinDuration     = 15
	MaxDuration     = 600
	DefaultDuration = 60
)

// MaxAmount is the largest value DECIMAL(10,2) holds.
const MaxAmount = 99999999.99

// MaxSlugLength matches teacher_classes.slug VARCHAR(220).
const MaxSlugLength = 220

// Discovery page size bounds.
const (
	MinTake     = 1
	MaxTake     = 50
	DefaultTake = 12
)

var errNotNumeric = errors.New("not a number")

// ParseModality trims and lower-cases s and reports whether it names a
// known modality.
func ParseModality(s string) (Modality, bool) {
	m := Modality(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modalities() {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// NormalizeModality coerces s to a known modality, falling back to
// DefaultModality.
func NormalizeModality(s string) Modality {
	if m, ok := ParseModality(s); ok {
		return m
	}
	return DefaultModality
}

// NormalizeModalities keeps the known modalities of in, first occurrence
// order, without duplicates.
func NormalizeModalities(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[Modality]bool, len(in))
	for _, s := range in {
		m, ok := ParseModality(s)
		if !ok || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, string(m))
	}
	return out
}

// NormalizeDuration reads a duration in minutes from a JSON number or
// numeric string. Absent or non-numeric input yields DefaultDuration;
// numbers are rounded and clamped to [MinDuration, MaxDuration].
func NormalizeDuration(raw json.RawMessage) int {
	v, present, err := looseNumber(raw)
	if !present || err != nil {
		return DefaultDuration
	}
	v = math.Max(MinDuration, math.Min(MaxDuration, math.Round(v)))
	return int(v)
}

// ParseAmount reads an optional non-negative money amount and rounds it to
// two decimals. Absent input yields nil.
func ParseAmount(raw json.RawMessage, field string) (*float64, error) {
	v, present, err := looseNumber(raw)
	if !present {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewValidation(field + " must be a number")
	}
	if v < 0 {
		return nil, apperror.NewValidation(field + " must not be negative")
	}
	rounded := RoundMoney(v)
	if rounded > MaxAmount {
		return nil, apperror.NewValidation(field + " is too large")
	}
	return &rounded, nil
}

// ClassSlug derives the URL slug of a class title. Transliteration can
// make the slug much longer than the title, so it is cut at the last word
// boundary that fits MaxSlugLength.
func ClassSlug(title string) string {
	s := slug.Make(title)
	if len(s) <= MaxSlugLength {
		return s
	}
	if i := strings.LastIndexByte(s[:MaxSlugLength+1], '-'); i > 0 {
		return s[:i]
	}
	return s[:MaxSlugLength]
}

// RoundMoney rounds to two decimal places, matching DECIMAL(10,2).
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClampTake applies the discovery page size rule.
func ClampTake(take int) int {
	if take == 0 {
		return DefaultTake
	}
	return clamp(take, MinTake, MaxTake)
}

// looseNumber decodes a JSON number or a string holding one. present is
// false for missing, null or blank input. Numbers beyond float64 range come
// back as ±Inf so callers can clamp or reject them.
func looseNumber(raw json.RawMessage) (v float64, present bool, err error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, false, nil
	}

	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, true, errNotNumeric
		}
		if text = strings.TrimSpace(s); text == "" {
			return 0, false, nil
		}
	}

	v, err = strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, true, nil
		}
		return 0, true, errNotNumeric
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		// "Inf" and "NaN" spelled out are not numbers.
		return 0, true, errNotNumeric
	}
	return v, true, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
