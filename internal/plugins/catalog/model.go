// Package catalog manages teacher-published classes: creating them with
// normalized inputs and composing the public discovery query from optional
// search filters.
package catalog

import (
	"encoding/json"
	"time"
)

// Modality is how a class is delivered.
type Modality string

const (
	ModalityOnline     Modality = "online"
	ModalityHome       Modality = "home"
	ModalityTravel     Modality = "travel"
	ModalityHybrid     Modality = "hybrid"
	ModalityPresencial Modality = "presencial"
)

// DefaultModality replaces any unrecognized modality on class creation.
const DefaultModality = ModalityOnline

// Modalities lists every accepted modality. Keep in sync with the
// teacher_classes.modality ENUM.
func Modalities() []Modality {
	return []Modality{ModalityOnline, ModalityHome, ModalityTravel, ModalityHybrid, ModalityPresencial}
}

// TeacherClass is a catalog entry. Teacher is always present in JSON; its
// fields are null when the owning account no longer resolves.
type TeacherClass struct {
	ID              int64          `json:"id"`
	TeacherID       *int64         `json:"teacherId"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Subject         *string        `json:"subject"`
	Description     *string        `json:"description"`
	Modality        Modality       `json:"modality"`
	DurationMinutes int            `json:"durationMinutes"`
	Price           *float64       `json:"price"`
	StartTime       *time.Time     `json:"startTime"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	Teacher         TeacherSummary `json:"teacher"`
}

// TeacherSummary is the read-only public projection of a class owner. It
// structurally excludes credentials.
type TeacherSummary struct {
	ID            *int64   `json:"id"`
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	City          *string  `json:"city"`
	Region        *string  `json:"region"`
	TeachingModes []string `json:"teachingModes"`
	Languages     []string `json:"languages"`
	HourlyRate    *float64 `json:"hourlyRate"`
	Headline      *string  `json:"headline"`
	Bio           *string  `json:"bio"`
}

// Filter holds the optional discovery criteria. Zero values mean "absent".
type Filter struct {
	Query     string
	City      string
	Modality  string
	TeacherID int64

	// Take is the page size. 0 selects DefaultTake; other values are
	// clamped to [MinTake, MaxTake].
	Take int
}

// --- Request DTOs ---

// CreateClassRequest is the body of POST /classes. Duration and price
// accept JSON numbers or numeric strings, so they stay raw until the
// service normalizes them.
type CreateClassRequest struct {
	Title           string          `json:"title" validate:"max=200"`
	Subject         *string         `json:"subject" validate:"omitempty,max=120"`
	Description     *string         `json:"description" validate:"omitempty,max=5000"`
	Modality        string          `json:"modality"`
	DurationMinutes json.RawMessage `json:"durationMinutes"`
	Price           json.RawMessage `json:"price"`
	StartTime       *string         `json:"startTime"`
}

// --- Service Input DTOs ---

// CreateClassInput is the transport-independent input for CreateClass.
type CreateClassInput struct {
	Title           string
	Subject         *string
	Description     *string
	Modality        string
	DurationMinutes json.RawMessage
	Price           json.RawMessage
	StartTime       *string
}
