// Package bookings is the booking ledger. A booking ties a student to a
// teacher at a point in time. Bookings are never updated or deleted, and
// nothing prevents two bookings for the same teacher and time.
package bookings

import (
	"time"
)

// Booking is one reservation. Exactly one of Teacher or Student is set on
// listings, depending on who is asking.
type Booking struct {
	ID        int64         `json:"id"`
	StudentID int64         `json:"studentId"`
	TeacherID int64         `json:"teacherId"`
	Date      time.Time     `json:"date"`
	CreatedAt time.Time     `json:"createdAt"`
	Teacher   *BookingParty `json:"teacher,omitempty"`
	Student   *BookingParty `json:"student,omitempty"`
}

// BookingParty is the public projection of the other participant.
type BookingParty struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateBookingRequest is the body of POST /bookings.
type CreateBookingRequest struct {
	TeacherID int64  `json:"teacherId"`
	Date      string `json:"date" validate:"max=64"`
}

// CreateBookingInput is the validated input for creating a booking.
type CreateBookingInput struct {
	TeacherID int64
	Date      string
}
