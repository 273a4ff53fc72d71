package bookings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/accounts"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
)

// dateLayouts are tried in order. Layouts without an offset are read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// AccountLookup resolves accounts by id and role. accounts.AccountService
// satisfies it.
type AccountLookup interface {
	Get(ctx context.Context, id int64, role auth.Role) (*accounts.PublicAccount, error)
}

// BookingService defines the business logic contract for the ledger.
type BookingService interface {
	// CreateBooking books the calling student with a teacher.
	CreateBooking(ctx context.Context, caller *auth.Identity, input CreateBookingInput) (*Booking, error)

	// ListForCaller returns the caller's bookings with the other party.
	ListForCaller(ctx context.Context, caller *auth.Identity) ([]Booking, error)
}

// bookingService implements BookingService.
type bookingService struct {
	repo     BookingRepository
	accounts AccountLookup
	now      func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(repo BookingRepository, lookup AccountLookup) BookingService {
	return &bookingService{repo: repo, accounts: lookup, now: time.Now}
}

// CreateBooking validates the teacher and date and stores the booking.
func (s *bookingService) CreateBooking(ctx context.Context, caller *auth.Identity, input CreateBookingInput) (*Booking, error) {
	if err := auth.RequireRole(caller, auth.RoleStudent, "create bookings"); err != nil {
		return nil, err
	}

	if input.TeacherID <= 0 {
		return nil, apperror.NewValidation("teacherId is required")
	}
	date, err := ParseDate(input.Date)
	if err != nil {
		return nil, err
	}

	teacher, err := s.accounts.Get(ctx, input.TeacherID, auth.RoleTeacher)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewValidation("teacher not found")
		}
		return nil, apperror.NewInternal(fmt.Errorf("looking up teacher %d: %w", input.TeacherID, err))
	}

	booking := &Booking{
		StudentID: caller.ID,
		TeacherID: teacher.ID,
		Date:      date,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating booking: %w", err))
	}
	booking.Teacher = &BookingParty{ID: teacher.ID, Name: teacher.Name, Email: teacher.Email}

	slog.Info("booking created",
		slog.Int64("booking_id", booking.ID),
		slog.Int64("student_id", booking.StudentID),
		slog.Int64("teacher_id", booking.TeacherID),
	)

	return booking, nil
}

// ListForCaller scopes the listing by role. Roles with no bookings of
// their own get an empty list rather than an error.
func (s *bookingService) ListForCaller(ctx context.Context, caller *auth.Identity) ([]Booking, error) {
	if caller == nil {
		return nil, apperror.NewUnauthenticated(apperror.ReasonTokenMissing, "no token provided")
	}

	var (
		list []Booking
		err  error
	)
	switch caller.Role {
	case auth.RoleStudent:
		list, err = s.repo.ListByStudent(ctx, caller.ID)
	case auth.RoleTeacher:
		list, err = s.repo.ListByTeacher(ctx, caller.ID)
	default:
		return []Booking{}, nil
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing bookings for %s %d: %w", caller.Role, caller.ID, err))
	}
	return list, nil
}

// ParseDate reads a booking date in any of the accepted layouts and returns
// it in UTC at second precision.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperror.NewValidation("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, apperror.NewValidation("date must be an ISO 8601 timestamp")
}
