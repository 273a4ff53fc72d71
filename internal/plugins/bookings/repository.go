package bookings

import (
	"context"
	"database/sql"
	"fmt"
)

// BookingRepository defines the data access contract for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error

	// ListByStudent returns the student's bookings with the teacher party
	// attached, newest date first.
	ListByStudent(ctx context.Context, studentID int64) ([]Booking, error)

	// ListByTeacher returns the teacher's bookings with the student party
	// attached, newest date first.
	ListByTeacher(ctx context.Context, teacherID int64) ([]Booking, error)
}

// bookingRepository implements BookingRepository with hand-written MySQL queries.
type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new booking repository backed by the given DB pool.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create inserts a booking and sets its ID. Overlaps are not checked.
func (r *bookingRepository) Create(ctx context.Context, b *Booking) error {
	query := `INSERT INTO schedules (student_id, teacher_id, date, created_at)
	          VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, b.StudentID, b.TeacherID, b.Date, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading booking id: %w", err)
	}
	b.ID = id
	return nil
}

// ListByStudent joins each booking with its teacher.
func (r *bookingRepository) ListByStudent(ctx context.Context, studentID int64) ([]Booking, error) {
	query := `SELECT s.id, s.student_id, s.teacher_id, s.date, s.created_at, a.id, a.name, a.email
	          FROM schedules s
	          INNER JOIN accounts a ON a.id = s.teacher_id
	          WHERE s.student_id = ?
	          ORDER BY s.date DESC, s.id DESC`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing student bookings: %w", err)
	}
	return scanBookings(rows, func(b *Booking, p *BookingParty) { b.Teacher = p })
}

// ListByTeacher joins each booking with its student.
func (r *bookingRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]Booking, error) {
	query := `SELECT s.id, s.student_id, s.teacher_id, s.date, s.created_at, a.id, a.name, a.email
	          FROM schedules s
	          INNER JOIN accounts a ON a.id = s.student_id
	          WHERE s.teacher_id = ?
	          ORDER BY s.date DESC, s.id DESC`

	rows, err := r.db.QueryContext(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("listing teacher bookings: %w", err)
	}
	return scanBookings(rows, func(b *Booking, p *BookingParty) { b.Student = p })
}

// scanBookings reads rows and hands the joined party to attach. Closes rows.
func scanBookings(rows *sql.Rows, attach func(*Booking, *BookingParty)) ([]Booking, error) {
	defer rows.Close()

	bookings := []Booking{}
	for rows.Next() {
		var (
			b     Booking
			party BookingParty
		)
		if err := rows.Scan(&b.ID, &b.StudentID, &b.TeacherID, &b.Date, &b.CreatedAt,
			&party.ID, &party.Name, &party.Email); err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}
		b.Date = b.Date.UTC()
		attach(&b, &party)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}
	return bookings, nil
}
