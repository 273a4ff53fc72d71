package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/database"
)

// ClassRepository defines the data access contract for catalog classes.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type ClassRepository interface {
	Create(ctx context.Context, class *TeacherClass) error
	FindByID(ctx context.Context, id int64) (*TeacherClass, error)

	// Search returns classes matching every predicate, newest first with id
	// as tiebreaker. limit <= 0 means no limit.
	Search(ctx context.Context, preds Predicates, limit int) ([]TeacherClass, error)
}

// classRepository implements ClassRepository with hand-written MySQL queries.
type classRepository struct {
	db *sql.DB
}

// NewClassRepository creates a new class repository backed by the given DB pool.
func NewClassRepository(db *sql.DB) ClassRepository {
	return &classRepository{db: db}
}

// classSelect joins each class with its owner's public projection. Both
// joins are LEFT so a class whose teacher is gone still lists.
const classSelect = `SELECT c.id, c.teacher_id, c.title, c.slug, c.subject, c.description,
	       c.modality, c.duration_minutes, c.price, c.start_time, c.created_at, c.updated_at,
	       a.id, a.name, a.email,
	       p.city, p.region, p.teaching_modes, p.languages, p.hourly_rate, p.headline, p.bio
	FROM teacher_classes c
	LEFT JOIN accounts a ON a.id = c.teacher_id AND a.role = 'teacher'
	LEFT JOIN teacher_profiles p ON p.account_id = a.id`

const classOrder = ` ORDER BY c.created_at DESC, c.id DESC`

// Create inserts a class and sets its ID.
func (r *classRepository) Create(ctx context.Context, class *TeacherClass) error {
	query := `INSERT INTO teacher_classes
	          (teacher_id, title, slug, subject, description, modality, duration_minutes,
	           price, start_time, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		class.TeacherID,
		class.Title,
		class.Slug,
		class.Subject,
		class.Description,
		string(class.Modality),
		class.DurationMinutes,
		class.Price,
		class.StartTime,
		class.CreatedAt,
		class.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting class: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading class id: %w", err)
	}
	class.ID = id
	return nil
}

// FindByID retrieves a class with its teacher summary.
// Returns apperror.NotFound if no class exists with this ID.
func (r *classRepository) FindByID(ctx context.Context, id int64) (*TeacherClass, error) {
	rows, err := r.db.QueryContext(ctx, classSelect+` WHERE c.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("querying class by id: %w", err)
	}
	classes, err := scanClasses(rows)
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, apperror.NewNotFound("class not found")
	}
	return &classes[0], nil
}

// Search runs the composed discovery query.
func (r *classRepository) Search(ctx context.Context, preds Predicates, limit int) ([]TeacherClass, error) {
	where, args := preds.SQL()
	query := classSelect + where + classOrder
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching classes: %w", err)
	}
	return scanClasses(rows)
}

// scanClasses reads every row produced by classSelect and closes rows.
func scanClasses(rows *sql.Rows) ([]TeacherClass, error) {
	defer rows.Close()

	classes := []TeacherClass{}
	for rows.Next() {
		var (
			tc                   TeacherClass
			teacherID            sql.NullInt64
			subject, description sql.NullString
			modality             string
			price                sql.NullFloat64
			startTime            sql.NullTime

			ownerID             sql.NullInt64
			ownerName, email    sql.NullString
			city, region        sql.NullString
			modesJSON, langJSON []byte
			hourlyRate          sql.NullFloat64
			headline, bio       sql.NullString
		)
		if err := rows.Scan(
			&tc.ID, &teacherID, &tc.Title, &tc.Slug, &subject, &description,
			&modality, &tc.DurationMinutes, &price, &startTime, &tc.CreatedAt, &tc.UpdatedAt,
			&ownerID, &ownerName, &email,
			&city, &region, &modesJSON, &langJSON, &hourlyRate, &headline, &bio,
		); err != nil {
			return nil, fmt.Errorf("scanning class row: %w", err)
		}

		tc.TeacherID = database.NullInt(teacherID)
		tc.Subject = database.NullString(subject)
		tc.Description = database.NullString(description)
		tc.Modality = Modality(modality)
		tc.Price = database.NullFloat(price)
		if startTime.Valid {
			t := startTime.Time
			tc.StartTime = &t
		}

		tc.Teacher = TeacherSummary{
			ID:         database.NullInt(ownerID),
			Name:       database.NullString(ownerName),
			Email:      database.NullString(email),
			City:       database.NullString(city),
			Region:     database.NullString(region),
			HourlyRate: database.NullFloat(hourlyRate),
			Headline:   database.NullString(headline),
			Bio:        database.NullString(bio),
		}
		var err error
		if tc.Teacher.TeachingModes, err = database.DecodeStringList(modesJSON); err != nil {
			return nil, fmt.Errorf("decoding teaching modes for class %d: %w", tc.ID, err)
		}
		if tc.Teacher.Languages, err = database.DecodeStringList(langJSON); err != nil {
			return nil, fmt.Errorf("decoding languages for class %d: %w", tc.ID, err)
		}

		classes = append(classes, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating class rows: %w", err)
	}
	return classes, nil
}
