package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/sanitize"
)

// CatalogService defines the business logic contract for the class catalog.
// Handlers call these methods -- they never touch the repository directly.
type CatalogService interface {
	// Search is public discovery. Absent filters impose no constraint.
	Search(ctx context.Context, filter Filter) ([]TeacherClass, error)

	// CreateClass publishes a class owned by the calling teacher.
	CreateClass(ctx context.Context, caller *auth.Identity, input CreateClassInput) (*TeacherClass, error)

	// ListOwnClasses returns every class of the calling teacher.
	ListOwnClasses(ctx context.Context, caller *auth.Identity) ([]TeacherClass, error)
}

// catalogService implements CatalogService.
type catalogService struct {
	repo ClassRepository
	now  func() time.Time
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo ClassRepository) CatalogService {
	return &catalogService{repo: repo, now: time.Now}
}

// Search clamps the page size and runs the composed query.
func (s *catalogService) Search(ctx context.Context, filter Filter) ([]TeacherClass, error) {
	classes, err := s.repo.Search(ctx, FilterPredicates(filter), ClampTake(filter.Take))
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("searching catalog: %w", err))
	}
	return classes, nil
}

// CreateClass normalizes the input and persists it. Modality and duration
// never fail: they are coerced. Title, price and start time can.
func (s *catalogService) CreateClass(ctx context.Context, caller *auth.Identity, input CreateClassInput) (*TeacherClass, error) {
	if err := auth.RequireRole(caller, auth.RoleTeacher, "create classes"); err != nil {
		return nil, err
	}

	title := sanitize.Text(input.Title)
	if title == "" {
		return nil, apperror.NewValidation("title is required")
	}

	price, err := ParseAmount(input.Price, "price")
	if err != nil {
		return nil, err
	}

	var startTime *time.Time
	if input.StartTime != nil && strings.TrimSpace(*input.StartTime) != "" {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*input.StartTime))
		if err != nil {
			return nil, apperror.NewValidation("startTime must be an ISO-8601 timestamp")
		}
		t = t.UTC()
		startTime = &t
	}

	// MySQL DATETIME(6) keeps microseconds; truncate so the returned value
	// matches what is stored.
	now := s.now().UTC().Truncate(time.Microsecond)
	teacherID := caller.ID

	class := &TeacherClass{
		TeacherID:       &teacherID,
		Title:           title,
		Slug:            ClassSlug(title),
		Subject:         sanitize.OptionalText(input.Subject),
		Description:     sanitize.OptionalText(input.Description),
		Modality:        NormalizeModality(input.Modality),
		DurationMinutes: NormalizeDuration(input.DurationMinutes),
		Price:           price,
		StartTime:       startTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, class); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating class: %w", err))
	}

	slog.Info("class created",
		slog.Int64("class_id", class.ID),
		slog.Int64("teacher_id", teacherID),
		slog.String("modality", string(class.Modality)),
	)

	created, err := s.repo.FindByID(ctx, class.ID)
	if err != nil {
		// The row is committed; fall back to what we wrote.
		slog.Warn("reloading created class",
			slog.Int64("class_id", class.ID),
			slog.Any("error", err),
		)
		return class, nil
	}
	return created, nil
}

// ListOwnClasses is unbounded: a teacher's own list is not paginated.
func (s *catalogService) ListOwnClasses(ctx context.Context, caller *auth.Identity) ([]TeacherClass, error) {
	if err := auth.RequireRole(caller, auth.RoleTeacher, "list their classes"); err != nil {
		return nil, err
	}
	classes, err := s.repo.Search(ctx, FilterPredicates(Filter{TeacherID: caller.ID}), 0)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing classes for teacher %d: %w", caller.ID, err))
	}
	return classes, nil
}
