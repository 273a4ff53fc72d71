package suggestions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/catalog"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/sanitize"
)

// SuggestionService defines the business logic contract for drafts.
type SuggestionService interface {
	ClassDescription(ctx context.Context, caller *auth.Identity, input ClassDescriptionInput) (*Suggestion, error)
}

// suggestionService implements SuggestionService. generator may be nil.
type suggestionService struct {
	generator TextGenerator
}

// NewSuggestionService creates a new suggestion service. A nil generator
// makes every call fail with 503.
func NewSuggestionService(generator TextGenerator) SuggestionService {
	return &suggestionService{generator: generator}
}

// ClassDescription drafts a short class description for the calling teacher.
func (s *suggestionService) ClassDescription(ctx context.Context, caller *auth.Identity, input ClassDescriptionInput) (*Suggestion, error) {
	if err := auth.RequireRole(caller, auth.RoleTeacher, "request suggestions"); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, apperror.NewUnavailable("suggestions are not configured")
	}

	title := sanitize.Text(input.Title)
	if title == "" {
		return nil, apperror.NewValidation("title is required")
	}

	prompt := classDescriptionPrompt(title, sanitize.OptionalText(input.Subject), input.Modality)
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("suggestion generation failed",
			slog.Int64("teacher_id", caller.ID),
			slog.Any("error", err),
		)
		return nil, apperror.NewInternal(fmt.Errorf("generating class description: %w", err))
	}

	return &Suggestion{Text: sanitize.Text(text)}, nil
}

// classDescriptionPrompt builds the model prompt. The modality is coerced
// the same way class creation coerces it.
func classDescriptionPrompt(title string, subject, modality *string) string {
	var sb strings.Builder
	sb.WriteString("Write a friendly description of at most 80 words for a private class ")
	sb.WriteString("offered on a tutoring marketplace. Plain text only, no markdown, no headings.\n")
	fmt.Fprintf(&sb, "Title: %s\n", title)
	if subject != nil {
		fmt.Fprintf(&sb, "Subject: %s\n", *subject)
	}
	m := catalog.DefaultModality
	if modality != nil {
		m = catalog.NormalizeModality(*modality)
	}
	fmt.Fprintf(&sb, "Modality: %s\n", m)
	return sb.String()
}
