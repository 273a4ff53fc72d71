package accounts

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/catalog"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/sanitize"
)

// invalidCredentials is returned for every failed login so callers cannot
// tell which check failed.
const invalidCredentials = "invalid email or password"

// PasswordHasher hashes and verifies passwords. auth.Argon2Hasher
// satisfies it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
}

// TokenIssuer issues session tokens. *auth.TokenService satisfies it.
type TokenIssuer interface {
	Issue(id int64, role auth.Role) (string, time.Time, error)
}

// AccountService defines the business logic contract for the directory.
// Handlers call these methods -- they never touch the repository directly.
type AccountService interface {
	RegisterStudent(ctx context.Context, input RegisterInput) (*PublicAccount, error)
	RegisterTeacher(ctx context.Context, input RegisterTeacherInput) (*PublicAccount, error)
	Authenticate(ctx context.Context, input LoginInput, role auth.Role) (*LoginResult, error)
	List(ctx context.Context, role auth.Role) ([]PublicAccount, error)
	Get(ctx context.Context, id int64, role auth.Role) (*PublicAccount, error)
}

// accountService implements AccountService.
type accountService struct {
	repo   AccountRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

// NewAccountService creates a new account service with the given dependencies.
func NewAccountService(repo AccountRepository, hasher PasswordHasher, tokens TokenIssuer) AccountService {
	return &accountService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// RegisterStudent creates a student account. Email uniqueness is left to
// the database so concurrent registrations cannot both succeed.
func (s *accountService) RegisterStudent(ctx context.Context, input RegisterInput) (*PublicAccount, error) {
	account, err := s.newAccount(input, auth.RoleStudent)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, storageError("creating student", err)
	}

	slog.Info("account registered",
		slog.Int64("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)

	pub := account.Public()
	return &pub, nil
}

// RegisterTeacher creates a teacher account together with its profile.
func (s *accountService) RegisterTeacher(ctx context.Context, input RegisterTeacherInput) (*PublicAccount, error) {
	profile, err := normalizeProfile(input.Profile)
	if err != nil {
		return nil, err
	}

	account, err := s.newAccount(input.RegisterInput, auth.RoleTeacher)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateWithProfile(ctx, account, profile); err != nil {
		return nil, storageError("creating teacher", err)
	}

	slog.Info("account registered",
		slog.Int64("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)

	pub := account.Public()
	pub.Profile = profile
	return &pub, nil
}

// Authenticate looks the account up by email and role, verifies the
// password and issues a token for that role.
func (s *accountService) Authenticate(ctx context.Context, input LoginInput, role auth.Role) (*LoginResult, error) {
	if !role.Valid() {
		return nil, apperror.NewBadRequest("unknown account type")
	}

	email := normalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperror.NewValidation("email and password are required")
	}

	account, err := s.repo.FindByEmail(ctx, email, role)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthenticated(apperror.ReasonInvalidCredentials, invalidCredentials)
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding account: %w", err))
	}

	if !s.hasher.Verify(input.Password, account.PasswordHash) {
		return nil, apperror.NewUnauthenticated(apperror.ReasonInvalidCredentials, invalidCredentials)
	}

	token, expiresAt, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	slog.Info("account logged in",
		slog.Int64("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account.Public(),
	}, nil
}

// List returns every account of role. An empty directory is a 404.
func (s *accountService) List(ctx context.Context, role auth.Role) ([]PublicAccount, error) {
	list, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing %ss: %w", role, err))
	}
	if len(list) == 0 {
		return nil, apperror.NewNotFound(fmt.Sprintf("no %ss found", role))
	}
	return list, nil
}

// Get returns one account of role.
func (s *accountService) Get(ctx context.Context, id int64, role auth.Role) (*PublicAccount, error) {
	if id <= 0 {
		return nil, apperror.NewNotFound(fmt.Sprintf("%s not found", role))
	}
	account, err := s.repo.FindByID(ctx, id, role)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound(fmt.Sprintf("%s not found", role))
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding %s %d: %w", role, id, err))
	}
	return account, nil
}

// newAccount validates the identity fields and hashes the password.
func (s *accountService) newAccount(input RegisterInput, role auth.Role) (*Account, error) {
	name := sanitize.Text(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperror.NewValidation("name, email and password are required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, apperror.NewValidation("email is not a valid address")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	return &Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC().Truncate(time.Second),
	}, nil
}

// normalizeProfile cleans the optional teacher profile fields.
func normalizeProfile(in ProfileInput) (*TeacherProfile, error) {
	rate, err := catalog.ParseAmount(in.HourlyRate, "hourlyRate")
	if err != nil {
		return nil, err
	}

	return &TeacherProfile{
		Phone:         sanitize.OptionalText(in.Phone),
		City:          sanitize.OptionalText(in.City),
		Region:        sanitize.OptionalText(in.Region),
		TeachingModes: catalog.NormalizeModalities(in.TeachingModes),
		Languages:     normalizeLanguages(in.Languages),
		HourlyRate:    rate,
		Headline:      sanitize.OptionalText(in.Headline),
		Bio:           sanitize.OptionalText(in.Bio),
		Experience:    sanitize.OptionalText(in.Experience),
	}, nil
}

// normalizeLanguages trims entries and drops blanks and case-insensitive
// duplicates, keeping the first spelling.
func normalizeLanguages(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, l := range in {
		l = sanitize.Text(l)
		key := strings.ToLower(l)
		if l == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// storageError passes Conflict errors through and hides everything else.
func storageError(action string, err error) error {
	if apperror.IsType(err, "conflict") {
		return err
	}
	return apperror.NewInternal(fmt.Errorf("%s: %w", action, err))
}
