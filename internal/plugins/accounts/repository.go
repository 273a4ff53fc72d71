package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/database"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY, raised by the accounts.email UNIQUE key.
const mysqlDuplicateEntry = 1062

// AccountRepository defines the data access contract for accounts.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type AccountRepository interface {
	// Create inserts an account and sets its ID. A taken email yields an
	// apperror.Conflict.
	Create(ctx context.Context, account *Account) error

	// CreateWithProfile inserts a teacher account and its profile in one
	// transaction. Either both rows exist afterwards or neither does.
	CreateWithProfile(ctx context.Context, account *Account, profile *TeacherProfile) error

	// FindByEmail returns the account with the given email and role,
	// including its password hash.
	FindByEmail(ctx context.Context, email string, role auth.Role) (*Account, error)

	FindByID(ctx context.Context, id int64, role auth.Role) (*PublicAccount, error)
	ListByRole(ctx context.Context, role auth.Role) ([]PublicAccount, error)
}

// accountRepository implements AccountRepository with hand-written MySQL queries.
type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository backed by the given DB pool.
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertAccount(ctx context.Context, db execer, a *Account) error {
	result, err := db.ExecContext(ctx,
		`INSERT INTO accounts (name, email, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.Name, a.Email, a.PasswordHash, string(a.Role), a.CreatedAt, a.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("an account with this email already exists")
		}
		return fmt.Errorf("inserting account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading account id: %w", err)
	}
	a.ID = id
	return nil
}

// Create inserts a single account row.
func (r *accountRepository) Create(ctx context.Context, account *Account) error {
	return insertAccount(ctx, r.db, account)
}

// CreateWithProfile inserts the account and profile rows in one transaction.
func (r *accountRepository) CreateWithProfile(ctx context.Context, account *Account, profile *TeacherProfile) error {
	modes, err := database.EncodeStringList(profile.TeachingModes)
	if err != nil {
		return fmt.Errorf("marshaling teaching modes: %w", err)
	}
	langs, err := database.EncodeStringList(profile.Languages)
	if err != nil {
		return fmt.Errorf("marshaling languages: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning registration tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertAccount(ctx, tx, account); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO teacher_profiles
		 (account_id, phone, city, region, teaching_modes, languages, hourly_rate,
		  headline, bio, experience, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID, profile.Phone, profile.City, profile.Region, modes, langs,
		profile.HourlyRate, profile.Headline, profile.Bio, profile.Experience,
		account.CreatedAt, account.CreatedAt,
	); err != nil {
		return fmt.Errorf("inserting teacher profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing registration tx: %w", err)
	}
	return nil
}

// FindByEmail retrieves an account for login.
// Returns apperror.NotFound if no account matches both email and role.
func (r *accountRepository) FindByEmail(ctx context.Context, email string, role auth.Role) (*Account, error) {
	var (
		a       Account
		roleStr string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM accounts WHERE email = ? AND role = ?`,
		email, string(role),
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &roleStr, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying account by email: %w", err)
	}

	if a.Role, err = auth.ParseRole(roleStr); err != nil {
		return nil, fmt.Errorf("account %d: %w", a.ID, err)
	}
	return &a, nil
}

// publicSelect reads accounts with their optional teacher profile.
const publicSelect = `SELECT a.id, a.name, a.email, a.role, a.created_at,
	       p.account_id, p.phone, p.city, p.region, p.teaching_modes, p.languages,
	       p.hourly_rate, p.headline, p.bio, p.experience
	FROM accounts a
	LEFT JOIN teacher_profiles p ON p.account_id = a.id`

// FindByID retrieves a public account by id and role.
// Returns apperror.NotFound if no account matches both.
func (r *accountRepository) FindByID(ctx context.Context, id int64, role auth.Role) (*PublicAccount, error) {
	rows, err := r.db.QueryContext(ctx, publicSelect+` WHERE a.id = ? AND a.role = ?`, id, string(role))
	if err != nil {
		return nil, fmt.Errorf("querying account by id: %w", err)
	}
	list, err := scanPublicAccounts(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, apperror.NewNotFound("account not found")
	}
	return &list[0], nil
}

// ListByRole returns every account of role, oldest first.
func (r *accountRepository) ListByRole(ctx context.Context, role auth.Role) ([]PublicAccount, error) {
	rows, err := r.db.QueryContext(ctx, publicSelect+` WHERE a.role = ? ORDER BY a.id`, string(role))
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return scanPublicAccounts(rows)
}

// scanPublicAccounts reads rows produced by publicSelect and closes rows.
func scanPublicAccounts(rows *sql.Rows) ([]PublicAccount, error) {
	defer rows.Close()

	var out []PublicAccount
	for rows.Next() {
		var (
			a                   PublicAccount
			roleStr             string
			profileID           sql.NullInt64
			phone, city, region sql.NullString
			modesJSON, langJSON []byte
			hourlyRate          sql.NullFloat64
			headline, bio, exp  sql.NullString
		)
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &roleStr, &a.CreatedAt,
			&profileID, &phone, &city, &region, &modesJSON, &langJSON,
			&hourlyRate, &headline, &bio, &exp,
		); err != nil {
			return nil, fmt.Errorf("scanning account row: %w", err)
		}

		role, err := auth.ParseRole(roleStr)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", a.ID, err)
		}
		a.Role = role

		if profileID.Valid {
			p := &TeacherProfile{
				Phone:      database.NullString(phone),
				City:       database.NullString(city),
				Region:     database.NullString(region),
				HourlyRate: database.NullFloat(hourlyRate),
				Headline:   database.NullString(headline),
				Bio:        database.NullString(bio),
				Experience: database.NullString(exp),
			}
			if p.TeachingModes, err = database.DecodeStringList(modesJSON); err != nil {
				return nil, fmt.Errorf("decoding teaching modes for account %d: %w", a.ID, err)
			}
			if p.Languages, err = database.DecodeStringList(langJSON); err != nil {
				return nil, fmt.Errorf("decoding languages for account %d: %w", a.ID, err)
			}
			a.Profile = p
		}

		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}
	return out, nil
}

// isDuplicateEntry reports whether err is a MySQL unique key violation.
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
