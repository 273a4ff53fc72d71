// This file validates migration SQL files to catch schema mismatches early.
package database

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
)

// classModalities must match the ENUM on teacher_classes.modality and the
// catalog package's accepted modalities.
var classModalities = []string{"home", "hybrid", "online", "presencial", "travel"}

// slugColumnSize must match teacher_classes.slug and catalog.MaxSlugLength.
const slugColumnSize = "220"

// accountRoles must match the ENUM on accounts.role.
var accountRoles = []string{"student", "teacher"}

// migrationsDir returns the absolute path to db/migrations/ from the project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	// thisFile is internal/database/migrate_test.go, project root is two dirs up.
	projectRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")
	dir := filepath.Join(projectRoot, "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

// enumValues extracts the quoted members of `column ENUM(...)` from all up
// migrations, sorted.
func enumValues(t *testing.T, column string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(migrationsDir(t), "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no migration files found")
	}

	defRe := regexp.MustCompile(`(?i)\b` + column + `\s+ENUM\s*\(([^)]*)\)`)
	valRe := regexp.MustCompile(`'([^']+)'`)

	var out []string
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		for _, def := range defRe.FindAllStringSubmatch(string(data), -1) {
			for _, v := range valRe.FindAllStringSubmatch(def[1], -1) {
				out = append(out, v[1])
			}
		}
	}
	sort.Strings(out)
	return out
}

func TestMigrations_ModalityEnum(t *testing.T) {
	got := enumValues(t, "modality")
	if strings.Join(got, ",") != strings.Join(classModalities, ",") {
		t.Errorf("teacher_classes.modality ENUM = %v, want %v", got, classModalities)
	}
}

func TestMigrations_RoleEnum(t *testing.T) {
	got := enumValues(t, "role")
	if strings.Join(got, ",") != strings.Join(accountRoles, ",") {
		t.Errorf("accounts.role ENUM = %v, want %v", got, accountRoles)
	}
}

// TestMigrations_NoBookingUniqueness guards the documented behavior that the
// same student may book the same teacher at the same instant more than once.
func TestMigrations_NoBookingUniqueness(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(migrationsDir(t), "000004_create_schedules.up.sql"))
	if err != nil {
		t.Fatalf("reading schedules migration: %v", err)
	}
	if strings.Contains(strings.ToUpper(string(data)), "UNIQUE") {
		t.Error("schedules must not carry a unique constraint")
	}
}

// TestMigrations_UpDownPairs ensures every .up.sql has a matching .down.sql.
func TestMigrations_UpDownPairs(t *testing.T) {
	dir := migrationsDir(t)
	upFiles, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing up files: %v", err)
	}

	for _, up := range upFiles {
		down := strings.Replace(up, ".up.sql", ".down.sql", 1)
		if _, err := os.Stat(down); err != nil {
			t.Errorf("missing down migration for %s", filepath.Base(up))
		}
	}
}

// readUpMigrations concatenates every up migration.
func readUpMigrations(t *testing.T) string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(migrationsDir(t), "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	var sb strings.Builder
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		sb.Write(data)
	}
	return sb.String()
}

// Class slugs are truncated and money amounts bounded in the catalog
// package against these exact column types.
func TestMigrations_ColumnSizes(t *testing.T) {
	sqlText := readUpMigrations(t)

	m := regexp.MustCompile(`(?i)\bslug\s+VARCHAR\((\d+)\)`).FindStringSubmatch(sqlText)
	if m == nil || m[1] != slugColumnSize {
		t.Errorf("teacher_classes.slug size = %v, want %s", m, slugColumnSize)
	}

	for _, column := range []string{"price", "hourly_rate"} {
		re := regexp.MustCompile(`(?i)\b` + column + `\s+DECIMAL\((\d+),\s*(\d+)\)`)
		m := re.FindStringSubmatch(sqlText)
		if m == nil || m[1] != "10" || m[2] != "2" {
			t.Errorf("%s must be DECIMAL(10,2), got %v", column, m)
		}
	}
}

func TestSchemaVersion(t *testing.T) {
	if v, err := schemaVersion(0, false, migrate.ErrNilVersion); err != nil || v != 0 {
		t.Errorf("empty database: got %d, %v", v, err)
	}
	if v, err := schemaVersion(4, false, nil); err != nil || v != 4 {
		t.Errorf("clean version: got %d, %v", v, err)
	}
	if _, err := schemaVersion(3, true, nil); !errors.Is(err, ErrDirtySchema) {
		t.Errorf("expected ErrDirtySchema, got %v", err)
	}
	if _, err := schemaVersion(0, false, errors.New("connection reset")); err == nil || errors.Is(err, ErrDirtySchema) {
		t.Errorf("expected a read error, got %v", err)
	}
}
