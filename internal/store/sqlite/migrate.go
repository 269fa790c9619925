package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var migrationFileRe = regexp.MustCompile(`^(\d+)_(.+)\.(up|down)\.sql$`)

// Migration represents a database migration.
type Migration struct {
	Version     int
	Description string
	UpSQL       string
	DownSQL     string
}

// MigrationRecord represents a record in the schema_migrations table.
type MigrationRecord struct {
	Version     int
	AppliedAt   time.Time
	Description string
}

// Migrator handles database migrations.
type Migrator struct {
	db *sql.DB
	fs fs.FS
}

// NewMigrator creates a new migration handler over the embedded migrations.
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db, fs: migrationsFS}
}

// LoadMigrations loads all migrations from the embedded filesystem.
func (m *Migrator) LoadMigrations() ([]Migration, error) {
	migrations := make(map[int]*Migration)

	err := fs.WalkDir(m.fs, "migrations", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		// 001_description.up.sql or 001_description.down.sql
		matches := migrationFileRe.FindStringSubmatch(path.Base(p))
		if len(matches) != 4 {
			return nil
		}

		version, _ := strconv.Atoi(matches[1])
		description := strings.ReplaceAll(matches[2], "_", " ")
		direction := matches[3]

		content, err := fs.ReadFile(m.fs, p)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", p, err)
		}

		if _, exists := migrations[version]; !exists {
			migrations[version] = &Migration{
				Version:     version,
				Description: description,
			}
		}

		if direction == "up" {
			migrations[version].UpSQL = string(content)
		} else {
			migrations[version].DownSQL = string(content)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking migrations: %w", err)
	}

	result := make([]Migration, 0, len(migrations))
	for _, mig := range migrations {
		result = append(result, *mig)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})

	return result, nil
}

func (m *Migrator) ensureTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			applied_at  INTEGER NOT NULL,
			description TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	return nil
}

// CurrentVersion returns the current schema version.
func (m *Migrator) CurrentVersion() (int, error) {
	var tableName string

	err := m.db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='schema_migrations'
	`).Scan(&tableName)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("checking schema_migrations table: %w", err)
	}

	var version int

	err = m.db.QueryRow(`
		SELECT COALESCE(MAX(version), 0) FROM schema_migrations
	`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}

	return version, nil
}

// AppliedMigrations returns all applied migrations.
func (m *Migrator) AppliedMigrations() ([]MigrationRecord, error) {
	currentVersion, err := m.CurrentVersion()
	if err != nil {
		return nil, err
	}

	if currentVersion == 0 {
		return nil, nil
	}

	rows, err := m.db.Query(`
		SELECT version, applied_at, COALESCE(description, '') as description
		FROM schema_migrations
		ORDER BY version ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close()

	var records []MigrationRecord

	for rows.Next() {
		var (
			rec     MigrationRecord
			applied int64
		)

		if err := rows.Scan(&rec.Version, &applied, &rec.Description); err != nil {
			return nil, fmt.Errorf("scanning migration record: %w", err)
		}

		rec.AppliedAt = time.Unix(applied, 0)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// MigrateUp applies all pending migrations.
func (m *Migrator) MigrateUp() error {
	if err := m.ensureTable(); err != nil {
		return err
	}

	migrations, err := m.LoadMigrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	currentVersion, err := m.CurrentVersion()
	if err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	for _, mig := range migrations {
		if mig.Version <= currentVersion {
			continue
		}

		if mig.UpSQL == "" {
			return fmt.Errorf("migration %d has no up SQL", mig.Version)
		}

		if err := m.apply(mig); err != nil {
			return fmt.Errorf("applying migration %d (%s): %w", mig.Version, mig.Description, err)
		}
	}

	return nil
}

// MigrateDown rolls back the last migration.
func (m *Migrator) MigrateDown() error {
	currentVersion, err := m.CurrentVersion()
	if err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	if currentVersion == 0 {
		return fmt.Errorf("no migrations to rollback")
	}

	return m.MigrateTo(currentVersion - 1)
}

// MigrateTo migrates to a specific version.
func (m *Migrator) MigrateTo(targetVersion int) error {
	if err := m.ensureTable(); err != nil {
		return err
	}

	currentVersion, err := m.CurrentVersion()
	if err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	if targetVersion == currentVersion {
		return nil
	}

	migrations, err := m.LoadMigrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	if targetVersion > currentVersion {
		for _, mig := range migrations {
			if mig.Version <= currentVersion || mig.Version > targetVersion {
				continue
			}

			if mig.UpSQL == "" {
				return fmt.Errorf("migration %d has no up SQL", mig.Version)
			}

			if err := m.apply(mig); err != nil {
				return fmt.Errorf("applying migration %d: %w", mig.Version, err)
			}
		}

		return nil
	}

	// Reverse order for rollback
	for i := len(migrations) - 1; i >= 0; i-- {
		mig := migrations[i]
		if mig.Version <= targetVersion || mig.Version > currentVersion {
			continue
		}

		if mig.DownSQL == "" {
			return fmt.Errorf("migration %d has no down SQL", mig.Version)
		}

		if err := m.revert(mig); err != nil {
			return fmt.Errorf("rolling back migration %d: %w", mig.Version, err)
		}
	}

	return nil
}

// PendingMigrations returns migrations that have not been applied.
func (m *Migrator) PendingMigrations() ([]Migration, error) {
	migrations, err := m.LoadMigrations()
	if err != nil {
		return nil, err
	}

	currentVersion, err := m.CurrentVersion()
	if err != nil {
		return nil, err
	}

	var pending []Migration

	for _, mig := range migrations {
		if mig.Version > currentVersion {
			pending = append(pending, mig)
		}
	}

	return pending, nil
}

func (m *Migrator) apply(mig Migration) error {
	return m.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(mig.UpSQL); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}

		_, err := tx.Exec(
			`INSERT INTO schema_migrations (version, applied_at, description) VALUES (?, ?, ?)`,
			mig.Version, time.Now().Unix(), mig.Description,
		)

		return err
	})
}

func (m *Migrator) revert(mig Migration) error {
	return m.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(mig.DownSQL); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}

		_, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = ?`, mig.Version)

		return err
	})
}

// inTx runs fn inside a transaction, committing only if fn succeeds.
func (m *Migrator) inTx(fn func(tx *sql.Tx) error) (err error) {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
