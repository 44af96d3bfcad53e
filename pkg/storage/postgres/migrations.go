package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration is a single versioned schema change
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// GetMigrations returns the full schema in apply order
func GetMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create account tables",
			SQL: `
				CREATE TABLE IF NOT EXISTS account (
					id UUID PRIMARY KEY,
					email_address VARCHAR(255) NOT NULL UNIQUE,
					username VARCHAR(255) NOT NULL,
					membership VARCHAR(50),
					created_at TIMESTAMP NOT NULL DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS account_preferences (
					account_id UUID PRIMARY KEY REFERENCES account(id) ON DELETE CASCADE,
					date_format VARCHAR(20) NOT NULL,
					time_format VARCHAR(20) NOT NULL,
					measurement_system VARCHAR(20) NOT NULL
				);

				CREATE TABLE IF NOT EXISTS geography (
					id UUID PRIMARY KEY,
					account_id UUID NOT NULL REFERENCES account(id) ON DELETE CASCADE,
					country VARCHAR(100) NOT NULL,
					region VARCHAR(100) NOT NULL,
					city VARCHAR(100) NOT NULL,
					timezone VARCHAR(64) NOT NULL
				);

				CREATE INDEX IF NOT EXISTS idx_geography_account_id ON geography(account_id);

				CREATE TABLE IF NOT EXISTS agreement (
					id UUID PRIMARY KEY,
					type VARCHAR(50) NOT NULL,
					version VARCHAR(20) NOT NULL,
					content TEXT NOT NULL,
					effective_date DATE NOT NULL,
					UNIQUE(type, version)
				);
			`,
		},
		{
			Version:     2,
			Description: "Create device and wake word tables",
			SQL: `
				CREATE TABLE IF NOT EXISTS device (
					id UUID PRIMARY KEY,
					account_id UUID NOT NULL REFERENCES account(id) ON DELETE CASCADE,
					name VARCHAR(255) NOT NULL,
					platform VARCHAR(100) NOT NULL,
					core_version VARCHAR(50),
					added_at TIMESTAMP NOT NULL DEFAULT NOW()
				);

				CREATE INDEX IF NOT EXISTS idx_device_account_id ON device(account_id);

				CREATE TABLE IF NOT EXISTS wake_word (
					id UUID PRIMARY KEY,
					account_id UUID NOT NULL REFERENCES account(id) ON DELETE CASCADE,
					setting_name VARCHAR(255) NOT NULL,
					engine VARCHAR(100) NOT NULL,
					UNIQUE(account_id, setting_name)
				);

				CREATE TABLE IF NOT EXISTS wake_word_sample (
					wake_word_id UUID NOT NULL REFERENCES wake_word(id) ON DELETE CASCADE,
					account_id UUID NOT NULL REFERENCES account(id) ON DELETE CASCADE,
					audio_file_name VARCHAR(255) NOT NULL,
					audio_file_date DATE NOT NULL,
					directory_group VARCHAR(100),
					UNIQUE(wake_word_id, audio_file_name)
				);

				CREATE INDEX IF NOT EXISTS idx_wake_word_sample_account_id ON wake_word_sample(account_id);

				CREATE TABLE IF NOT EXISTS text_to_speech (
					id UUID PRIMARY KEY,
					setting_name VARCHAR(255) NOT NULL UNIQUE,
					display_name VARCHAR(255) NOT NULL,
					engine VARCHAR(100) NOT NULL
				);
			`,
		},
		{
			Version:     3,
			Description: "Create skill tables",
			SQL: `
				CREATE TABLE IF NOT EXISTS skill (
					id UUID PRIMARY KEY,
					family_name VARCHAR(255) NOT NULL,
					UNIQUE(family_name)
				);

				CREATE TABLE IF NOT EXISTS skill_display (
					id UUID PRIMARY KEY,
					skill_id UUID NOT NULL REFERENCES skill(id) ON DELETE CASCADE,
					name VARCHAR(255) NOT NULL,
					summary TEXT
				);

				CREATE TABLE IF NOT EXISTS device_skill_setting (
					account_id UUID NOT NULL REFERENCES account(id) ON DELETE CASCADE,
					skill_id UUID NOT NULL REFERENCES skill(id) ON DELETE CASCADE,
					devices TEXT[] NOT NULL,
					settings_values JSONB NOT NULL DEFAULT '{}'
				);

				CREATE INDEX IF NOT EXISTS idx_device_skill_setting_account_id ON device_skill_setting(account_id);
			`,
		},
	}
}

// RunMigrations applies any pending migrations in version order.
// Each migration runs in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	rows.Close()

	for _, migration := range GetMigrations() {
		if applied[migration.Version] {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}

		if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, description) VALUES ($1, $2)",
			migration.Version, migration.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
