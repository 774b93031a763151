package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db Database
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(db Database) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the events table when it does not exist
func (s *PostgresStore) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			disaster_type TEXT NOT NULL,
			severity TEXT NOT NULL,
			location TEXT,
			published_at TIMESTAMPTZ NOT NULL,
			urls TEXT[],
			text TEXT,
			article_count INT NOT NULL DEFAULT 1,
			population_density DOUBLE PRECISION NOT NULL DEFAULT 0,
			infrastructure_damage TEXT NOT NULL DEFAULT '',
			accessibility TEXT NOT NULL DEFAULT '',
			time_since_disaster DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("migrate events table: %w", err)
	}
	return nil
}

// UpsertEvents inserts or updates events in the database
func (s *PostgresStore) UpsertEvents(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO events (
			id, disaster_type, severity, location, published_at, urls, text,
			article_count, population_density, infrastructure_damage,
			accessibility, time_since_disaster, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now()
		)
		ON CONFLICT (id) DO UPDATE SET
			disaster_type = EXCLUDED.disaster_type,
			severity = EXCLUDED.severity,
			location = EXCLUDED.location,
			published_at = EXCLUDED.published_at,
			urls = EXCLUDED.urls,
			text = EXCLUDED.text,
			article_count = EXCLUDED.article_count,
			population_density = EXCLUDED.population_density,
			infrastructure_damage = EXCLUDED.infrastructure_damage,
			accessibility = EXCLUDED.accessibility,
			time_since_disaster = EXCLUDED.time_since_disaster,
			updated_at = now()
	`

	for _, event := range events {
		err := s.db.Exec(ctx, query,
			event.ID, event.DisasterType, event.Severity, event.Location,
			event.PublishedAt, event.URLs, event.Text, event.ArticleCount,
			event.PopulationDensity, event.InfrastructureDamage,
			event.Accessibility, event.TimeSinceDisaster,
		)
		if err != nil {
			return fmt.Errorf("upsert event %s: %w", event.ID, err)
		}
	}

	return nil
}

// QueryEvents retrieves events based on query parameters
func (s *PostgresStore) QueryEvents(ctx context.Context, q models.EventQuery) ([]models.Event, error) {
	query := `
		SELECT id, disaster_type, severity, location, published_at, urls, text,
			   article_count, population_density, infrastructure_damage,
			   accessibility, time_since_disaster, created_at, updated_at
		FROM events
		WHERE 1=1
	`

	var args []interface{}
	argIndex := 1

	if len(q.IDs) > 0 {
		query += fmt.Sprintf(" AND id = ANY($%d)", argIndex)
		args = append(args, q.IDs)
		argIndex++
	}

	if len(q.Types) > 0 {
		query += fmt.Sprintf(" AND disaster_type = ANY($%d)", argIndex)
		args = append(args, q.Types)
		argIndex++
	}

	if len(q.Severities) > 0 {
		query += fmt.Sprintf(" AND severity = ANY($%d)", argIndex)
		args = append(args, q.Severities)
		argIndex++
	}

	if len(q.Locations) > 0 {
		query += fmt.Sprintf(" AND location = ANY($%d)", argIndex)
		args = append(args, q.Locations)
		argIndex++
	}

	if !q.Since.IsZero() {
		query += fmt.Sprintf(" AND published_at >= $%d", argIndex)
		args = append(args, q.Since)
		argIndex++
	}

	if !q.Until.IsZero() {
		query += fmt.Sprintf(" AND published_at <= $%d", argIndex)
		args = append(args, q.Until)
		argIndex++
	}

	query += " ORDER BY published_at DESC"

	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, q.Limit)
		argIndex++
	}

	if q.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, q.Offset)
	}

	rowsInterface, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	rows, ok := rowsInterface.(pgx.Rows)
	if !ok {
		return nil, fmt.Errorf("invalid rows type")
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID, &event.DisasterType, &event.Severity, &event.Location,
			&event.PublishedAt, &event.URLs, &event.Text, &event.ArticleCount,
			&event.PopulationDensity, &event.InfrastructureDamage,
			&event.Accessibility, &event.TimeSinceDisaster,
			&event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// GetEvent retrieves a single event by ID. Missing events return nil
// without error.
func (s *PostgresStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, disaster_type, severity, location, published_at, urls, text,
			   article_count, population_density, infrastructure_damage,
			   accessibility, time_since_disaster, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	rowInterface := s.db.QueryRow(ctx, query, id)
	row, ok := rowInterface.(pgx.Row)
	if !ok {
		return nil, fmt.Errorf("invalid row type")
	}

	var event models.Event
	err := row.Scan(
		&event.ID, &event.DisasterType, &event.Severity, &event.Location,
		&event.PublishedAt, &event.URLs, &event.Text, &event.ArticleCount,
		&event.PopulationDensity, &event.InfrastructureDamage,
		&event.Accessibility, &event.TimeSinceDisaster,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	return &event, nil
}

// Health checks the database connection
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.Health(ctx)
}
