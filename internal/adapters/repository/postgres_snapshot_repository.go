package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.SnapshotRepository = (*PostgresSnapshotRepository)(nil)

// PostgresSnapshotRepository persists the last known-good catalog so a cold
// start with the content source down serves real data. Save replaces the
// snapshot wholesale inside a transaction.
type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// EnsureSchema creates the snapshot table when missing.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS habit_snapshots (
            id                        TEXT PRIMARY KEY,
            goal_category             TEXT NOT NULL,
            effectiveness_score       DOUBLE PRECISION NOT NULL,
            effectiveness_rank        INTEGER NOT NULL,
            is_primary_recommendation BOOLEAN NOT NULL DEFAULT FALSE,
            difficulty                TEXT NOT NULL,
            time_minutes              INTEGER NOT NULL,
            goal_tags                 TEXT[] NOT NULL DEFAULT '{}',
            translations              JSONB NOT NULL,
            saved_at                  TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure habit_snapshots schema: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, records []*domain.HabitRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to open snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM habit_snapshots`); err != nil {
		return fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	query := `
        INSERT INTO habit_snapshots (
            id, goal_category, effectiveness_score, effectiveness_rank,
            is_primary_recommendation, difficulty, time_minutes,
            goal_tags, translations, saved_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`

	for _, rec := range records {
		translationsJSON, err := json.Marshal(rec.Translations)
		if err != nil {
			return fmt.Errorf("failed to marshal translations for %s: %w", rec.ID, err)
		}

		_, err = tx.ExecContext(ctx, query,
			rec.ID, rec.GoalCategory, rec.EffectivenessScore, rec.EffectivenessRank,
			rec.IsPrimaryRecommendation, rec.Difficulty, rec.TimeMinutes,
			pq.Array(rec.GoalTags), translationsJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresSnapshotRepository) scanRow(row scannable) (*domain.HabitRecord, error) {
	var rec domain.HabitRecord
	var tags pq.StringArray
	var translationsJSON []byte

	err := row.Scan(
		&rec.ID, &rec.GoalCategory, &rec.EffectivenessScore, &rec.EffectivenessRank,
		&rec.IsPrimaryRecommendation, &rec.Difficulty, &rec.TimeMinutes,
		&tags, &translationsJSON,
	)
	if err != nil {
		return nil, err
	}

	rec.GoalTags = []string(tags)
	if err := json.Unmarshal(translationsJSON, &rec.Translations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal translations for %s: %w", rec.ID, err)
	}

	return &rec, nil
}

func (r *PostgresSnapshotRepository) Load(ctx context.Context) ([]*domain.HabitRecord, error) {
	query := `
        SELECT id, goal_category, effectiveness_score, effectiveness_rank,
               is_primary_recommendation, difficulty, time_minutes,
               goal_tags, translations
        FROM habit_snapshots
        ORDER BY goal_category, effectiveness_rank`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var records []*domain.HabitRecord
	for rows.Next() {
		rec, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("snapshot scan error: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot rows error: %w", err)
	}

	if len(records) == 0 {
		return nil, domain.ErrSnapshotEmpty
	}
	return records, nil
}
