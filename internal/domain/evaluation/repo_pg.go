package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the Postgres-backed evaluation repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const evalCols = `id, person_name, person_age, person_sex, measurements, notes, created_at, updated_at`

func scanEvaluation(row pgx.Row) (*Evaluation, error) {
	var ev Evaluation
	var measurements []byte
	err := row.Scan(&ev.ID, &ev.PersonName, &ev.PersonAge, &ev.PersonSex,
		&measurements, &ev.Notes, &ev.CreatedAt, &ev.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ev.Measurements = make(map[string]Measurement)
	if len(measurements) > 0 {
		if err := json.Unmarshal(measurements, &ev.Measurements); err != nil {
			return nil, fmt.Errorf("decode measurements: %w", err)
		}
	}
	return &ev, nil
}

func (r *repoPG) Create(ctx context.Context, ev *Evaluation) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	measurements, err := json.Marshal(ev.Measurements)
	if err != nil {
		return fmt.Errorf("encode measurements: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO evaluations (id, person_name, person_age, person_sex, measurements, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		ev.ID, ev.PersonName, ev.PersonAge, ev.PersonSex, measurements, ev.Notes, ev.CreatedAt, ev.UpdatedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	return scanEvaluation(r.pool.QueryRow(ctx,
		`SELECT `+evalCols+` FROM evaluations WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, ev *Evaluation) error {
	ev.UpdatedAt = time.Now().UTC()
	measurements, err := json.Marshal(ev.Measurements)
	if err != nil {
		return fmt.Errorf("encode measurements: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE evaluations
		SET person_name = $2, person_age = $3, person_sex = $4, measurements = $5, notes = $6, updated_at = $7
		WHERE id = $1`,
		ev.ID, ev.PersonName, ev.PersonAge, ev.PersonSex, measurements, ev.Notes, ev.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Summary, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, person_name, person_age, person_sex,
			(SELECT COUNT(*) FROM jsonb_object_keys(measurements)) AS measurement_count,
			updated_at
		FROM evaluations
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.PersonName, &s.PersonAge, &s.PersonSex, &s.MeasurementCount, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}
