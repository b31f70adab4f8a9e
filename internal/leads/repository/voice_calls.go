package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CallOutcomeParams is a completed call as reported by the voice provider.
type CallOutcomeParams struct {
	LeadID          uuid.UUID
	CallID          string
	Transcript      string
	Analysis        map[string]any
	DurationSeconds int
	Qualification   string
	Attributes      map[string]any
}

func (r *Repo) ClaimVoiceCall(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.pool.Exec(ctx, `
		UPDATE leads
		SET voice_call_status = 'initiated', voice_call_updated_at = now(), updated_at = now()
		WHERE id = $1 AND voice_call_status = 'none'`, id)
	if err != nil {
		return false, fmt.Errorf("claim voice call: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *Repo) SetVoiceCall(ctx context.Context, id uuid.UUID, status, callID string) (Lead, error) {
	query := `
		UPDATE leads
		SET voice_call_status = $2, voice_call_id = $3, voice_call_updated_at = now(), updated_at = now()
		WHERE id = $1
		RETURNING` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, status, callID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, fmt.Errorf("set voice call: %w", err)
	}
	return lead, nil
}

// ApplyCallOutcome is idempotent: the interests merge is a JSONB union and the
// call log insert ignores a repeated call_id.
func (r *Repo) ApplyCallOutcome(ctx context.Context, params CallOutcomeParams) (bool, error) {
	attributes, err := marshalInterests(params.Attributes)
	if err != nil {
		return false, err
	}
	analysis, err := json.Marshal(params.Analysis)
	if err != nil || params.Analysis == nil {
		analysis = []byte("{}")
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("begin call outcome: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `
		UPDATE leads
		SET property_interests = property_interests || $2::jsonb,
			voice_call_status = 'completed',
			voice_call_id = $3,
			voice_call_updated_at = now(),
			updated_at = now()
		WHERE id = $1`,
		params.LeadID, attributes, params.CallID,
	)
	if err != nil {
		return false, fmt.Errorf("merge call outcome: %w", err)
	}
	if result.RowsAffected() == 0 {
		return false, ErrNotFound
	}

	inserted, err := tx.Exec(ctx, `
		INSERT INTO voice_call_logs (call_id, lead_id, transcript, call_analysis, duration_seconds, qualification_result)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (call_id) DO NOTHING`,
		params.CallID, params.LeadID, params.Transcript, analysis, params.DurationSeconds, params.Qualification,
	)
	if err != nil {
		return false, fmt.Errorf("insert call log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit call outcome: %w", err)
	}
	return inserted.RowsAffected() == 1, nil
}

func (r *Repo) MarkStaleCalls(ctx context.Context, initiatedBefore time.Time) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE leads
		SET voice_call_status = 'failed', voice_call_updated_at = now(), updated_at = now()
		WHERE voice_call_status = 'initiated' AND voice_call_updated_at < $1
		RETURNING id`, initiatedBefore)
	if err != nil {
		return nil, fmt.Errorf("mark stale calls: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan stale call: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
