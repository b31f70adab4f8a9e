package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

const defaultListLimit = 1000

type Lead struct {
	ID                 uuid.UUID
	Name               string
	Phone              string
	Email              string
	LanguagePreference string
	PropertyInterests  map[string]any
	Notes              string
	Score              int
	ScoreReasoning     string
	Stage              string
	Probability        int
	AIBriefing         string
	LeadSource         string
	EstimatedDealValue float64
	VoiceCallStatus    string
	VoiceCallID        string
	VoiceCallUpdatedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CreateLeadParams struct {
	Name               string
	Phone              string
	Email              string
	LanguagePreference string
	PropertyInterests  map[string]any
	Notes              string
	Score              int
	ScoreReasoning     string
	AIBriefing         string
	Stage              string
	Probability        int
	LeadSource         string
	EstimatedDealValue float64
}

// UpdateLeadParams carries the user-editable fields; nil means unchanged.
type UpdateLeadParams struct {
	Name               *string
	Phone              *string
	Email              *string
	LanguagePreference *string
	PropertyInterests  map[string]any
	Notes              *string
	LeadSource         *string
	EstimatedDealValue *float64
}

type ScoreParams struct {
	Score      int
	Reasoning  string
	AIBriefing string
}

type ListParams struct {
	Stage      string
	ScoreMin   *int
	ScoreMax   *int
	LeadSource string
	Limit      int
}

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const leadColumns = `
	id, name, phone, email, language_preference, property_interests, notes,
	score, score_reasoning, stage, probability, ai_briefing, lead_source,
	estimated_deal_value, voice_call_status, voice_call_id, voice_call_updated_at,
	created_at, updated_at`

func (r *Repo) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	interests, err := marshalInterests(params.PropertyInterests)
	if err != nil {
		return Lead{}, err
	}

	query := `
		INSERT INTO leads (
			name, phone, email, language_preference, property_interests, notes,
			score, score_reasoning, ai_briefing, stage, probability, lead_source,
			estimated_deal_value
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.Name, params.Phone, params.Email, params.LanguagePreference, interests, params.Notes,
		params.Score, params.ScoreReasoning, params.AIBriefing, params.Stage, params.Probability,
		params.LeadSource, params.EstimatedDealValue,
	))
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `SELECT`+leadColumns+` FROM leads WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, error) {
	whereClauses := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)

	if params.Stage != "" {
		args = append(args, params.Stage)
		whereClauses = append(whereClauses, fmt.Sprintf("stage = $%d", len(args)))
	}
	if params.ScoreMin != nil {
		args = append(args, *params.ScoreMin)
		whereClauses = append(whereClauses, fmt.Sprintf("score >= $%d", len(args)))
	}
	if params.ScoreMax != nil {
		args = append(args, *params.ScoreMax)
		whereClauses = append(whereClauses, fmt.Sprintf("score <= $%d", len(args)))
	}
	if params.LeadSource != "" {
		args = append(args, params.LeadSource)
		whereClauses = append(whereClauses, fmt.Sprintf("lead_source = $%d", len(args)))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)

	where := ""
	if len(whereClauses) > 0 {
		where = "WHERE " + strings.Join(whereClauses, " AND ")
	}
	query := fmt.Sprintf(`SELECT %s FROM leads %s ORDER BY created_at DESC LIMIT $%d`, leadColumns, where, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	var interests []byte
	if params.PropertyInterests != nil {
		encoded, err := marshalInterests(params.PropertyInterests)
		if err != nil {
			return Lead{}, err
		}
		interests = encoded
	}

	query := `
		UPDATE leads
		SET name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			email = COALESCE($4, email),
			language_preference = COALESCE($5, language_preference),
			property_interests = COALESCE($6::jsonb, property_interests),
			notes = COALESCE($7, notes),
			lead_source = COALESCE($8, lead_source),
			estimated_deal_value = COALESCE($9, estimated_deal_value),
			updated_at = now()
		WHERE id = $1
		RETURNING` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id,
		params.Name, params.Phone, params.Email, params.LanguagePreference, interests,
		params.Notes, params.LeadSource, params.EstimatedDealValue,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

// UpdateScore writes only the scoring fields.
func (r *Repo) UpdateScore(ctx context.Context, id uuid.UUID, params ScoreParams) (Lead, error) {
	query := `
		UPDATE leads
		SET score = $2, score_reasoning = $3, ai_briefing = $4, updated_at = now()
		WHERE id = $1
		RETURNING` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, params.Score, params.Reasoning, params.AIBriefing))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, fmt.Errorf("update lead score: %w", err)
	}
	return lead, nil
}

func (r *Repo) UpdateStage(ctx context.Context, id uuid.UUID, stage string, probability *int) (Lead, error) {
	query := `
		UPDATE leads
		SET stage = $2, probability = COALESCE($3, probability), updated_at = now()
		WHERE id = $1
		RETURNING` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, stage, probability))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, fmt.Errorf("update lead stage: %w", err)
	}
	return lead, nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var interests []byte
	if err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.LanguagePreference, &interests, &lead.Notes,
		&lead.Score, &lead.ScoreReasoning, &lead.Stage, &lead.Probability, &lead.AIBriefing, &lead.LeadSource,
		&lead.EstimatedDealValue, &lead.VoiceCallStatus, &lead.VoiceCallID, &lead.VoiceCallUpdatedAt,
		&lead.CreatedAt, &lead.UpdatedAt,
	); err != nil {
		return Lead{}, err
	}

	lead.PropertyInterests = map[string]any{}
	if len(interests) > 0 {
		if err := json.Unmarshal(interests, &lead.PropertyInterests); err != nil {
			return Lead{}, fmt.Errorf("decode property interests: %w", err)
		}
	}
	return lead, nil
}

func marshalInterests(interests map[string]any) ([]byte, error) {
	if interests == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(interests)
	if err != nil {
		return nil, fmt.Errorf("encode property interests: %w", err)
	}
	return data, nil
}
