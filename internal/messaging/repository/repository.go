package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("message not found")
	// ErrStatusChanged means the compare-and-set lost: the message was not in
	// the expected status when the update ran.
	ErrStatusChanged = errors.New("message status changed")
)

type Message struct {
	ID                uuid.UUID
	Channel           string
	LeadID            uuid.UUID
	Recipient         string
	Subject           *string
	Body              string
	Language          string
	MessageType       string
	Status            string
	ProviderMessageID string
	ProviderStatus    string
	ProviderError     string
	ComplianceFlags   []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	SentAt            *time.Time
}

type CreateMessageParams struct {
	Channel         string
	LeadID          uuid.UUID
	Recipient       string
	Subject         *string
	Body            string
	Language        string
	MessageType     string
	ComplianceFlags []string
}

type DispatchParams struct {
	Status            string
	ProviderMessageID string
	ProviderStatus    string
	ProviderError     string
	SentAt            *time.Time
}

// Repository is the message store. Status changes are compare-and-set.
type Repository interface {
	Create(ctx context.Context, params CreateMessageParams) (Message, error)
	GetByID(ctx context.Context, channel string, id uuid.UUID) (Message, error)
	ListForLead(ctx context.Context, channel string, leadID uuid.UUID) ([]Message, error)
	Transition(ctx context.Context, channel string, id uuid.UUID, from, to string) (Message, error)
	RecordDispatch(ctx context.Context, channel string, id uuid.UUID, from string, params DispatchParams) (Message, error)
}

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const messageColumns = `
	id, channel, lead_id, recipient, subject, body, language, message_type, status,
	provider_message_id, provider_status, provider_error, compliance_flags,
	created_at, updated_at, sent_at`

func (r *Repo) Create(ctx context.Context, params CreateMessageParams) (Message, error) {
	flags := params.ComplianceFlags
	if flags == nil {
		flags = []string{}
	}
	query := `
		INSERT INTO messages (channel, lead_id, recipient, subject, body, language, message_type, status, compliance_flags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'draft', $8)
		RETURNING` + messageColumns

	msg, err := scanMessage(r.pool.QueryRow(ctx, query,
		params.Channel, params.LeadID, params.Recipient, params.Subject, params.Body,
		params.Language, params.MessageType, flags,
	))
	if err != nil {
		return Message{}, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

func (r *Repo) GetByID(ctx context.Context, channel string, id uuid.UUID) (Message, error) {
	msg, err := scanMessage(r.pool.QueryRow(ctx,
		`SELECT`+messageColumns+` FROM messages WHERE id = $1 AND channel = $2`, id, channel))
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, ErrNotFound
	}
	if err != nil {
		return Message{}, fmt.Errorf("get message: %w", err)
	}
	return msg, nil
}

func (r *Repo) ListForLead(ctx context.Context, channel string, leadID uuid.UUID) ([]Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+messageColumns+` FROM messages WHERE channel = $1 AND lead_id = $2 ORDER BY created_at DESC`,
		channel, leadID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, msg)
	}
	return items, rows.Err()
}

func (r *Repo) Transition(ctx context.Context, channel string, id uuid.UUID, from, to string) (Message, error) {
	query := `
		UPDATE messages
		SET status = $4, updated_at = now()
		WHERE id = $1 AND channel = $2 AND status = $3
		RETURNING` + messageColumns

	msg, err := scanMessage(r.pool.QueryRow(ctx, query, id, channel, from, to))
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, r.casMiss(ctx, channel, id)
	}
	if err != nil {
		return Message{}, fmt.Errorf("transition message: %w", err)
	}
	return msg, nil
}

func (r *Repo) RecordDispatch(ctx context.Context, channel string, id uuid.UUID, from string, params DispatchParams) (Message, error) {
	query := `
		UPDATE messages
		SET status = $4,
			provider_message_id = $5,
			provider_status = $6,
			provider_error = $7,
			sent_at = $8,
			updated_at = now()
		WHERE id = $1 AND channel = $2 AND status = $3
		RETURNING` + messageColumns

	msg, err := scanMessage(r.pool.QueryRow(ctx, query,
		id, channel, from, params.Status,
		params.ProviderMessageID, params.ProviderStatus, params.ProviderError, params.SentAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, r.casMiss(ctx, channel, id)
	}
	if err != nil {
		return Message{}, fmt.Errorf("record dispatch: %w", err)
	}
	return msg, nil
}

func (r *Repo) casMiss(ctx context.Context, channel string, id uuid.UUID) error {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM messages WHERE id = $1 AND channel = $2)`, id, channel,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check message: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStatusChanged
}

func scanMessage(row pgx.Row) (Message, error) {
	var m Message
	err := row.Scan(
		&m.ID, &m.Channel, &m.LeadID, &m.Recipient, &m.Subject, &m.Body, &m.Language, &m.MessageType, &m.Status,
		&m.ProviderMessageID, &m.ProviderStatus, &m.ProviderError, &m.ComplianceFlags,
		&m.CreatedAt, &m.UpdatedAt, &m.SentAt,
	)
	return m, err
}
