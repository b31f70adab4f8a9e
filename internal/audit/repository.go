package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// ActivityFilter narrows the activity listing.
type ActivityFilter struct {
	EntityType string
	EntityID   *uuid.UUID
	Action     string
	Limit      int
}

// ComplianceFilter narrows the compliance audit listing.
type ComplianceFilter struct {
	EntityType string
	EntityID   *uuid.UUID
	Limit      int
}

// Repository is the pgx-backed Store.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

func (r *Repository) InsertActivity(ctx context.Context, entry ActivityEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("marshal activity details: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO activity_logs (action, entity_type, entity_id, actor, details)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.Action, entry.EntityType, entry.EntityID, entry.Actor, details,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

func (r *Repository) InsertCompliance(ctx context.Context, entry ComplianceEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO compliance_audits
			(entity_type, entity_id, original_text, flags, is_compliant, ai_disclaimer_present, reviewed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.EntityType, entry.EntityID, entry.OriginalText, entry.Flags,
		entry.IsCompliant, entry.DisclaimerPresent, entry.ReviewedBy,
	)
	if err != nil {
		return fmt.Errorf("insert compliance audit: %w", err)
	}
	return nil
}

func (r *Repository) ListActivity(ctx context.Context, filter ActivityFilter) ([]ActivityLog, error) {
	where, args := whereClause(filter.EntityType, filter.EntityID)
	if filter.Action != "" {
		args = append(args, filter.Action)
		where = append(where, fmt.Sprintf("action = $%d", len(args)))
	}
	args = append(args, ClampLimit(filter.Limit))

	query := fmt.Sprintf(`
		SELECT id, action, entity_type, entity_id, actor, details, created_at
		FROM activity_logs
		%s
		ORDER BY created_at DESC
		LIMIT $%d`, joinWhere(where), len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	items := make([]ActivityLog, 0)
	for rows.Next() {
		var item ActivityLog
		var details []byte
		if err := rows.Scan(&item.ID, &item.Action, &item.EntityType, &item.EntityID, &item.Actor, &details, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		item.Details = map[string]any{}
		if len(details) > 0 {
			_ = json.Unmarshal(details, &item.Details)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Repository) ListComplianceAudits(ctx context.Context, filter ComplianceFilter) ([]ComplianceAudit, error) {
	where, args := whereClause(filter.EntityType, filter.EntityID)
	args = append(args, ClampLimit(filter.Limit))

	query := fmt.Sprintf(`
		SELECT id, entity_type, entity_id, original_text, flags, is_compliant,
			ai_disclaimer_present, reviewed_by, created_at
		FROM compliance_audits
		%s
		ORDER BY created_at DESC
		LIMIT $%d`, joinWhere(where), len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compliance audits: %w", err)
	}
	defer rows.Close()

	items := make([]ComplianceAudit, 0)
	for rows.Next() {
		var item ComplianceAudit
		if err := rows.Scan(
			&item.ID, &item.EntityType, &item.EntityID, &item.OriginalText, &item.Flags,
			&item.IsCompliant, &item.DisclaimerPresent, &item.ReviewedBy, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan compliance audit: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ClampLimit applies the default and maximum page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return defaultActivityLimit
	}
	if limit > maxActivityLimit {
		return maxActivityLimit
	}
	return limit
}

func whereClause(entityType string, entityID *uuid.UUID) ([]string, []interface{}) {
	where := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if entityType != "" {
		args = append(args, entityType)
		where = append(where, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if entityID != nil {
		args = append(args, *entityID)
		where = append(where, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	return where, args
}

func joinWhere(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(clauses, " AND ")
}
