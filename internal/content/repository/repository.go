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
	ErrPropertyNotFound = errors.New("property not found")
	ErrContentNotFound  = errors.New("content not found")
	// ErrFlaggedApproval is returned when the store refuses to approve flagged content.
	ErrFlaggedApproval = errors.New("flagged content cannot be approved")
)

const defaultListLimit = 100

type Property struct {
	ID           uuid.UUID
	Title        string
	Location     string
	Bedrooms     int
	Bathrooms    int
	Price        float64
	Currency     string
	Amenities    []string
	Description  string
	PropertyType string
	AreaSqft     int
	Images       []string
	CreatedAt    time.Time
}

type CreatePropertyParams struct {
	Title        string
	Location     string
	Bedrooms     int
	Bathrooms    int
	Price        float64
	Currency     string
	Amenities    []string
	Description  string
	PropertyType string
	AreaSqft     int
	Images       []string
}

type Content struct {
	ID               uuid.UUID
	PropertyID       uuid.UUID
	Platform         string
	Language         string
	Content          string
	Hashtags         string
	ComplianceStatus string
	ComplianceFlags  []string
	Approved         bool
	CreatedAt        time.Time
}

type CreateContentParams struct {
	PropertyID       uuid.UUID
	Platform         string
	Language         string
	Content          string
	Hashtags         string
	ComplianceStatus string
	ComplianceFlags  []string
}

type ContentFilter struct {
	PropertyID uuid.UUID
	Platform   string
	Language   string
}

// Repository is the content pipeline store.
type Repository interface {
	CreateProperty(ctx context.Context, params CreatePropertyParams) (Property, error)
	GetProperty(ctx context.Context, id uuid.UUID) (Property, error)
	ListProperties(ctx context.Context, limit int) ([]Property, error)
	DeleteProperty(ctx context.Context, id uuid.UUID) error

	CreateContent(ctx context.Context, params CreateContentParams) (Content, error)
	GetContent(ctx context.Context, id uuid.UUID) (Content, error)
	ListContent(ctx context.Context, filter ContentFilter) ([]Content, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (Content, error)
}

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const propertyColumns = `
	id, title, location, bedrooms, bathrooms, price, currency, amenities,
	description, property_type, area_sqft, images, created_at`

const contentColumns = `
	id, property_id, platform, language, content, hashtags, compliance_status,
	compliance_flags, approved, created_at`

func (r *Repo) CreateProperty(ctx context.Context, params CreatePropertyParams) (Property, error) {
	query := `
		INSERT INTO properties (
			title, location, bedrooms, bathrooms, price, currency, amenities,
			description, property_type, area_sqft, images
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING` + propertyColumns

	p, err := scanProperty(r.pool.QueryRow(ctx, query,
		params.Title, params.Location, params.Bedrooms, params.Bathrooms, params.Price, params.Currency,
		nonNil(params.Amenities), params.Description, params.PropertyType, params.AreaSqft, nonNil(params.Images),
	))
	if err != nil {
		return Property{}, fmt.Errorf("create property: %w", err)
	}
	return p, nil
}

func (r *Repo) GetProperty(ctx context.Context, id uuid.UUID) (Property, error) {
	p, err := scanProperty(r.pool.QueryRow(ctx, `SELECT`+propertyColumns+` FROM properties WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Property{}, ErrPropertyNotFound
	}
	if err != nil {
		return Property{}, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (r *Repo) ListProperties(ctx context.Context, limit int) ([]Property, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.pool.Query(ctx, `SELECT`+propertyColumns+` FROM properties ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	items := make([]Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *Repo) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *Repo) CreateContent(ctx context.Context, params CreateContentParams) (Content, error) {
	query := `
		INSERT INTO generated_content (
			property_id, platform, language, content, hashtags, compliance_status, compliance_flags
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + contentColumns

	c, err := scanContent(r.pool.QueryRow(ctx, query,
		params.PropertyID, params.Platform, params.Language, params.Content, params.Hashtags,
		params.ComplianceStatus, nonNil(params.ComplianceFlags),
	))
	if err != nil {
		return Content{}, fmt.Errorf("create content: %w", err)
	}
	return c, nil
}

func (r *Repo) GetContent(ctx context.Context, id uuid.UUID) (Content, error) {
	c, err := scanContent(r.pool.QueryRow(ctx, `SELECT`+contentColumns+` FROM generated_content WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Content{}, ErrContentNotFound
	}
	if err != nil {
		return Content{}, fmt.Errorf("get content: %w", err)
	}
	return c, nil
}

func (r *Repo) ListContent(ctx context.Context, filter ContentFilter) ([]Content, error) {
	query := `SELECT` + contentColumns + `
		FROM generated_content
		WHERE property_id = $1
			AND ($2 = '' OR platform = $2)
			AND ($3 = '' OR language = $3)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, filter.PropertyID, filter.Platform, filter.Language)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	items := make([]Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// SetApproval flips the approval flag. Approving flagged content is refused
// in the same statement so a concurrent reader never sees it approved.
func (r *Repo) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (Content, error) {
	query := `
		UPDATE generated_content
		SET approved = $2
		WHERE id = $1 AND NOT ($2 AND compliance_status = 'flagged')
		RETURNING` + contentColumns

	c, err := scanContent(r.pool.QueryRow(ctx, query, id, approved))
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetContent(ctx, id); getErr != nil {
			return Content{}, getErr
		}
		return Content{}, ErrFlaggedApproval
	}
	if err != nil {
		return Content{}, fmt.Errorf("set content approval: %w", err)
	}
	return c, nil
}

func scanProperty(row pgx.Row) (Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Location, &p.Bedrooms, &p.Bathrooms, &p.Price, &p.Currency, &p.Amenities,
		&p.Description, &p.PropertyType, &p.AreaSqft, &p.Images, &p.CreatedAt,
	)
	return p, err
}

func scanContent(row pgx.Row) (Content, error) {
	var c Content
	err := row.Scan(
		&c.ID, &c.PropertyID, &c.Platform, &c.Language, &c.Content, &c.Hashtags, &c.ComplianceStatus,
		&c.ComplianceFlags, &c.Approved, &c.CreatedAt,
	)
	return c, err
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
