// Package service implements property management and the content pipeline.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"propboost_backend/internal/audit"
	"propboost_backend/internal/compliance"
	"propboost_backend/internal/content/domain"
	"propboost_backend/internal/content/ports"
	"propboost_backend/internal/content/repository"
	"propboost_backend/internal/content/transport"
	"propboost_backend/internal/judge"
	"propboost_backend/platform/apperr"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
	"propboost_backend/platform/sanitize"
)

const (
	msgPropertyNotFound = "property not found"
	msgContentNotFound  = "content not found"
	msgFailedCompliance = "content failed compliance review"

	defaultCurrency     = "AED"
	defaultPropertyType = "Apartment"
	defaultParallelism  = 4
)

const (
	actionPropertyCreated  = "property_created"
	actionPropertyDeleted  = "property_deleted"
	actionContentGenerated = "content_generated"
	actionContentApproved  = "content_approved"
	actionContentRejected  = "content_rejected"
)

// Service handles properties and generated content.
type Service struct {
	repo        repository.Repository
	copywriter  ports.Copywriter
	audit       ports.AuditRecorder
	parallelism int
	log         *logger.Logger
	metrics     *metrics.Metrics
}

// New creates the content service. parallelism bounds concurrent judge calls
// during generation.
func New(repo repository.Repository, copywriter ports.Copywriter, recorder ports.AuditRecorder, parallelism int, log *logger.Logger, m *metrics.Metrics) *Service {
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	return &Service{
		repo:        repo,
		copywriter:  copywriter,
		audit:       recorder,
		parallelism: parallelism,
		log:         log,
		metrics:     m,
	}
}

func (s *Service) CreateProperty(ctx context.Context, actor string, req transport.CreatePropertyRequest) (transport.PropertyResponse, error) {
	params := repository.CreatePropertyParams{
		Title:        sanitize.Text(req.Title),
		Location:     sanitize.Text(req.Location),
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Price:        req.Price,
		Currency:     strings.ToUpper(orDefault(req.Currency, defaultCurrency)),
		Amenities:    sanitize.List(req.Amenities),
		Description:  sanitize.Text(req.Description),
		PropertyType: orDefault(sanitize.Text(req.PropertyType), defaultPropertyType),
		AreaSqft:     req.AreaSqft,
		Images:       req.Images,
	}

	property, err := s.repo.CreateProperty(ctx, params)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     actionPropertyCreated,
		EntityType: audit.EntityProperty,
		EntityID:   property.ID,
		Actor:      actor,
		Details:    map[string]any{"title": property.Title, "location": property.Location},
	})
	return ToPropertyResponse(property), nil
}

func (s *Service) ListProperties(ctx context.Context) (transport.PropertyListResponse, error) {
	properties, err := s.repo.ListProperties(ctx, 0)
	if err != nil {
		return transport.PropertyListResponse{}, err
	}
	items := make([]transport.PropertyResponse, len(properties))
	for i, p := range properties {
		items[i] = ToPropertyResponse(p)
	}
	return transport.PropertyListResponse{Items: items, Total: len(items)}, nil
}

func (s *Service) GetProperty(ctx context.Context, id uuid.UUID) (transport.PropertyResponse, error) {
	property, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return transport.PropertyResponse{}, mapNotFound(err)
	}
	return ToPropertyResponse(property), nil
}

func (s *Service) DeleteProperty(ctx context.Context, actor string, id uuid.UUID) error {
	if err := s.repo.DeleteProperty(ctx, id); err != nil {
		return mapNotFound(err)
	}
	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     actionPropertyDeleted,
		EntityType: audit.EntityProperty,
		EntityID:   id,
		Actor:      actor,
	})
	return nil
}

// GenerateContent renders copy for every requested platform and language,
// screens each item and stores it with its compliance outcome.
func (s *Service) GenerateContent(ctx context.Context, actor string, req transport.GenerateContentRequest) (transport.GenerateContentResponse, error) {
	property, err := s.repo.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return transport.GenerateContentResponse{}, mapNotFound(err)
	}

	jobs := domain.Jobs(req.Platforms, req.Languages)
	snapshot := propertySnapshot(property)
	results := make([]repository.Content, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, job := range jobs {
		g.Go(func() error {
			item, err := s.generateOne(gctx, property.ID, snapshot, job)
			if err != nil {
				return err
			}
			results[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return transport.GenerateContentResponse{}, err
	}

	contents := make([]transport.ContentResponse, len(results))
	flagged := 0
	for i, item := range results {
		contents[i] = ToContentResponse(item)
		if item.ComplianceStatus == domain.StatusFlagged {
			flagged++
		}
	}

	platforms, languages := jobAxes(jobs)
	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     actionContentGenerated,
		EntityType: audit.EntityProperty,
		EntityID:   property.ID,
		Actor:      actor,
		Details: map[string]any{
			"platforms": platforms,
			"languages": languages,
			"count":     len(contents),
			"flagged":   flagged,
		},
	})

	return transport.GenerateContentResponse{Contents: contents, Count: len(contents)}, nil
}

func (s *Service) generateOne(ctx context.Context, propertyID uuid.UUID, snapshot judge.PropertySnapshot, job domain.Job) (repository.Content, error) {
	copyResult := s.copywriter.GenerateCopy(ctx, snapshot, job.Platform, job.Language)
	check := compliance.Validate(copyResult.Content)
	status := domain.ComplianceStatus(check.Compliant)

	item, err := s.repo.CreateContent(ctx, repository.CreateContentParams{
		PropertyID:       propertyID,
		Platform:         job.Platform,
		Language:         job.Language,
		Content:          copyResult.Content,
		Hashtags:         copyResult.Hashtags,
		ComplianceStatus: status,
		ComplianceFlags:  check.Violations,
	})
	if err != nil {
		return repository.Content{}, err
	}

	s.metrics.ContentItem(job.Platform, status)
	s.audit.Compliance(ctx, audit.ComplianceEntry{
		EntityType:        audit.EntityContent,
		EntityID:          item.ID,
		OriginalText:      item.Content,
		Flags:             check.Violations,
		IsCompliant:       check.Compliant,
		DisclaimerPresent: check.DisclaimerPresent,
		ReviewedBy:        audit.ActorSystem,
	})
	return item, nil
}

func (s *Service) ListPropertyContent(ctx context.Context, propertyID uuid.UUID, req transport.ListContentRequest) ([]transport.ContentResponse, error) {
	items, err := s.repo.ListContent(ctx, repository.ContentFilter{
		PropertyID: propertyID,
		Platform:   req.Platform,
		Language:   req.Language,
	})
	if err != nil {
		return nil, err
	}
	out := make([]transport.ContentResponse, len(items))
	for i, item := range items {
		out[i] = ToContentResponse(item)
	}
	return out, nil
}

// ApproveContent records a reviewer decision. Flagged content can be
// rejected but never approved.
func (s *Service) ApproveContent(ctx context.Context, actor string, id uuid.UUID, approved bool) (transport.ContentResponse, error) {
	current, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return transport.ContentResponse{}, mapNotFound(err)
	}
	if approved && current.ComplianceStatus == domain.StatusFlagged {
		return transport.ContentResponse{}, flaggedError(current.ComplianceFlags)
	}

	item, err := s.repo.SetApproval(ctx, id, approved)
	if errors.Is(err, repository.ErrFlaggedApproval) {
		return transport.ContentResponse{}, flaggedError(current.ComplianceFlags)
	}
	if err != nil {
		return transport.ContentResponse{}, mapNotFound(err)
	}

	action := actionContentApproved
	if !approved {
		action = actionContentRejected
	}
	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     action,
		EntityType: audit.EntityContent,
		EntityID:   item.ID,
		Actor:      actor,
		Details:    map[string]any{"platform": item.Platform, "language": item.Language},
	})
	return ToContentResponse(item), nil
}

func flaggedError(flags []string) error {
	if flags == nil {
		flags = []string{}
	}
	return apperr.Validation(msgFailedCompliance).WithDetails(gin.H{"violations": flags})
}

func mapNotFound(err error) error {
	switch {
	case errors.Is(err, repository.ErrPropertyNotFound):
		return apperr.NotFound(msgPropertyNotFound)
	case errors.Is(err, repository.ErrContentNotFound):
		return apperr.NotFound(msgContentNotFound)
	default:
		return err
	}
}

func propertySnapshot(p repository.Property) judge.PropertySnapshot {
	return judge.PropertySnapshot{
		Title:        p.Title,
		Location:     p.Location,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Price:        p.Price,
		Currency:     p.Currency,
		AreaSqft:     p.AreaSqft,
		Amenities:    p.Amenities,
		Description:  p.Description,
	}
}

func jobAxes(jobs []domain.Job) ([]string, []string) {
	var platforms, languages []string
	seenP := map[string]bool{}
	seenL := map[string]bool{}
	for _, j := range jobs {
		if !seenP[j.Platform] {
			seenP[j.Platform] = true
			platforms = append(platforms, j.Platform)
		}
		if !seenL[j.Language] {
			seenL[j.Language] = true
			languages = append(languages, j.Language)
		}
	}
	return platforms, languages
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
