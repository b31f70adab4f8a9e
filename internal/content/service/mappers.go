package service

import (
	"propboost_backend/internal/content/repository"
	"propboost_backend/internal/content/transport"
)

func ToPropertyResponse(p repository.Property) transport.PropertyResponse {
	return transport.PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Location:     p.Location,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Price:        p.Price,
		Currency:     p.Currency,
		Amenities:    orEmpty(p.Amenities),
		Description:  p.Description,
		PropertyType: p.PropertyType,
		AreaSqft:     p.AreaSqft,
		Images:       orEmpty(p.Images),
		CreatedAt:    p.CreatedAt,
	}
}

func ToContentResponse(c repository.Content) transport.ContentResponse {
	return transport.ContentResponse{
		ID:               c.ID,
		PropertyID:       c.PropertyID,
		Platform:         c.Platform,
		Language:         c.Language,
		Content:          c.Content,
		Hashtags:         c.Hashtags,
		ComplianceStatus: c.ComplianceStatus,
		ComplianceFlags:  orEmpty(c.ComplianceFlags),
		Approved:         c.Approved,
		CreatedAt:        c.CreatedAt,
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
