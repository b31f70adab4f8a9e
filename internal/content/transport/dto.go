package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	Location     string   `json:"location" validate:"required,min=1,max=200"`
	Bedrooms     int      `json:"bedrooms" validate:"min=0,max=50"`
	Bathrooms    int      `json:"bathrooms" validate:"min=0,max=50"`
	Price        float64  `json:"price" validate:"min=0"`
	Currency     string   `json:"currency" validate:"omitempty,len=3"`
	Amenities    []string `json:"amenities" validate:"max=50,dive,max=100"`
	Description  string   `json:"description" validate:"max=5000"`
	PropertyType string   `json:"property_type" validate:"max=50"`
	AreaSqft     int      `json:"area_sqft" validate:"min=0"`
	Images       []string `json:"images" validate:"max=30,dive,url"`
}

type PropertyResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Amenities    []string  `json:"amenities"`
	Description  string    `json:"description"`
	PropertyType string    `json:"property_type"`
	AreaSqft     int       `json:"area_sqft"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
}

type PropertyListResponse struct {
	Items []PropertyResponse `json:"items"`
	Total int                `json:"total"`
}

type GenerateContentRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	Platforms  []string  `json:"platforms" validate:"omitempty,max=5,dive,oneof=instagram facebook whatsapp email seo"`
	Languages  []string  `json:"languages" validate:"omitempty,max=10,dive,oneof=English Arabic Hindi Russian Mandarin French"`
}

type ListContentRequest struct {
	Platform string `form:"platform" validate:"omitempty,oneof=instagram facebook whatsapp email seo"`
	Language string `form:"language" validate:"omitempty,max=30"`
}

type ApproveContentRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

type ContentResponse struct {
	ID               uuid.UUID `json:"id"`
	PropertyID       uuid.UUID `json:"property_id"`
	Platform         string    `json:"platform"`
	Language         string    `json:"language"`
	Content          string    `json:"content"`
	Hashtags         string    `json:"hashtags"`
	ComplianceStatus string    `json:"compliance_status"`
	ComplianceFlags  []string  `json:"compliance_flags"`
	Approved         bool      `json:"approved"`
	CreatedAt        time.Time `json:"created_at"`
}

type GenerateContentResponse struct {
	Contents []ContentResponse `json:"contents"`
	Count    int               `json:"count"`
}
