package models

import (
	"time"
)

// Category is the closed set of achievement categories. Anything outside it
// is rejected at submission and on edit.
type Category string

const (
	CategoryAcademic        Category = "Academic"
	CategorySports          Category = "Sports"
	CategoryExtracurricular Category = "Extracurricular"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAcademic, CategorySports, CategoryExtracurricular:
		return true
	}
	return false
}

// Status of an achievement in the review workflow. Pending is the only
// initial state; every owner edit forces the record back to it.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Achievement struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	OwnerID     string    `json:"owner_id" gorm:"index;not null"`
	Owner       *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" gorm:"not null"`
	Category    Category  `json:"category" gorm:"not null"`

	// CertificateKey is the authoritative blob reference; the original
	// filename is kept for display only.
	CertificateKey  string `json:"certificate_key"`
	CertificateName string `json:"certificate_name"`
	CertificateURL  string `json:"certificate_url" gorm:"-"`

	Status          Status `json:"status" gorm:"index;not null;default:'Pending'"`
	ReviewerComment string `json:"reviewer_comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReviewRequest struct {
	Action  string `json:"action" validate:"required,oneof=approve reject"`
	Comment string `json:"comment"`
}

type CategoryCount struct {
	Category Category `json:"category"`
	Count    int64    `json:"count"`
}

type StatusCount struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

type AnalyticsOverview struct {
	ByCategory []CategoryCount `json:"byCategory"`
	ByStatus   []StatusCount   `json:"byStatus"`
	Monthly    []MonthCount    `json:"monthly"`
}
