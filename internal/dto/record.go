package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Record DTOs ---

// CreateRecordRequest defines data for creating a new record.
type CreateRecordRequest struct {
	BusinessID      string                 `json:"businessID" binding:"required,uuid"`
	OccurredAt      time.Time              `json:"occurredAt" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Payee           string                 `json:"payee" binding:"required"`
	Category        string                 `json:"category" binding:"required,category"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
	Notes           *string                `json:"notes,omitempty"`
	ReceiptRef      *string                `json:"receiptRef,omitempty"`
}

// UpdateRecordRequest defines the requested post-image for a record update.
// Nil fields are left untouched. For the optional Notes and ReceiptRef
// fields an explicit empty string clears the stored value back to null.
type UpdateRecordRequest struct {
	OccurredAt      *time.Time              `json:"occurredAt,omitempty"`
	Amount          *decimal.Decimal        `json:"amount,omitempty"`
	Payee           *string                 `json:"payee,omitempty"`
	Category        *string                 `json:"category,omitempty" binding:"omitempty,category"`
	TransactionType *domain.TransactionType `json:"transactionType,omitempty"`
	Notes           *string                 `json:"notes,omitempty"`
	ReceiptRef      *string                 `json:"receiptRef,omitempty"`
}

// RecordResponse defines data returned for a record.
type RecordResponse struct {
	RecordID        string                 `json:"recordID"`
	BusinessID      string                 `json:"businessID"`
	OccurredAt      time.Time              `json:"occurredAt"`
	Amount          decimal.Decimal        `json:"amount"`
	Payee           string                 `json:"payee"`
	Category        string                 `json:"category"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Notes           *string                `json:"notes,omitempty"`
	ReceiptRef      *string                `json:"receiptRef,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy   string                 `json:"lastUpdatedBy"`
}

// ToRecordResponse converts domain.Record to DTO.
func ToRecordResponse(r *domain.Record) RecordResponse {
	return RecordResponse{
		RecordID:        r.RecordID,
		BusinessID:      r.BusinessID,
		OccurredAt:      r.OccurredAt,
		Amount:          r.Amount,
		Payee:           r.Payee,
		Category:        r.Category,
		TransactionType: r.TransactionType,
		Notes:           r.Notes,
		ReceiptRef:      r.ReceiptRef,
		CreatedAt:       r.CreatedAt,
		CreatedBy:       r.CreatedBy,
		LastUpdatedAt:   r.LastUpdatedAt,
		LastUpdatedBy:   r.LastUpdatedBy,
	}
}

// ListRecordsResponse wraps a page of records.
type ListRecordsResponse struct {
	Records   []RecordResponse `json:"records"`
	NextToken string           `json:"nextToken,omitempty"`
}

// ToListRecordsResponse converts a slice of domain.Record to DTO.
func ToListRecordsResponse(rs []domain.Record, nextToken string) ListRecordsResponse {
	list := make([]RecordResponse, len(rs))
	for i, r := range rs {
		list[i] = ToRecordResponse(&r)
	}
	return ListRecordsResponse{Records: list, NextToken: nextToken}
}
