// Package models defines the data structures for the consulting marketplace:
// consultation requests, the canned question catalog, and admin accounts.
package models

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"
)

// Tier identifies a paid service level for a consultation request.
type Tier string

const (
	// TierBasic is the instant canned-answer tier.
	TierBasic Tier = "basic"
	// TierMiddle is the AI-assisted analyst tier.
	TierMiddle Tier = "middle"
	// TierCustom is the human expert tier.
	TierCustom Tier = "custom"
)

// Valid reports whether the tier is one of the offered service levels.
func (t Tier) Valid() bool {
	switch t {
	case TierBasic, TierMiddle, TierCustom:
		return true
	}
	return false
}

// String returns the tier as a string.
func (t Tier) String() string {
	return string(t)
}

// PriceCents returns the tier price in cents, or 0 for an unknown tier.
func (t Tier) PriceCents() int64 {
	switch t {
	case TierBasic:
		return 2900
	case TierMiddle:
		return 9900
	case TierCustom:
		return 49900
	}
	return 0
}

// PriceDollars returns the tier price in whole dollars, the unit stored on
// the request row.
func (t Tier) PriceDollars() int64 {
	return t.PriceCents() / 100
}

// DisplayName returns the customer-facing name of the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBasic:
		return "Instant Advice"
	case TierMiddle:
		return "AI-Assisted Analysis"
	case TierCustom:
		return "Human Expert Consultation"
	}
	return string(t)
}

// Status identifies where a consultation request is in its lifecycle.
type Status string

const (
	// StatusPending means the request is created but not yet resolved.
	StatusPending Status = "pending"
	// StatusProcessing means a human expert is working on the request.
	StatusProcessing Status = "processing"
	// StatusCompleted means a response has been delivered.
	StatusCompleted Status = "completed"
	// StatusRejected means the request was declined.
	StatusRejected Status = "rejected"
)

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// String returns the status as a string.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Completed and rejected are terminal except that a completed custom-tier
// request may be re-completed with a revised expert response.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCompleted || next == StatusRejected
	case StatusProcessing:
		return next == StatusCompleted || next == StatusRejected
	case StatusCompleted:
		return next == StatusCompleted
	case StatusRejected:
		return false
	}
	return false
}

// Request is a customer consultation request moving through the
// pending -> processing -> completed/rejected pipeline.
type Request struct {
	ID            string         `json:"id" db:"id"`
	Tier          Tier           `json:"tier" db:"tier"`
	Status        Status         `json:"status" db:"status"`
	CustomerName  string         `json:"customerName" db:"customer_name"`
	CustomerEmail string         `json:"customerEmail" db:"customer_email"`
	Description   string         `json:"description" db:"description"`
	Response      sql.NullString `json:"response,omitempty" db:"response"`
	Amount        int64          `json:"amount" db:"amount"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}

// SelectedTopicPrefix is prepended to the description by the submission form
// when the customer picks a canned topic.
const SelectedTopicPrefix = "Selected Topic: "

// SelectedTopic recovers the canned topic from the description by stripping
// the form prefix. Descriptions without the prefix are used as-is.
func (r *Request) SelectedTopic() string {
	if strings.HasPrefix(r.Description, SelectedTopicPrefix) {
		return strings.TrimSpace(r.Description[len(SelectedTopicPrefix):])
	}
	return strings.TrimSpace(r.Description)
}

// MarshalJSON renders the response column as a plain string or null.
func (r Request) MarshalJSON() ([]byte, error) {
	type alias Request
	var response *string
	if r.Response.Valid {
		response = &r.Response.String
	}
	return json.Marshal(struct {
		alias
		Response *string `json:"response"`
	}{alias(r), response})
}

// ResponseText returns the response or an empty string when unset.
func (r *Request) ResponseText() string {
	if r.Response.Valid {
		return r.Response.String
	}
	return ""
}

// HasResponse reports whether a non-empty response has been recorded.
func (r *Request) HasResponse() bool {
	return r.Response.Valid && r.Response.String != ""
}

// BasicQuestion is a canned catalog entry: a topic with a prewritten answer
// served instantly to basic-tier requests.
type BasicQuestion struct {
	ID        string    `json:"id" db:"id"`
	Topic     string    `json:"topic" db:"topic"`
	Answer    string    `json:"answer" db:"answer"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Admin is a portal operator account.
type Admin struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// CreateRequestInput carries the fields a customer submits when opening a
// request. Amount is optional; when zero the tier price is stored.
type CreateRequestInput struct {
	Tier          Tier   `json:"tier" binding:"required"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	Description   string `json:"description" binding:"required"`
	Amount        int64  `json:"amount"`
}

// UpdateRequestInput carries an admin's change to a request: a status move,
// an expert response, or both.
type UpdateRequestInput struct {
	Status   *Status `json:"status,omitempty"`
	Response *string `json:"response,omitempty"`
}

// BasicQuestionInput carries the fields for creating a catalog entry.
type BasicQuestionInput struct {
	Topic  string `json:"topic" binding:"required"`
	Answer string `json:"answer" binding:"required"`
}

// UpdateBasicQuestionInput carries a partial edit to a catalog entry.
type UpdateBasicQuestionInput struct {
	Topic  *string `json:"topic,omitempty"`
	Answer *string `json:"answer,omitempty"`
}
