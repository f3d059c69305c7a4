// Package serviceinterfaces defines service interfaces for dependency injection and testing.
package serviceinterfaces

import (
	"context"

	"kingsadvice/internal/models"
)

// RequestService defines storage operations for consultation requests and the
// canned question catalog.
type RequestService interface {
	// CreateRequest persists a new pending consultation request
	CreateRequest(ctx context.Context, input *models.CreateRequestInput) (*models.Request, error)

	// GetRequestByID returns a single request or ErrRecordNotFound
	GetRequestByID(ctx context.Context, id string) (*models.Request, error)

	// GetAllRequests returns all requests, newest first
	GetAllRequests(ctx context.Context) ([]models.Request, error)

	// UpdateRequest applies a status move and/or response text to a request
	UpdateRequest(ctx context.Context, id string, input *models.UpdateRequestInput) (*models.Request, error)

	// DeleteRequest removes a request, returning ErrRecordNotFound when missing
	DeleteRequest(ctx context.Context, id string) error

	// TransitionIfPending atomically moves a still-pending request to the given
	// status, recording the response. Returns ErrRecordNotFound when the request
	// does not exist or is no longer pending.
	TransitionIfPending(ctx context.Context, id string, status models.Status, response string) (*models.Request, error)

	// GetAllBasicQuestions returns the canned question catalog
	GetAllBasicQuestions(ctx context.Context) ([]models.BasicQuestion, error)

	// GetBasicQuestionByTopic returns the catalog entry for a topic or ErrRecordNotFound
	GetBasicQuestionByTopic(ctx context.Context, topic string) (*models.BasicQuestion, error)

	// CreateBasicQuestion adds a catalog entry
	CreateBasicQuestion(ctx context.Context, input *models.BasicQuestionInput) (*models.BasicQuestion, error)

	// UpdateBasicQuestion applies a partial edit to a catalog entry
	UpdateBasicQuestion(ctx context.Context, id string, input *models.UpdateBasicQuestionInput) (*models.BasicQuestion, error)

	// DeleteBasicQuestion removes a catalog entry
	DeleteBasicQuestion(ctx context.Context, id string) error
}
