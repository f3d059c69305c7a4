// Package services provides business logic services for the consulting marketplace.
package services

import (
	"context"
	"database/sql"
	"strings"

	"kingsadvice/internal/models"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"go.opentelemetry.io/otel/attribute"
)

// RequestService handles storage of consultation requests and the canned
// question catalog.
type RequestService struct {
	db     *sql.DB
	logger *observability.Logger
}

// Ensure RequestService implements the RequestService interface
var _ serviceinterfaces.RequestService = (*RequestService)(nil)

// NewRequestServiceWithLogger creates a new RequestService instance
func NewRequestServiceWithLogger(db *sql.DB, logger *observability.Logger) *RequestService {
	return &RequestService{
		db:     db,
		logger: logger,
	}
}

const requestColumns = "id, tier, status, customer_name, customer_email, description, response, amount, created_at, updated_at"

func scanRequest(row interface{ Scan(dest ...interface{}) error }) (*models.Request, error) {
	var req models.Request
	err := row.Scan(
		&req.ID,
		&req.Tier,
		&req.Status,
		&req.CustomerName,
		&req.CustomerEmail,
		&req.Description,
		&req.Response,
		&req.Amount,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateRequest persists a new pending consultation request
func (s *RequestService) CreateRequest(ctx context.Context, input *models.CreateRequestInput) (result0 *models.Request, err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "CreateRequest",
		observability.AttributeTier(input.Tier.String()),
	)
	defer observability.FinishSpan(span, &err)

	if !input.Tier.Valid() {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidTier, "tier %q is not offered", input.Tier)
	}
	if !contextutils.IsValidEmail(input.CustomerEmail) {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidInput, "invalid email address")
	}

	amount := input.Amount
	if amount == 0 {
		amount = input.Tier.PriceDollars()
	}

	query := `
		INSERT INTO requests (tier, status, customer_name, customer_email, description, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + requestColumns

	req, err := scanRequest(s.db.QueryRowContext(ctx, query,
		input.Tier,
		models.StatusPending,
		strings.TrimSpace(input.CustomerName),
		strings.TrimSpace(input.CustomerEmail),
		input.Description,
		amount,
	))
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to create request")
	}

	s.logger.Info(ctx, "Created consultation request", map[string]interface{}{
		"request_id": req.ID,
		"tier":       req.Tier,
		"amount":     req.Amount,
	})

	return req, nil
}

// GetRequestByID returns a single request or ErrRecordNotFound
func (s *RequestService) GetRequestByID(ctx context.Context, id string) (result0 *models.Request, err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "GetRequestByID",
		observability.AttributeRequestID(id),
	)
	defer observability.FinishSpan(span, &err)

	query := "SELECT " + requestColumns + " FROM requests WHERE id = $1"
	req, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, contextutils.WrapErrorf(contextutils.ErrRecordNotFound, "request %s not found", id)
	}
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get request")
	}

	return req, nil
}

// GetAllRequests returns all requests, newest first
func (s *RequestService) GetAllRequests(ctx context.Context) (result0 []models.Request, err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "GetAllRequests")
	defer observability.FinishSpan(span, &err)

	query := "SELECT " + requestColumns + " FROM requests ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to list requests")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn(ctx, "Failed to close rows", map[string]interface{}{"error": closeErr.Error()})
		}
	}()

	var requests []models.Request
	for rows.Next() {
		req, scanErr := scanRequest(rows)
		if scanErr != nil {
			return nil, contextutils.WrapError(scanErr, "failed to scan request row")
		}
		requests = append(requests, *req)
	}
	if err = rows.Err(); err != nil {
		return nil, contextutils.WrapError(err, "failed to iterate request rows")
	}

	span.SetAttributes(attribute.Int("requests.count", len(requests)))
	return requests, nil
}

// UpdateRequest applies a status move and/or response text to a request.
// Status changes are validated against the lifecycle inside a transaction so
// concurrent updates cannot skip states.
func (s *RequestService) UpdateRequest(ctx context.Context, id string, input *models.UpdateRequestInput) (result0 *models.Request, err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "UpdateRequest",
		observability.AttributeRequestID(id),
	)
	defer observability.FinishSpan(span, &err)

	if input.Status == nil && input.Response == nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidInput, "no fields to update")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidInput, "unknown status %q", *input.Status)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				s.logger.Warn(ctx, "Failed to rollback transaction", map[string]interface{}{"error": rbErr.Error()})
			}
		}
	}()

	current, err := scanRequest(tx.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE id = $1 FOR UPDATE", id))
	if err == sql.ErrNoRows {
		return nil, contextutils.WrapErrorf(contextutils.ErrRecordNotFound, "request %s not found", id)
	}
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to load request for update")
	}

	newStatus := current.Status
	if input.Status != nil {
		if !current.Status.CanTransitionTo(*input.Status) {
			return nil, contextutils.WrapErrorf(contextutils.ErrInvalidTransition,
				"cannot move request from %s to %s", current.Status, *input.Status)
		}
		newStatus = *input.Status
	}

	newResponse := current.Response
	if input.Response != nil {
		newResponse = sql.NullString{String: *input.Response, Valid: true}
	}

	req, err := scanRequest(tx.QueryRowContext(ctx, `
		UPDATE requests
		SET status = $2, response = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+requestColumns, id, newStatus, newResponse))
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to update request")
	}

	if err = tx.Commit(); err != nil {
		return nil, contextutils.WrapError(err, "failed to commit request update")
	}

	s.logger.Info(ctx, "Updated consultation request", map[string]interface{}{
		"request_id": req.ID,
		"status":     req.Status,
	})

	return req, nil
}

// TransitionIfPending atomically moves a still-pending request to the given
// status, recording the response. The single conditional update closes the
// race between concurrent payment confirmations for the same request.
func (s *RequestService) TransitionIfPending(ctx context.Context, id string, status models.Status, response string) (result0 *models.Request, err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "TransitionIfPending",
		observability.AttributeRequestID(id),
		observability.AttributeStatus(status.String()),
	)
	defer observability.FinishSpan(span, &err)

	if !models.StatusPending.CanTransitionTo(status) {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidTransition,
			"cannot move request from pending to %s", status)
	}

	var resp sql.NullString
	if response != "" {
		resp = sql.NullString{String: response, Valid: true}
	}

	req, err := scanRequest(s.db.QueryRowContext(ctx, `
		UPDATE requests
		SET status = $2, response = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING `+requestColumns, id, status, resp, models.StatusPending))
	if err == sql.ErrNoRows {
		return nil, contextutils.WrapErrorf(contextutils.ErrRecordNotFound,
			"request %s not found or no longer pending", id)
	}
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to transition request")
	}

	return req, nil
}

// DeleteRequest removes a request, returning ErrRecordNotFound when missing
func (s *RequestService) DeleteRequest(ctx context.Context, id string) (err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "DeleteRequest",
		observability.AttributeRequestID(id),
	)
	defer observability.FinishSpan(span, &err)

	res, err := s.db.ExecContext(ctx, "DELETE FROM requests WHERE id = $1", id)
	if err != nil {
		return contextutils.WrapError(err, "failed to delete request")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return contextutils.WrapError(err, "failed to read rows affected")
	}
	if affected == 0 {
		return contextutils.WrapErrorf(contextutils.ErrRecordNotFound, "request %s not found", id)
	}

	return nil
}

const basicQuestionColumns = "id, topic, answer, created_at, updated_at"

func scanBasicQuestion(row interface{ Scan(dest ...interface{}) error }) (*models.BasicQuestion, error) {
	var q models.BasicQuestion
	err := row.Scan(&q.ID, &q.Topic, &q.Answer, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetAllBasicQuestions returns the canned question catalog
func (s *RequestService) GetAllBasicQuestions(ctx context.Context) (result0 []models.BasicQuestion, err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "GetAllBasicQuestions")
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+basicQuestionColumns+" FROM basic_questions ORDER BY topic")
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to list basic questions")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn(ctx, "Failed to close rows", map[string]interface{}{"error": closeErr.Error()})
		}
	}()

	var questions []models.BasicQuestion
	for rows.Next() {
		q, scanErr := scanBasicQuestion(rows)
		if scanErr != nil {
			return nil, contextutils.WrapError(scanErr, "failed to scan basic question row")
		}
		questions = append(questions, *q)
	}
	if err = rows.Err(); err != nil {
		return nil, contextutils.WrapError(err, "failed to iterate basic question rows")
	}

	return questions, nil
}

// GetBasicQuestionByTopic returns the catalog entry for a topic or ErrRecordNotFound
func (s *RequestService) GetBasicQuestionByTopic(ctx context.Context, topic string) (result0 *models.BasicQuestion, err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "GetBasicQuestionByTopic",
		observability.AttributeTopic(topic),
	)
	defer observability.FinishSpan(span, &err)

	topic = contextutils.NormalizeTopic(topic)
	q, err := scanBasicQuestion(s.db.QueryRowContext(ctx,
		"SELECT "+basicQuestionColumns+" FROM basic_questions WHERE topic = $1", topic))
	if err == sql.ErrNoRows {
		return nil, contextutils.WrapErrorf(contextutils.ErrRecordNotFound, "no canned answer for topic %q", topic)
	}
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get basic question")
	}

	return q, nil
}

// CreateBasicQuestion adds a catalog entry
func (s *RequestService) CreateBasicQuestion(ctx context.Context, input *models.BasicQuestionInput) (result0 *models.BasicQuestion, err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "CreateBasicQuestion",
		observability.AttributeTopic(input.Topic),
	)
	defer observability.FinishSpan(span, &err)

	q, err := scanBasicQuestion(s.db.QueryRowContext(ctx, `
		INSERT INTO basic_questions (topic, answer)
		VALUES ($1, $2)
		RETURNING `+basicQuestionColumns,
		input.Topic, input.Answer))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, contextutils.WrapErrorf(contextutils.ErrRecordExists, "topic %q already has a canned answer", input.Topic)
		}
		return nil, contextutils.WrapError(err, "failed to create basic question")
	}

	return q, nil
}

// UpdateBasicQuestion applies a partial edit to a catalog entry. Absent
// fields keep their stored value.
func (s *RequestService) UpdateBasicQuestion(ctx context.Context, id string, input *models.UpdateBasicQuestionInput) (result0 *models.BasicQuestion, err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "UpdateBasicQuestion")
	defer observability.FinishSpan(span, &err)

	if input.Topic == nil && input.Answer == nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidInput, "no fields to update")
	}

	q, err := scanBasicQuestion(s.db.QueryRowContext(ctx, `
		UPDATE basic_questions
		SET topic = COALESCE($2, topic), answer = COALESCE($3, answer), updated_at = NOW()
		WHERE id = $1
		RETURNING `+basicQuestionColumns,
		id, input.Topic, input.Answer))
	if err == sql.ErrNoRows {
		return nil, contextutils.WrapErrorf(contextutils.ErrRecordNotFound, "basic question %s not found", id)
	}
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to update basic question")
	}

	return q, nil
}

// DeleteBasicQuestion removes a catalog entry
func (s *RequestService) DeleteBasicQuestion(ctx context.Context, id string) (err error) {
	ctx, span := observability.TraceRequestFunction(ctx, "DeleteBasicQuestion")
	defer observability.FinishSpan(span, &err)

	res, err := s.db.ExecContext(ctx, "DELETE FROM basic_questions WHERE id = $1", id)
	if err != nil {
		return contextutils.WrapError(err, "failed to delete basic question")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return contextutils.WrapError(err, "failed to read rows affected")
	}
	if affected == 0 {
		return contextutils.WrapErrorf(contextutils.ErrRecordNotFound, "basic question %s not found", id)
	}

	return nil
}
