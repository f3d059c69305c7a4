package services

import (
	"context"
	"sync"

	"kingsadvice/internal/config"
	"kingsadvice/internal/models"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"
)

// FallbackCannedAnswer is served when a basic-tier topic has no catalog entry.
const FallbackCannedAnswer = "Thank you for your inquiry. Our standard advice is to focus on clear goal setting, metric tracking, and consistent execution."

// LifecycleService orchestrates what happens to a request after payment and
// after admin updates: tier resolution, notification emails, AI drafting.
// Emails are best effort and never fail the resolution itself.
type LifecycleService struct {
	requests serviceinterfaces.RequestService
	emails   serviceinterfaces.EmailService
	ai       serviceinterfaces.AIService
	logger   *observability.Logger

	// tracks detached notification tasks so tests can wait for them
	tasks sync.WaitGroup
}

// Ensure LifecycleService implements the LifecycleService interface
var _ serviceinterfaces.LifecycleService = (*LifecycleService)(nil)

// NewLifecycleService creates a new LifecycleService instance
func NewLifecycleService(
	requests serviceinterfaces.RequestService,
	emails serviceinterfaces.EmailService,
	ai serviceinterfaces.AIService,
	logger *observability.Logger,
) *LifecycleService {
	return &LifecycleService{
		requests: requests,
		emails:   emails,
		ai:       ai,
		logger:   logger,
	}
}

// ResolvePayment runs the tier-specific pipeline for a paid, still-pending
// request. A request that already left pending is returned unchanged, which
// makes paying twice or polling session status twice harmless.
func (s *LifecycleService) ResolvePayment(ctx context.Context, requestID string) (result0 *models.Request, err error) {
	ctx, span := observability.TraceLifecycleFunction(ctx, "ResolvePayment",
		observability.AttributeRequestID(requestID),
	)
	defer observability.FinishSpan(span, &err)

	req, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status != models.StatusPending {
		s.logger.Info(ctx, "Request already resolved, skipping", map[string]interface{}{
			"request_id": req.ID,
			"status":     req.Status,
		})
		return req, nil
	}

	switch req.Tier {
	case models.TierBasic:
		return s.resolveBasic(ctx, req)
	case models.TierMiddle:
		return s.resolveMiddle(ctx, req)
	case models.TierCustom:
		return s.resolveCustom(ctx, req)
	}

	return nil, contextutils.WrapErrorf(contextutils.ErrInvalidTier, "tier %q is not offered", req.Tier)
}

// ResolveBasicDirect resolves a basic-tier request created without payment
func (s *LifecycleService) ResolveBasicDirect(ctx context.Context, requestID string) (result0 *models.Request, err error) {
	ctx, span := observability.TraceLifecycleFunction(ctx, "ResolveBasicDirect",
		observability.AttributeRequestID(requestID),
	)
	defer observability.FinishSpan(span, &err)

	req, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Tier != models.TierBasic {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidTier, "request %s is not basic tier", requestID)
	}
	if req.Status != models.StatusPending {
		return req, nil
	}

	return s.resolveBasic(ctx, req)
}

// resolveBasic completes a basic-tier request with the canned catalog answer
func (s *LifecycleService) resolveBasic(ctx context.Context, req *models.Request) (*models.Request, error) {
	answer := FallbackCannedAnswer
	if canned, err := s.requests.GetBasicQuestionByTopic(ctx, req.SelectedTopic()); err == nil {
		answer = canned.Answer
	} else if !contextutils.IsError(err, contextutils.ErrRecordNotFound) {
		return nil, err
	}

	updated, err := s.requests.TransitionIfPending(ctx, req.ID, models.StatusCompleted, answer)
	if err != nil {
		if contextutils.IsError(err, contextutils.ErrRecordNotFound) {
			// Lost the race to another resolver, return the current state
			return s.requests.GetRequestByID(ctx, req.ID)
		}
		return nil, err
	}

	s.notify(updated, "basic_thank_you", func(ctx context.Context) error {
		return s.emails.SendBasicThankYou(ctx, updated, answer)
	})
	s.notifyAdmin(updated)

	return updated, nil
}

// resolveMiddle marks a middle-tier request processing and drafts the AI
// analysis as a detached task, so the payment poll returns before the
// provider answers.
func (s *LifecycleService) resolveMiddle(ctx context.Context, req *models.Request) (*models.Request, error) {
	updated, err := s.requests.TransitionIfPending(ctx, req.ID, models.StatusProcessing, "")
	if err != nil {
		if contextutils.IsError(err, contextutils.ErrRecordNotFound) {
			return s.requests.GetRequestByID(ctx, req.ID)
		}
		return nil, err
	}

	s.notifyAdmin(updated)
	s.detach(updated, "ai_analysis", func(ctx context.Context) error {
		return s.completeAIAnalysis(ctx, updated)
	})

	return updated, nil
}

// completeAIAnalysis drafts the analysis and moves a processing middle-tier
// request to completed. GenerateAnalysis never fails, so every middle-tier
// request reaches completed once this task runs.
func (s *LifecycleService) completeAIAnalysis(ctx context.Context, req *models.Request) error {
	analysis := s.ai.GenerateAnalysis(ctx, req.CustomerName, req.Description)

	status := models.StatusCompleted
	completed, err := s.requests.UpdateRequest(ctx, req.ID, &models.UpdateRequestInput{
		Status:   &status,
		Response: &analysis,
	})
	if err != nil {
		return err
	}

	s.notify(completed, "ai_analyst_thank_you", func(ctx context.Context) error {
		return s.emails.SendAIAnalystThankYou(ctx, completed, analysis)
	})

	return nil
}

// resolveCustom hands a custom-tier request to the human expert queue
func (s *LifecycleService) resolveCustom(ctx context.Context, req *models.Request) (*models.Request, error) {
	updated, err := s.requests.TransitionIfPending(ctx, req.ID, models.StatusProcessing, "")
	if err != nil {
		if contextutils.IsError(err, contextutils.ErrRecordNotFound) {
			return s.requests.GetRequestByID(ctx, req.ID)
		}
		return nil, err
	}

	s.notify(updated, "expert_confirmation", func(ctx context.Context) error {
		return s.emails.SendExpertRequestConfirmation(ctx, updated)
	})
	s.notifyAdmin(updated)

	return updated, nil
}

// HandleAdminUpdate applies an admin's change to a request. When the change
// delivers a new or revised expert response on a custom-tier request, the
// customer is notified; re-saving an identical completed response is not.
func (s *LifecycleService) HandleAdminUpdate(ctx context.Context, id string, input *models.UpdateRequestInput) (result0 *models.Request, err error) {
	ctx, span := observability.TraceLifecycleFunction(ctx, "HandleAdminUpdate",
		observability.AttributeRequestID(id),
	)
	defer observability.FinishSpan(span, &err)

	before, err := s.requests.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Saving the same completed expert response again is a no-op, so a
	// double-clicked submit cannot email the customer twice.
	if before.Tier == models.TierCustom &&
		before.Status == models.StatusCompleted &&
		before.HasResponse() &&
		input.Response != nil && *input.Response == before.Response.String &&
		(input.Status == nil || *input.Status == models.StatusCompleted) {
		return before, nil
	}

	after, err := s.requests.UpdateRequest(ctx, id, input)
	if err != nil {
		return nil, err
	}

	if s.expertResponseDelivered(before, after) {
		response := after.ResponseText()
		s.notify(after, "expert_response_ready", func(ctx context.Context) error {
			return s.emails.SendExpertResponseReady(ctx, after, response)
		})
	}

	return after, nil
}

// expertResponseDelivered reports whether the update just delivered a new or
// revised expert response to a custom-tier customer.
func (s *LifecycleService) expertResponseDelivered(before, after *models.Request) bool {
	if after.Tier != models.TierCustom || after.Status != models.StatusCompleted || !after.HasResponse() {
		return false
	}
	return before.Status != models.StatusCompleted || before.ResponseText() != after.ResponseText()
}

// notifyAdmin alerts the portal operator about a freshly paid request
func (s *LifecycleService) notifyAdmin(req *models.Request) {
	s.notify(req, "admin_notification", func(ctx context.Context) error {
		return s.emails.SendAdminNotification(ctx, req)
	})
}

// notify runs an email send detached from the originating request so slow
// SMTP servers never delay the HTTP response. Failures are logged only.
func (s *LifecycleService) notify(req *models.Request, scenario string, send func(ctx context.Context) error) {
	s.detach(req, scenario, send)
}

// detach runs a unit of work in the background, tracked by the WaitGroup so
// shutdown and tests can drain it. Failures are logged, never observed by
// the caller.
func (s *LifecycleService) detach(req *models.Request, task string, fn func(ctx context.Context) error) {
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()

		ctx, cancel := context.WithTimeout(context.Background(), config.BackgroundTaskTimeout)
		defer cancel()

		ctx, span := observability.TraceLifecycleFunction(ctx, "detach",
			observability.AttributeRequestID(req.ID),
			observability.AttributeEmailScenario(task),
		)
		defer span.End()

		if err := fn(ctx); err != nil {
			s.logger.Warn(ctx, "Detached task failed", map[string]interface{}{
				"request_id": req.ID,
				"task":       task,
				"error":      err.Error(),
			})
		}
	}()
}

// WaitForNotifications blocks until all detached notification tasks finish
func (s *LifecycleService) WaitForNotifications() {
	s.tasks.Wait()
}
