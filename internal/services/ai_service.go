package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kingsadvice/internal/config"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AIService drafts consultant-style analyses against an OpenAI-compatible
// chat completions endpoint. It never surfaces provider failures: when the
// provider is disabled or unreachable a deterministic keyword fallback is
// used so a middle-tier customer always receives an analysis.
type AIService struct {
	cfg        *config.Config
	logger     *observability.Logger
	httpClient *http.Client
}

// Ensure AIService implements the AIService interface
var _ serviceinterfaces.AIService = (*AIService)(nil)

// NewAIService creates a new AIService instance
func NewAIService(cfg *config.Config, logger *observability.Logger) *AIService {
	return &AIService{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout:   config.AIRequestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// OpenAIRequest represents a request to the OpenAI-compatible API
type OpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Message represents a chat message in the API request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIResponse represents a response from the OpenAI-compatible API
type OpenAIResponse struct {
	Choices []Choice  `json:"choices"`
	Error   *APIError `json:"error,omitempty"`
}

// Choice represents a choice in the API response
type Choice struct {
	Message Message `json:"message"`
}

// APIError represents an error response from the API
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// IsEnabled returns whether a generative provider is configured
func (s *AIService) IsEnabled() bool {
	return s.cfg.AI.Enabled && s.cfg.AI.URL != "" && s.cfg.AI.Model != ""
}

// GenerateAnalysis drafts a consultant-style answer for a customer's
// description. Provider failures degrade to the keyword fallback rather than
// propagating.
func (s *AIService) GenerateAnalysis(ctx context.Context, customerName, description string) string {
	ctx, span := observability.TraceAIFunction(ctx, "GenerateAnalysis",
		attribute.Int("description.length", len(description)),
		attribute.Bool("ai.enabled", s.IsEnabled()),
	)
	defer span.End()

	if !s.IsEnabled() {
		s.logger.Info(ctx, "AI provider not configured, using fallback analysis", nil)
		span.SetAttributes(attribute.String("analysis.source", "fallback"))
		return FallbackAnalysis(description)
	}

	analysis, err := s.callChatCompletions(ctx, customerName, description)
	if err != nil {
		s.logger.Warn(ctx, "AI provider call failed, using fallback analysis", map[string]interface{}{
			"error": err.Error(),
		})
		span.SetAttributes(attribute.String("analysis.source", "fallback"))
		return FallbackAnalysis(description)
	}

	span.SetAttributes(
		attribute.String("analysis.source", "provider"),
		attribute.Int("analysis.length", len(analysis)),
	)
	return analysis
}

// callChatCompletions makes a request to the OpenAI-compatible API
func (s *AIService) callChatCompletions(ctx context.Context, customerName, description string) (result0 string, err error) {
	_, span := observability.TraceAIFunction(ctx, "call_chat_completions",
		attribute.String("ai.model", s.cfg.AI.Model),
		attribute.Int("prompt.length", len(description)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err, trace.WithStackTrace(true))
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	prompt := buildAnalysisPrompt(customerName, description)
	maxTokens := s.cfg.AI.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 600
	}

	reqBody := OpenAIRequest{
		Model:       s.cfg.AI.Model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		span.SetAttributes(attribute.String("call.result", "marshal_failed"))
		return "", contextutils.WrapError(err, "failed to marshal AI request")
	}

	apiURL := strings.TrimSuffix(s.cfg.AI.URL, "/")
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		span.SetAttributes(attribute.String("call.result", "request_creation_failed"))
		return "", contextutils.WrapError(err, "failed to create HTTP request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "kingsadvice/1.0")
	if s.cfg.AI.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.AI.APIKey)
	}

	startTime := time.Now()
	resp, err := s.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		span.SetAttributes(attribute.String("call.result", "http_request_failed"), attribute.String("duration", duration.String()))
		return "", contextutils.WrapErrorf(err, "HTTP request failed after %v", duration)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.logger.Warn(ctx, "Failed to close response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetAttributes(attribute.String("call.result", "body_read_failed"))
		return "", contextutils.WrapError(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		span.SetAttributes(attribute.String("call.result", "http_error"), attribute.Int("status_code", resp.StatusCode))
		return "", contextutils.WrapErrorf(contextutils.ErrAIRequestFailed, "API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err = json.Unmarshal(body, &openAIResp); err != nil {
		span.SetAttributes(attribute.String("call.result", "json_unmarshal_failed"))
		return "", contextutils.WrapErrorf(contextutils.ErrAIResponseInvalid, "failed to parse AI response as JSON: %w", err)
	}

	if openAIResp.Error != nil {
		span.SetAttributes(attribute.String("call.result", "api_error"), attribute.String("error_type", openAIResp.Error.Type))
		return "", contextutils.WrapErrorf(contextutils.ErrAIRequestFailed, "provider error: %s", openAIResp.Error.Message)
	}

	if len(openAIResp.Choices) == 0 {
		span.SetAttributes(attribute.String("call.result", "no_choices"))
		return "", contextutils.WrapError(contextutils.ErrAIResponseInvalid, "no choices in provider response")
	}

	content := strings.TrimSpace(openAIResp.Choices[0].Message.Content)
	if content == "" {
		span.SetAttributes(attribute.String("call.result", "empty_content"))
		return "", contextutils.WrapError(contextutils.ErrAIResponseInvalid, "provider returned empty content")
	}

	span.SetAttributes(attribute.String("call.result", "success"), attribute.Int("content_length", len(content)))
	return content, nil
}

// buildAnalysisPrompt builds the consultant prompt for a customer request
func buildAnalysisPrompt(customerName, description string) string {
	return fmt.Sprintf(`You are an expert business consultant at a premium consulting service.
Provide thoughtful, actionable business advice based on the customer's specific request.
Be professional but approachable. Structure your response with clear sections.
Keep your response concise but valuable, around 200-300 words.
Focus on practical, implementable recommendations.

Customer: %s

Business Request: %s`, customerName, description)
}

// FallbackAnalysis produces a deterministic consultant answer keyed off
// recognizable business terms in the description.
func FallbackAnalysis(description string) string {
	analysis := "AI Consultant Analysis:\n\n"
	q := strings.ToLower(description)

	switch {
	case strings.Contains(q, "market") || strings.Contains(q, "sell") || strings.Contains(q, "customer"):
		analysis += "Based on your query about market/sales:\n" +
			"1. Analyze your current customer acquisition cost (CAC).\n" +
			"2. Segment your audience for personalized messaging.\n" +
			"3. Consider a referral program to leverage existing happy customers."
	case strings.Contains(q, "employee") || strings.Contains(q, "team") || strings.Contains(q, "culture"):
		analysis += "Regarding your team/culture query:\n" +
			"1. Foster psychological safety to encourage innovation.\n" +
			"2. Review your compensation packages against market rates.\n" +
			"3. Invest in professional development opportunities."
	case strings.Contains(q, "money") || strings.Contains(q, "profit") || strings.Contains(q, "cost"):
		analysis += "Financial Analysis:\n" +
			"1. Audit your recurring subscriptions and cut unused tools.\n" +
			"2. Negotiate better terms with key suppliers.\n" +
			"3. Focus on increasing the Lifetime Value (LTV) of existing clients."
	default:
		analysis += "Based on your input, we recommend a SWOT analysis to identify internal strengths " +
			"and external opportunities. Ensure your strategic goals are SMART " +
			"(Specific, Measurable, Achievable, Relevant, Time-bound)."
	}

	return analysis
}
