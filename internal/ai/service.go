// Package ai implements the admin assistant: it grounds a text-generation
// call in a fresh business-metrics snapshot, interprets the response for an
// embedded action directive, and executes at most one recognized action
// against the booking store. Only the five named action handlers can mutate
// state; the generation service only ever sees a read-only digest.
package ai

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fluidbook/internal/repo"
	"fluidbook/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// ErrGenerationFailed marks upstream generation-service failures so the
// request boundary can report them distinctly from internal errors
var ErrGenerationFailed = errors.New("generation service failed")

// Generator produces one text completion for one prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// openaiGenerator is the production Generator backed by the OpenAI chat API
type openaiGenerator struct {
	client *openai.Client
}

// NewOpenAIGenerator creates the production generator
func NewOpenAIGenerator(apiKey string) Generator {
	// Custom HTTP client with TLS configuration for macOS compatibility
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: false,
			},
		},
	}

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = httpClient
	return &openaiGenerator{client: openai.NewClientWithConfig(config)}
}

func (g *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxCompletionTokens: 8000,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ActionResult is the structured outcome of one executed action
type ActionResult struct {
	Success     bool                  `json:"success"`
	Error       string                `json:"error,omitempty"`
	BlockedDate *models.BlockedDate   `json:"blocked_date,omitempty"`
	Service     *models.Service       `json:"service,omitempty"`
	Report      *Report               `json:"report,omitempty"`
	Customer    *repo.CustomerSummary `json:"customer,omitempty"`
	Newsletter  *Newsletter           `json:"newsletter,omitempty"`
	DownloadURL string                `json:"download_url,omitempty"`
}

// Response is the fixed-shape assistant result
type Response struct {
	Success        bool          `json:"success"`
	Question       string        `json:"question"`
	Answer         string        `json:"answer"`
	ActionExecuted bool          `json:"actionExecuted"`
	ActionResult   *ActionResult `json:"actionResult"`
	Timestamp      time.Time     `json:"timestamp"`
}

// AssistantService answers operator questions and dispatches actions
type AssistantService struct {
	generator Generator
	metrics   MetricsStore
	catalog   CatalogStore
	schedule  ScheduleStore
}

// NewAssistantService creates a new assistant service
func NewAssistantService(generator Generator, metrics MetricsStore, catalog CatalogStore, schedule ScheduleStore) *AssistantService {
	return &AssistantService{
		generator: generator,
		metrics:   metrics,
		catalog:   catalog,
		schedule:  schedule,
	}
}

// Ask runs one dispatch cycle: build snapshot, generate, parse, execute at
// most one action, respond. Ambiguous or malformed directives degrade to a
// plain-text answer; only snapshot assembly and generation failures are
// returned as errors.
func (s *AssistantService) Ask(ctx context.Context, question string) (*Response, error) {
	bc, err := BuildBusinessContext(s.metrics, s.catalog, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to build business context: %w", err)
	}

	prompt := buildPrompt(bc, question)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("Assistant generation call failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	answer := strings.TrimSpace(raw)

	response := &Response{
		Success:   true,
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now(),
	}

	directive, ok := ExtractDirective(answer)
	if !ok {
		return response, nil
	}

	result, actionAnswer := s.executeAction(ctx, directive, bc)
	if result == nil {
		// Unrecognized action value: fall through untouched
		return response, nil
	}

	log.Info().
		Str("action", directive.Action).
		Bool("success", result.Success).
		Msg("Assistant action executed")

	response.Answer = actionAnswer
	response.ActionExecuted = true
	response.ActionResult = result
	return response, nil
}

// executeAction dispatches exactly one directive. The returned answer text
// always derives from the actual handler outcome, never from the directive
// alone; storage failures are reported, not raised.
func (s *AssistantService) executeAction(ctx context.Context, directive *ActionDirective, bc *BusinessContext) (*ActionResult, string) {
	switch directive.Action {
	case ActionBlockDate:
		return s.executeBlockDate(directive.Params)
	case ActionUpdateServicePrice:
		return s.executeUpdateServicePrice(directive.Params)
	case ActionGenerateReport:
		return s.executeGenerateReport(directive.Params, bc)
	case ActionViewCustomer:
		return s.executeViewCustomer(directive.Params, bc)
	case ActionGenerateNewsletter:
		return s.executeGenerateNewsletter(ctx, directive.Params, bc)
	default:
		return nil, ""
	}
}

func (s *AssistantService) executeBlockDate(params ActionParams) (*ActionResult, string) {
	reason := params.Reason
	if reason == "" {
		reason = "Blocked via assistant"
	}

	blocked := &models.BlockedDate{Date: params.Date, Reason: reason}
	err := s.schedule.CreateBlockedDate(blocked)
	if err == repo.ErrDateAlreadyBlocked {
		result := &ActionResult{Success: false, Error: "Date already blocked"}
		return result, fmt.Sprintf("%s is already blocked, so I left it as it is.", params.Date)
	}
	if err != nil {
		result := &ActionResult{Success: false, Error: err.Error()}
		return result, fmt.Sprintf("I tried to block %s but the change did not go through: %v", params.Date, err)
	}

	result := &ActionResult{Success: true, BlockedDate: blocked}
	answer := fmt.Sprintf("I've blocked %s for you. Reason: %s. This date is now unavailable for bookings.", params.Date, reason)
	return result, answer
}

func (s *AssistantService) executeUpdateServicePrice(params ActionParams) (*ActionResult, string) {
	if params.Price == nil {
		return &ActionResult{Success: false, Error: "price missing"}, "I couldn't update the price: the directive did not include one."
	}

	serviceID, err := uuid.Parse(params.ServiceID)
	if err != nil {
		return &ActionResult{Success: false, Error: "invalid service id"}, "I couldn't update the price: the service id was not recognized."
	}

	service, err := s.catalog.UpdatePrice(serviceID, *params.Price)
	if err != nil {
		result := &ActionResult{Success: false, Error: err.Error()}
		return result, fmt.Sprintf("I tried to update the price but the change did not go through: %v", err)
	}

	result := &ActionResult{Success: true, Service: service}
	answer := fmt.Sprintf("I've updated the price for %q to $%.2f. The change is now live on your booking page.", service.Name, *params.Price)
	return result, answer
}

func (s *AssistantService) executeGenerateReport(params ActionParams, bc *BusinessContext) (*ActionResult, string) {
	report, err := BuildReport(params.Type, bc)
	if err != nil {
		result := &ActionResult{Success: false, Error: err.Error()}
		return result, fmt.Sprintf("I couldn't generate that report: %v", err)
	}

	result := &ActionResult{
		Success:     true,
		Report:      report,
		DownloadURL: reportDownloadURL(report.CSVData, report.Filename),
	}
	answer := fmt.Sprintf("I've generated a %s report. You can download it using the link provided.", report.Type)
	return result, answer
}

func (s *AssistantService) executeViewCustomer(params ActionParams, bc *BusinessContext) (*ActionResult, string) {
	customer := bc.FindCustomer(params.Email)
	if customer == nil {
		result := &ActionResult{Success: false, Error: "customer not found"}
		return result, fmt.Sprintf("Customer not found with email: %s", params.Email)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customer history for %s:\n", customer.CustomerName)
	fmt.Fprintf(&b, "- Total bookings: %d\n", customer.BookingCount)
	fmt.Fprintf(&b, "- Total spent: $%.2f\n", customer.TotalSpent)
	fmt.Fprintf(&b, "- First booking: %s\n", customer.FirstBooking)
	fmt.Fprintf(&b, "- Last booking: %s\n", customer.LastBooking)
	fmt.Fprintf(&b, "- Email: %s\n", customer.CustomerEmail)
	fmt.Fprintf(&b, "- Phone: %s\n", customer.CustomerPhone)
	fmt.Fprintf(&b, "- Recent booking dates: %s", strings.Join(customer.RecentBookingDates(5), ", "))

	return &ActionResult{Success: true, Customer: customer}, b.String()
}

func (s *AssistantService) executeGenerateNewsletter(ctx context.Context, params ActionParams, bc *BusinessContext) (*ActionResult, string) {
	newsletter, err := s.generateNewsletter(ctx, params, bc)
	if err != nil {
		result := &ActionResult{Success: false, Error: err.Error()}
		return result, fmt.Sprintf("I couldn't generate the newsletter: %v", err)
	}

	result := &ActionResult{
		Success:     true,
		Newsletter:  newsletter,
		DownloadURL: reportDownloadURL(newsletter.HTMLContent, newsletter.Filename),
	}
	return result, "I've generated a newsletter for you! The HTML email is ready to send. Check the download link below."
}

func reportDownloadURL(data, filename string) string {
	return fmt.Sprintf("/api/v1/admin/reports/download?data=%s&filename=%s",
		url.QueryEscape(data), url.QueryEscape(filename))
}
