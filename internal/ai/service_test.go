package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fluidbook/internal/repo"
	"fluidbook/pkg/models"

	"github.com/google/uuid"
)

type scriptedGenerator struct {
	replies []string
	err     error
	prompts []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

type fakeMetrics struct{}

func (fakeMetrics) CountBookings() (int64, error)                   { return 42, nil }
func (fakeMetrics) CountBookingsOn(string) (int64, error)           { return 2, nil }
func (fakeMetrics) CountBookingsSince(string) (int64, error)        { return 10, nil }
func (fakeMetrics) CountBookingsBetween(_, _ string) (int64, error) { return 8, nil }
func (fakeMetrics) SumRevenue() (float64, error)                    { return 6300, nil }
func (fakeMetrics) SumRevenueSince(string) (float64, error)         { return 1500, nil }
func (fakeMetrics) SumRevenueBetween(_, _ string) (float64, error)  { return 1200, nil }
func (fakeMetrics) GetPendingPayments() (*repo.PendingPayments, error) {
	return &repo.PendingPayments{Count: 3, Amount: 450}, nil
}
func (fakeMetrics) GetServicePopularity() ([]repo.ServicePopularity, error) {
	return []repo.ServicePopularity{{Name: "Interior Detailing", BookingCount: 20, TotalRevenue: 3000}}, nil
}
func (fakeMetrics) GetUpcomingBookings(string, int) ([]models.Booking, error) { return nil, nil }
func (fakeMetrics) GetRepeatCustomers(int) ([]repo.CustomerSummary, error)    { return nil, nil }
func (fakeMetrics) GetAllCustomers() ([]repo.CustomerSummary, error) {
	return []repo.CustomerSummary{{
		CustomerEmail: "alex@example.com",
		CustomerName:  "Alex Chen",
		CustomerPhone: "5551234567",
		BookingCount:  4,
		TotalSpent:    580,
		FirstBooking:  "2024-03-02",
		LastBooking:   "2024-12-01",
		BookingDates:  "2024-12-01,2024-10-15,2024-06-20,2024-03-02",
	}}, nil
}
func (fakeMetrics) GetDayOfWeekTrends(string) ([]repo.DayOfWeekTrend, error) {
	return []repo.DayOfWeekTrend{{DayOfWeek: 6, BookingCount: 12}}, nil
}

type fakeAssistantCatalog struct {
	services    []models.Service
	priceErr    error
	updatedID   uuid.UUID
	updatedTo   float64
	priceCalled bool
}

func (f *fakeAssistantCatalog) List(activeOnly bool) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeAssistantCatalog) UpdatePrice(id uuid.UUID, price float64) (*models.Service, error) {
	f.priceCalled = true
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	f.updatedID = id
	f.updatedTo = price
	for i := range f.services {
		if f.services[i].ID == id {
			f.services[i].Price = &price
			return &f.services[i], nil
		}
	}
	return nil, errors.New("record not found")
}

type fakeSchedule struct {
	blocked map[string]string
}

func (f *fakeSchedule) CreateBlockedDate(b *models.BlockedDate) error {
	if f.blocked == nil {
		f.blocked = make(map[string]string)
	}
	if _, exists := f.blocked[b.Date]; exists {
		return repo.ErrDateAlreadyBlocked
	}
	f.blocked[b.Date] = b.Reason
	return nil
}

func priceOf(v float64) *float64 { return &v }

func newTestAssistant(gen Generator) (*AssistantService, *fakeAssistantCatalog, *fakeSchedule) {
	catalog := &fakeAssistantCatalog{services: []models.Service{
		{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Interior Detailing", DurationMinutes: 120, Price: priceOf(150), IsActive: true},
	}}
	schedule := &fakeSchedule{}
	return NewAssistantService(gen, fakeMetrics{}, catalog, schedule), catalog, schedule
}

func TestAskPlainTextAnswer(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"  Your busiest day is Saturday.  \n"}}
	svc, _, _ := newTestAssistant(gen)

	resp, err := svc.Ask(context.Background(), "What is my busiest day?")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if resp.ActionExecuted {
		t.Error("no action should be executed for plain text")
	}
	if resp.ActionResult != nil {
		t.Error("actionResult should be nil for plain text")
	}
	if resp.Answer != "Your busiest day is Saturday." {
		t.Errorf("answer = %q, want trimmed raw text", resp.Answer)
	}
}

func TestAskPromptGroundsQuestionAndMetrics(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"ok"}}
	svc, _, _ := newTestAssistant(gen)

	if _, err := svc.Ask(context.Background(), `How is "revenue" trending?`); err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Total bookings (all time): 42") {
		t.Error("prompt missing booking statistics")
	}
	if !strings.Contains(prompt, "Busiest day of week: Saturday") {
		t.Error("prompt missing busiest day")
	}
	if strings.Contains(prompt, `"revenue"`) {
		t.Error("double quotes in the question must be neutralized")
	}
	if !strings.Contains(prompt, "'revenue'") {
		t.Error("neutralized question missing from prompt")
	}
}

func TestAskBlockDateThenDuplicateIsNonFatal(t *testing.T) {
	directive := `{"action": "BLOCK_DATE", "params": {"date": "2024-12-25", "reason": "Holiday"}}`
	gen := &scriptedGenerator{replies: []string{directive}}
	svc, _, schedule := newTestAssistant(gen)

	resp, err := svc.Ask(context.Background(), "Block Christmas please")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if !resp.ActionExecuted {
		t.Fatal("expected actionExecuted=true")
	}
	if resp.ActionResult == nil || !resp.ActionResult.Success {
		t.Fatalf("actionResult = %+v, want success", resp.ActionResult)
	}
	if schedule.blocked["2024-12-25"] != "Holiday" {
		t.Error("blocked date was not persisted")
	}
	if !strings.Contains(resp.Answer, "2024-12-25") {
		t.Errorf("answer %q should mention the blocked date", resp.Answer)
	}

	// Same directive again: the duplicate is a reported outcome, not an error
	resp, err = svc.Ask(context.Background(), "Block Christmas please")
	if err != nil {
		t.Fatalf("second Ask returned error: %v", err)
	}
	if !resp.ActionExecuted {
		t.Error("duplicate block should still count as an executed action")
	}
	if resp.ActionResult == nil || resp.ActionResult.Success {
		t.Fatalf("actionResult = %+v, want explicit failure", resp.ActionResult)
	}
	if resp.ActionResult.Error != "Date already blocked" {
		t.Errorf("error = %q, want duplicate indicator", resp.ActionResult.Error)
	}
}

func TestAskUpdateServicePriceAnswerDerivesFromResult(t *testing.T) {
	gen := &scriptedGenerator{}
	svc, catalog, _ := newTestAssistant(gen)
	serviceID := catalog.services[0].ID
	gen.replies = []string{`{"action": "UPDATE_SERVICE_PRICE", "params": {"service_id": "` + serviceID.String() + `", "price": 175}}`}

	resp, err := svc.Ask(context.Background(), "Raise the interior price to 175")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if !resp.ActionExecuted || !resp.ActionResult.Success {
		t.Fatalf("result = %+v, want executed success", resp.ActionResult)
	}
	if catalog.updatedTo != 175 {
		t.Errorf("price updated to %v, want 175", catalog.updatedTo)
	}
	if !strings.Contains(resp.Answer, "Interior Detailing") || !strings.Contains(resp.Answer, "175") {
		t.Errorf("answer %q should reflect the executed change", resp.Answer)
	}
}

func TestAskFailedMutationIsReflectedInAnswer(t *testing.T) {
	gen := &scriptedGenerator{}
	svc, catalog, _ := newTestAssistant(gen)
	catalog.priceErr = errors.New("connection reset")
	gen.replies = []string{`{"action": "UPDATE_SERVICE_PRICE", "params": {"service_id": "` + catalog.services[0].ID.String() + `", "price": 175}}`}

	resp, err := svc.Ask(context.Background(), "Raise the price")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if resp.ActionResult == nil || resp.ActionResult.Success {
		t.Fatal("failed mutation must surface as a failure result")
	}
	if !strings.Contains(resp.Answer, "did not go through") {
		t.Errorf("answer %q must not claim success after a failed mutation", resp.Answer)
	}
}

func TestAskUnknownActionFallsThrough(t *testing.T) {
	raw := `{"action": "DELETE_EVERYTHING", "params": {}}`
	gen := &scriptedGenerator{replies: []string{raw}}
	svc, catalog, schedule := newTestAssistant(gen)

	resp, err := svc.Ask(context.Background(), "Do something weird")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if resp.ActionExecuted {
		t.Error("unknown action must not execute")
	}
	if resp.Answer != raw {
		t.Errorf("answer = %q, want raw generated text", resp.Answer)
	}
	if catalog.priceCalled || len(schedule.blocked) != 0 {
		t.Error("unknown action must not touch the store")
	}
}

func TestAskViewCustomer(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{`{"action": "VIEW_CUSTOMER", "params": {"email": "ALEX@example.com"}}`}}
	svc, _, _ := newTestAssistant(gen)

	resp, err := svc.Ask(context.Background(), "Show me Alex's history")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if !resp.ActionResult.Success {
		t.Fatalf("result = %+v, want success via case-insensitive email match", resp.ActionResult)
	}
	if !strings.Contains(resp.Answer, "Alex Chen") || !strings.Contains(resp.Answer, "$580.00") {
		t.Errorf("answer %q missing customer history", resp.Answer)
	}
}

func TestAskViewUnknownCustomer(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{`{"action": "VIEW_CUSTOMER", "params": {"email": "nobody@example.com"}}`}}
	svc, _, _ := newTestAssistant(gen)

	resp, err := svc.Ask(context.Background(), "Who is nobody?")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if !resp.ActionExecuted || resp.ActionResult.Success {
		t.Fatalf("result = %+v, want executed lookup with failure outcome", resp.ActionResult)
	}
}

func TestAskGenerateReport(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{`{"action": "GENERATE_REPORT", "params": {"type": "revenue"}}`}}
	svc, _, _ := newTestAssistant(gen)

	resp, err := svc.Ask(context.Background(), "Give me a revenue report")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	result := resp.ActionResult
	if result == nil || !result.Success || result.Report == nil {
		t.Fatalf("result = %+v, want report", result)
	}
	if !strings.Contains(result.Report.CSVData, "Total (All Time),$6300.00") {
		t.Errorf("report CSV = %q", result.Report.CSVData)
	}
	if result.DownloadURL == "" {
		t.Error("report should carry a download URL")
	}
}

func TestAskNewsletterUsesSecondGeneration(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{
		`{"action": "GENERATE_NEWSLETTER", "params": {"topic": "Winter prep", "promotion": "10% off"}}`,
		"```html\n<h1>Winter prep</h1>\n```",
	}}
	svc, _, _ := newTestAssistant(gen)

	resp, err := svc.Ask(context.Background(), "Send a winter newsletter")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	result := resp.ActionResult
	if result == nil || !result.Success || result.Newsletter == nil {
		t.Fatalf("result = %+v, want newsletter", result)
	}
	html := result.Newsletter.HTMLContent
	if strings.Contains(html, "```") {
		t.Error("markdown fences must be stripped")
	}
	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Error("bare fragment must be wrapped in a document skeleton")
	}
	if len(gen.prompts) != 2 {
		t.Errorf("generator called %d times, want 2", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[1], "Winter prep") || !strings.Contains(gen.prompts[1], "10% off") {
		t.Error("newsletter prompt missing topic/promotion")
	}
}

func TestAskGenerationFailureSurfaces(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("upstream down")}
	svc, _, _ := newTestAssistant(gen)

	_, err := svc.Ask(context.Background(), "anything")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed", err)
	}
}
