package ai

import (
	"encoding/csv"
	"strings"
	"testing"

	"fluidbook/internal/repo"
	"fluidbook/pkg/models"

	"github.com/google/uuid"
)

func snapshotForReports() *BusinessContext {
	svcID := uuid.New()
	return &BusinessContext{
		CurrentDate: "2025-01-06",
		Services: []models.Service{
			{BaseModel: models.BaseModel{ID: svcID}, Name: "Full Detail", DurationMinutes: 180, Price: priceOf(250), IsActive: true},
		},
		Statistics: Statistics{
			TotalBookings: 42,
			TodayBookings: 2,
			WeekBookings:  10,
			MonthBookings: 8,
			YearBookings:  40,
			TotalRevenue:  6300,
			MonthRevenue:  1200,
			YearRevenue:   6000,
		},
		ServicePopularity: []repo.ServicePopularity{
			{ID: svcID, Name: "Full Detail", Price: 250, BookingCount: 20, TotalRevenue: 5000},
		},
		AllCustomers: []repo.CustomerSummary{
			{CustomerEmail: "alex@example.com", CustomerName: "Alex Chen", CustomerPhone: "5551234567",
				BookingCount: 4, TotalSpent: 580, FirstBooking: "2024-03-02", LastBooking: "2024-12-01"},
		},
	}
}

func parseCSV(t *testing.T, data string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}
	return rows
}

func TestBuildRevenueReport(t *testing.T) {
	report, err := BuildReport("revenue", snapshotForReports())
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}
	if report.Type != "revenue" {
		t.Errorf("type = %q, want revenue", report.Type)
	}
	if !strings.HasPrefix(report.Filename, "revenue_report_") || !strings.HasSuffix(report.Filename, ".csv") {
		t.Errorf("filename = %q", report.Filename)
	}

	rows := parseCSV(t, report.CSVData)
	want := [][]string{
		{"Period", "Revenue"},
		{"Total (All Time)", "$6300.00"},
		{"This Month", "$1200.00"},
		{"This Year", "$6000.00"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %v", len(rows), len(want), rows)
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestBuildBookingsReport(t *testing.T) {
	report, err := BuildReport("bookings", snapshotForReports())
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}
	rows := parseCSV(t, report.CSVData)
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want header plus five periods", len(rows))
	}
	if rows[1][0] != "Total (All Time)" || rows[1][1] != "42" {
		t.Errorf("total row = %v", rows[1])
	}
	if rows[2][1] != "2" || rows[3][1] != "10" {
		t.Errorf("today/week rows = %v / %v", rows[2], rows[3])
	}
}

func TestBuildServicesReportJoinsDuration(t *testing.T) {
	report, err := BuildReport("services", snapshotForReports())
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}
	rows := parseCSV(t, report.CSVData)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one service", len(rows))
	}
	row := rows[1]
	if row[0] != "Full Detail" || row[1] != "20" || row[2] != "$250.00" {
		t.Errorf("service row = %v", row)
	}
	// Duration comes from the catalog entry matched by id, not the popularity row
	if row[3] != "180" {
		t.Errorf("duration = %q, want 180", row[3])
	}
	if row[4] != "$5000.00" {
		t.Errorf("revenue = %q", row[4])
	}
}

func TestBuildCustomersReport(t *testing.T) {
	report, err := BuildReport("customers", snapshotForReports())
	if err != nil {
		t.Fatalf("BuildReport returned error: %v", err)
	}
	rows := parseCSV(t, report.CSVData)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one customer", len(rows))
	}
	row := rows[1]
	if row[0] != "Alex Chen" || row[1] != "alex@example.com" || row[3] != "4" || row[4] != "$580.00" {
		t.Errorf("customer row = %v", row)
	}
}

func TestBuildReportUnknownType(t *testing.T) {
	if _, err := BuildReport("payroll", snapshotForReports()); err == nil {
		t.Fatal("expected error for unknown report type")
	}
}

func TestNormalizeNewsletterHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want func(t *testing.T, out string)
	}{
		{
			name: "complete document passes through",
			in:   "<!DOCTYPE html>\n<html><body><p>hi</p></body></html>",
			want: func(t *testing.T, out string) {
				if out != "<!DOCTYPE html>\n<html><body><p>hi</p></body></html>" {
					t.Errorf("out = %q", out)
				}
			},
		},
		{
			name: "fenced document is unwrapped not rewrapped",
			in:   "```html\n<html><body>x</body></html>\n```",
			want: func(t *testing.T, out string) {
				if strings.Contains(out, "```") {
					t.Error("fences survived")
				}
				if strings.Count(out, "<html") != 1 {
					t.Errorf("document wrapped twice: %q", out)
				}
			},
		},
		{
			name: "bare fragment gets a skeleton",
			in:   "<h1>Spring Special</h1>",
			want: func(t *testing.T, out string) {
				if !strings.HasPrefix(out, "<!DOCTYPE html>") {
					t.Errorf("missing doctype: %q", out)
				}
				if !strings.Contains(out, "<h1>Spring Special</h1>") {
					t.Error("fragment content lost")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, normalizeNewsletterHTML(tt.in))
		})
	}
}
