package ai

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// Report is a generated CSV artifact. It is returned inline and never
// persisted server-side; download is a separate fetch-by-embedded-data call.
type Report struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	CSVData  string `json:"csv_data"`
}

// BuildReport renders one of the fixed report types from the snapshot
func BuildReport(reportType string, bc *BusinessContext) (*Report, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	stats := bc.Statistics
	switch reportType {
	case "revenue":
		w.Write([]string{"Period", "Revenue"})
		w.Write([]string{"Total (All Time)", money(stats.TotalRevenue)})
		w.Write([]string{"This Month", money(stats.MonthRevenue)})
		w.Write([]string{"This Year", money(stats.YearRevenue)})

	case "bookings":
		w.Write([]string{"Period", "Count"})
		w.Write([]string{"Total (All Time)", strconv.FormatInt(stats.TotalBookings, 10)})
		w.Write([]string{"Today", strconv.FormatInt(stats.TodayBookings, 10)})
		w.Write([]string{"This Week", strconv.FormatInt(stats.WeekBookings, 10)})
		w.Write([]string{"This Month", strconv.FormatInt(stats.MonthBookings, 10)})
		w.Write([]string{"This Year", strconv.FormatInt(stats.YearBookings, 10)})

	case "services":
		w.Write([]string{"Service Name", "Booking Count", "Price", "Duration (min)", "Total Revenue"})
		for _, s := range bc.ServicePopularity {
			duration := 0
			for _, svc := range bc.Services {
				if svc.ID == s.ID {
					duration = svc.DurationMinutes
					break
				}
			}
			w.Write([]string{
				s.Name,
				strconv.FormatInt(s.BookingCount, 10),
				money(s.Price),
				strconv.Itoa(duration),
				money(s.TotalRevenue),
			})
		}

	case "customers":
		w.Write([]string{"Customer Name", "Email", "Phone", "Total Bookings", "Total Spent", "First Booking", "Last Booking"})
		for _, c := range bc.AllCustomers {
			w.Write([]string{
				c.CustomerName,
				c.CustomerEmail,
				c.CustomerPhone,
				strconv.FormatInt(c.BookingCount, 10),
				money(c.TotalSpent),
				c.FirstBooking,
				c.LastBooking,
			})
		}

	default:
		return nil, fmt.Errorf("unknown report type: %s", reportType)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return &Report{
		Type:     reportType,
		Filename: fmt.Sprintf("%s_report_%d.csv", reportType, time.Now().UnixMilli()),
		CSVData:  buf.String(),
	}, nil
}

func money(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}
