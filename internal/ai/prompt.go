package ai

import (
	"fmt"
	"strings"
)

var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// buildPrompt renders the fixed grounding template for one assistant call.
// The operator question is untrusted text; its double quotes are neutralized
// before embedding so the quoted question cannot break out of the template.
func buildPrompt(bc *BusinessContext, question string) string {
	var b strings.Builder

	busiestDay := "N/A"
	if len(bc.DayOfWeekTrends) > 0 {
		d := bc.DayOfWeekTrends[0].DayOfWeek
		if d >= 0 && d < len(dayNames) {
			busiestDay = dayNames[d]
		}
	}

	b.WriteString("You are an AI business assistant and strategic advisor for Fluid Detailing, an auto detailing business.\n")
	b.WriteString("You have access to comprehensive business data and can provide insights, recommendations, and execute actions.\n\n")

	fmt.Fprintf(&b, "CURRENT DATE: %s\n\n", bc.CurrentDate)

	b.WriteString("SERVICES OFFERED:\n")
	for _, s := range bc.Services {
		price := 0.0
		if s.Price != nil {
			price = *s.Price
		}
		inactive := ""
		if !s.IsActive {
			inactive = " [INACTIVE]"
		}
		fmt.Fprintf(&b, "- %s (ID: %s): $%.2f (%d min)%s\n", s.Name, s.ID, price, s.DurationMinutes, inactive)
	}

	stats := bc.Statistics
	b.WriteString("\nBOOKING STATISTICS & TRENDS:\n")
	fmt.Fprintf(&b, "- Total bookings (all time): %d\n", stats.TotalBookings)
	fmt.Fprintf(&b, "- Bookings today: %d\n", stats.TodayBookings)
	fmt.Fprintf(&b, "- Bookings this week: %d\n", stats.WeekBookings)
	fmt.Fprintf(&b, "- Bookings this month: %d\n", stats.MonthBookings)
	fmt.Fprintf(&b, "- Last month bookings: %d\n", stats.LastMonthBookings)
	fmt.Fprintf(&b, "- Booking growth: %.1f%% (month-over-month)\n", stats.BookingGrowth)
	fmt.Fprintf(&b, "- Bookings this year: %d\n", stats.YearBookings)
	fmt.Fprintf(&b, "- Busiest day of week: %s\n", busiestDay)

	b.WriteString("\nREVENUE & FINANCIAL:\n")
	fmt.Fprintf(&b, "- Total revenue (all time): $%.2f\n", stats.TotalRevenue)
	fmt.Fprintf(&b, "- Revenue this month: $%.2f\n", stats.MonthRevenue)
	fmt.Fprintf(&b, "- Last month revenue: $%.2f\n", stats.LastMonthRevenue)
	fmt.Fprintf(&b, "- Revenue growth: %.1f%% (month-over-month)\n", stats.RevenueGrowth)
	fmt.Fprintf(&b, "- Revenue this year: $%.2f\n", stats.YearRevenue)
	avgRevenue := 0.0
	if stats.TotalBookings > 0 {
		avgRevenue = stats.TotalRevenue / float64(stats.TotalBookings)
	}
	fmt.Fprintf(&b, "- Average revenue per booking: $%.2f\n", avgRevenue)
	fmt.Fprintf(&b, "- Pending payments: %d bookings ($%.2f)\n", stats.PendingPaymentsCount, stats.PendingPaymentsAmount)

	b.WriteString("\nCUSTOMER INSIGHTS:\n")
	fmt.Fprintf(&b, "- Total customers: %d\n", stats.TotalCustomerCount)
	fmt.Fprintf(&b, "- Repeat customers: %d\n", stats.RepeatCustomerCount)
	retention := 0.0
	if stats.TotalCustomerCount > 0 {
		retention = float64(stats.RepeatCustomerCount) / float64(stats.TotalCustomerCount) * 100
	}
	fmt.Fprintf(&b, "- Customer retention rate: %.1f%%\n", retention)
	top := bc.RepeatCustomers
	if len(top) > 3 {
		top = top[:3]
	}
	var topParts []string
	for _, c := range top {
		topParts = append(topParts, fmt.Sprintf("%s (%d bookings, $%.2f)", c.CustomerName, c.BookingCount, c.TotalSpent))
	}
	fmt.Fprintf(&b, "- Top 3 repeat customers: %s\n", strings.Join(topParts, ", "))

	b.WriteString("\nSERVICE PERFORMANCE:\n")
	for i, s := range bc.ServicePopularity {
		fmt.Fprintf(&b, "%d. %s: %d bookings, $%.2f revenue\n", i+1, s.Name, s.BookingCount, s.TotalRevenue)
	}

	b.WriteString("\nUPCOMING BOOKINGS (next 10):\n")
	if len(bc.UpcomingBookings) == 0 {
		b.WriteString("No upcoming bookings\n")
	} else {
		for _, booking := range bc.UpcomingBookings {
			fmt.Fprintf(&b, "- %s at %s: %s ($%.2f)\n", booking.BookingDate, booking.BookingTime, booking.CustomerName, booking.TotalPrice)
		}
	}

	fmt.Fprintf(&b, "\nThe business owner is asking you: \"%s\"\n\n", neutralizeQuotes(question))

	b.WriteString(`CAPABILITIES:
1. BUSINESS INSIGHTS: Analyze data and provide strategic recommendations for growth, pricing, marketing, etc.
2. CUSTOMER HISTORY: View specific customer booking history and spending patterns
3. MARKETING: Generate newsletters and promotional content
4. ACTIONS: Block dates, update prices, generate reports

If the user requests an action, respond with ONLY a JSON object:
{"action": "ACTION_TYPE", "params": {...}}

Available actions:
1. Block date: {"action": "BLOCK_DATE", "params": {"date": "YYYY-MM-DD", "reason": "text"}}
2. Update service price: {"action": "UPDATE_SERVICE_PRICE", "params": {"service_id": "UUID", "price": NUMBER}}
3. Generate report: {"action": "GENERATE_REPORT", "params": {"type": "revenue|bookings|services|customers"}}
4. View customer history: {"action": "VIEW_CUSTOMER", "params": {"email": "customer@email.com"}}
5. Generate newsletter: {"action": "GENERATE_NEWSLETTER", "params": {"topic": "description", "promotion": "optional promo details"}}

For business insights/recommendations, analyze the data and provide:
- Specific, actionable suggestions based on trends
- Identify opportunities (underperforming services, pricing adjustments, etc.)
- Marketing strategies based on customer behavior
- Revenue optimization ideas

Be professional, data-driven, and strategic. Format currency as CAD dollars.`)

	return b.String()
}

// neutralizeQuotes replaces double quotes so embedded values cannot close
// the quoted question inside the template
func neutralizeQuotes(value string) string {
	return strings.ReplaceAll(value, `"`, `'`)
}
