package ai

import "testing"

func TestExtractDirectiveFindsAction(t *testing.T) {
	text := `{"action": "BLOCK_DATE", "params": {"date": "2024-12-25", "reason": "Holiday"}}`
	directive, ok := ExtractDirective(text)
	if !ok {
		t.Fatal("expected a directive")
	}
	if directive.Action != ActionBlockDate {
		t.Errorf("action = %q, want BLOCK_DATE", directive.Action)
	}
	if directive.Params.Date != "2024-12-25" || directive.Params.Reason != "Holiday" {
		t.Errorf("params = %+v", directive.Params)
	}
}

func TestExtractDirectiveInsideProse(t *testing.T) {
	text := "Sure, blocking that date now.\n" +
		`{"action": "BLOCK_DATE", "params": {"date": "2025-01-01", "reason": "New Year"}}` +
		"\nLet me know if you need anything else."
	directive, ok := ExtractDirective(text)
	if !ok {
		t.Fatal("expected a directive embedded in prose")
	}
	if directive.Params.Date != "2025-01-01" {
		t.Errorf("date = %q", directive.Params.Date)
	}
}

func TestExtractDirectiveFirstValidMatchWins(t *testing.T) {
	text := `{"note": "not an action"} {"action": "GENERATE_REPORT", "params": {"type": "revenue"}} {"action": "BLOCK_DATE", "params": {}}`
	directive, ok := ExtractDirective(text)
	if !ok {
		t.Fatal("expected a directive")
	}
	if directive.Action != ActionGenerateReport {
		t.Errorf("action = %q, want the first object carrying an action", directive.Action)
	}
}

func TestExtractDirectiveMalformedJSONFallsBack(t *testing.T) {
	cases := []string{
		`{"action": "BLOCK_DATE", "params": {`,
		`{action: BLOCK_DATE}`,
		`{"action": ""}`,
	}
	for _, text := range cases {
		if _, ok := ExtractDirective(text); ok {
			t.Errorf("ExtractDirective(%q) found a directive, want fallback", text)
		}
	}
}

func TestExtractDirectivePlainTextHasNoDirective(t *testing.T) {
	text := "Your busiest day is Saturday; consider a weekday promotion."
	if _, ok := ExtractDirective(text); ok {
		t.Error("plain prose should not produce a directive")
	}
}

func TestExtractDirectivePriceParams(t *testing.T) {
	text := `{"action": "UPDATE_SERVICE_PRICE", "params": {"service_id": "0b54a9cd-0000-4000-8000-000000000001", "price": 175.5}}`
	directive, ok := ExtractDirective(text)
	if !ok {
		t.Fatal("expected a directive")
	}
	if directive.Params.Price == nil || *directive.Params.Price != 175.5 {
		t.Errorf("price = %v, want 175.5", directive.Params.Price)
	}
}
