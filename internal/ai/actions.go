package ai

import (
	"encoding/json"
	"strings"
)

// Action types the dispatcher recognizes. Anything else in a directive
// falls through and the raw generated text becomes the answer.
const (
	ActionBlockDate          = "BLOCK_DATE"
	ActionUpdateServicePrice = "UPDATE_SERVICE_PRICE"
	ActionGenerateReport     = "GENERATE_REPORT"
	ActionViewCustomer       = "VIEW_CUSTOMER"
	ActionGenerateNewsletter = "GENERATE_NEWSLETTER"
)

// ActionParams carries the fixed per-action parameter shapes
type ActionParams struct {
	// BLOCK_DATE
	Date   string `json:"date,omitempty"`
	Reason string `json:"reason,omitempty"`
	// UPDATE_SERVICE_PRICE
	ServiceID string   `json:"service_id,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	// GENERATE_REPORT
	Type string `json:"type,omitempty"`
	// VIEW_CUSTOMER
	Email string `json:"email,omitempty"`
	// GENERATE_NEWSLETTER
	Topic     string `json:"topic,omitempty"`
	Promotion string `json:"promotion,omitempty"`
}

// ActionDirective is a structured instruction embedded in generated text.
// It only exists during one dispatch cycle and is never persisted.
type ActionDirective struct {
	Action string       `json:"action"`
	Params ActionParams `json:"params"`
}

// ExtractDirective scans generated text for an embedded action directive.
// The first syntactically valid JSON object with a non-empty "action" key
// wins; if nothing parses the text is a plain answer. This is deliberate
// best-effort interpretation: a directive the model garbled is silently
// treated as prose.
func ExtractDirective(text string) (*ActionDirective, bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}

		decoder := json.NewDecoder(strings.NewReader(text[start:]))
		var directive ActionDirective
		if err := decoder.Decode(&directive); err != nil {
			continue
		}
		if directive.Action == "" {
			continue
		}
		return &directive, true
	}
	return nil, false
}
