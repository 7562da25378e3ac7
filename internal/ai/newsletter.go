package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Newsletter is a generated HTML email artifact, returned inline like reports
type Newsletter struct {
	Filename    string `json:"filename"`
	HTMLContent string `json:"html_content"`
}

// generateNewsletter asks the generation service for an HTML newsletter
// grounded on the active catalog, then normalizes the output into a
// complete HTML document.
func (s *AssistantService) generateNewsletter(ctx context.Context, params ActionParams, bc *BusinessContext) (*Newsletter, error) {
	var b strings.Builder
	b.WriteString("Create a professional HTML email newsletter for Fluid Detailing auto detailing business.\n\n")
	fmt.Fprintf(&b, "Topic: %s\n", neutralizeQuotes(params.Topic))
	if params.Promotion != "" {
		fmt.Fprintf(&b, "Special Promotion: %s\n", neutralizeQuotes(params.Promotion))
	}

	b.WriteString("\nServices offered:\n")
	for _, svc := range bc.Services {
		if !svc.IsActive {
			continue
		}
		price := 0.0
		if svc.Price != nil {
			price = *svc.Price
		}
		fmt.Fprintf(&b, "- %s: $%.2f\n", svc.Name, price)
	}

	b.WriteString(`
Create an engaging HTML email with:
- Eye-catching subject line
- Professional header with business name
- Brief intro paragraph
- Highlight the promotion/topic
- Call-to-action button to book
- Footer with contact info

Use these colors:
- Primary: #CC0000 (red)
- Dark: #1a1a1a (dark grey)
- Light: #b8b8b8 (light grey)

Respond with ONLY the complete HTML code, no explanations.`)

	raw, err := s.generator.Generate(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("newsletter generation failed: %w", err)
	}

	return &Newsletter{
		Filename:    fmt.Sprintf("newsletter_%d.html", time.Now().UnixMilli()),
		HTMLContent: normalizeNewsletterHTML(raw),
	}, nil
}

// normalizeNewsletterHTML strips markdown code fences and wraps bare
// fragments in a document skeleton
func normalizeNewsletterHTML(raw string) string {
	content := strings.TrimSpace(raw)
	content = strings.ReplaceAll(content, "```html\n", "")
	content = strings.ReplaceAll(content, "```html", "")
	content = strings.ReplaceAll(content, "```\n", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return content
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Fluid Detailing Newsletter</title>
</head>
<body>
%s
</body>
</html>`, content)
}
