package prompts

import "fmt"

// GetCaptionPrompt returns the user and system prompts for a caption
// suggestion request.
func GetCaptionPrompt(product, tone, companyName string) (string, string) {
	if tone == "" {
		tone = "friendly and upbeat"
	}
	company := ""
	if companyName != "" {
		company = fmt.Sprintf("The business is called %q.\n", companyName)
	}

	prompt := fmt.Sprintf(`Write one social media caption promoting the following product or offer:

---
%s
---

%sThe tone should be %s. Keep the caption under 220 characters and do not use emojis excessively.

Respond ONLY with a JSON object in the following format:

`+"```json"+`
{
  "caption": "...",
  "hashtags": ["#...", "#..."]
}
`+"```"+`

Include between 3 and 6 hashtags relevant to the product.`, product, company, tone)

	systemPrompt := "You are a marketing copywriter for small retail businesses. Respond ONLY with the JSON object requested."

	return prompt, systemPrompt
}
