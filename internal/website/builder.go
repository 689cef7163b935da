package website

import (
	"context"
	"log"
	"strings"

	"retail_promo_server/internal/types"
)

// FallbackModel is reported when no generation backend was consulted.
const FallbackModel = "fallback-template"

// GenerateRequest carries the structured inputs for one website generation.
// Only Prompt is mandatory; the rest narrow the model's output.
type GenerateRequest struct {
	Prompt      string
	CompanyName string
	Menu        []string
	Layout      []string
	Palette     []string
}

// TextBackend produces raw model text for a fully assembled prompt.
type TextBackend interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Builder compiles prompts and normalises backend output into a complete
// HTML document. A nil backend means no credential is configured and every
// request is served by the fallback template.
type Builder struct {
	backend TextBackend
}

func NewBuilder(backend TextBackend) *Builder {
	return &Builder{backend: backend}
}

// Build produces a renderable document for the request. Backend failures are
// returned as-is; an empty-but-successful backend response degrades to the
// fallback template with a warning instead.
func (b *Builder) Build(ctx context.Context, req GenerateRequest) (types.WebsiteGeneration, error) {
	if b.backend == nil {
		return types.WebsiteGeneration{
			Model:    FallbackModel,
			HTML:     fallbackHTML(req.Prompt, req),
			Warnings: []string{"GEMINI_API_KEY is not set. Returned fallback template instead of a real AI response."},
		}, nil
	}

	prompt := assemblePrompt(req)
	text, err := b.backend.GenerateText(ctx, prompt)
	if err != nil {
		return types.WebsiteGeneration{}, err
	}

	if strings.TrimSpace(text) == "" {
		log.Printf("generation backend %s returned no usable content, serving fallback template", b.backend.Model())
		return types.WebsiteGeneration{
			Model:    b.backend.Model(),
			HTML:     fallbackHTML("No content generated.", GenerateRequest{}),
			Warnings: []string{"The generation backend returned no usable content. Returned fallback template instead."},
		}, nil
	}

	return types.WebsiteGeneration{
		Model:    b.backend.Model(),
		HTML:     cleanModelHTML(text),
		Warnings: []string{},
	}, nil
}

// assemblePrompt builds the system preamble plus the optional context lines,
// in fixed order, followed by the delimited user request.
func assemblePrompt(req GenerateRequest) string {
	lines := []string{
		"You are an AI assistant that generates complete responsive marketing websites as a single HTML document.",
		"Respond with production ready HTML and CSS only. Inline CSS is acceptable. Do not wrap the response in code fences.",
		"Embed a simple CSS reset and typography styles. Use flex and grid layouts as needed.",
	}
	if req.CompanyName != "" {
		lines = append(lines, "Company name: "+req.CompanyName+".")
	}
	if len(req.Menu) > 0 {
		lines = append(lines, "Navigation items: "+strings.Join(req.Menu, ", ")+".")
	}
	if len(req.Layout) > 0 {
		lines = append(lines, "Requested sections: "+strings.Join(req.Layout, ", ")+".")
	}
	if len(req.Palette) > 0 {
		lines = append(lines, "Preferred colours: "+strings.Join(req.Palette, ", ")+".")
	}
	lines = append(lines,
		"Follow the user instructions below to guide the content and tone.",
		"END OF SYSTEM PROMPT.",
	)

	return strings.Join(lines, "\n") + "\n\nUSER REQUEST:\n" + req.Prompt
}
