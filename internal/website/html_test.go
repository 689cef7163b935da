package website

import (
	"strings"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{`Flour & Co`, "Flour &amp; Co"},
		{`"quoted" & 'single'`, "&quot;quoted&quot; &amp; &#39;single&#39;"},
		{"a<b>c&d\"e'f", "a&lt;b&gt;c&amp;d&quot;e&#39;f"},
	}
	for _, tt := range tests {
		if got := escapeHTML(tt.in); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanModelHTMLFencedDocument(t *testing.T) {
	doc := "<!DOCTYPE html>\n<html><body><h1>Hi</h1></body></html>"
	input := "Here is your site:\n```html\n" + doc + "\n```\nEnjoy!"
	if got := cleanModelHTML(input); got != doc {
		t.Errorf("fenced document not extracted verbatim:\ngot  %q\nwant %q", got, doc)
	}
}

func TestCleanModelHTMLUntaggedFence(t *testing.T) {
	doc := "<html><body>x</body></html>"
	input := "```\n" + doc + "\n```"
	if got := cleanModelHTML(input); got != doc {
		t.Errorf("untagged fence not extracted: got %q", got)
	}
}

func TestCleanModelHTMLPassthrough(t *testing.T) {
	tests := []string{
		"<!DOCTYPE html><html><body>a</body></html>",
		"  <!doctype HTML><html><body>b</body></html>  ",
		"<html lang=\"en\"><body>c</body></html>",
	}
	for _, in := range tests {
		want := strings.TrimSpace(in)
		if got := cleanModelHTML(in); got != want {
			t.Errorf("cleanModelHTML(%q) = %q, want passthrough %q", in, got, want)
		}
	}
}

func TestCleanModelHTMLWrapsBareContent(t *testing.T) {
	got := cleanModelHTML("  <h1>Welcome</h1>  ")
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("wrapped output missing doctype: %q", got)
	}
	if !strings.Contains(got, "<h1>Welcome</h1>") {
		t.Errorf("wrapped output missing trimmed content: %q", got)
	}
	if !strings.Contains(got, "<title>Generated Website</title>") {
		t.Errorf("wrapped output missing skeleton title: %q", got)
	}
	if strings.Count(got, "<html") != 1 {
		t.Errorf("expected exactly one <html> tag, got: %q", got)
	}
}

func TestFallbackHTMLEscapesCompanyName(t *testing.T) {
	html := fallbackHTML("a prompt", GenerateRequest{CompanyName: "<script>alert(1)</script>"})
	if strings.Contains(html, "<script>") {
		t.Fatalf("fallback output contains executable markup: %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("fallback output missing escaped company name: %q", html)
	}
}

func TestFallbackHTMLDefaults(t *testing.T) {
	html := fallbackHTML("build me a site", GenerateRequest{})

	if !strings.Contains(html, "--primary: #2563eb") {
		t.Errorf("missing default primary color: %q", html)
	}
	if !strings.Contains(html, "--accent: #f97316") {
		t.Errorf("missing default accent color: %q", html)
	}
	for _, item := range []string{">Home<", ">About<", ">Contact<"} {
		if !strings.Contains(html, item) {
			t.Errorf("missing default nav item %q", item)
		}
	}
	if !strings.Contains(html, "AI Website") {
		t.Errorf("missing default company name: %q", html)
	}
	if !strings.Contains(html, "GEMINI_API_KEY") {
		t.Errorf("missing configuration notice: %q", html)
	}
	if !strings.Contains(html, "build me a site") {
		t.Errorf("missing prompt text: %q", html)
	}
}

func TestFallbackHTMLSingleColorPalette(t *testing.T) {
	html := fallbackHTML("p", GenerateRequest{Palette: []string{"#111111"}})
	if !strings.Contains(html, "--primary: #111111") || !strings.Contains(html, "--accent: #111111") {
		t.Errorf("accent should default to primary for single-color palettes: %q", html)
	}
}

func TestFallbackHTMLCustomMenu(t *testing.T) {
	html := fallbackHTML("p", GenerateRequest{Menu: []string{"Shop", "Café & Bar"}})
	if !strings.Contains(html, ">Shop<") {
		t.Errorf("missing custom nav item: %q", html)
	}
	if !strings.Contains(html, "Café &amp; Bar") {
		t.Errorf("nav items must be escaped: %q", html)
	}
	if strings.Contains(html, ">Home<") {
		t.Errorf("defaults should not appear when a menu is supplied: %q", html)
	}
}
