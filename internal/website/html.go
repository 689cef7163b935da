package website

import (
	"fmt"
	"regexp"
	"strings"
)

// Defaults used by the fallback template when the request omits a field.
var (
	defaultMenu    = []string{"Home", "About", "Contact"}
	defaultPalette = []string{"#2563eb", "#f97316"}
)

const defaultCompanyName = "AI Website"

var fenceRe = regexp.MustCompile("(?is)```(?:html)?\\s*(.*?)```")

// htmlEscaper covers the five characters that can corrupt markup or smuggle
// injection through attribute values.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(value string) string {
	return htmlEscaper.Replace(value)
}

// cleanModelHTML normalises raw model output into a complete document.
// The first fenced code block wins when one is present; text that already
// carries a doctype or <html> tag passes through untouched.
func cleanModelHTML(text string) string {
	raw := text
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		raw = m[1]
	}
	trimmed := strings.TrimSpace(raw)

	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html") {
		return trimmed
	}

	return wrapHTML(trimmed)
}

func wrapHTML(content string) string {
	return `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Generated Website</title>
    <style>
      * { box-sizing: border-box; }
      body { margin: 0; font-family: 'Inter', Arial, sans-serif; color: #1f2937; background: #f8fafc; }
      a { color: inherit; }
    </style>
  </head>
  <body>
    ` + content + `
  </body>
</html>`
}

// fallbackHTML renders the deterministic credential-free template. Every
// user-supplied string is escaped before insertion.
func fallbackHTML(prompt string, req GenerateRequest) string {
	menu := req.Menu
	if len(menu) == 0 {
		menu = defaultMenu
	}
	var nav strings.Builder
	for _, item := range menu {
		nav.WriteString(`<a href="#">` + escapeHTML(item) + `</a>`)
	}

	colors := req.Palette
	if len(colors) == 0 {
		colors = defaultPalette
	}
	primary := escapeHTML(colors[0])
	accent := primary
	if len(colors) > 1 {
		accent = escapeHTML(colors[1])
	}

	safePrompt := escapeHTML(prompt)
	name := req.CompanyName
	if name == "" {
		name = defaultCompanyName
	}
	safeName := escapeHTML(name)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>%s</title>
    <style>
      :root { --primary: %s; --accent: %s; }
      * { box-sizing: border-box; }
      body { font-family: 'Inter', Arial, sans-serif; margin: 0; padding: 0; background: #f8fafc; color: #1f2937; }
      header { background: var(--primary); color: white; padding: 48px 24px; }
      nav { display: flex; gap: 16px; justify-content: center; margin-top: 16px; }
      nav a { color: white; text-decoration: none; font-weight: 500; }
      main { padding: 48px 24px; max-width: 960px; margin: 0 auto; }
      .card { background: white; border-radius: 24px; padding: 32px; box-shadow: 0 20px 45px rgba(15, 23, 42, 0.08); margin-bottom: 32px; }
      footer { background: #0f172a; color: white; padding: 32px 24px; text-align: center; }
    </style>
  </head>
  <body>
    <header>
      <h1>%s</h1>
      <p>%s</p>
      <nav>%s</nav>
    </header>
    <main>
      <div class="card">
        <h2>Website generator is not fully configured</h2>
        <p>Add your <strong>GEMINI_API_KEY</strong> to enable live AI output.</p>
        <p>The site prompt was:</p>
        <pre style="white-space: pre-wrap; background: #f1f5f9; padding: 16px; border-radius: 16px;">%s</pre>
      </div>
    </main>
    <footer>Powered by Retail Promo Automation MVP</footer>
  </body>
</html>`, safeName, primary, accent, safeName, safePrompt, nav.String(), safePrompt)
}
