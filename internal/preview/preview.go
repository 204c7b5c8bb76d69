// Package preview compiles untrusted, model-generated source text into
// self-contained HTML documents that the consuming page loads inside a
// sandboxed iframe. Compilation never executes the code; it only embeds it
// for later client-side execution.
package preview

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

// Embedded code must never be able to terminate the wrapper's own <script>
// or <style> element; a payload that closes our structural tags early could
// inject uncontrolled markup into the surrounding document.
var (
	scriptClose = regexp.MustCompile(`(?i)</script>`)
	styleClose  = regexp.MustCompile(`(?i)</style>`)
)

// exportDefault matches the leading default-export pattern that React
// components commonly use; it is rewritten to a named binding so the mount
// script can reference it.
var exportDefault = regexp.MustCompile(`(?i)export\s+default`)

// Render compiles code tagged with language into a self-contained HTML
// document string. It is total and deterministic: identical inputs yield
// byte-identical output, and unrecognized tags fall through to an escaped
// preformatted view.
func Render(code, language string) string {
	lang := normalize(language)
	switch Classify(lang) {
	case ClassMarkup:
		return renderMarkup(code, lang)
	case ClassReact:
		return renderReact(code)
	case ClassVue:
		return renderVue(code)
	case ClassCSS:
		return renderCSS(code)
	case ClassMarkdown:
		return renderMarkdown(code)
	case ClassDisplay:
		return renderDisplay(code, lang)
	default:
		return renderFallback(code)
	}
}

func escapeScriptClose(code string) string {
	return scriptClose.ReplaceAllString(code, `<\/script>`)
}

// renderMarkup wraps HTML-family fragments in a minimal document. Code that
// already is a complete document (html-prefixed tags only) passes through
// unchanged.
func renderMarkup(code, lang string) string {
	if strings.HasPrefix(lang, "html") {
		trimmed := strings.ToLower(strings.TrimSpace(code))
		if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
			return code
		}
	}
	return `<!doctype html><html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1"/></head><body>` +
		escapeScriptClose(code) + `</body></html>`
}

// reactMountScript mounts a Component or App binding into #root and turns
// runtime errors into a visible red block instead of a blank iframe.
const reactMountScript = `
try {
  const mount = document.getElementById('root');
  if (typeof Component !== 'undefined') {
    ReactDOM.createRoot(mount).render(React.createElement(Component));
  } else if (typeof App !== 'undefined') {
    ReactDOM.createRoot(mount).render(React.createElement(App));
  } else {
    console.warn('No Component or App export found. Render output may be empty.');
  }
} catch (e) {
  const pre = document.createElement('pre');
  pre.style.color = 'red';
  pre.textContent = 'Runtime error:\n' + e.toString();
  document.body.appendChild(pre);
  console.error(e);
}`

const reactDocument = `<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width,initial-scale=1"/>
  <style>html,body,#root{height:100%%;margin:0;padding:0}</style>
  <script crossorigin src="https://unpkg.com/react@18/umd/react.development.js"></script>
  <script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.development.js"></script>
</head>
<body>
  <div id="root"></div>
  <script type="module">
%s
  </script>
</body>
</html>`

func renderReact(code string) string {
	cleaned := exportDefault.ReplaceAllString(code, "const Component =")
	script := escapeScriptClose(cleaned + "\n" + reactMountScript)
	return fmt.Sprintf(reactDocument, script)
}

const vueDocument = `<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width,initial-scale=1"/>
  <title>Vue Preview</title>
  <script src="https://unpkg.com/vue@3/dist/vue.global.js"></script>
</head>
<body>
  <div id="app"></div>
  <script>
%s
  </script>
</body>
</html>`

func renderVue(code string) string {
	return fmt.Sprintf(vueDocument, escapeScriptClose(code))
}

const cssDocument = `<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width,initial-scale=1"/>
  <style>
%s
  </style>
</head>
<body>
  <div class="preview-container">
    <h1>CSS Preview</h1>
    <p>Below is a sample element to demonstrate your CSS:</p>
    <div class="sample-element">Sample Element</div>
  </div>
</body>
</html>`

func renderCSS(code string) string {
	return fmt.Sprintf(cssDocument, styleClose.ReplaceAllString(code, `<\/style>`))
}

const markdownDocument = `<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width,initial-scale=1"/>
  <style>
    body { font-family: sans-serif; max-width: 720px; margin: 0 auto; padding: 20px; }
    pre { background: #f5f5f5; padding: 12px; overflow-x: auto; }
  </style>
</head>
<body>
%s
</body>
</html>`

func renderMarkdown(code string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(code), &buf); err != nil {
		return renderFallback(code)
	}
	return fmt.Sprintf(markdownDocument, buf.String())
}

const displayDocument = `<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width,initial-scale=1"/>
  <style>
    body { font-family: monospace; padding: 20px; background: #1e1e1e; color: #d4d4d4; }
    pre { margin: 0; }
  </style>
</head>
<body>
  <h2>%s Code Preview</h2>
  <pre>%s</pre>
  <p style="margin-top: 20px; color: #999;">Note: this code cannot be executed in the browser.</p>
</body>
</html>`

// renderDisplay shows languages a browser cannot run as escaped text; no
// execution is attempted.
func renderDisplay(code, lang string) string {
	return fmt.Sprintf(displayDocument, displayName(lang), html.EscapeString(code))
}

func renderFallback(code string) string {
	return `<!doctype html><html><body><pre>` + html.EscapeString(code) + `</pre></body></html>`
}
