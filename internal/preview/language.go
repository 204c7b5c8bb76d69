package preview

import "strings"

// Class is the closed set of rendering strategies. Every recognized language
// tag maps onto exactly one class; everything else is ClassFallback.
type Class uint8

const (
	// ClassFallback escapes the code into a minimal preformatted document.
	ClassFallback Class = iota

	// ClassMarkup covers HTML-family tags: complete documents pass through,
	// fragments are wrapped in a minimal document body.
	ClassMarkup

	// ClassReact embeds the code in a module script that mounts a Component
	// or App binding via the React UMD runtime.
	ClassReact

	// ClassVue embeds the code in a script alongside the Vue global runtime.
	ClassVue

	// ClassCSS embeds the stylesheet with a fixed demo body.
	ClassCSS

	// ClassMarkdown converts the code to HTML and serves it as a static page.
	ClassMarkdown

	// ClassDisplay shows the code as escaped preformatted text; used for
	// languages a browser cannot execute.
	ClassDisplay
)

// Classify maps a language tag to its rendering class. Matching is
// case-insensitive and ignores surrounding whitespace.
func Classify(language string) Class {
	switch normalize(language) {
	case "html", "html/css", "plain", "js", "javascript", "html+css", "html+tailwind":
		return ClassMarkup
	case "react", "reactjs", "react.jsx", "reacttsx":
		return ClassReact
	case "vue":
		return ClassVue
	case "css":
		return ClassCSS
	case "markdown", "md":
		return ClassMarkdown
	case "typescript", "ts", "python", "java":
		return ClassDisplay
	default:
		return ClassFallback
	}
}

// Known returns the language tags advertised on GET /languages.
func Known() []string {
	return []string{
		"react", "vue", "html", "css", "javascript",
		"typescript", "python", "java", "markdown",
	}
}

func normalize(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

// displayNames maps display-only tags to their conventional casing for the
// preview page heading.
var displayNames = map[string]string{
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"python":     "Python",
	"java":       "Java",
}

func displayName(lang string) string {
	if name, ok := displayNames[lang]; ok {
		return name
	}
	return lang
}
