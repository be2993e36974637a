package widgets

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// LanguageFromFilename maps a filename to a chroma syntax mode. Returns ""
// when no mode applies.
func LanguageFromFilename(filename string) string {
	if filename == "" {
		return ""
	}

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".r"):
		return "r"
	case strings.HasSuffix(lower, ".py"):
		return "python"
	case strings.HasSuffix(lower, ".js"):
		return "javascript"
	case strings.HasSuffix(lower, ".java"):
		return "java"
	case strings.HasSuffix(lower, ".cpp"), strings.HasSuffix(lower, ".c"):
		return "c++"
	case strings.HasSuffix(lower, ".sh"), strings.HasSuffix(lower, ".bash"):
		return "bash"
	case strings.HasSuffix(lower, ".sql"):
		return "sql"
	case strings.HasSuffix(lower, ".html"):
		return "html"
	case strings.HasSuffix(lower, ".css"):
		return "css"
	case strings.HasSuffix(lower, ".json"):
		return "json"
	case strings.HasSuffix(lower, ".rmd"), strings.HasSuffix(lower, ".md"):
		return "markdown"
	}

	if lexer := lexers.Match(filename); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return ""
}
