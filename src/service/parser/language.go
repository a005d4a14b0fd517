package parser

import (
	"path/filepath"
	"sort"
	"strings"

	"codesage/src/model"
)

// extensions maps file extensions to languages
var extensions = map[string]model.Language{
	".go":   model.LangGo,
	".py":   model.LangPython,
	".js":   model.LangJavaScript,
	".jsx":  model.LangJavaScript,
	".ts":   model.LangTypeScript,
	".tsx":  model.LangTypeScript,
	".java": model.LangJava,
	".rs":   model.LangRust,
	".cpp":  model.LangCPP,
	".cc":   model.LangCPP,
	".cxx":  model.LangCPP,
	".hpp":  model.LangCPP,
	".h":    model.LangCPP,
	".cs":   model.LangCSharp,
}

// LanguageForPath detects the language from the file extension
func LanguageForPath(path string) (model.Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extensions[ext]
	return lang, ok
}

// SupportedExtensions returns the extensions with a registered grammar
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
