package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language selects the tree-sitter grammar for a source file. JSX needs
// no variant of its own because the JavaScript grammar accepts it
// natively, but TSX is a separate grammar from plain TypeScript.
type Language int

const (
	LanguageUnknown Language = iota
	LanguageJavaScript
	LanguageTypeScript
	LanguageTSX
)

var extLanguages = map[string]Language{
	".js":  LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
	".ts":  LanguageTypeScript,
	".mts": LanguageTypeScript,
	".cts": LanguageTypeScript,
	".tsx": LanguageTSX,
}

// DetectLanguage maps a file path to the grammar its extension calls
// for. Unrecognized extensions map to LanguageUnknown.
func DetectLanguage(path string) Language {
	return extLanguages[strings.ToLower(filepath.Ext(path))]
}

func (l Language) String() string {
	switch l {
	case LanguageJavaScript:
		return "javascript"
	case LanguageTypeScript:
		return "typescript"
	case LanguageTSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// grammar returns the raw tree-sitter grammar for the language.
func (l Language) grammar() (unsafe.Pointer, error) {
	switch l {
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	case LanguageTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	case LanguageTSX:
		return ts_typescript.LanguageTSX(), nil
	default:
		return nil, fmt.Errorf("no grammar for language %q", l.String())
	}
}
