// Package lang is the parser collaborator: it turns source text into the
// immutable model.SourceNode trees the rest of the pipeline consumes, either
// by parsing with tree-sitter grammars or by loading a pre-parsed JSON dump.
package lang

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	ts "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// extToLanguage maps file extensions to canonical language names.
var extToLanguage = map[string]string{
	".go":  "go",
	".js":  "javascript",
	".jsx": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
	".py":  "python",
	".rs":  "rust",
}

// Grammars are lazily initialized: loading a tree-sitter language touches
// cgo, and JSON-dump workflows never need it.
var (
	grammars     map[string]*sitter.Language
	grammarsOnce sync.Once
)

func initGrammars() {
	grammarsOnce.Do(func() {
		grammars = map[string]*sitter.Language{
			"go":         golang.GetLanguage(),
			"javascript": javascript.GetLanguage(),
			"typescript": ts.GetLanguage(),
			"python":     python.GetLanguage(),
			"rust":       rust.GetLanguage(),
		}
	})
}

// GrammarFor returns the tree-sitter grammar for a canonical language name.
func GrammarFor(name string) (*sitter.Language, bool) {
	initGrammars()
	g, ok := grammars[strings.ToLower(name)]
	return g, ok
}

// Supported lists the canonical language names, sorted.
func Supported() []string {
	initGrammars()
	out := make([]string, 0, len(grammars))
	for name := range grammars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DetectLanguage guesses the language from a filename's extension. Returns
// false for unknown extensions.
func DetectLanguage(filename string) (string, bool) {
	name, ok := extToLanguage[strings.ToLower(filepath.Ext(filename))]
	return name, ok
}
