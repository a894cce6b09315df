package lang

import (
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/prabhatexit0/treehouse/pkg/model"
)

// ParseResult is the JSON envelope around a parsed tree. It matches the
// format emitted by the ast-engine wasm module, so dumps produced there load
// directly.
type ParseResult struct {
	Success  bool              `json:"success"`
	AST      *model.SourceNode `json:"ast,omitempty"`
	Error    string            `json:"error,omitempty"`
	Language string            `json:"language"`
}

// ParseToResult parses code and wraps the outcome in an envelope instead of
// returning an error, for callers that serialize the result onward.
func ParseToResult(ctx context.Context, code []byte, language string) ParseResult {
	root, err := Parse(ctx, code, language)
	if err != nil {
		return ParseResult{Success: false, Error: err.Error(), Language: language}
	}
	return ParseResult{Success: true, AST: root, Language: language}
}

// LoadResult reads a ParseResult envelope. Envelopes that decode cleanly but
// carry a failure report the embedded error.
func LoadResult(r io.Reader) (*model.SourceNode, string, error) {
	var res ParseResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, "", fmt.Errorf("decode parse result: %w", err)
	}
	if !res.Success || res.AST == nil {
		if res.Error == "" {
			res.Error = "envelope contains no tree"
		}
		return nil, res.Language, fmt.Errorf("parse result: %s", res.Error)
	}
	return res.AST, res.Language, nil
}

// DumpResult writes a ParseResult envelope.
func DumpResult(w io.Writer, res ParseResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode parse result: %w", err)
	}
	return nil
}
