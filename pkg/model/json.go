package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Position serializes as a two-element [row, col] array, matching the wire
// format of pre-parsed tree dumps. Decoding also accepts the object form
// {"row":r,"col":c} so hand-written fixtures keep working.

// MarshalJSON implements json.Marshaler.
func (p Position) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "[%d,%d]", p.Row, p.Col), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Position) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var pair [2]int
		if err := json.Unmarshal(data, &pair); err != nil {
			return fmt.Errorf("position tuple: %w", err)
		}
		p.Row, p.Col = pair[0], pair[1]
		return nil
	}
	var obj struct {
		Row int `json:"row"`
		Col int `json:"col"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("position object: %w", err)
	}
	p.Row, p.Col = obj.Row, obj.Col
	return nil
}
