package functions

import (
	"encoding/json"
	"fmt"
)

const codecName = "json"

// jsonCodec lets Connect carry plain Go structs as application/json. It
// replaces the protojson codec, which only accepts proto messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode json message: %w", err)
	}
	return nil
}
