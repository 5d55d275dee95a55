package format

import (
	"encoding/json"

	"github.com/andybarron/preferences-go/pkg/errors"
)

// jsonCodec is the default codec. Output is indented so preference files
// stay hand-editable.
type jsonCodec struct{}

func (jsonCodec) Name() string      { return "json" }
func (jsonCodec) Extension() string { return extensionFor("json") }

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialize, "failed to encode value as JSON")
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Unmarshal(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, errors.ErrDeserialize, "failed to decode JSON preferences")
	}
	return nil
}
