package format

import (
	"github.com/andybarron/preferences-go/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

type tomlCodec struct{}

func (tomlCodec) Name() string      { return "toml" }
func (tomlCodec) Extension() string { return extensionFor("toml") }

func (tomlCodec) Marshal(v interface{}) ([]byte, error) {
	data, err := toml.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialize, "failed to encode value as TOML")
	}
	return data, nil
}

func (tomlCodec) Unmarshal(data []byte, out interface{}) error {
	if err := toml.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, errors.ErrDeserialize, "failed to decode TOML preferences")
	}
	return nil
}
