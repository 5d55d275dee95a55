package format

import (
	"github.com/andybarron/preferences-go/pkg/errors"
	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

func (yamlCodec) Name() string      { return "yaml" }
func (yamlCodec) Extension() string { return extensionFor("yaml") }

func (yamlCodec) Marshal(v interface{}) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialize, "failed to encode value as YAML")
	}
	return data, nil
}

func (yamlCodec) Unmarshal(data []byte, out interface{}) error {
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, errors.ErrDeserialize, "failed to decode YAML preferences")
	}
	return nil
}
