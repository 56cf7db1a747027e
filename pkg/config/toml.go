package config

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// tomlParser is a koanf.Parser backed by BurntSushi/toml.
type tomlParser struct{}

// TOML returns a koanf parser for TOML documents.
func TOML() tomlParser { return tomlParser{} }

// Unmarshal decodes a TOML document into a nested map.
func (tomlParser) Unmarshal(b []byte) (map[string]any, error) {
	out := map[string]any{}
	if _, err := toml.Decode(string(b), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes a nested map as TOML.
func (tomlParser) Marshal(m map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
