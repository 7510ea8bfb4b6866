package bvh

import (
	"encoding/json"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

const (
	// DefaultSplitLimit is the smallest primitive count at which a node is split.
	DefaultSplitLimit = 3
	// DefaultNumberChildren is the default branching factor.
	DefaultNumberChildren = 2
	// DefaultMaxDepth is the depth at which nodes become leaves regardless of their size.
	DefaultMaxDepth = 14

	minSplitLimit     = 3
	minNumberChildren = 2
)

// Config describes how a tree is built.
type Config struct {
	// SplitLimit is the primitive count below which a node becomes a leaf. Values under 3 are raised to 3.
	SplitLimit int `json:"split_limit" jsonschema:"minimum=3,description=primitive count below which a node becomes a leaf"`
	// NumberChildren is the branching factor of internal nodes. Values under 2 are raised to 2.
	NumberChildren int `json:"number_children" jsonschema:"minimum=2,description=branching factor of internal nodes"`
	// MaxDepth bounds the depth of the tree. Non positive values mean DefaultMaxDepth.
	MaxDepth int `json:"max_depth,omitempty" jsonschema:"description=maximum depth of the tree"`
}

// DefaultConfig returns the config used when nothing else is specified.
func DefaultConfig() Config {
	return Config{
		SplitLimit:     DefaultSplitLimit,
		NumberChildren: DefaultNumberChildren,
		MaxDepth:       DefaultMaxDepth,
	}
}

// Clamped returns a copy of the config with every field raised to its allowed minimum.
// Out of range values are never an error.
func (cfg Config) Clamped() Config {
	if cfg.SplitLimit < minSplitLimit {
		cfg.SplitLimit = minSplitLimit
	}
	if cfg.NumberChildren < minNumberChildren {
		cfg.NumberChildren = minNumberChildren
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// ConfigSchema returns the JSON schema of the config document read by ReadConfigFile.
func ConfigSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

// ConfigFromAttributes decodes a config from a generic attribute map, as found in a JSON document.
// Unset keys keep their default values and unknown keys are rejected.
func ConfigFromAttributes(attributes map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	if len(attributes) == 0 {
		return cfg, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return Config{}, errors.Wrap(err, "invalid bvh config")
	}
	return cfg, nil
}

// ReadConfigFile reads a JSON config file.
func ReadConfigFile(path string) (Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "cannot read config %q", path)
	}
	var attributes map[string]interface{}
	if err := json.Unmarshal(data, &attributes); err != nil {
		return Config{}, errors.Wrapf(err, "cannot parse config %q", path)
	}
	return ConfigFromAttributes(attributes)
}
