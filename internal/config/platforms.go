package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultScopes are requested when a platform entry has no scopes key: read
// access to line items and results, and score publishing.
var DefaultScopes = []string{
	"https://purl.imsglobal.org/spec/lti-ags/scope/lineitem.readonly",
	"https://purl.imsglobal.org/spec/lti-ags/scope/result.readonly",
	"https://purl.imsglobal.org/spec/lti-ags/scope/score",
}

// Platform is one entry of the platforms file.
type Platform struct {
	ClientID   string   `mapstructure:"client_id" validate:"required"`
	TokenURL   string   `mapstructure:"token_url" validate:"required,url"`
	PublicKey  string   `mapstructure:"public_key"`
	PrivateKey string   `mapstructure:"private_key"`
	Scopes     []string `mapstructure:"scopes"`
}

// ScopeList returns the scopes to request. A missing scopes key yields
// DefaultScopes; an explicitly empty list stays empty.
func (p Platform) ScopeList() []string {
	if p.Scopes == nil {
		return append([]string(nil), DefaultScopes...)
	}
	return p.Scopes
}

// Platforms maps platform names to their configuration. Names are stored
// lower-cased.
type Platforms map[string]Platform

// LoadPlatforms reads a JSON platforms file of the form
//
//	{"canvas": {"client_id": "...", "token_url": "...", "scopes": [...]}}
//
// A missing file is reported as ErrConfigNotFound.
func LoadPlatforms(path string) (Platforms, error) {
	// "::" keeps dotted platform names such as "canvas.test" from being
	// split into nested keys.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: platforms file %s does not exist", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read platforms file %s: %w", path, err)
	}

	platforms := Platforms{}
	if err := v.Unmarshal(&platforms); err != nil {
		return nil, fmt.Errorf("failed to decode platforms file %s: %w", path, err)
	}
	return platforms, nil
}

// Lookup returns the validated entry for name, matched case-insensitively.
func (ps Platforms) Lookup(name string) (Platform, error) {
	p, ok := ps[strings.ToLower(name)]
	if !ok {
		return Platform{}, fmt.Errorf("%w: unknown platform %q", ErrConfigNotFound, name)
	}
	if err := validator.New().Struct(p); err != nil {
		return Platform{}, fmt.Errorf("%w: platform %q: %w", ErrInvalidPlatform, name, err)
	}
	return p, nil
}

// Names returns the configured platform names in sorted order.
func (ps Platforms) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
