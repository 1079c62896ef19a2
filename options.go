package hookbind

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

const (
	DefaultPrefix         = "v-ehb"
	DefaultBindKey        = "bindProps"
	DefaultEventKey       = "bindEvents"
	DefaultBindDirective  = "v-bind"
	DefaultEventDirective = "v-on"
)

// Config holds the marker and the names used in the generated bindings.
// Empty fields fall back to the defaults.
type Config struct {
	Prefix         string `yaml:"prefix"`
	BindKey        string `yaml:"bindKey"`
	EventKey       string `yaml:"eventKey"`
	BindDirective  string `yaml:"bindDirective"`
	EventDirective string `yaml:"eventDirective"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Prefix:         DefaultPrefix,
		BindKey:        DefaultBindKey,
		EventKey:       DefaultEventKey,
		BindDirective:  DefaultBindDirective,
		EventDirective: DefaultEventDirective,
	}
}

// MergeConfig returns base with every non-empty field of override applied.
func MergeConfig(base, override Config) (Config, error) {
	retv := base
	err := copier.CopyWithOption(&retv, override, copier.Option{IgnoreEmpty: true})
	if err != nil {
		return base, err
	}

	return retv, nil
}

// Validate checks the invariants the rewrite relies on
func (c Config) Validate() error {
	fields := []struct {
		name, val string
		attr      bool
	}{
		{"prefix", c.Prefix, true},
		{"bindKey", c.BindKey, false},
		{"eventKey", c.EventKey, false},
		{"bindDirective", c.BindDirective, true},
		{"eventDirective", c.EventDirective, true},
	}

	for _, f := range fields {
		if f.val == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, f.name)
		}

		bad := `"`
		if f.attr {
			// attribute names end at any of these
			bad = "\"=<> \t\r\n"
		}
		if strings.ContainsAny(f.val, bad) {
			return fmt.Errorf("%w: %s %q contains a reserved character", ErrInvalidConfig, f.name, f.val)
		}

		if f.name != "prefix" && strings.Contains(f.val, c.Prefix) {
			return fmt.Errorf("%w: %s %q contains the prefix %q", ErrInvalidConfig, f.name, f.val, c.Prefix)
		}
	}

	return nil
}

type options struct {
	cfg    Config
	logger *zap.Logger
	err    error
}

// Option configures a HookBind
type Option func(*options)

// WithConfig applies the non-empty fields of cfg
func WithConfig(cfg Config) Option {
	return func(o *options) {
		merged, err := MergeConfig(o.cfg, cfg)
		if err != nil {
			o.err = err
			return
		}
		o.cfg = merged
	}
}

// WithPrefix sets the marker attribute name
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.cfg.Prefix = prefix
	}
}

// WithBindKey sets the member of the expression bound with the property directive
func WithBindKey(key string) Option {
	return func(o *options) {
		o.cfg.BindKey = key
	}
}

// WithEventKey sets the member of the expression bound with the event directive
func WithEventKey(key string) Option {
	return func(o *options) {
		o.cfg.EventKey = key
	}
}

// WithDirectives overrides the emitted directive names (v-bind, v-on).
func WithDirectives(bind, event string) Option {
	return func(o *options) {
		o.cfg.BindDirective = bind
		o.cfg.EventDirective = event
	}
}

// WithLogger sets the logger malformed markers are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts ...Option) (*options, error) {
	o := &options{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, o.err)
	}

	return o, o.cfg.Validate()
}
