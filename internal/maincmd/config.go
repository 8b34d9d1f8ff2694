package maincmd

import "github.com/caarlos0/env/v6"

// Config mirrors the rename command's options (Cmd's strategy,
// local-name-prefix, remove-const and mangle-underscore flags),
// loadable from the environment so a CI pipeline can drive the pass
// without assembling a flag line. A value here only takes effect when
// the corresponding flag was not set on the command line; see
// Cmd.applyConfig.
type Config struct {
	LocalNamePrefix  string `env:"JSUNIQ_LOCAL_NAME_PREFIX"`
	RemoveConst      bool   `env:"JSUNIQ_REMOVE_CONST"`
	MangleUnderscore bool   `env:"JSUNIQ_MANGLE_UNDERSCORE"`
	Strategy         string `env:"JSUNIQ_STRATEGY"`
}

// loadConfig reads Config from the environment. A Config zero value is
// returned alongside a non-nil error only if a set variable fails to
// parse as its field's type (e.g. a non-boolean JSUNIQ_REMOVE_CONST).
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
