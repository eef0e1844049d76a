package secrets

import (
	"os"
	"sort"
)

// Environment is the variable store secrets are written to.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

type processEnv struct{}

func (processEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (processEnv) Setenv(key, value string) error      { return os.Setenv(key, value) }

// ProcessEnvironment is the environment of the running process, inherited by
// every program the launcher starts afterwards.
var ProcessEnvironment Environment = processEnv{}

// Apply writes vars into env and returns the names written, sorted. Existing
// variables are kept unless override is set.
func Apply(vars map[string]string, override bool, env Environment) ([]string, error) {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	applied := make([]string, 0, len(keys))
	for _, k := range keys {
		if !override {
			if _, ok := env.LookupEnv(k); ok {
				continue
			}
		}
		if err := env.Setenv(k, vars[k]); err != nil {
			return applied, err
		}
		applied = append(applied, k)
	}
	return applied, nil
}
