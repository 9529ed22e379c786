package otel

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/propagation"
)

// Trace context carried through environment variables, so a script invoking the cli
// can make each run part of its own trace:
//
//	CAPTCHA_TRACE_TRACEPARENT=00-<trace id>-<span id>-01 captcha solve ...
//
// Values set on the carrier take precedence over the environment.
type EnvCarrier struct {
	vars map[string]string
}

// Ensure `EnvCarrier` implements [propagation.TextMapCarrier]
var _ propagation.TextMapCarrier = (*EnvCarrier)(nil)

func CreateEnvCarrier() EnvCarrier {
	return EnvCarrier{vars: make(map[string]string)}
}

const envPrefix = "CAPTCHA_TRACE_"

// prepend prefix and replace all - with _
func mapKey(key string) string {
	return fmt.Sprintf("%s%s", envPrefix, strings.ToUpper(strings.ReplaceAll(key, "-", "_")))
}

func unmapKey(mappedKey string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(mappedKey, envPrefix), "_", "-"))
}

func (c EnvCarrier) Get(key string) string {
	key = mapKey(key)
	if v, ok := c.vars[key]; ok {
		return v
	}

	return os.Getenv(key)
}

func (c EnvCarrier) Set(key string, value string) {
	c.vars[mapKey(key)] = value
}

func (c EnvCarrier) Keys() []string {
	keys := make([]string, 0, len(c.vars))
	for name := range c.vars {
		keys = append(keys, unmapKey(name))
	}

	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, envPrefix) {
			keys = append(keys, unmapKey(name))
		}
	}

	slices.Sort(keys)
	return slices.Compact(keys)
}
