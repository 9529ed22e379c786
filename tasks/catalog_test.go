package tasks_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aixcyberchallenge/captcha-solver/tasks"
)

// a value that satisfies the field's type and rule
func sample(f tasks.Field) any {
	switch f.Type {
	case tasks.Bool:
		return true
	case tasks.Int:
		return 1
	case tasks.Float:
		return 0.5
	case tasks.Object:
		return map[string]any{"captcha_id": "id"}
	}

	switch {
	case strings.Contains(f.Rule, "url"):
		return "https://example.com/page"
	case strings.HasPrefix(f.Rule, "captcha_"):
		return base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 200)))
	case strings.HasPrefix(f.Rule, "oneof="):
		return strings.Fields(strings.TrimPrefix(f.Rule, "oneof="))[0]
	default:
		return "value"
	}
}

func TestCatalog(t *testing.T) {
	for _, kind := range tasks.Kinds() {
		t.Run(kind.Name, func(t *testing.T) {
			b := tasks.NewBuilder[json.RawMessage](kind)
			for _, f := range kind.Fields {
				if f.Required {
					b.Set(f.Name, sample(f))
				}
			}
			if kind.ProxyRequired {
				b.Proxy(tasks.Proxy{Type: tasks.ProxyHTTP, Address: "proxy.local", Port: 3128})
			}

			task, err := b.Build()
			require.NoError(t, err, "required fields alone should build")

			raw, err := json.Marshal(task)
			require.NoError(t, err)

			var body map[string]any
			require.NoError(t, json.Unmarshal(raw, &body))

			assert.Equal(t, task.Type(), body["type"], "discriminator missing")
			assert.NotEmpty(t, body["type"])
			for _, name := range kind.RequiredFields() {
				assert.Contains(t, body, name)
				assert.Equal(t, 1, strings.Count(string(raw), `"`+name+`":`), "%s should appear once", name)
			}

			assert.Positive(t, task.InitialWait())
		})
	}
}

func TestCatalogMissing(t *testing.T) {
	for _, kind := range tasks.Kinds() {
		required := kind.RequiredFields()
		if len(required) == 0 {
			continue
		}

		t.Run(kind.Name, func(t *testing.T) {
			_, err := tasks.NewBuilder[json.RawMessage](kind).Build()

			var missing *tasks.MissingFieldsError
			require.ErrorAs(t, err, &missing)
			for _, name := range required {
				assert.Contains(t, missing.Fields, name)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	k, ok := tasks.Lookup("ReCaptcha-V2")
	require.True(t, ok)
	assert.Same(t, tasks.KindRecaptchaV2, k)

	_, ok = tasks.Lookup("nope")
	assert.False(t, ok)

	names := map[string]bool{}
	for _, k := range tasks.Kinds() {
		assert.False(t, names[k.Name], "duplicate kind name %s", k.Name)
		names[k.Name] = true
	}
}
