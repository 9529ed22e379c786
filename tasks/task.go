package tasks

import (
	"encoding/json"
	"maps"
	"time"
)

// Anything the solver can submit. Implemented by every *Task[S].
type Payload interface {
	json.Marshaler
	// Discriminator sent in the "type" field
	Type() string
	InitialWait() time.Duration
}

// Ensure Task implements Payload interface.
var _ Payload = (*Task[TokenSolution])(nil)

// A built, immutable puzzle description. S is the shape of its solution.
type Task[S any] struct {
	kind   *Kind
	fields map[string]any
	proxy  *Proxy
}

// Copy of the kind the task was built from
func (t *Task[S]) Kind() *Kind {
	return t.kind.Clone()
}

func (t *Task[S]) Type() string {
	return t.kind.discriminator(t.proxy != nil)
}

func (t *Task[S]) InitialWait() time.Duration {
	return t.kind.InitialWait
}

// Value of a field as it will be sent
func (t *Task[S]) Get(name string) (any, bool) {
	v, ok := t.fields[name]
	return v, ok
}

func (t *Task[S]) Proxy() (Proxy, bool) {
	if t.proxy == nil {
		return Proxy{}, false
	}
	return *t.proxy, true
}

// Encodes the tagged payload: "type", the kind's constants, the set fields and the proxy fields
func (t *Task[S]) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(t.fields)+len(t.kind.Constants)+6)
	maps.Copy(body, t.kind.Constants)
	maps.Copy(body, t.fields)
	if t.proxy != nil {
		t.proxy.fill(body)
	}
	body["type"] = t.Type()

	return json.Marshal(body)
}
