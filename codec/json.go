package codec

import "encoding/json"

// JSON is the default codec. Payloads are assumed JSON-representable, which
// matches the cache's key-material contract; the zero value is ready to use.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
