package tiercache

import (
	"fmt"
)

// KeyEncodingError reports arguments that cannot form a cache key. This is a
// caller error (the namespace+args must be cache-key-safe) and the only
// error Get/Delete can return; backing-store failures never surface.
type KeyEncodingError struct {
	Namespace string
	Err       error
}

func (e *KeyEncodingError) Error() string {
	return fmt.Sprintf("tiercache: encode key for namespace %q: %v", e.Namespace, e.Err)
}

func (e *KeyEncodingError) Unwrap() error { return e.Err }

// ConfigError reports an invalid configuration value. Construction fails
// fast rather than running with a meaningless TTL or capacity.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tiercache: invalid config: %s %s", e.Field, e.Reason)
}
