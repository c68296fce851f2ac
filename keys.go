package tiercache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// encodeKey derives the storage key for (namespace, args):
//
//	cache:<namespace>:<hex sha256(namespace + ":" + canonical(args))>
//
// encoding/json writes map keys in sorted order at every nesting level, so
// permutations of the same argument set always produce the same key. Values
// that cannot be serialized (funcs, channels, NaN, cycles) are a caller
// error and surface as *KeyEncodingError.
func encodeKey(namespace string, args Args) (string, error) {
	canon, err := json.Marshal(args)
	if err != nil {
		return "", &KeyEncodingError{Namespace: namespace, Err: err}
	}
	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write([]byte{':'})
	h.Write(canon)
	return "cache:" + namespace + ":" + hex.EncodeToString(h.Sum(nil)), nil
}
