package reconcile

import (
	"encoding/json"
	"strings"
)

// Different reports whether a normalized desired value and the raw remote
// string representation of the same attribute disagree.
//
// JSON documents are compared by canonical form, so key order and whitespace
// in the remote string are irrelevant; a remote value that fails to parse is
// treated as "no existing document". Scalars are compared case-insensitively
// so boolean attributes stored as "True"/"true" never falsely register as
// changed.
func Different(desired, observed string, kind ValueKind) bool {
	if kind == KindJSON {
		if norm, ok := reserializeJSON(observed); ok {
			observed = norm
		} else {
			observed = ""
		}
		return desired != observed
	}
	return !strings.EqualFold(desired, observed)
}

// canonicalJSON serializes a document with deterministic key ordering.
// encoding/json sorts map keys, which is exactly the determinism needed.
func canonicalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// reserializeJSON parses a raw JSON string and re-serializes it canonically.
// ok is false when the input is empty or not valid JSON.
func reserializeJSON(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return "", false
	}
	return canonicalJSON(v), true
}
