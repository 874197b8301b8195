package posts

import (
	"bytes"
	"encoding/json"
)

// NormalizeTags turns whatever the client sent in the tags field into an
// ordered slice of strings. Clients send a native JSON array in JSON bodies
// and a JSON-encoded string in multipart fields; both are accepted. Anything
// unparseable normalizes to an empty set, never an error.
func NormalizeTags(raw []byte) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err == nil {
		return tags
	}

	// A JSON string whose contents are themselves an encoded array.
	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &tags); err == nil {
			return tags
		}
	}

	return []string{}
}
