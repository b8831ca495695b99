package frontmatter

import (
	"errors"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// Fingerprint computes the canonical content fingerprint of a post.
//
// Fields are serialized by yaml.v3, which sorts mapping keys, so two documents with
// the same metadata and body share a fingerprint regardless of key order or CRLF endings.
// A stored fingerprint field is excluded from the hash.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	if fields == nil {
		return "", errors.New("fields map is nil")
	}

	forHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		forHash[k] = v
	}

	serialized := ""
	if len(forHash) > 0 {
		raw, err := yaml.Marshal(forHash)
		if err != nil {
			return "", err
		}
		serialized = strings.TrimSuffix(string(raw), "\n")
	}

	normalizedBody := strings.ReplaceAll(string(body), "\r\n", "\n")
	return mdfp.CalculateFingerprintFromParts(serialized, normalizedBody), nil
}
