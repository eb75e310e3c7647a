package catalog

import (
	"strings"
)

// Resolve maps a freely typed category string to a canonical catalog key.
// Matching is case-insensitive and tries, in order:
//
//  1. exact match
//  2. exact match ignoring case
//  3. suffix match against "<level>_<raw>" style keys
//  4. "<defaultLevel>_<raw>" so bare topic names land on the entry level
//
// keys must iterate in a stable order; the first suffix match wins.
// Resolve is pure and has no dependency on a live catalog.
func Resolve(raw string, keys []string, defaultLevel string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	for _, key := range keys {
		if key == raw {
			return key, true
		}
	}

	for _, key := range keys {
		if strings.EqualFold(key, raw) {
			return key, true
		}
	}

	suffix := "_" + strings.ToLower(raw)
	for _, key := range keys {
		if strings.HasSuffix(strings.ToLower(key), suffix) {
			return key, true
		}
	}

	fallback := defaultLevel + "_" + raw
	for _, key := range keys {
		if strings.EqualFold(key, fallback) {
			return key, true
		}
	}

	return "", false
}
