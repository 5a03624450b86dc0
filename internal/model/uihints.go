package model

import (
	"encoding/json"
	"sort"
	"strconv"
)

var (
	uiHintKeys = []string{
		"autocomplete",
		"cssClass",
		"helpText",
		"hideLabel",
		"inputType",
		"label",
		"placeholder",
		"rows",
		"section",
		"submitLabel",
		"widget",
	}

	uiHintKeySet = func(keys []string) map[string]struct{} {
		result := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			result[key] = struct{}{}
		}
		return result
	}(uiHintKeys)
)

// AllowedUIHintKeys returns a sorted copy of the recognised UI extension keys.
func AllowedUIHintKeys() []string {
	keys := append([]string(nil), uiHintKeys...)
	sort.Strings(keys)
	return keys
}

// IsAllowedUIHintKey reports whether the supplied key participates in the
// curated UI hint contract.
func IsAllowedUIHintKey(key string) bool {
	_, ok := uiHintKeySet[key]
	return ok
}

// CanonicalizeExtensionValue turns extension values into renderer-friendly
// strings. Returns false when the value cannot be represented
// deterministically.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case map[string]any, []any, []string:
		payload, err := json.Marshal(v)
		if err != nil || string(payload) == "{}" || string(payload) == "[]" {
			return "", false
		}
		return string(payload), true
	default:
		return "", false
	}
}

func filterUIHints(metadata map[string]string) map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	var hints map[string]string
	for key, value := range metadata {
		if !IsAllowedUIHintKey(key) {
			continue
		}
		if hints == nil {
			hints = make(map[string]string)
		}
		hints[key] = value
	}
	return hints
}

func mergeStrings(target map[string]string, updates map[string]string) map[string]string {
	if len(updates) == 0 {
		return target
	}
	if target == nil {
		target = make(map[string]string, len(updates))
	}
	for key, value := range updates {
		target[key] = value
	}
	return target
}
