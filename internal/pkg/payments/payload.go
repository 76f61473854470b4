package payments

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decodeBody parses the webhook body as a JSON object. Providers that post
// form-encoded bodies are normalized to JSON upstream by Fiber's body
// parsing in the controller; by the time Verify runs we only see JSON.
func decodeBody(raw []byte) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return map[string]interface{}{}, nil
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// dig walks a dot-separated path through nested JSON objects and returns
// the value as a string. Numeric leaves are formatted without exponent.
func dig(payload map[string]interface{}, path string) string {
	if path == "" {
		return ""
	}
	var current interface{} = payload
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current, ok = obj[part]
		if !ok {
			return ""
		}
	}
	switch v := current.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// digFirst returns the first non-empty value among candidate paths.
func digFirst(payload map[string]interface{}, paths []string) string {
	for _, p := range paths {
		if v := dig(payload, p); v != "" {
			return v
		}
	}
	return ""
}

// parsePriceCents converts a provider price value (decimal currency units
// as string or number) into integer cents.
func parsePriceCents(value string) int64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}
