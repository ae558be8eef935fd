package cache

import (
	"encoding/json"
	"sort"
	"strings"
)

// paginationParams are excluded from cache keys: two requests that differ
// only in their pagination cursor address the same upstream query.
var paginationParams = map[string]bool{
	"page": true,
}

// WindowKey builds the cache key for a time-window query: `date_window`,
// with "all" standing in for an unscoped query.
func WindowKey(date, window string) string {
	if window == "" {
		window = "all"
	}
	return date + "_" + window
}

// ParamsKey builds the cache key for an explicitly parameterized query:
// the local date plus a canonical JSON form of the filter parameters.
// Keys are emitted in sorted order so equivalent filters always produce
// the same fingerprint.
func ParamsKey(date string, params map[string]string) string {
	filtered := make(map[string]string, len(params))
	for k, v := range params {
		if paginationParams[k] {
			continue
		}
		filtered[k] = v
	}

	keys := make([]string, 0, len(filtered))
	for k := range filtered {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(date)
	b.WriteByte('_')
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSONString(&b, k)
		b.WriteByte(':')
		writeJSONString(&b, filtered[k])
	}
	b.WriteByte('}')
	return b.String()
}

func writeJSONString(b *strings.Builder, s string) {
	encoded, err := json.Marshal(s)
	if err != nil {
		b.WriteString(`"` + s + `"`)
		return
	}
	b.Write(encoded)
}
