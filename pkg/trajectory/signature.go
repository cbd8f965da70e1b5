package trajectory

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Signature returns a canonical string for an action. Two actions have the
// same signature exactly when their JSON values are equal, regardless of
// object key order. Used to detect exact repeats of an action including all
// of its parameters.
func (a Action) Signature() string {
	var b strings.Builder
	writeCanonical(&b, map[string]interface{}(a))
	return b.String()
}

// writeCanonical appends a canonical rendering of a decoded JSON value.
// Object keys are sorted so the rendering is order-insensitive.
func writeCanonical(b *strings.Builder, v interface{}) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(val))
	case float64:
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case string:
		b.WriteString(strconv.Quote(val))
	case []interface{}:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			writeCanonical(b, val[k])
		}
		b.WriteByte('}')
	default:
		// Unexpected decoded type; fall back to its printed form
		fmt.Fprintf(b, "%v", val)
	}
}
