package codec

import (
	"strings"

	"github.com/tidwall/gjson"
)

// MaxRawDump bounds the fallback serialization of an unrecognized response.
const MaxRawDump = 2000

// ExtractReply pulls a single reply string out of a provider response body of
// unknown shape. Shapes are tried in priority order:
//
//  1. output[].content[].text (Responses API) - concatenated, no separator
//  2. output_text (flattened Responses API)
//  3. choices[0].message.content (chat completions)
//  4. truncated dump of the raw body
//
// Extraction is total: any body, including non-JSON garbage, yields a string.
func ExtractReply(raw []byte) string {
	if out := gjson.GetBytes(raw, "output"); out.IsArray() {
		var b strings.Builder
		for _, block := range out.Array() {
			for _, c := range block.Get("content").Array() {
				if t := c.Get("text"); t.Type == gjson.String {
					b.WriteString(t.String())
				}
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}

	if v := gjson.GetBytes(raw, "output_text"); v.Type == gjson.String {
		return v.String()
	}

	if v := gjson.GetBytes(raw, "choices.0.message.content"); v.Type == gjson.String {
		return v.String()
	}

	return truncatedDump(raw)
}

// truncatedDump returns the raw body as printable text, bounded to MaxRawDump
// bytes. The body is already a serialization, so it is passed through as-is.
func truncatedDump(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > MaxRawDump {
		return s[:MaxRawDump]
	}
	return s
}
