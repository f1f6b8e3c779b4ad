package news

import (
	"bytes"
	"encoding/base64"
	"strings"
)

const encodedURLPrefix = "https://news.google.com/rss/articles/"

// DecodeGoogleNewsURL unwraps the publisher URL embedded in a Google News
// article link. Links that are not encoded, or use the opaque newer format,
// are returned unchanged.
func DecodeGoogleNewsURL(link string) string {
	if !strings.HasPrefix(link, encodedURLPrefix) {
		return link
	}
	encoded := strings.TrimPrefix(link, encodedURLPrefix)
	if i := strings.IndexByte(encoded, '?'); i >= 0 {
		encoded = encoded[:i]
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return link
	}
	if target, ok := primaryURL(raw); ok {
		return target
	}
	return link
}

// primaryURL parses the protobuf-ish envelope 0x08 0x13 '"' <len> <url> 0xd2 0x01.
func primaryURL(raw []byte) (string, bool) {
	if !bytes.HasPrefix(raw, []byte{0x08, 0x13, '"'}) {
		return "", false
	}
	rest := raw[3:]
	start := bytes.Index(rest, []byte("http"))
	if start < 1 {
		return "", false
	}
	rest = rest[start:]
	end := bytes.IndexByte(rest, 0xd2)
	if end <= 0 || end+1 >= len(rest) || rest[end+1] != 0x01 {
		return "", false
	}
	return string(rest[:end]), true
}
