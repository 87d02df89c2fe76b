package validation

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var scriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)vbscript\s*:`),
	regexp.MustCompile(`(?i)data\s*:\s*text/html`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
	regexp.MustCompile(`(?i)expression\s*\(`),
}

// Sanitize strips HTML markup and script-triggering substrings from a
// string field. Runs on every incoming string regardless of the route's
// own schema.
func Sanitize(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")

	if strings.ContainsAny(s, "<>") {
		s = stripTags(s)
	}

	for _, re := range scriptPatterns {
		s = re.ReplaceAllString(s, "")
	}

	return strings.TrimSpace(s)
}

// stripTags tokenizes s as HTML and keeps only text content. script and
// style bodies are dropped entirely.
func stripTags(s string) string {
	var b strings.Builder
	tz := html.NewTokenizer(strings.NewReader(s))

	skipDepth := 0
	for {
		tt := tz.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := tz.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tz.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tz.Text())
			}
		}
	}
}

// SanitizeValue walks a decoded JSON value and sanitizes every string in
// it, including strings nested in objects and arrays.
func SanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return Sanitize(val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = SanitizeValue(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = SanitizeValue(item)
		}
		return val
	}
	return v
}
