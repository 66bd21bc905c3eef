package meraki

import "strings"

// nextLink extracts the rel=next URL from an RFC 5988 Link header. The
// dashboard emits first/prev/next/last relations; an absent next relation
// means the final page.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range segments[1:] {
			param = strings.TrimSpace(param)
			if param == `rel=next` || param == `rel="next"` {
				return strings.Trim(target, "<>")
			}
		}
	}
	return ""
}
