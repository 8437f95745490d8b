// Package mention finds @username references in free text.
package mention

import "regexp"

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9._-]+)`)

// Extract returns the candidate usernames referenced in text. Repeated
// mentions of the same name collapse to one candidate; order of first
// appearance is kept so downstream messages are stable. Whether a candidate
// belongs to a real account is decided by the user directory, not here.
func Extract(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	candidates := make([]string, 0, len(matches))
	for _, match := range matches {
		username := match[1]
		if _, ok := seen[username]; ok {
			continue
		}
		seen[username] = struct{}{}
		candidates = append(candidates, username)
	}

	return candidates
}
