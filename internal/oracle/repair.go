package oracle

import "strings"

// Repair applies a best-effort cleanup to an oracle reply before JSON
// parsing: markdown code fences are stripped, and a trailing comma on a line
// immediately preceding a closing brace is removed. Models occasionally emit
// both. This is deliberately narrow; anything else that fails to parse is a
// hard failure for the caller.
func Repair(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	lines := strings.Split(s, "\n")
	fixed := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasSuffix(trimmed, ",") &&
			i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "}" {
			line = strings.TrimSuffix(trimmed, ",")
		}
		fixed = append(fixed, line)
	}
	return strings.Join(fixed, "\n")
}
