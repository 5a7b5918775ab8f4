package jdl

import "strings"

// stripJavadoc removes the comment delimiters and the leading "*" column of
// every line, and trims surrounding blank lines.
func stripJavadoc(comment string) string {
	s := strings.TrimPrefix(comment, "/**")
	if len(s) == len(comment) {
		s = strings.TrimPrefix(s, "/*")
	}
	s = strings.TrimSuffix(s, "*/")

	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "* ") {
			trimmed = trimmed[2:]
		} else if strings.HasPrefix(trimmed, "*") {
			trimmed = trimmed[1:]
		}
		result = append(result, strings.TrimRight(trimmed, " \t\r"))
	}

	for len(result) > 0 && result[0] == "" {
		result = result[1:]
	}
	for len(result) > 0 && result[len(result)-1] == "" {
		result = result[:len(result)-1]
	}
	return strings.Join(result, "\n")
}
