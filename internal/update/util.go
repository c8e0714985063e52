package update

import "strings"

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func isDismissKey(key string) bool {
	switch key {
	case "enter", "esc", " ":
		return true
	default:
		return false
	}
}
