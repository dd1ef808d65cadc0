package ui

import (
	"fmt"
	"strings"
)

// ChangesetInfo carries the fields the CLI renders for one changeset.
type ChangesetInfo struct {
	Node     string
	Manifest string
	User     string
	Time     string
	Files    []string
	Comments string
}

// FormatChangesetDetailed renders a boxed, colored changeset summary.
func FormatChangesetDetailed(info ChangesetInfo) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("node     %s\n", Hash(info.Node)))
	content.WriteString(fmt.Sprintf("manifest %s\n", Hash(info.Manifest)))
	content.WriteString(fmt.Sprintf("user     %s\n", Cyan(info.User)))
	content.WriteString(fmt.Sprintf("date     %s\n", Gray(info.Time)))

	if len(info.Files) > 0 {
		content.WriteString("files    ")
		content.WriteString(Yellow(strings.Join(info.Files, " ")))
		content.WriteString("\n")
	}

	if info.Comments != "" {
		content.WriteString("\n")
		content.WriteString(info.Comments)
	}

	return ChangesetBox(content.String())
}

// ErrorMessage renders an error line.
func ErrorMessage(message string) string {
	return Red("✗ " + message)
}

// SuccessMessage renders a success line with optional detail lines.
func SuccessMessage(message string, details ...string) string {
	var b strings.Builder
	b.WriteString(Green("✓ " + message))
	for _, d := range details {
		b.WriteString("\n  ")
		b.WriteString(Gray(d))
	}
	return b.String()
}
