// Package ingestion turns job description sources (local files and job
// board URLs) into clean plain text.
package ingestion

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

var (
	spaceRun      = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
	lineEndingFix = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// CleanText normalizes line endings and inner whitespace, keeping headings,
// bullets, leading indentation and at most one blank line between blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(lineEndingFix.Replace(content), "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of spaces inside a line. Markdown headings lose
// their indentation; everything else keeps it.
func cleanLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "#") {
		return strings.TrimRight(trimmed, " \t")
	}

	indent := len(line) - len(trimmed)
	content := spaceRun.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	return strings.Repeat(" ", indent) + content
}

// FromFile reads a text file and returns its cleaned content.
func FromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}
