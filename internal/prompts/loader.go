// Package prompts provides the LLM prompt templates used by model-backed extractors.
// Templates are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"
)

// Prompt keys.
const (
	LexicalKeywords = "lexical-keywords"
)

//go:embed *.json
var promptFiles embed.FS

var (
	loadOnce sync.Once
	loaded   map[string]string
	loadErr  error
)

// Get returns the raw template for key.
func Get(key string) (string, error) {
	prompts, err := all()
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return prompt, nil
}

// Render executes the template for key with data.
// Missing fields are an error rather than rendering "<no value>".
func Render(key string, data any) (string, error) {
	raw, err := Get(key)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(key).Option("missingkey=error").Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt %q: %w", key, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", key, err)
	}
	return sb.String(), nil
}

// Keys returns all prompt keys in sorted order.
func Keys() ([]string, error) {
	prompts, err := all()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// all parses every embedded prompt file once. Keys must be unique across files.
func all() (map[string]string, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parseFiles()
	})
	return loaded, loadErr
}

func parseFiles() (map[string]string, error) {
	entries, err := promptFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt files: %w", err)
	}

	out := make(map[string]string)
	for _, entry := range entries {
		data, err := promptFiles.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
		}

		var prompts map[string]string
		if err := json.Unmarshal(data, &prompts); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
		}
		for key, prompt := range prompts {
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("duplicate prompt key %q in %s", key, entry.Name())
			}
			out[key] = prompt
		}
	}
	return out, nil
}
