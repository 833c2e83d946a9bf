// Package prompts embeds the LLM prompt templates and provides lookup and
// placeholder substitution. Templates live in JSON files keyed by prompt name.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	loadOnce sync.Once
	loadErr  error
	catalog  map[string]string
)

// load parses every embedded prompt file into a flat "file/key" catalog.
func load() {
	catalog = make(map[string]string)
	entries, err := promptFiles.ReadDir(".")
	if err != nil {
		loadErr = fmt.Errorf("failed to list prompt files: %w", err)
		return
	}
	for _, entry := range entries {
		data, err := promptFiles.ReadFile(entry.Name())
		if err != nil {
			loadErr = fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
			return
		}
		var prompts map[string]string
		if err := json.Unmarshal(data, &prompts); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
			return
		}
		for key, text := range prompts {
			catalog[entry.Name()+"/"+key] = text
		}
	}
}

// Get retrieves a prompt template by file and key, e.g. Get("synthesis.json",
// "tailor_document").
func Get(filename, key string) (string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", loadErr
	}
	prompt, ok := catalog[filename+"/"+key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders in a template with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
