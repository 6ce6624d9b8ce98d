package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/footagents/pkg/character"
	"github.com/jwebster45206/footagents/pkg/legend"
	"github.com/jwebster45206/footagents/pkg/scene"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <roster.json|legend.json>...\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &FileValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		for _, w := range validator.warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		fmt.Printf("%s is valid!\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

// FileValidator checks roster files (a JSON array of characters) and
// legend cards (a JSON object).
type FileValidator struct {
	errors   []string
	warnings []string
}

func (v *FileValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("file must have .json extension: %s", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil
	v.warnings = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("[")):
		if err := v.validateRosterData(trimmed); err != nil {
			return fmt.Errorf("file %s: %w", filename, err)
		}
	case bytes.HasPrefix(trimmed, []byte("{")):
		id := strings.TrimSuffix(baseName, ".json")
		if !isValidID(id) {
			return fmt.Errorf("legend filename '%s' must be a lowercase id (e.g., kaka.json)", baseName)
		}
		if err := v.validateLegendData(id, trimmed); err != nil {
			return fmt.Errorf("file %s: %w", filename, err)
		}
	default:
		return fmt.Errorf("file %s must hold a roster array or a legend object", filename)
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *FileValidator) validateRosterData(data []byte) error {
	roster, err := scene.ParseRoster(data)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		v.addError("roster is empty")
		return nil
	}

	for _, err := range scene.ValidateRoster(roster) {
		v.addError(err.Error())
	}

	prefixes := character.DefaultPrefixes()
	for _, c := range roster {
		v.validateCharacter(c, prefixes)
	}
	return nil
}

func (v *FileValidator) validateCharacter(c character.Config, prefixes map[string]string) {
	if c.ID == "" {
		return
	}
	if !isValidID(c.ID) {
		v.addError(fmt.Sprintf("character id '%s' should be lowercase letters and digits", c.ID))
	}

	b := scene.DefaultBounds
	if _, moved := b.Clamp(c.SpawnPoint); moved {
		v.addError(fmt.Sprintf("character %s spawns outside the pitch at (%.0f, %.0f)", c.ID, c.SpawnPoint.X, c.SpawnPoint.Y))
	}

	key := c.AtlasKey
	if key == "" {
		key = c.ID
	}
	if _, ok := prefixes[strings.ToLower(key)]; !ok {
		v.addWarning(fmt.Sprintf("character %s has no known sprite frames for '%s'", c.ID, key))
	}
	if _, err := legend.Get(c.ID); err != nil {
		v.addWarning(fmt.Sprintf("character %s has no built-in legend card; add one under the data dir", c.ID))
	}
}

func (v *FileValidator) validateLegendData(id string, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var l legend.Legend
	if err := dec.Decode(&l); err != nil {
		return fmt.Errorf("failed strict JSON unmarshaling: %w", err)
	}
	if l.ID != "" && l.ID != id {
		v.addError(fmt.Sprintf("legend id '%s' does not match filename '%s'", l.ID, id))
	}
	l.ID = id
	if err := l.Validate(); err != nil {
		v.addError(err.Error())
	}
	if strings.TrimSpace(l.Perspective) == "" {
		v.addWarning(fmt.Sprintf("legend %s has no perspective; the prompt will say 'unknown'", id))
	}
	return nil
}

func (v *FileValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func (v *FileValidator) addWarning(msg string) {
	v.warnings = append(v.warnings, msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
