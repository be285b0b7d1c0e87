package model

import (
	"fmt"
	"strings"
)

const DefaultMantra = "Seize the day!\nTake a deep breath\nand you got this"

// MantraPresets are the selectable breathing durations in seconds.
var MantraPresets = []int{20, 40, 60}

var presetColors = map[int]string{
	20: "#16a34a",
	40: "#2563eb",
	60: "#7c3aed",
}

const fallbackPresetColor = "#64748b"

// PresetColor returns the ring colour for a duration in seconds.
func PresetColor(seconds int) string {
	if c, ok := presetColors[seconds]; ok {
		return c
	}
	return fallbackPresetColor
}

// NormalizeMantra trims text and rejects blank input.
func NormalizeMantra(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: mantra", ErrEmptyText)
	}
	return trimmed, nil
}

// MantraLines returns the non-blank lines of text.
func MantraLines(text string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(raw string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(raw))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
