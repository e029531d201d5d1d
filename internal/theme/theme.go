// Package theme resolves the user's theme preference against the terminal's
// color scheme.
package theme

import (
	"os"
	"strconv"
	"strings"

	"github.com/agroaide/agroaide-client/internal/domain"
)

// Scheme is the system color scheme.
type Scheme string

const (
	SchemeLight   Scheme = "light"
	SchemeDark    Scheme = "dark"
	SchemeUnknown Scheme = ""
)

// ColorSchemeEnv overrides scheme detection.
const ColorSchemeEnv = "AGROAIDE_COLOR_SCHEME"

// StatusBar is the foreground style for chrome drawn over the theme.
type StatusBar string

const (
	StatusBarDark  StatusBar = "dark"
	StatusBarLight StatusBar = "light"
)

// Resolve maps a preference to a concrete mode. "system" follows the system
// scheme and falls back to light when it is unknown.
func Resolve(pref domain.ThemePreference, system Scheme) domain.ThemeMode {
	if mode, ok := pref.Mode(); ok {
		return mode
	}
	if system == SchemeDark {
		return domain.ThemeDark
	}
	return domain.ThemeLight
}

// StatusBarStyle returns dark content for the light theme and light content
// for the others.
func StatusBarStyle(mode domain.ThemeMode) StatusBar {
	if mode == domain.ThemeLight {
		return StatusBarDark
	}
	return StatusBarLight
}

// DetectSystemScheme inspects the environment for the terminal's scheme.
func DetectSystemScheme() Scheme {
	return detect(os.Getenv)
}

func detect(getenv func(string) string) Scheme {
	switch strings.ToLower(strings.TrimSpace(getenv(ColorSchemeEnv))) {
	case "dark":
		return SchemeDark
	case "light":
		return SchemeLight
	}

	// COLORFGBG is "fg;bg" (sometimes "fg;default;bg"); the last field is
	// the background palette index.
	if v := getenv("COLORFGBG"); v != "" {
		parts := strings.Split(v, ";")
		bg, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			return SchemeUnknown
		}
		if bg == 7 || bg >= 9 && bg <= 15 {
			return SchemeLight
		}
		return SchemeDark
	}
	return SchemeUnknown
}
