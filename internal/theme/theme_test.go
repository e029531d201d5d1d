package theme

import (
	"testing"

	"github.com/agroaide/agroaide-client/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		pref   domain.ThemePreference
		system Scheme
		want   domain.ThemeMode
	}{
		{domain.ThemePreferenceSystem, SchemeDark, domain.ThemeDark},
		{domain.ThemePreferenceSystem, SchemeLight, domain.ThemeLight},
		{domain.ThemePreferenceSystem, SchemeUnknown, domain.ThemeLight},
		{domain.ThemePreferenceField, SchemeDark, domain.ThemeField},
		{domain.ThemePreferenceLight, SchemeDark, domain.ThemeLight},
		{domain.ThemePreferenceDark, SchemeLight, domain.ThemeDark},
	}

	for _, tt := range tests {
		if got := Resolve(tt.pref, tt.system); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.pref, tt.system, got, tt.want)
		}
	}
}

func TestStatusBarStyle(t *testing.T) {
	if got := StatusBarStyle(domain.ThemeLight); got != StatusBarDark {
		t.Errorf("light theme: got %q", got)
	}
	for _, mode := range []domain.ThemeMode{domain.ThemeDark, domain.ThemeField} {
		if got := StatusBarStyle(mode); got != StatusBarLight {
			t.Errorf("%s theme: got %q", mode, got)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Scheme
	}{
		{"override dark", map[string]string{ColorSchemeEnv: "Dark", "COLORFGBG": "0;15"}, SchemeDark},
		{"override light", map[string]string{ColorSchemeEnv: "light"}, SchemeLight},
		{"dark background", map[string]string{"COLORFGBG": "15;0"}, SchemeDark},
		{"light background", map[string]string{"COLORFGBG": "0;15"}, SchemeLight},
		{"three fields", map[string]string{"COLORFGBG": "0;default;7"}, SchemeLight},
		{"garbage", map[string]string{"COLORFGBG": "x;y"}, SchemeUnknown},
		{"nothing set", map[string]string{}, SchemeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(func(k string) string { return tt.env[k] })
			if got != tt.want {
				t.Errorf("detect() = %q, want %q", got, tt.want)
			}
		})
	}
}
