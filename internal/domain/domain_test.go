package domain

import (
	"reflect"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestFarmerProfileApply(t *testing.T) {
	base := FarmerProfile{
		ID:               "1",
		FullName:         "Ama Mensah",
		FarmName:         "Sunrise",
		FarmLatitude:     ptr(5.6),
		Crops:            []string{"cocoa"},
		ExperienceLevel:  ExperienceBeginner,
		IrrigationAccess: IrrigationRainFed,
	}

	got := base.Apply(ProfileUpdate{
		FarmName:        ptr("Sunset"),
		Crops:           []string{"cocoa", "plantain"},
		ExperienceLevel: ptr(ExperienceAdvanced),
	})

	want := base
	want.FarmName = "Sunset"
	want.Crops = []string{"cocoa", "plantain"}
	want.ExperienceLevel = ExperienceAdvanced
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Apply() = %+v, want %+v", got, want)
	}

	got.Crops[0] = "changed"
	*got.FarmLatitude = 0
	if base.Crops[0] != "cocoa" || *base.FarmLatitude != 5.6 {
		t.Fatal("Apply must not alias the receiver")
	}
}

func TestProfileUpdateIsEmpty(t *testing.T) {
	if !(ProfileUpdate{}).IsEmpty() {
		t.Error("zero update should be empty")
	}
	if (ProfileUpdate{Crops: []string{}}).IsEmpty() {
		t.Error("explicit empty crop list is a change")
	}
	if (ProfileUpdate{PreferredTheme: ptr(ThemeDark)}).IsEmpty() {
		t.Error("theme update is a change")
	}
}

func TestFarmerProfileClone(t *testing.T) {
	var nilProfile *FarmerProfile
	if nilProfile.Clone() != nil {
		t.Fatal("cloning nil should give nil")
	}

	p := &FarmerProfile{Crops: []string{"maize"}, FarmLongitude: ptr(-0.2)}
	c := p.Clone()
	c.Crops[0] = "rice"
	*c.FarmLongitude = 1
	if p.Crops[0] != "maize" || *p.FarmLongitude != -0.2 {
		t.Fatal("clone shares memory with original")
	}
}

func TestEnumValidity(t *testing.T) {
	if !IrrigationDrip.Valid() || IrrigationAccess("bucket").Valid() {
		t.Error("IrrigationAccess.Valid")
	}
	if !ExperienceIntermediate.Valid() || ExperienceLevel("expert").Valid() {
		t.Error("ExperienceLevel.Valid")
	}
	if !DetailDeep.Valid() || DetailLevel("verbose").Valid() {
		t.Error("DetailLevel.Valid")
	}
	if !ToneBold.Valid() || Tone("snarky").Valid() {
		t.Error("Tone.Valid")
	}
}

func TestThemePreferenceMode(t *testing.T) {
	tests := []struct {
		pref   ThemePreference
		want   ThemeMode
		wantOK bool
	}{
		{ThemePreferenceSystem, "", false},
		{ThemePreferenceDark, ThemeDark, true},
		{ThemePreferenceField, ThemeField, true},
		{ThemePreference("sepia"), "", false},
	}
	for _, tt := range tests {
		got, ok := tt.pref.Mode()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%q.Mode() = %q, %v", tt.pref, got, ok)
		}
	}
}

func TestPreferenceDefaultsAndMerge(t *testing.T) {
	n := DefaultNotificationPreferences()
	if !n.SevereWeather || !n.MarketMovers || !n.AIInsights || n.CommunityMentions {
		t.Fatalf("unexpected notification defaults: %+v", n)
	}
	n = n.Apply(NotificationPreferencesUpdate{MarketMovers: ptr(false)})
	if n.MarketMovers || !n.SevereWeather {
		t.Fatalf("merge touched the wrong fields: %+v", n)
	}

	a := DefaultAiAdvisorPreference()
	a = a.Apply(AiAdvisorPreferenceUpdate{Tone: ptr(ToneCautious)})
	if a.Tone != ToneCautious || a.DetailLevel != DetailBalanced || a.VoiceTips {
		t.Fatalf("unexpected advisor preference: %+v", a)
	}
}
