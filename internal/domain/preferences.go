package domain

// ThemeMode is a concrete palette.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeField ThemeMode = "field"
)

// Valid reports whether m is a known theme mode.
func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeField:
		return true
	}
	return false
}

// ThemePreference is a ThemeMode or "system", which follows the OS scheme.
type ThemePreference string

const (
	ThemePreferenceSystem ThemePreference = "system"
	ThemePreferenceLight  ThemePreference = "light"
	ThemePreferenceDark   ThemePreference = "dark"
	ThemePreferenceField  ThemePreference = "field"
)

// Valid reports whether p is a known preference.
func (p ThemePreference) Valid() bool {
	return p == ThemePreferenceSystem || ThemeMode(p).Valid()
}

// Mode returns the explicit mode for p. ok is false for "system".
func (p ThemePreference) Mode() (mode ThemeMode, ok bool) {
	if p == ThemePreferenceSystem || !p.Valid() {
		return "", false
	}
	return ThemeMode(p), true
}

// NotificationPreferences toggles each notification channel.
type NotificationPreferences struct {
	SevereWeather     bool `json:"severeWeather"`
	MarketMovers      bool `json:"marketMovers"`
	AIInsights        bool `json:"aiInsights"`
	CommunityMentions bool `json:"communityMentions"`
}

// DefaultNotificationPreferences returns the preferences of a fresh install.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		SevereWeather:     true,
		MarketMovers:      true,
		AIInsights:        true,
		CommunityMentions: false,
	}
}

// NotificationPreferencesUpdate is a partial NotificationPreferences.
type NotificationPreferencesUpdate struct {
	SevereWeather     *bool
	MarketMovers      *bool
	AIInsights        *bool
	CommunityMentions *bool
}

// Apply merges the set fields of u into p.
func (p NotificationPreferences) Apply(u NotificationPreferencesUpdate) NotificationPreferences {
	if u.SevereWeather != nil {
		p.SevereWeather = *u.SevereWeather
	}
	if u.MarketMovers != nil {
		p.MarketMovers = *u.MarketMovers
	}
	if u.AIInsights != nil {
		p.AIInsights = *u.AIInsights
	}
	if u.CommunityMentions != nil {
		p.CommunityMentions = *u.CommunityMentions
	}
	return p
}

// DetailLevel controls how long advisor answers are.
type DetailLevel string

const (
	DetailConcise  DetailLevel = "concise"
	DetailBalanced DetailLevel = "balanced"
	DetailDeep     DetailLevel = "deep"
)

// Valid reports whether d is a known detail level.
func (d DetailLevel) Valid() bool {
	return d == DetailConcise || d == DetailBalanced || d == DetailDeep
}

// Tone controls how assertive advisor answers are.
type Tone string

const (
	ToneCautious Tone = "cautious"
	ToneBalanced Tone = "balanced"
	ToneBold     Tone = "bold"
)

// Valid reports whether t is a known tone.
func (t Tone) Valid() bool {
	return t == ToneCautious || t == ToneBalanced || t == ToneBold
}

// AiAdvisorPreference shapes the AI advisor's replies.
type AiAdvisorPreference struct {
	DetailLevel DetailLevel `json:"detailLevel"`
	Tone        Tone        `json:"tone"`
	VoiceTips   bool        `json:"voiceTips"`
}

// DefaultAiAdvisorPreference returns the advisor settings of a fresh install.
func DefaultAiAdvisorPreference() AiAdvisorPreference {
	return AiAdvisorPreference{
		DetailLevel: DetailBalanced,
		Tone:        ToneBalanced,
		VoiceTips:   false,
	}
}

// AiAdvisorPreferenceUpdate is a partial AiAdvisorPreference.
type AiAdvisorPreferenceUpdate struct {
	DetailLevel *DetailLevel
	Tone        *Tone
	VoiceTips   *bool
}

// Apply merges the set fields of u into p.
func (p AiAdvisorPreference) Apply(u AiAdvisorPreferenceUpdate) AiAdvisorPreference {
	if u.DetailLevel != nil {
		p.DetailLevel = *u.DetailLevel
	}
	if u.Tone != nil {
		p.Tone = *u.Tone
	}
	if u.VoiceTips != nil {
		p.VoiceTips = *u.VoiceTips
	}
	return p
}
