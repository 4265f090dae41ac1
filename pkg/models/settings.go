package models

import "time"

// Settings represents the application configuration
type Settings struct {
	Editor   EditorSettings  `yaml:"editor"`
	Mentions MentionSettings `yaml:"mentions"`
	UI       UISettings      `yaml:"ui"`
	Logging  LoggingSettings `yaml:"logging"`
}

// EditorSettings controls the compose box
type EditorSettings struct {
	Placeholder      string `yaml:"placeholder"`
	Rows             int    `yaml:"rows"`
	MaxLength        int    `yaml:"max_length"`
	Width            int    `yaml:"width"`
	LineHeight       int    `yaml:"line_height"`
	SuggestionOffset int    `yaml:"suggestion_offset"` // rows taken by the box's own border/padding
}

// MentionSettings controls mention autocomplete and rendering
type MentionSettings struct {
	DebounceMS       int  `yaml:"debounce_ms"`
	LookupTimeoutMS  int  `yaml:"lookup_timeout_ms"` // 0 disables the timeout
	UnicodeUsernames bool `yaml:"unicode_usernames"`
	CacheSize        int  `yaml:"cache_size"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview bool `yaml:"show_preview"`
	WrapWidth   int  `yaml:"wrap_width"`
}

// LoggingSettings controls the log file
type LoggingSettings struct {
	Level string `yaml:"level"` // debug, info, warn or error
	File  string `yaml:"file"`  // relative to the .pods directory
}

// Debounce returns the lookup debounce delay
func (m MentionSettings) Debounce() time.Duration {
	if m.DebounceMS <= 0 {
		return 0
	}
	return time.Duration(m.DebounceMS) * time.Millisecond
}

// LookupTimeout returns the per-lookup timeout, zero when disabled
func (m MentionSettings) LookupTimeout() time.Duration {
	if m.LookupTimeoutMS <= 0 {
		return 0
	}
	return time.Duration(m.LookupTimeoutMS) * time.Millisecond
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Editor: EditorSettings{
			Placeholder:      "Share something with your pod... (@ to mention)",
			Rows:             4,
			MaxLength:        1000,
			Width:            72,
			LineHeight:       1,
			SuggestionOffset: 1,
		},
		Mentions: MentionSettings{
			DebounceMS:       300,
			LookupTimeoutMS:  0,
			UnicodeUsernames: false,
			CacheSize:        64,
		},
		UI: UISettings{
			ShowPreview: true,
			WrapWidth:   80,
		},
		Logging: LoggingSettings{
			Level: "info",
			File:  "logs/pods.log",
		},
	}
}
