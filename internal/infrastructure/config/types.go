package config

// AppConfig is the root config for app.json
type AppConfig struct {
	Display   DisplayConfig `json:"display"`
	Skins     []string      `json:"skins"` // skin file names, indexed by skin set
	Questions []Question    `json:"questions"`
	Server    ServerConfig  `json:"server"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Framerate    int    `json:"framerate"`
	Title        string `json:"title"`
	Fullscreen   bool   `json:"fullscreen"`
}

// Question is one entry of the questionnaire shown before the test
type Question struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Type      string   `json:"type"` // "number" or "choice"
	Options   []string `json:"options,omitempty"`
	Default   string   `json:"default,omitempty"`
	MaxLength int      `json:"maxLength,omitempty"`
}

type ServerConfig struct {
	URL            string `json:"url"`            // collector base URL, empty for offline
	TimeoutSeconds int    `json:"timeoutSeconds"` // per request
}

// SkinFile is the on-disk form of a skin. Keys left out inherit the
// reference skin.
type SkinFile struct {
	ID        string           `json:"id"`
	Durations map[string]int   `json:"durations"`
	Palettes  map[string][]any `json:"palettes"`
	Rotation  map[string]int   `json:"rotation"`
	Blank     any              `json:"blank"`
	Sound     *SoundConfig     `json:"sound"`
	Buttons   string           `json:"buttons"`
	Timeout   *TimeoutConfig   `json:"timeout"`
}

type SoundConfig struct {
	Mode        string    `json:"mode"`
	Frequencies []float64 `json:"frequencies,omitempty"`
	Notes       []string  `json:"notes,omitempty"` // note names, used when frequencies are absent
	Volume      float64   `json:"volume"`
	Sustain     int       `json:"sustain,omitempty"` // frames
}

type TimeoutConfig struct {
	Kind string `json:"kind"`
	Step int    `json:"step"`
	Next int    `json:"next"`
}
