package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/younwookim/stm/internal/domain/skin"
)

// ErrUnknownPhase is returned for table keys that name no phase
var ErrUnknownPhase = errors.New("unknown phase")

func phaseByName(name string) (skin.Phase, error) {
	for _, p := range skin.Phases() {
		if strings.EqualFold(p.String(), name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownPhase)
}

// BuildSkin converts a skin file into a validated skin
func BuildSkin(f *SkinFile) (*skin.Skin, error) {
	sk := skin.Default()
	sk.ID = f.ID

	for name, d := range f.Durations {
		p, err := phaseByName(name)
		if err != nil {
			return nil, fmt.Errorf("durations: %w", err)
		}
		sk.Durations[p] = d
	}

	for name, r := range f.Rotation {
		p, err := phaseByName(name)
		if err != nil {
			return nil, fmt.Errorf("rotation: %w", err)
		}
		sk.Rotation[p] = r
	}

	for name, values := range f.Palettes {
		p, err := phaseByName(name)
		if err != nil {
			return nil, fmt.Errorf("palettes: %w", err)
		}
		palette := make(skin.Palette, 0, len(values))
		for i, v := range values {
			c, err := ParseColor(v)
			if err != nil {
				return nil, fmt.Errorf("palette %s entry %d: %w", name, i, err)
			}
			palette = append(palette, c)
		}
		sk.Palettes[p] = palette
	}

	if f.Blank != nil {
		c, err := ParseColor(f.Blank)
		if err != nil {
			return nil, fmt.Errorf("blank: %w", err)
		}
		sk.Blank = c
	}

	if f.Sound != nil {
		sound, err := buildSound(f.Sound)
		if err != nil {
			return nil, err
		}
		sk.Sound = sound
	}

	if f.Buttons != "" {
		sk.Buttons = skin.ButtonStyle(f.Buttons)
	}
	switch sk.Buttons {
	case skin.ButtonsPlain, skin.ButtonsLabeled:
	default:
		return nil, fmt.Errorf("unknown button style %q", f.Buttons)
	}

	if f.Timeout != nil {
		sk.Timeout = skin.TimeoutPolicy{
			Kind: skin.TimeoutKind(f.Timeout.Kind),
			Step: f.Timeout.Step,
			Next: f.Timeout.Next,
		}
	}

	if err := sk.Validate(); err != nil {
		return nil, fmt.Errorf("skin %q: %w", f.ID, err)
	}
	return sk, nil
}

func buildSound(c *SoundConfig) (skin.Sound, error) {
	s := skin.Sound{
		Mode:    skin.SoundMode(c.Mode),
		Volume:  c.Volume,
		Sustain: c.Sustain,
	}
	if s.Mode == "" {
		s.Mode = skin.SoundNone
	}
	if !s.Enabled() {
		return s, nil
	}

	switch {
	case len(c.Frequencies) > 0:
		if len(c.Frequencies) != len(s.Frequencies) {
			return s, fmt.Errorf("sound needs %d frequencies, got %d: %w",
				len(s.Frequencies), len(c.Frequencies), skin.ErrBadSound)
		}
		copy(s.Frequencies[:], c.Frequencies)
	case len(c.Notes) > 0:
		if len(c.Notes) < len(s.Frequencies) {
			return s, fmt.Errorf("sound needs %d notes, got %d: %w",
				len(s.Frequencies), len(c.Notes), skin.ErrBadSound)
		}
		for q := range s.Frequencies {
			f, err := skin.NoteFrequency(c.Notes[q])
			if err != nil {
				return s, fmt.Errorf("sound: %w", err)
			}
			s.Frequencies[q] = f
		}
	default:
		return s, fmt.Errorf("sound has no frequencies: %w", skin.ErrBadSound)
	}
	return s, nil
}

// ParseSkinINI reads a skin authored as an INI file.
//
//	id = GROUP1
//	blank = black
//	buttons = labeled
//
//	[durations]
//	warn = 60
//
//	[palettes]
//	idle = red, #fae, rgba(0,255,0,0.25), ...
//
//	[rotation]
//	idle = -1
//
//	[sound]
//	mode = notes
//	notes = F4, G4, Ab4, Bb4
//	volume = 0.2
//	sustain = 24
//
//	[timeout]
//	kind = stepdown
//	step = 2
//	next = 1
func ParseSkinINI(data []byte) (*SkinFile, error) {
	options := ini.LoadOptions{
		InsensitiveSections: true,
		// '#' starts hex colors
		IgnoreInlineComment: true,
	}
	file, err := ini.LoadSources(options, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ini: %w", err)
	}

	root := file.Section(ini.DefaultSection)
	f := &SkinFile{
		ID:        root.Key("id").String(),
		Buttons:   root.Key("buttons").String(),
		Durations: map[string]int{},
		Rotation:  map[string]int{},
		Palettes:  map[string][]any{},
	}
	if root.HasKey("blank") {
		f.Blank = root.Key("blank").String()
	}

	for _, key := range file.Section("durations").Keys() {
		d, err := key.Int()
		if err != nil {
			return nil, fmt.Errorf("durations.%s: %w", key.Name(), err)
		}
		f.Durations[key.Name()] = d
	}
	for _, key := range file.Section("rotation").Keys() {
		r, err := key.Int()
		if err != nil {
			return nil, fmt.Errorf("rotation.%s: %w", key.Name(), err)
		}
		f.Rotation[key.Name()] = r
	}
	for _, key := range file.Section("palettes").Keys() {
		var values []any
		for _, c := range splitColors(key.String()) {
			values = append(values, c)
		}
		f.Palettes[key.Name()] = values
	}

	if file.HasSection("sound") {
		sec := file.Section("sound")
		sc := &SoundConfig{
			Mode:    sec.Key("mode").MustString(string(skin.SoundNone)),
			Volume:  sec.Key("volume").MustFloat64(0.5),
			Sustain: sec.Key("sustain").MustInt(0),
		}
		if sec.HasKey("frequencies") {
			sc.Frequencies = sec.Key("frequencies").Float64s(",")
		}
		if sec.HasKey("notes") {
			sc.Notes = sec.Key("notes").Strings(",")
		}
		f.Sound = sc
	}

	if file.HasSection("timeout") {
		sec := file.Section("timeout")
		f.Timeout = &TimeoutConfig{
			Kind: sec.Key("kind").MustString(string(skin.TimeoutReset)),
			Step: sec.Key("step").MustInt(0),
			Next: sec.Key("next").MustInt(0),
		}
	}
	return f, nil
}
