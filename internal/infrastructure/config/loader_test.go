package config

import (
	"image/color"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/stm/internal/domain/skin"
)

const configDir = "../../../cmd/stm/configs"

func TestLoader_LoadApp(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadApp()
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Display.ScreenWidth)
	assert.Equal(t, 600, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Len(t, cfg.Skins, 5)
	require.Len(t, cfg.Questions, 4)
	assert.Equal(t, "number", cfg.Questions[0].Type)
	assert.Equal(t, "choice", cfg.Questions[2].Type)
	assert.Equal(t, "zeg ik niet", cfg.Questions[3].Default)
}

func TestLoader_LoadDefaultSkinMatchesReference(t *testing.T) {
	loader := NewLoader(configDir)

	sk, err := loader.LoadSkin("default")
	require.NoError(t, err)

	assert.Equal(t, skin.Default(), sk)
}

func TestLoader_LoadSkin(t *testing.T) {
	loader := NewLoader(configDir)

	t.Run("params-1 overrides a few keys", func(t *testing.T) {
		sk, err := loader.LoadSkin("params-1")
		require.NoError(t, err)

		assert.Equal(t, "PARAMS-1", sk.ID)
		assert.Equal(t, 60, sk.Duration(skin.PhasePrepare))
		assert.Equal(t, 300, sk.Duration(skin.PhaseCountdown))
		assert.Equal(t, 40, sk.Duration(skin.PhaseShowTest))
		assert.Equal(t, -1, sk.Rotation[skin.PhaseIdle])
		assert.Equal(t, -3, sk.Rotation[skin.PhaseDecay])
		assert.Equal(t, color.NRGBA{255, 0, 0, 255}, sk.Palette(skin.PhaseIdle)[1])
	})

	t.Run("oscillator", func(t *testing.T) {
		sk, err := loader.LoadSkin("oscillator")
		require.NoError(t, err)

		assert.Equal(t, skin.SoundOscillator, sk.Sound.Mode)
		assert.Equal(t, [4]float64{147, 174, 220, 261}, sk.Sound.Frequencies)
	})

	t.Run("polysynth uses note names", func(t *testing.T) {
		sk, err := loader.LoadSkin("polysynth")
		require.NoError(t, err)

		assert.Equal(t, skin.SoundNotes, sk.Sound.Mode)
		assert.InDelta(t, 349.23, sk.Sound.Frequencies[0], 0.01)
		assert.InDelta(t, 466.16, sk.Sound.Frequencies[3], 0.01)
		assert.Equal(t, 24, sk.Sound.Sustain)
		assert.Len(t, sk.Palette(skin.PhasePrepare), 24)
	})

	t.Run("ini skin", func(t *testing.T) {
		sk, err := loader.LoadSkin("labeled")
		require.NoError(t, err)

		assert.Equal(t, "LABELED", sk.ID)
		assert.Equal(t, skin.ButtonsLabeled, sk.Buttons)
		assert.Equal(t, 300, sk.Duration(skin.PhaseCountdown))
		assert.Equal(t, skin.TimeoutPolicy{Kind: skin.TimeoutStepDown, Step: 2, Next: 1}, sk.Timeout)
		assert.Equal(t, color.NRGBA{10, 255, 0, 255}, sk.Palette(skin.PhaseCountdown)[0])
		assert.Equal(t, color.NRGBA{34, 34, 34, 255}, sk.Palette(skin.PhaseTimeout)[0])
	})

	t.Run("explicit extension", func(t *testing.T) {
		sk, err := loader.LoadSkin("labeled.ini")
		require.NoError(t, err)
		assert.Equal(t, "LABELED", sk.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := loader.LoadSkin("nope")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	require.Len(t, cfg.Skins, 5)
	ids := make([]string, len(cfg.Skins))
	for i, sk := range cfg.Skins {
		ids[i] = sk.ID
		assert.NoError(t, sk.Validate())
	}
	assert.Equal(t, []string{"YOUR_GROUP", "PARAMS-1", "OSCILLATOR", "POLYSYNTH", "LABELED"}, ids)
}

func TestConfig_SkinForSet(t *testing.T) {
	cfg, err := NewLoader(configDir).LoadAll()
	require.NoError(t, err)

	tests := []struct {
		set      string
		expected string
		err      bool
	}{
		{"", "YOUR_GROUP", false},
		{"0", "YOUR_GROUP", false},
		{"3", "POLYSYNTH", false},
		{"OSCILLATOR", "OSCILLATOR", false},
		{"5", "", true},
		{"-1", "", true},
		{"GRP08E", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.set, func(t *testing.T) {
			sk, err := cfg.SkinForSet(tt.set)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownSet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sk.ID)
		})
	}
}

func TestNewFSLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"app.json":        {Data: []byte(`{"skins": ["tiny"]}`)},
		"skins/tiny.json": {Data: []byte(`{"id": "TINY", "durations": {"idle": 10}}`)},
	}
	loader := NewFSLoader(fsys, "mem")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.App.Display.Framerate, "framerate defaults to 60")
	require.Len(t, cfg.Skins, 1)
	assert.Equal(t, 10, cfg.Skins[0].Duration(skin.PhaseIdle))
}

func TestLoader_NoSkinsFallsBackToDefault(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{"app.json": {Data: []byte(`{}`)}}, "mem")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	require.Len(t, cfg.Skins, 1)
	assert.Equal(t, "YOUR_GROUP", cfg.Skins[0].ID)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		is   error
	}{
		{
			name: "missing app",
			fsys: fstest.MapFS{},
			is:   fs.ErrNotExist,
		},
		{
			name: "short palette",
			fsys: fstest.MapFS{
				"app.json":       {Data: []byte(`{"skins": ["bad"]}`)},
				"skins/bad.json": {Data: []byte(`{"id": "BAD", "palettes": {"decay": ["red", "blue"]}}`)},
			},
			is: skin.ErrPaletteTooShort,
		},
		{
			name: "unknown color",
			fsys: fstest.MapFS{
				"app.json":       {Data: []byte(`{"skins": ["bad"]}`)},
				"skins/bad.json": {Data: []byte(`{"id": "BAD", "blank": "blurple"}`)},
			},
			is: ErrUnknownColor,
		},
		{
			name: "non-positive duration",
			fsys: fstest.MapFS{
				"app.json":       {Data: []byte(`{"skins": ["bad"]}`)},
				"skins/bad.json": {Data: []byte(`{"id": "BAD", "durations": {"decay": 0}}`)},
			},
			is: skin.ErrBadDuration,
		},
		{
			name: "unknown phase",
			fsys: fstest.MapFS{
				"app.json":       {Data: []byte(`{"skins": ["bad"]}`)},
				"skins/bad.json": {Data: []byte(`{"id": "BAD", "durations": {"lunch": 10}}`)},
			},
			is: ErrUnknownPhase,
		},
		{
			name: "missing id",
			fsys: fstest.MapFS{
				"app.json":       {Data: []byte(`{"skins": ["bad"]}`)},
				"skins/bad.json": {Data: []byte(`{}`)},
			},
			is: skin.ErrMissingID,
		},
		{
			name: "bad note",
			fsys: fstest.MapFS{
				"app.json": {Data: []byte(`{"skins": ["bad"]}`)},
				"skins/bad.json": {Data: []byte(
					`{"id": "BAD", "sound": {"mode": "notes", "notes": ["F4", "G4", "X9", "Bb4"], "sustain": 10}}`)},
			},
			is: skin.ErrBadNote,
		},
		{
			name: "too few frequencies",
			fsys: fstest.MapFS{
				"app.json": {Data: []byte(`{"skins": ["bad"]}`)},
				"skins/bad.json": {Data: []byte(
					`{"id": "BAD", "sound": {"mode": "oscillator", "frequencies": [100, 200]}}`)},
			},
			is: skin.ErrBadSound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFSLoader(tt.fsys, "mem").LoadAll()
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestLoader_InvalidJSON(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{"app.json": {Data: []byte(`{`)}}, "mem")

	_, err := loader.LoadApp()
	assert.Error(t, err)
}

func TestParseSkinINI(t *testing.T) {
	data := []byte(`
id = INI
buttons = plain
blank = 10

[durations]
idle = 30
showTest = 50

[palettes]
correct = rgba(0,255,0,0.5), green, green, green, green, green, green, green, green, green, green, green

[rotation]
correct = 2

[sound]
mode = oscillator
frequencies = 100, 200, 300, 400
volume = 0.3
`)

	f, err := ParseSkinINI(data)
	require.NoError(t, err)
	sk, err := BuildSkin(f)
	require.NoError(t, err)

	assert.Equal(t, "INI", sk.ID)
	assert.Equal(t, color.NRGBA{10, 10, 10, 255}, sk.Blank)
	assert.Equal(t, 30, sk.Duration(skin.PhaseIdle))
	assert.Equal(t, 50, sk.Duration(skin.PhaseShowTest))
	assert.Equal(t, 2, sk.Rotation[skin.PhaseCorrect])
	require.Len(t, sk.Palette(skin.PhaseCorrect), 12)
	assert.Equal(t, color.NRGBA{0, 255, 0, 128}, sk.Palette(skin.PhaseCorrect)[0])
	assert.Equal(t, [4]float64{100, 200, 300, 400}, sk.Sound.Frequencies)
	assert.InDelta(t, 0.3, sk.Sound.Volume, 1e-9)
}

func TestParseSkinINI_BadNumber(t *testing.T) {
	_, err := ParseSkinINI([]byte("id = X\n[durations]\nidle = soon\n"))
	assert.Error(t, err)
}

func TestBuildSkin_UnknownButtons(t *testing.T) {
	_, err := BuildSkin(&SkinFile{ID: "X", Buttons: "fancy"})
	assert.Error(t, err)
}
