package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"

	"github.com/younwookim/stm/internal/domain/skin"
)

// ErrUnknownSet is returned when a skin set selects no configured skin
var ErrUnknownSet = errors.New("unknown skin set")

// Config holds all loaded configurations
type Config struct {
	App   *AppConfig
	Skins []*skin.Skin // indexed by skin set
}

// Loader loads configuration from JSON and INI files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadApp loads app.json
func (l *Loader) LoadApp() (*AppConfig, error) {
	data, err := fs.ReadFile(l.fsys, "app.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read app.json: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app.json: %w", err)
	}

	if cfg.Display.Framerate <= 0 {
		cfg.Display.Framerate = 60
	}
	return &cfg, nil
}

// LoadSkin loads skins/<name>.json, or skins/<name>.ini when no JSON
// file exists. A name with an extension selects the file directly.
func (l *Loader) LoadSkin(name string) (*skin.Skin, error) {
	var candidates []string
	if path.Ext(name) != "" {
		candidates = []string{name}
	} else {
		candidates = []string{name + ".json", name + ".ini"}
	}

	for _, c := range candidates {
		p := "skins/" + c
		data, err := fs.ReadFile(l.fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read skin %s: %w", name, err)
		}

		var file *SkinFile
		switch path.Ext(p) {
		case ".ini":
			file, err = ParseSkinINI(data)
		default:
			file = &SkinFile{}
			err = json.Unmarshal(data, file)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse skin %s: %w", name, err)
		}

		sk, err := BuildSkin(file)
		if err != nil {
			return nil, fmt.Errorf("invalid skin %s: %w", name, err)
		}
		return sk, nil
	}
	return nil, fmt.Errorf("failed to read skin %s: %w", name, fs.ErrNotExist)
}

// LoadAll loads app.json and every skin it lists
func (l *Loader) LoadAll() (*Config, error) {
	app, err := l.LoadApp()
	if err != nil {
		return nil, err
	}

	skins := make([]*skin.Skin, 0, len(app.Skins))
	for _, name := range app.Skins {
		sk, err := l.LoadSkin(name)
		if err != nil {
			return nil, err
		}
		skins = append(skins, sk)
	}
	if len(skins) == 0 {
		skins = append(skins, skin.Default())
	}

	return &Config{App: app, Skins: skins}, nil
}

// SkinForSet returns the skin of a set. The set is an index into the
// skin list or a skin ID; an empty set selects the first skin.
func (c *Config) SkinForSet(set string) (*skin.Skin, error) {
	if set == "" {
		return c.Skins[0], nil
	}
	if i, err := strconv.Atoi(set); err == nil {
		if i < 0 || i >= len(c.Skins) {
			return nil, fmt.Errorf("set %d of %d: %w", i, len(c.Skins), ErrUnknownSet)
		}
		return c.Skins[i], nil
	}
	for _, sk := range c.Skins {
		if sk.ID == set {
			return sk, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", set, ErrUnknownSet)
}
