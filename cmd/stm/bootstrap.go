package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/younwookim/stm/internal/application/replay"
	"github.com/younwookim/stm/internal/collector"
	"github.com/younwookim/stm/internal/domain/skin"
	"github.com/younwookim/stm/internal/infrastructure/config"
	"github.com/younwookim/stm/internal/infrastructure/transport"
)

// options are the command line settings
type options struct {
	record   string
	replay   string
	headless bool
	server   string
	set      string
	skin     string
	seed     int64
}

// setup is everything needed to start a session
type setup struct {
	app    *config.AppConfig
	skin   *skin.Skin
	testID string
	seed   int64
	server string
	replay *replay.Data
}

// loadConfig loads app.json and the skins from the embedded configs
func loadConfig() (*config.Loader, *config.Config, error) {
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, nil, err
	}
	loader := config.NewFSLoader(fsys, "configs")
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	return loader, cfg, nil
}

// prepare resolves the session: test ID, skin and seed come from the
// replay file, the collector or local defaults, in that order
func prepare(ctx context.Context, opts options, loader *config.Loader, cfg *config.Config) (*setup, error) {
	s := &setup{app: cfg.App, seed: opts.seed, server: opts.server}
	if s.server == "" {
		s.server = cfg.App.Server.URL
	}

	set := opts.set
	if opts.replay != "" {
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return nil, err
		}
		s.replay = data
		s.seed = data.Seed
		s.testID = data.TestID
		set = data.Skin
		// Replays are never submitted again
		s.server = ""
	} else if s.server != "" {
		info, err := fetchSession(ctx, s.server, cfg.App.Server.TimeoutSeconds)
		if err != nil {
			log.Printf("Failed to fetch session, running offline: %v", err)
			s.server = ""
		} else {
			s.testID = info.TestID
			if set == "" {
				set = info.Set
			}
		}
	}

	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	if s.testID == "" {
		s.testID = localTestID(s.seed)
	}

	var err error
	if opts.skin != "" && opts.replay == "" {
		s.skin, err = loader.LoadSkin(opts.skin)
	} else {
		s.skin, err = cfg.SkinForSet(set)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func fetchSession(ctx context.Context, url string, timeoutSeconds int) (*transport.SessionInfo, error) {
	timeout := transport.DefaultTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return transport.FetchSession(ctx, &http.Client{Timeout: timeout}, url)
}

// localTestID names an offline session. The "A-" prefix sorts below the
// IDs the collector exports.
func localTestID(seed int64) string {
	return "A" + collector.Alnum4(seed)[1:]
}
