package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/stm/internal/application/game"
	"github.com/younwookim/stm/internal/application/machine"
	"github.com/younwookim/stm/internal/application/replay"
	"github.com/younwookim/stm/internal/application/result"
	"github.com/younwookim/stm/internal/application/scene"
	"github.com/younwookim/stm/internal/application/scene/session"
	"github.com/younwookim/stm/internal/application/scene/survey"
	"github.com/younwookim/stm/internal/domain/sequence"
	"github.com/younwookim/stm/internal/infrastructure/audio"
	"github.com/younwookim/stm/internal/infrastructure/transport"
)

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json)")
	flag.StringVar(&opts.replay, "replay", "", "Replay input from file")
	flag.BoolVar(&opts.headless, "headless", false, "Run the replay without a window and log the results")
	flag.StringVar(&opts.server, "server", "", "Collector URL (overrides app.json)")
	flag.StringVar(&opts.set, "set", "", "Skin set: index into the skin list or skin ID")
	flag.StringVar(&opts.skin, "skin", "", "Skin file under configs/skins (e.g., -skin polysynth)")
	flag.Int64Var(&opts.seed, "seed", 0, "Sequence seed (0 = time based)")
	flag.Parse()

	if opts.headless && opts.replay == "" {
		log.Fatalf("-headless needs -replay")
	}

	loader, cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	s, err := prepare(context.Background(), opts, loader, cfg)
	if err != nil {
		log.Fatalf("Failed to prepare session: %v", err)
	}
	log.Printf("Session %s (skin: %s, seed: %d)", s.testID, s.skin.ID, s.seed)

	newMachine := func(answers []string) *machine.Machine {
		return machine.New(s.skin, sequence.NewSeededGenerator(s.seed), machine.WithSession(machine.Session{
			TestID:  s.testID,
			Answers: answers,
		}))
	}

	if opts.headless {
		m := newMachine(nil)
		m.SetViewport(cfg.App.Display.ScreenWidth, cfg.App.Display.ScreenHeight)
		frames := runHeadless(m, replay.NewReplayer(*s.replay), result.LogSink{Prefix: "replay "})
		log.Printf("Replay finished (%d frames)", frames)
		return
	}

	sinks := result.MultiSink{result.LogSink{}}
	var httpSink *transport.HTTPSink
	if s.server != "" {
		httpSink = transport.NewHTTPSink(nil, s.server)
		sinks = append(sinks, httpSink)
	}

	display := cfg.App.Display
	start := func(answers []string) (scene.Scene, error) {
		sessionOpts := []session.Option{
			session.WithTones(audio.NewTones(s.skin.Sound, display.Framerate)),
		}
		if s.replay != nil {
			sessionOpts = append(sessionOpts, session.WithReplayer(replay.NewReplayer(*s.replay)))
		} else if opts.record != "" {
			rec := replay.NewRecorder(s.seed, s.skin.ID, s.testID)
			sessionOpts = append(sessionOpts, session.WithRecorder(rec, opts.record))
		}
		return session.New(newMachine(answers), sinks, sessionOpts...), nil
	}

	var first scene.Scene
	if s.replay != nil {
		first, _ = start(nil)
	} else {
		first = survey.New(cfg.App.Questions, start)
	}
	g := game.New(first, display.ScreenWidth, display.ScreenHeight)

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth, display.ScreenHeight)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(display.Framerate)
	ebiten.SetFullscreen(display.Fullscreen)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	g.Current().OnExit()

	if httpSink != nil {
		httpSink.Wait()
	}
}
