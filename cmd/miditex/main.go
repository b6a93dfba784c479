package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leandrodaf/miditex/internal/logger"
	"github.com/leandrodaf/miditex/sdk/contracts"
	"github.com/leandrodaf/miditex/sdk/midi"
	"github.com/logrusorgru/aurora"
)

func main() {
	var (
		configPath = flag.String("config", "miditex.yaml", "path to the YAML config file")
		nocolor    = flag.Bool("nocolor", false, "disable coloured output")
	)
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, _ := contracts.ParseLogLevel(cfg.LogLevel)

	log := logger.NewStandardLogger()
	options := &contracts.ClientOptions{
		Logger:         log,
		PollInterval:   cfg.PollInterval,
		CoreMIDIConfig: &contracts.CoreMIDIConfig{ClientName: cfg.ClientName},
	}

	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithLogFile(cfg.LogFile),
		contracts.WithPollInterval(cfg.PollInterval),
		contracts.WithCoreMIDIConfig(*options.CoreMIDIConfig),
	}

	var mon *monitor
	provider, err := midi.NewAccessProvider(options)
	switch {
	case errors.Is(err, contracts.ErrUnsupportedHost):
		// The mapper reports the unsupported host when enabled.
	case err != nil:
		log.Fatal("Failed to initialize MIDI driver", log.Field().Error("error", err))
	default:
		mon = newMonitor(provider, log)
		opts = append(opts, contracts.WithAccessProvider(mon))
	}

	mapper, err := midi.NewEventMapper(opts...)
	if err != nil {
		log.Fatal("Failed to initialize MIDI event mapper", log.Field().Error("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := mapper.Enable(ctx)
	go func() {
		if err := <-result; err != nil {
			log.Warn("MIDI input unavailable, textures will stay empty", log.Field().Error("error", err))
		}
	}()

	au := aurora.NewAurora(!*nocolor && *cfg.Color)
	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	fmt.Println("Capturing MIDI events... Press Ctrl+C to exit.")
root:
	for {
		select {
		case <-ctx.Done():
			break root
		case <-ticker.C:
			mapper.NoteTexture.Upload(func(img *image.Gray) {
				status := ""
				if mon != nil {
					status = fmt.Sprintf(" %6d %s", mon.Count(), mon.Last())
				}
				fmt.Printf("\r\033[K%s%s", renderNotes(au, img), status)
			})
		}
	}
	fmt.Println()

	mapper.Disable()
	if cfg.SnapshotDir != "" {
		if err := writeSnapshots(cfg.SnapshotDir, mapper.MidiTexture, mapper.NoteTexture); err != nil {
			log.Error("Failed to write texture snapshots", log.Field().Error("error", err))
			return
		}
		log.Info("Texture snapshots written", log.Field().String("dir", cfg.SnapshotDir))
	}
}
