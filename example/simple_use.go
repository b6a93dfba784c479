package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"time"

	"github.com/leandrodaf/miditex/internal/logger"
	"github.com/leandrodaf/miditex/sdk/contracts"
	"github.com/leandrodaf/miditex/sdk/midi"
)

func main() {
	log := logger.NewStandardLogger()

	mapper, err := midi.NewEventMapper(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI event mapper", log.Field().Error("error", err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := <-mapper.Enable(ctx); err != nil {
		return
	}

	fmt.Println("Capturing MIDI events... Press Ctrl+C to exit.")
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			mapper.Disable()
			return
		case <-ticker.C:
			mapper.NoteTexture.Upload(func(img *image.Gray) {
				held := 0
				for _, v := range img.Pix {
					if v > 0 {
						held++
					}
				}
				log.Info("Notes texture updated", log.Field().Int("held", held))
			})
		}
	}
}
