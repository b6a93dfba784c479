package midi

import (
	"errors"
	"fmt"
	"time"

	"github.com/leandrodaf/miditex/internal/logger"
	"github.com/leandrodaf/miditex/sdk/contracts"
)

// DefaultPollInterval is how often drivers rescan the device list when no interval is set.
const DefaultPollInterval = time.Second

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized client options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.PollInterval < 0 {
		return contracts.ClientOptions{}, fmt.Errorf("invalid poll interval: %s", options.PollInterval)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "GO MIDI Client"}
	}
	if options.PollInterval == 0 {
		options.PollInterval = DefaultPollInterval
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}

	// No provider stays nil: Enable reports the host as unsupported.
	if options.AccessProvider == nil {
		provider, err := NewAccessProvider(options)
		switch {
		case errors.Is(err, contracts.ErrUnsupportedHost):
			options.Logger.Warn("No MIDI driver available for this platform", options.Logger.Field().Error("error", err))
		case err != nil:
			return contracts.ClientOptions{}, err
		default:
			options.AccessProvider = provider
		}
	}

	return *options, nil
}
