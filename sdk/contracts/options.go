package contracts

import "time"

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for the event mapper and its drivers.
type ClientOptions struct {
	Logger         Logger          // Logger for logging events and errors.
	LogLevel       LogLevel        // Level of logging to use.
	LogFilePath    string          // File path for logging if file logging is enabled.
	AccessProvider AccessProvider  // Source of MIDI input access. Nil means the host is unsupported.
	CoreMIDIConfig *CoreMIDIConfig // Configuration specific to CoreMIDI.
	PollInterval   time.Duration   // How often drivers rescan the device list.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithAccessProvider replaces the platform MIDI driver.
func WithAccessProvider(p AccessProvider) Option {
	return func(opts *ClientOptions) {
		opts.AccessProvider = p
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithPollInterval sets how often the device list is rescanned.
func WithPollInterval(d time.Duration) Option {
	return func(opts *ClientOptions) {
		opts.PollInterval = d
	}
}
