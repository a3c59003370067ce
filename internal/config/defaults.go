// Package config provides configuration loading and defaults for fskit.
package config

// DefaultConfigDir is the default location for fskit configuration.
const DefaultConfigDir = "~/.config/fskit"

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
}

// DefaultLog holds the default log-line rendering preferences.
var DefaultLog = Log{
	Timestamp: true,
	Readable:  true,
	Seconds:   true,
	Offset:    true,
}

// DefaultUnpack holds the default archive-extraction preferences.
var DefaultUnpack = Unpack{
	Jobs:   4,
	Strict: false,
}
