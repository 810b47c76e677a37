// Package sysutil holds tiny process-level helpers shared by the entrypoint
// and the HTTP layer. Nothing here knows about rooms, relays, or HTTP.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// logLevels maps LOG_LEVEL strings to zerolog levels. Unknown and empty
// values fall back to info.
var logLevels = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
	"panic":   zerolog.PanicLevel,
}

// SetLogLevel configures the global zerolog level from a config string,
// case-insensitively and ignoring surrounding whitespace.
func SetLogLevel(lvl string) {
	if level, ok := logLevels[strings.ToLower(strings.TrimSpace(lvl))]; ok {
		zerolog.SetGlobalLevel(level)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// FirstNonEmpty returns the first value that is not blank after trimming,
// preserving its original spacing. Used to pick a participant identity or
// display name from a chain of query parameters and fallbacks.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
