package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"codeprompt/pkg/version"
)

// Setup builds the process logger. Debug mode uses the development config
// with full output; otherwise the production config is capped at Warn so
// pipeline internals stay out of the tool's human-facing output.
func Setup(debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.InitialFields = map[string]interface{}{
		"app":        "codeprompt",
		"appVersion": version.Version,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// Sync flushes the logger. Syncing stderr fails with "invalid argument" on
// some platforms when it points at a terminal, so that case is ignored.
func Sync(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		lower := strings.ToLower(err.Error())
		if !strings.Contains(lower, "invalid argument") {
			os.Stderr.WriteString("logger sync failed: " + err.Error() + "\n")
		}
	}
}

func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
