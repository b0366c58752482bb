package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a development logger at level and installs it as the global
// zap logger. The returned function flushes it.
func New(level zapcore.Level) (func(), error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	dev, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	undo := zap.ReplaceGlobals(dev)
	return func() {
		_ = dev.Sync()
		undo()
	}, nil
}

// ParseLevel accepts zap level names ("debug", "info", ...).
func ParseLevel(s string) (zapcore.Level, error) {
	return zapcore.ParseLevel(strings.TrimSpace(s))
}

// InitLogs creates the dump directory and clears every .json file in it.
func InitLogs(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	files, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, f := range files {
		if !f.IsDir() && filepath.Ext(f.Name()) == ".json" {
			_ = os.Remove(filepath.Join(path, f.Name()))
		}
	}
	return nil
}

// LogJSON writes data as indented JSON to <path>/<id>.json. The file is
// written under a temporary name and renamed into place.
func LogJSON(path, id string, data any) error {
	file := filepath.Join(path, id+".json")
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", id, err)
	}
	tmp, err := os.CreateTemp(path, id+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(bytes); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	zap.S().Debugw("wrote dump", "file", file, "bytes", len(bytes))
	return nil
}
