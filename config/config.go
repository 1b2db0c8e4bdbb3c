// Package config collects the settings of a pagesim run from defaults, an
// optional .env file, the environment, and JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/pagesim/mem/vm/paging"
)

// Environment variables read by LoadEnv.
const (
	EnvFrames      = "PAGESIM_FRAMES"
	EnvPolicy      = "PAGESIM_POLICY"
	EnvSeed        = "PAGESIM_SEED"
	EnvDebug       = "PAGESIM_DEBUG"
	EnvRecord      = "PAGESIM_RECORD"
	EnvMonitorPort = "PAGESIM_MONITOR_PORT"
	EnvOpenBrowser = "PAGESIM_OPEN_BROWSER"
)

// Config holds the settings of one run.
type Config struct {
	FrameCount  int               `json:"frames"`
	Policy      paging.PolicyKind `json:"policy"`
	Seed        uint64            `json:"seed"`
	Debug       bool              `json:"debug"`
	RecordPath  string            `json:"record"`
	MonitorPort int               `json:"monitor_port"`
	OpenBrowser bool              `json:"open_browser"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		FrameCount: 16,
		Policy:     paging.PolicyClock,
		Seed:       1,
	}
}

// LoadEnv starts from Default, loads envFile if it exists, and applies the
// PAGESIM_* variables. Variables already set in the process environment win
// over the ones in the file. An empty envFile skips the file.
func LoadEnv(envFile string) (Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	c := Default()
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup(EnvFrames); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		errs = append(errs, envErr(EnvFrames, err))
		c.FrameCount = n
	}

	if v, ok := lookup(EnvPolicy); ok {
		kind, err := paging.ParsePolicyKind(v)
		errs = append(errs, envErr(EnvPolicy, err))
		c.Policy = kind
	}

	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 0, 64)
		errs = append(errs, envErr(EnvSeed, err))
		c.Seed = seed
	}

	if v, ok := lookup(EnvDebug); ok {
		debug, err := strconv.ParseBool(strings.TrimSpace(v))
		errs = append(errs, envErr(EnvDebug, err))
		c.Debug = debug
	}

	if v, ok := lookup(EnvRecord); ok {
		c.RecordPath = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvMonitorPort); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		errs = append(errs, envErr(EnvMonitorPort, err))
		c.MonitorPort = port
	}

	if v, ok := lookup(EnvOpenBrowser); ok {
		open, err := strconv.ParseBool(strings.TrimSpace(v))
		errs = append(errs, envErr(EnvOpenBrowser, err))
		c.OpenBrowser = open
	}

	return errors.Join(errs...)
}

func envErr(name string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", name, err)
}

// LoadFile reads a JSON file. Fields missing from the file keep their
// defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	return c, nil
}

// Validate checks that the settings can build a manager.
func (c Config) Validate() error {
	if c.FrameCount <= 0 {
		return fmt.Errorf("%w: frame count must be positive, got %d",
			paging.ErrInvalidConfiguration, c.FrameCount)
	}

	if _, err := paging.ParsePolicyKind(string(c.Policy)); err != nil {
		return err
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		return fmt.Errorf("%w: monitor port %d is out of range",
			paging.ErrInvalidConfiguration, c.MonitorPort)
	}

	return nil
}

// ManagerBuilder returns a paging builder configured with the frame count,
// policy, seed, and debug setting.
func (c Config) ManagerBuilder() paging.Builder {
	kind, err := paging.ParsePolicyKind(string(c.Policy))
	if err != nil {
		kind = c.Policy
	}

	return paging.MakeBuilder().
		WithFrameCount(c.FrameCount).
		WithPolicyKind(kind).
		WithSeed(c.Seed).
		WithTraceEnabled(c.Debug)
}
