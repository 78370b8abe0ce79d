// Package monitor keeps probing a Clue server and follows endpoint changes
// made to the CLI config file while it runs.
package monitor

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/clue/internal/cliconfig"
	"github.com/bft-labs/clue/pkg/clue"
	"github.com/bft-labs/clue/pkg/log"
)

// Target is the part of *clue.Client the monitor drives.
type Target interface {
	Ping(ctx context.Context) int64
	Host() string
	Port() int
	SetHost(host string) error
	SetPort(port int)
}

// Config holds monitor settings.
type Config struct {
	// ConfigPath is the TOML file whose host and port are followed.
	// Empty disables reloading.
	ConfigPath string

	// Interval between pings.
	// Default: 30 seconds
	Interval time.Duration

	// DebounceDelay is how long to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with the default interval and debounce.
func DefaultConfig() Config {
	return Config{
		Interval:      30 * time.Second,
		DebounceDelay: 100 * time.Millisecond,
	}
}

// Monitor pings a Target periodically.
type Monitor struct {
	target Target
	cfg    Config
	logger log.Logger
}

// New creates a monitor. Zero durations in cfg take their defaults.
func New(target Target, cfg Config, logger log.Logger) *Monitor {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = def.DebounceDelay
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Monitor{target: target, cfg: cfg, logger: logger}
}

// Run pings once immediately and then every interval until ctx is done.
// The target is only touched from this goroutine.
func (m *Monitor) Run(ctx context.Context) error {
	var (
		events   <-chan fsnotify.Event
		errs     <-chan error
		debounce *time.Timer
		reloadC  <-chan time.Time
	)

	if m.cfg.ConfigPath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			m.logger.Warn("config reload disabled", log.Err(err))
		} else {
			defer watcher.Close()
			// Watch the directory so editors that replace the file are seen.
			if err := watcher.Add(filepath.Dir(m.cfg.ConfigPath)); err != nil {
				m.logger.Warn("config reload disabled",
					log.String("path", m.cfg.ConfigPath),
					log.Err(err),
				)
			} else {
				events, errs = watcher.Events, watcher.Errors
			}
		}
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	m.probe(ctx)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case <-ticker.C:
			m.probe(ctx)

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.cfg.ConfigPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(m.cfg.DebounceDelay)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(m.cfg.DebounceDelay)
			}
			reloadC = debounce.C

		case <-reloadC:
			reloadC = nil
			m.reload()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			m.logger.Warn("config watcher error", log.Err(err))
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	host, port := m.target.Host(), m.target.Port()
	ms := m.target.Ping(ctx)
	if ms == clue.Unreachable {
		m.logger.Warn("unreachable", log.String("host", host), log.Int("port", port))
		return
	}
	m.logger.Info("reachable",
		log.String("host", host),
		log.Int("port", port),
		log.Int64("latency_ms", ms),
	)
}

// reload applies host and port from the config file. A bad host is logged
// and the current one kept; the port is applied either way.
func (m *Monitor) reload() {
	fc, err := cliconfig.LoadFileConfig(m.cfg.ConfigPath)
	if err != nil {
		m.logger.Warn("config reload failed", log.String("path", m.cfg.ConfigPath), log.Err(err))
		return
	}

	if fc.Host != "" && fc.Host != m.target.Host() {
		if err := m.target.SetHost(fc.Host); err != nil {
			m.logger.Warn("config reload: host rejected",
				log.String("host", fc.Host),
				log.String("current", m.target.Host()),
				log.Err(err),
			)
		}
	}
	if fc.Port > 0 {
		m.target.SetPort(fc.Port)
	}

	m.logger.Info("endpoint reloaded",
		log.String("host", m.target.Host()),
		log.Int("port", m.target.Port()),
	)
}
