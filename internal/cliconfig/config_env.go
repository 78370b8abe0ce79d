package cliconfig

import "os"

// ApplyEnvConfig applies CLUE_* environment variables, leaving flags that
// were set explicitly (changed) untouched.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("CLUE_HOST"), &cfg.Host)
	s.setString("log-level", os.Getenv("CLUE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("port", os.Getenv("CLUE_PORT"), &cfg.Port); err != nil {
		return err
	}

	s.setBoolFromString("async", os.Getenv("CLUE_ASYNC"), &cfg.Async)

	if err := s.setDuration("ping-timeout", os.Getenv("CLUE_PING_TIMEOUT"), &cfg.PingTimeout); err != nil {
		return err
	}
	if err := s.setDuration("http-timeout", os.Getenv("CLUE_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", os.Getenv("CLUE_INTERVAL"), &cfg.Interval); err != nil {
		return err
	}

	return nil
}
