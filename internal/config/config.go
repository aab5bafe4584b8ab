package config

import (
	"sync"
)

type Driver interface {
	Exists() (bool, error)
	Write(config Config) error
	Read() (Config, error)
}

func NewStore(driver Driver) (*Store, error) {
	exists, err := driver.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := driver.Write(Default()); err != nil {
			return nil, err
		}
	}

	return &Store{
		driver: driver,
	}, nil
}

type Store struct {
	mu     sync.Mutex
	driver Driver
}

func (s *Store) GetConfig() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.driver.Read()
}

func (s *Store) UpdateConfig(fn func(cfg Config) (Config, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.driver.Read()
	if err != nil {
		return err
	}

	cfg, err = fn(cfg)
	if err != nil {
		return err
	}

	return s.driver.Write(cfg)
}

// Default returns a copy of the built-in configuration.
func Default() Config {
	cfg := defaultConfig
	cfg.Apps = append([]App{}, defaultConfig.Apps...)
	cfg.Shortcuts = make(map[string]string, len(defaultConfig.Shortcuts))
	for name, key := range defaultConfig.Shortcuts {
		cfg.Shortcuts[name] = key
	}
	return cfg
}
