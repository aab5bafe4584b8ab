package config

import (
	"log/slog"
	"strings"
	"unicode"
)

const (
	defaultAppWidth  = 245
	defaultAppHeight = 175
	defaultAppIcon   = "🖥️"
)

// Normalize fills in missing values and drops shortcuts that point nowhere.
func Normalize(store *Store) error {
	return store.UpdateConfig(func(cfg Config) (Config, error) {
		def := Default()

		if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
			cfg.Viewport = def.Viewport
		}
		if cfg.Viewport.Chrome < 0 {
			cfg.Viewport.Chrome = 0
		}

		if cfg.Limits.MinWidth <= 0 {
			cfg.Limits.MinWidth = def.Limits.MinWidth
		}
		if cfg.Limits.MinHeight <= 0 {
			cfg.Limits.MinHeight = def.Limits.MinHeight
		}
		if cfg.Limits.ZFloor <= 0 {
			cfg.Limits.ZFloor = def.Limits.ZFloor
		}
		if cfg.Limits.MobileBreakpoint < 0 {
			cfg.Limits.MobileBreakpoint = def.Limits.MobileBreakpoint
		}

		keys := make(map[string]bool, len(cfg.Apps))
		for i := range cfg.Apps {
			app := &cfg.Apps[i]
			if app.Key == "" {
				app.Key = slug(app.Title)
			}
			if app.Content == "" {
				app.Content = app.Key
			}
			if app.Icon == "" {
				app.Icon = defaultAppIcon
			}
			if app.Width <= 0 {
				app.Width = defaultAppWidth
			}
			if app.Height <= 0 {
				app.Height = defaultAppHeight
			}
			keys[app.Key] = true
		}

		if cfg.Shortcuts == nil {
			cfg.Shortcuts = map[string]string{}
		}
		for name, key := range cfg.Shortcuts {
			if !keys[key] {
				slog.Warn("Dropping shortcut to unknown app", "shortcut", name, "app", key)
				delete(cfg.Shortcuts, name)
			}
		}

		return cfg, nil
	})
}

func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
