package desktop

import (
	"errors"
	"net/url"
	"strings"

	"github.com/ItsNotGoodName/thriveremoteos/internal/config"
	"github.com/ItsNotGoodName/thriveremoteos/internal/wm"
)

var ErrUnknownApp = errors.New("unknown app")

type App struct {
	Key     string  `json:"key"`
	Title   string  `json:"title"`
	Icon    string  `json:"icon"`
	Content string  `json:"content"`
	Size    wm.Size `json:"size"`
}

// Catalog is the fixed set of applications the desktop can launch.
type Catalog struct {
	apps      []App
	shortcuts map[string]string
}

func NewCatalog(apps []config.App, shortcuts map[string]string) Catalog {
	c := Catalog{
		apps:      make([]App, 0, len(apps)),
		shortcuts: make(map[string]string, len(shortcuts)),
	}
	for _, a := range apps {
		c.apps = append(c.apps, App{
			Key:     a.Key,
			Title:   a.Title,
			Icon:    a.Icon,
			Content: a.Content,
			Size:    wm.Size{Width: a.Width, Height: a.Height},
		})
	}
	for name, key := range shortcuts {
		c.shortcuts[strings.ToLower(name)] = key
	}
	return c
}

func (c Catalog) Apps() []App {
	return append([]App{}, c.apps...)
}

func (c Catalog) Lookup(key string) (App, error) {
	for _, a := range c.apps {
		if a.Key == key {
			return a, nil
		}
	}
	return App{}, ErrUnknownApp
}

// Shortcut resolves the app named by the "app" parameter of a URL query such
// as "?app=calculator".
func (c Catalog) Shortcut(query string) (App, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return App{}, err
	}

	name := strings.ToLower(values.Get("app"))
	if name == "" {
		return App{}, ErrUnknownApp
	}

	key, ok := c.shortcuts[name]
	if !ok {
		return App{}, ErrUnknownApp
	}

	return c.Lookup(key)
}
