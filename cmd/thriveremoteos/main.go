package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ItsNotGoodName/thriveremoteos/internal/api"
	"github.com/ItsNotGoodName/thriveremoteos/internal/build"
	"github.com/ItsNotGoodName/thriveremoteos/internal/bus"
	"github.com/ItsNotGoodName/thriveremoteos/internal/config"
	"github.com/ItsNotGoodName/thriveremoteos/internal/core"
	"github.com/ItsNotGoodName/thriveremoteos/internal/desktop"
	"github.com/ItsNotGoodName/thriveremoteos/internal/wm"
	"github.com/ItsNotGoodName/thriveremoteos/pkg/sutureext"
	"github.com/ItsNotGoodName/thriveremoteos/web"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
)

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Host   string `doc:"host to listen on"`
	Port   int    `doc:"port to listen on" default:"8080"`
	Config string `doc:"config file" default:".thriveremoteos.yaml"`
}

func main() {
	godotenv.Load()

	var opts *Options

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		opts = options

		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			store, err := openStore(options.Config)
			if err != nil {
				return err
			}

			cfg, err := store.GetConfig()
			if err != nil {
				return err
			}

			hub := bus.NewHub[desktop.Event]()
			shell := newShell(cfg, hub)

			router, humaAPI := api.NewRouter(web.FS, web.Root)
			api.Register(humaAPI, api.NewHandler(shell, hub))

			super := sutureext.NewSimple("root")
			sutureext.Add(super, api.NewHTTPServer(core.Address(options.Host, options.Port), router))
			sutureext.Add(super, desktop.NewEventLogger(hub))

			return super.Serve(ctx)
		})
	})

	cli.Root().Use = "thriveremoteos"
	cli.Root().Version = build.Current.Version

	cli.Root().AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts.Config)
			if err != nil {
				return err
			}

			cfg, err := store.GetConfig()
			if err != nil {
				return err
			}

			pp.Println(cfg)
			return nil
		},
	})

	cli.Root().AddCommand(&cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			hub := bus.NewHub[desktop.Event]()
			_, humaAPI := api.NewRouter(web.FS, web.Root)
			api.Register(humaAPI, api.NewHandler(newShell(config.Default(), hub), hub))

			b, err := humaAPI.OpenAPI().YAML()
			if err != nil {
				return err
			}

			fmt.Println(string(b))
			return nil
		},
	})

	cli.Run()
}

func openStore(configFile string) (*config.Store, error) {
	configFilePath, err := filepath.Abs(configFile)
	if err != nil {
		return nil, err
	}

	store, err := config.NewStore(config.NewDriver(configFilePath))
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", configFilePath, err)
	}

	if err := config.Normalize(store); err != nil {
		return nil, fmt.Errorf("normalize config %s: %w", configFilePath, err)
	}

	return store, nil
}

func newShell(cfg config.Config, hub *bus.Hub[desktop.Event]) *desktop.Shell {
	manager := wm.New(wm.WithLimits(cfg.Limits.WM()))
	catalog := desktop.NewCatalog(cfg.Apps, cfg.Shortcuts)

	return desktop.New(manager, catalog, hub, cfg.Viewport.WM())
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
