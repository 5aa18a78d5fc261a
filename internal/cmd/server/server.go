// Package server parses server command flags and runs the HTTP and gRPC
// listeners.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/text/language"
	"google.golang.org/grpc"

	"github.com/xtding233/egg-hatchery/internal/config"
	"github.com/xtding233/egg-hatchery/internal/eggs"
	"github.com/xtding233/egg-hatchery/internal/server"
)

// Config holds server command configuration.
type Config struct {
	HTTPAddr  string        `env:"HATCH_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr  string        `env:"HATCH_GRPC_ADDR" envDefault:":9090"`
	ConfigDir string        `env:"HATCH_CONFIG_DIR" envDefault:"."`
	Egg       string        `env:"HATCH_EGG"`
	Locale    string        `env:"HATCH_LOCALE" envDefault:"en"`
	Watch     time.Duration `env:"HATCH_WATCH_INTERVAL" envDefault:"2s"`
	MaxEggs   int           `env:"HATCH_MAX_EGGS" envDefault:"10000000"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http", cfg.HTTPAddr, "HTTP listen address (empty disables)")
	fs.StringVar(&cfg.GRPCAddr, "grpc", cfg.GRPCAddr, "gRPC listen address (empty disables)")
	fs.StringVar(&cfg.ConfigDir, "config", cfg.ConfigDir, "Directory holding eggs/*.yaml")
	fs.StringVar(&cfg.Egg, "egg", cfg.Egg, "Egg file to overlay on eggs/default.yaml")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for number grouping")
	fs.DurationVar(&cfg.Watch, "watch", cfg.Watch, "Egg file poll interval (0 disables)")
	fs.IntVar(&cfg.MaxEggs, "max-eggs", cfg.MaxEggs, "Largest egg count one hatch request may ask for")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.MaxEggs < 1 {
		return Config{}, fmt.Errorf("invalid -max-eggs %d", cfg.MaxEggs)
	}
	if cfg.HTTPAddr == "" && cfg.GRPCAddr == "" {
		return Config{}, errors.New("at least one of -http or -grpc is required")
	}
	return cfg, nil
}

// Run serves until ctx is done or a listener fails.
func Run(ctx context.Context, cfg Config) error {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return fmt.Errorf("parse locale: %w", err)
	}
	loader := eggs.NewLoader(cfg.ConfigDir)
	table, params, err := loader.Load(cfg.Egg)
	if err != nil {
		return fmt.Errorf("load egg: %w", err)
	}
	h, err := server.NewHatchery(table, params, server.WithLogger(log.Default()), server.WithLocale(tag), server.WithMaxEggs(cfg.MaxEggs))
	if err != nil {
		return err
	}
	if cfg.Watch > 0 {
		w := server.WatchEgg(loader, cfg.Egg, h, cfg.Watch)
		defer w.Stop()
	}

	errCh := make(chan error, 2)

	var httpSrv *http.Server
	if cfg.HTTPAddr != "" {
		httpSrv = &http.Server{Addr: cfg.HTTPAddr, Handler: server.NewHandler(h), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Printf("http listening on %s ...", cfg.HTTPAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http: %w", err)
			}
		}()
	}

	var grpcSrv *grpc.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			if httpSrv != nil {
				_ = httpSrv.Close()
			}
			return fmt.Errorf("grpc listen: %w", err)
		}
		grpcSrv = grpc.NewServer()
		server.RegisterHatcheryServer(grpcSrv, server.NewGRPCService(h))
		go func() {
			log.Printf("grpc listening on %s ...", lis.Addr())
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err = <-errCh:
	}

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	return err
}
