package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/samvad-hq/kernel-memory-client/internal/app"
	"github.com/samvad-hq/kernel-memory-client/internal/config"
	"github.com/samvad-hq/kernel-memory-client/internal/logger"
	"github.com/samvad-hq/kernel-memory-client/pkg/types"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "kmctl: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("kmctl", pflag.ContinueOnError)
	index := flags.String("index", "", "index to delete; omit to let the service use its default index")
	output := flags.String("output", app.FormatJSON, "output format: json or yaml")
	settingsDir := flags.String("settings-dir", "", "directory holding appsettings.json and .env (default: working directory)")
	noSettings := flags.Bool("no-settings-files", false, "skip appsettings*.json and read only env vars and flags")
	flags.String("base-url", "", "service base URL (overrides KM_BASE_URL)")
	flags.String("api-key", "", "API key sent with every request (overrides KM_API_KEY)")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.Int("timeout", 0, "request timeout in seconds")
	flags.Bool("raise-on-unexpected-status", false, "fail on status codes the endpoint does not document")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(config.LoadOptions{
		SettingsDir:      *settingsDir,
		UseSettingsFiles: !*noSettings,
		UseEnvVars:       true,
		Flags:            flags,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deleter, err := app.NewIndexDeleter(cfg, log, log.Sugar())
	if err != nil {
		logger.ErrorObj("failed to initialize client", "error", err)
		return err
	}

	name := types.Unset[string]()
	if flags.Changed("index") {
		name = types.Set(*index)
	}

	resp, err := deleter.Delete(ctx, name)
	if resp != nil {
		if rerr := app.Render(stdout, *output, resp); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	if !resp.Parsed.IsAccepted() {
		return fmt.Errorf("delete index: service responded with status %d", resp.StatusCode)
	}
	return nil
}
