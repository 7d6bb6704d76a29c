// adminctl is the operator entry point for the adminpro console core. It
// holds no business logic: every command binds flags to the session store,
// the API client or the upload coordinator and prints the result.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"adminpro/console/internal/api"
	"adminpro/console/internal/config"
	"adminpro/console/internal/keystore"
	"adminpro/console/internal/log"
	"adminpro/console/internal/session"
)

type app struct {
	cfg   *config.AppConfig
	log   zerolog.Logger
	keys  *keystore.SessionKeys
	api   *api.Client
	store *session.Store

	cleanup func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := log.New(cfg.Environment)

	var (
		kr      keystore.Keyring
		cleanup = func() {}
	)
	switch cfg.Session.Backend {
	case "redis":
		r, err := keystore.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		kr = r
		cleanup = func() { r.Close() }
	case "memory":
		kr = keystore.NewMemory()
	default:
		f, err := keystore.NewFile(cfg.Session.Dir)
		if err != nil {
			return nil, err
		}
		kr = f
	}

	keys := keystore.NewSessionKeys(kr)
	client := api.New(cfg.API, func() string {
		token, _ := keys.ReadToken(context.Background())
		return token
	}, logger)

	store := session.NewStore(keys, client, cfg, logger)
	if err := store.CheckAuth(ctx); err != nil {
		logger.Warn().Err(err).Msg("session hydration failed")
	}

	return &app{
		cfg:     cfg,
		log:     logger,
		keys:    keys,
		api:     client,
		store:   store,
		cleanup: cleanup,
	}, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init:", err)
		os.Exit(1)
	}
	defer a.cleanup()

	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Operations console for the vehicle inspection marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.sendOTPCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.watchCmd(),
		a.uploadCmd(),
		a.centresCmd(),
		a.usersCmd(),
		a.carsCmd(),
		a.productsCmd(),
		a.notificationsCmd(),
		a.docsCmd(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
