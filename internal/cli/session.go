package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/logic"
	"github.com/mesh-intelligence/rolodex/internal/paths"
	"github.com/mesh-intelligence/rolodex/pkg/sqlite"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// openSession loads the configuration, attaches storage and starts a
// session. The caller must call the returned close function.
func openSession(ctx context.Context, cmd *cobra.Command, flags *rootFlags) (*logic.Session, func(), error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, nil, sysError("resolve config dir", err)
	}
	cfg, err := loadConfig(configDir, flags.dataDir)
	if err != nil {
		return nil, nil, sysError("load config", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	store := sqlite.NewBackend(logger)
	if err := store.Attach(cfg); err != nil {
		return nil, nil, sysError("attach storage", err)
	}
	closeFn := func() {
		if err := store.Detach(); err != nil {
			logger.Error("detach storage", "error", err)
		}
	}

	session, err := logic.New(ctx, store,
		logic.WithLogger(logger),
		logic.WithHistoryLimit(cfg.HistoryLimit),
	)
	if err != nil {
		closeFn()
		return nil, nil, sysError("start session", err)
	}
	logger.Debug("session started", "data_dir", cfg.DataDir, "history_limit", cfg.HistoryLimit)
	return session, closeFn, nil
}

// attachOnce attaches and detaches storage for cfg so the data directory
// exists.
func attachOnce(cmd *cobra.Command, cfg types.Config) error {
	store := sqlite.NewBackend(newLogger(cmd.ErrOrStderr(), cfg.LogLevel))
	if err := store.Attach(cfg); err != nil {
		return err
	}
	return store.Detach()
}
