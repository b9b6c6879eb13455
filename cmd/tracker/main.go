package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/cli/backups"
	"github.com/julianstephens/tracker/internal/cli/categories"
	"github.com/julianstephens/tracker/internal/cli/system"
	"github.com/julianstephens/tracker/internal/cli/trackers"
	"github.com/julianstephens/tracker/internal/cli/views"
	"github.com/julianstephens/tracker/internal/constants"
	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/keyring"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/postgres"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
	"github.com/julianstephens/tracker/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded here; use the OS keyring, TRACKER_DB_CONNECTION or .pgpass instead." type:"string" default:"~/.config/tracker/tracker.db" env:"TRACKER_CONFIG"`
	Timezone string `help:"IANA time zone used to decide what 'today' is." default:"Local" env:"TRACKER_TIMEZONE"`
	Debug    bool   `help:"Log at debug level and mirror logs to stderr." env:"TRACKER_DEBUG"`

	Today views.TodayCmd          `cmd:"" help:"Show the trackers due on a day." default:"1"`
	Week  views.WeekCmd           `cmd:"" help:"Show a seven-day completion grid."`
	Mark  trackers.TrackerMarkCmd `cmd:"" help:"Toggle a tracker's completion for a day."`
	Stats views.StatsCmd          `cmd:"" help:"Show completion statistics."`

	Category struct {
		Add    categories.CategoryAddCmd    `cmd:"" help:"Add a category."`
		List   categories.CategoryListCmd   `cmd:"" help:"List categories."`
		Rename categories.CategoryRenameCmd `cmd:"" help:"Rename a category."`
		Delete categories.CategoryDeleteCmd `cmd:"" help:"Delete an empty category."`
	} `cmd:"" help:"Manage categories."`
	Tracker struct {
		Add    trackers.TrackerAddCmd    `cmd:"" help:"Add a tracker."`
		Edit   trackers.TrackerEditCmd   `cmd:"" help:"Edit a tracker."`
		Pin    trackers.TrackerPinCmd    `cmd:"" help:"Pin or unpin a tracker."`
		Delete trackers.TrackerDeleteCmd `cmd:"" help:"Delete a tracker and its history."`
		List   trackers.TrackerListCmd   `cmd:"" help:"List trackers by category."`
	} `cmd:"" help:"Manage trackers."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is usable."`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`

	Init     system.InitCmd    `cmd:"" help:"Initialize tracker storage."`
	Migrate  system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// Commands that open (or never need) the store themselves.
var skipLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track recurring habits by category and weekday schedule"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	store, configDir, err := selectStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		apperrors.Fatalf("invalid --timezone %q: %v", CLI.Timezone, err)
	}

	command := ""
	if fields := strings.Fields(ctx.Command()); len(fields) > 0 {
		command = fields[0]
	}
	logger.Debug("Starting", "command", ctx.Command(), "store", store.GetConfigPath(), "timezone", loc)

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, loc)
	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	apperrors.Fatal(err)
}

// selectStore picks the backend: an explicit PostgreSQL --config, then a
// connection string from the environment or keyring when --config was left at
// its default, then the SQLite file. It also returns the directory for logs.
func selectStore(config string) (storage.Provider, string, error) {
	defaultDir, err := utils.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve config directory: %w", err)
	}

	if postgres.IsConnString(config) {
		if err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", errors.New("PostgreSQL connection strings with embedded passwords are not allowed in --config; " +
					"use 'tracker keyring set', " + constants.ConnectionEnvVar + " or a .pgpass file instead")
			}
			return nil, "", err
		}
		return postgres.New(config), defaultDir, nil
	}

	if config == constants.DefaultConfigPath {
		connStr, source, err := (keyring.Account{}).ResolveConnection()
		if err != nil {
			return nil, "", err
		}
		if source != keyring.SourceNone {
			// Passwords are allowed here: both sources are outside the command line.
			if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("connection string from %s: %w", source, err)
			}
			return postgres.New(connStr), defaultDir, nil
		}
	}

	path, err := utils.ExpandPath(config)
	if err != nil {
		return nil, "", fmt.Errorf("failed to expand config path: %w", err)
	}
	return sqlite.New(path), filepath.Dir(path), nil
}
