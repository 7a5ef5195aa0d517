// Command jobagent-admin is the operational CLI. Role changes have no web
// surface at all; promoting or demoting an account happens only here, against
// the database directly.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/jobagent/jobagent/config"
	"github.com/jobagent/jobagent/internal/bootstrap"
	"github.com/jobagent/jobagent/internal/data"
	domainauth "github.com/jobagent/jobagent/internal/domain/auth"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const commandTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"promote": {
			name:        "promote",
			description: "Grant the admin role to an account: promote <email>",
			run:         runPromote,
		},
		"demote": {
			name:        "demote",
			description: "Revert an account to the candidate role: demote <email>",
			run:         runDemote,
		},
		"show-user": {
			name:        "show-user",
			description: "Print an account's identity record: show-user <email>",
			run:         runShowUser,
		},
	}
}

func printUsage() {
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "usage: jobagent-admin <command> [args]")
	fmt.Fprintln(os.Stderr)
	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, cmds[name].description)
	}
	_ = w.Flush()
}

func connect(ctx *commandContext) (*sql.DB, error) {
	return bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: ctx.Config.Postgres,
		Logger:   ctx.Logger,
	})
}

func runMigrate(ctx *commandContext, _ []string) error {
	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	return bootstrap.RunMigrations(ctx.Ctx, db, ctx.Logger)
}

func runPromote(ctx *commandContext, args []string) error {
	return setRole(ctx, args, domainauth.RoleAdmin)
}

func runDemote(ctx *commandContext, args []string) error {
	return setRole(ctx, args, domainauth.RoleCandidate)
}

func setRole(ctx *commandContext, args []string, role domainauth.Role) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one argument: <email>")
	}
	email := args[0]

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	repo := data.NewUserRepo(db)
	identity, err := repo.GetByEmail(ctx.Ctx, email)
	if err != nil {
		return fmt.Errorf("look up %q: %w", email, err)
	}
	if identity.Role == role {
		ctx.Logger.InfoContext(ctx.Ctx, "role already set", "email", identity.Email, "role", role)
		return nil
	}
	if err := repo.UpdateRole(ctx.Ctx, identity.ID, role); err != nil {
		return fmt.Errorf("update role for %q: %w", email, err)
	}

	ctx.Logger.InfoContext(ctx.Ctx, "role updated",
		"email", identity.Email,
		"from", identity.Role,
		"to", role,
	)
	return nil
}

func runShowUser(ctx *commandContext, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one argument: <email>")
	}

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	identity, err := data.NewUserRepo(db).GetByEmail(ctx.Ctx, args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", identity.ID)
	fmt.Fprintf(w, "email\t%s\n", identity.Email)
	fmt.Fprintf(w, "role\t%s\n", identity.Role)
	fmt.Fprintf(w, "created_at\t%s\n", identity.CreatedAt.Format(time.RFC3339))
	return w.Flush()
}

func closeDB(ctx *commandContext, db *sql.DB) {
	if err := db.Close(); err != nil {
		ctx.Logger.ErrorContext(ctx.Ctx, "close database failed", "error", err)
	}
}
