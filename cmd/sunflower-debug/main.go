// Command sunflower-debug exposes one-shot operator commands against the
// same stores the daemon uses: force a single mirror iteration, force an
// integrity check of one id, or print the status record of a freshly
// built engine. The status command does not read a running daemon's
// status.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/redis/go-redis/v9"

	"github.com/saebasol/sunflower/internal/config"
	"github.com/saebasol/sunflower/internal/mirror"
	"github.com/saebasol/sunflower/internal/remote"
	"github.com/saebasol/sunflower/internal/storage/postgres"
	"github.com/saebasol/sunflower/internal/storage/redisdoc"
)

func buildEngine(cfg *config.Config) (*mirror.Engine, error) {
	remoteRoot, err := url.Parse(cfg.RemoteRoot)
	if err != nil {
		return nil, fmt.Errorf("invalid remote root: %w", err)
	}
	remoteClient := remote.New(remoteRoot, cfg.Mirror.IndexFiles)

	relational, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	document := redisdoc.New(rdb)

	return mirror.New(remoteClient, relational, document, cfg.Mirror), nil
}

func mirrorOnceCmd() *ffcli.Command {
	fs := flag.NewFlagSet("mirror-once", flag.ExitOnError)
	return &ffcli.Command{
		Name:       "mirror-once",
		ShortUsage: "mirror-once [flags]",
		ShortHelp:  "perform exactly one mirror iteration and exit",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			return engine.PerformMirroring(ctx)
		},
	}
}

func checkOnceCmd() *ffcli.Command {
	fs := flag.NewFlagSet("check-once", flag.ExitOnError)
	return &ffcli.Command{
		Name:       "check-once",
		ShortUsage: "check-once <id>",
		ShortHelp:  "force an integrity check of a single gallery id",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: check-once <id>")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			return engine.CheckOne(ctx, id)
		},
	}
}

func statusCmd() *ffcli.Command {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	return &ffcli.Command{
		Name:       "status",
		ShortUsage: "status [flags]",
		ShortHelp:  "print a freshly built engine's initial status record as JSON (not a running daemon's)",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(engine.Status())
		},
	}
}

func main() {
	root := &ffcli.Command{
		Name:       "sunflower-debug",
		ShortUsage: "sunflower-debug <subcommand>",
		ShortHelp:  "one-shot operator commands for the mirroring daemon",
		Subcommands: []*ffcli.Command{
			mirrorOnceCmd(),
			checkOnceCmd(),
			statusCmd(),
		},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}

	if err := root.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := root.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
