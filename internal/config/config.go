// Package config loads the daemon's flag/environment configuration into a
// fully-populated mirror.Config plus the connection strings the stores
// and remote client need.
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v3"

	"github.com/saebasol/sunflower/internal/mirror"
)

// Config is everything the daemon needs to construct its dependencies and
// the mirroring engine itself.
type Config struct {
	Mirror mirror.Config

	ListenAddr  string
	RemoteRoot  string
	PostgresDSN string
	RedisAddr   string

	DisableMirroring              bool
	DisableIntegrityCheck         bool
	DisableIntegrityPartialCheck  bool
	DisableIntegrityFullCheck     bool
}

// Load parses flags and environment variables from args, applying the
// source's documented defaults for every option spec.md names. Recognized
// environment variables use the literal option names from spec.md §6
// (MIRRORING_REMOTE_CONCURRENT_SIZE, INTEGRITY_PARTIAL_CHECK_DELAY, ...),
// which are not uniformly prefixed, so no single ff.WithEnvVarPrefix
// applies; ff.WithEnvVars instead derives each variable's name from its
// flag name, upper-cased with dashes turned into underscores.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("sunflower", flag.ContinueOnError)

	var (
		indexFiles         = fs.String("index-files", "", "comma-separated list of remote index file paths/URLs")
		remoteConcurrent   = fs.Int("mirroring-remote-concurrent-size", 50, "batch size and concurrency budget against the remote index")
		localConcurrent    = fs.Int("mirroring-local-concurrent-size", 25, "batch size and concurrency budget against local stores")
		partialRangeSize   = fs.Int("integrity-partial-check-range-size", 100, "reserved, unused")
		mirroringDelay     = fs.Duration("mirroring-delay", 30*time.Second, "delay between mirror iterations")
		partialCheckDelay  = fs.Duration("integrity-partial-check-delay", 5*time.Minute, "delay between partial integrity check iterations")
		fullCheckDelay     = fs.Duration("integrity-full-check-delay", time.Hour, "delay between full integrity check iterations")
		runAsOnce          = fs.Bool("run-as-once", false, "perform exactly one iteration of every driver and exit")
		listenAddr         = fs.String("listen", ":3980", "HTTP status/debug listen address")
		remoteRoot         = fs.String("remote-root", "", "base URL of the upstream gallery index")
		postgresDSN        = fs.String("postgres-dsn", "", "Postgres connection string for the relational store")
		redisAddr          = fs.String("redis-addr", "localhost:6379", "Redis address for the document store")
		disableMirroring   = fs.Bool("disable-mirroring", false, "disable the mirror driver")
		disableIntegrity   = fs.Bool("disable-integrity-check", false, "disable both integrity check drivers")
		disablePartial     = fs.Bool("disable-integrity-partial-check", false, "disable the partial integrity check driver")
		disableFull        = fs.Bool("disable-integrity-full-check", false, "disable the full integrity check driver")
	)

	if err := ff.Parse(fs, args,
		ff.WithEnvVars(),
	); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var files []string
	if *indexFiles != "" {
		files = strings.Split(*indexFiles, ",")
	}

	return &Config{
		Mirror: mirror.Config{
			IndexFiles:                     files,
			RemoteConcurrentSize:           *remoteConcurrent,
			LocalConcurrentSize:            *localConcurrent,
			IntegrityPartialCheckRangeSize: *partialRangeSize,
			MirroringDelay:                 *mirroringDelay,
			IntegrityPartialCheckDelay:     *partialCheckDelay,
			IntegrityFullCheckDelay:        *fullCheckDelay,
			RunAsOnce:                      *runAsOnce,
		},
		ListenAddr:                   *listenAddr,
		RemoteRoot:                   *remoteRoot,
		PostgresDSN:                  *postgresDSN,
		RedisAddr:                    *redisAddr,
		DisableMirroring:             *disableMirroring,
		DisableIntegrityCheck:        *disableIntegrity,
		DisableIntegrityPartialCheck: *disablePartial,
		DisableIntegrityFullCheck:    *disableFull,
	}, nil
}
