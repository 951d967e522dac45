package main

import (
	"errors"
	"flag"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	hashMB     = flag.Int("hash", 64, "transposition table size in megabytes")
	depth      = flag.Int("depth", engine.DefaultDepth, "search depth for go without limits")
	moveTime   = flag.Duration("movetime", 0, "time budget for go without limits (0 = depth only)")
	dbDir      = flag.String("db", "", "options database directory (default: platform data dir)")
	noStore    = flag.Bool("nostore", false, "do not load or save options and statistics")
	logLevel   = flag.String("loglevel", "info", "log level (debug, info, warn, error)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// stdout carries the protocol, logs go to stderr.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Warn().Str("level", *logLevel).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", *cpuprofile).Msg("CPU profiling enabled")
	}

	opts := storage.DefaultOptions()
	var store *storage.Storage
	if !*noStore {
		store, err = openStore()
		if err != nil {
			log.Warn().Err(err).Msg("storage unavailable, continuing without it")
		} else {
			defer store.Close()
			opts = loadOptions(store)
		}
	}
	applyFlags(opts)

	if store != nil {
		if err := store.SaveOptions(opts); err != nil {
			log.Warn().Err(err).Msg("could not save options")
		}
		if stats, err := store.LoadStats(); err == nil {
			log.Debug().
				Int("searches", stats.Searches).
				Uint64("avg_nodes", stats.AverageNodes()).
				Int("deepest", stats.DeepestDepth).
				Msg("search history")
		}
	}

	log.Info().
		Int("hash_mb", opts.HashMB).
		Int("depth", opts.DefaultDepth).
		Dur("movetime", opts.MoveTime()).
		Msg("engine starting")

	eng := engine.NewEngine(opts.HashMB)
	protocol := uci.New(eng, os.Stdout)
	protocol.SetDefaults(opts.DefaultDepth, opts.MoveTime())
	protocol.SetHashMB(opts.HashMB)
	if store != nil {
		protocol.SetRecorder(store)
	}

	if err := protocol.Run(os.Stdin); err != nil {
		log.Error().Err(err).Msg("reading commands")
	}
}

func openStore() (*storage.Storage, error) {
	dir := *dbDir
	if dir == "" {
		var err error
		if dir, err = storage.GetDatabaseDir(); err != nil {
			return nil, err
		}
	}
	return storage.Open(dir)
}

func loadOptions(store *storage.Storage) *storage.EngineOptions {
	opts, err := store.LoadOptions()
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Debug().Msg("no saved options, using defaults")
	case err != nil:
		log.Warn().Err(err).Msg("could not load options, using defaults")
		return storage.DefaultOptions()
	}
	return opts
}

// applyFlags overrides persisted options with flags set on the command line.
func applyFlags(opts *storage.EngineOptions) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hash":
			opts.HashMB = *hashMB
		case "depth":
			opts.DefaultDepth = *depth
		case "movetime":
			opts.MoveTimeMs = int(moveTime.Milliseconds())
		}
	})
	if opts.HashMB < 1 {
		opts.HashMB = 1
	}
	if opts.DefaultDepth < 1 || opts.DefaultDepth >= engine.MaxPly {
		opts.DefaultDepth = engine.DefaultDepth
	}
}
