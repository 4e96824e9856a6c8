package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/corvidchess/corvid/pkg/session"
	"github.com/corvidchess/corvid/pkg/uci"
)

const (
	name   = "Corvid"
	author = "Corvid authors"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	var opts = session.DefaultOptions()
	var (
		flgDebug = flag.Bool("debug", false, "log at debug level")
		flgBench = flag.Int("bench", 0, "run the bench to the given depth and exit")
	)
	flag.StringVar(&opts.EvalFile, "evalfile", opts.EvalFile, "weights file, relative names are beside the executable")
	flag.IntVar(&opts.Hash, "hash", opts.Hash, "transposition table size in megabytes")
	flag.IntVar(&opts.Threads, "threads", opts.Threads, "search threads")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Caller().Logger()

	logger.Info().
		Str("version", versionName).
		Str("buildDate", buildDate).
		Str("gitRevision", gitRevision).
		Str("runtime", runtime.Version()).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Int("numCPU", runtime.NumCPU()).
		Msg(name)

	var output = uci.NewOutput(os.Stdout)
	var s = session.New(session.Config{
		Options:  opts,
		Logger:   logger,
		Reporter: output,
	})
	s.SetDebug(*flgDebug)

	if *flgBench > 0 {
		var result = s.Bench(*flgBench)
		output.Println(result.String())
		return
	}

	var protocol = uci.New(name, author, versionName, s, output, uci.NewOptions(s))
	if err := uci.RunCli(context.Background(), os.Stdin, s.Logger(), protocol); err != nil {
		logger.Error().Err(err).Msg("input failed")
		os.Exit(1)
	}
}
