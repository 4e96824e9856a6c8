package uci

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// ErrQuit is returned by a CommandHandler to end RunCli.
var ErrQuit = errors.New("quit")

type CommandHandler interface {
	Handle(ctx context.Context, command string) error
}

// RunCli feeds the lines of r to handler until quit, end of input or ctx is done.
// Command errors are logged and do not end the loop.
func RunCli(ctx context.Context, r io.Reader, logger *zerolog.Logger, handler CommandHandler) error {
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var commandLine = scanner.Text()
		var err = handler.Handle(ctx, commandLine)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			logger.Error().Err(err).Str("command", commandLine).Msg("command failed")
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	// end of input
	if err := handler.Handle(ctx, "quit"); err != nil && !errors.Is(err, ErrQuit) {
		return err
	}
	return nil
}
