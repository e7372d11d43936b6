// Command orderbookd runs a line-oriented order book REPL over
// stdin/stdout. A signal-derived context plus a tomb.Tomb supervise the
// read loop so SIGINT/SIGTERM produce a clean shutdown.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/clement-fischer/limitbook/internal/cli"
	"github.com/clement-fischer/limitbook/internal/orderbook"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s tick_size precision\n", os.Args[0])
		os.Exit(1)
	}

	tickSize, err := strconv.ParseFloat(os.Args[1], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage: %s tick_size precision\n", os.Args[0])
		os.Exit(1)
	}
	precision, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage: %s tick_size precision\n", os.Args[0])
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	book := orderbook.New(tickSize, precision)

	t, ctx := tomb.WithContext(ctx)
	t.Go(func() error {
		return runREPL(ctx, book)
	})

	log.Info().Float64("tickSize", tickSize).Float64("precision", precision).Msg("orderbookd started")
	<-ctx.Done()
	log.Info().Msg("orderbookd shutting down")
}

// runREPL reads lines from stdin and dispatches each one to the book until
// stdin closes or ctx is cancelled.
func runREPL(ctx context.Context, book *orderbook.Engine) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print(">> ")
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := scanner.Text()
		var output string
		if len(line) > 0 {
			output = cli.Dispatch(book, line)
		}
		fmt.Println(output)
		fmt.Print(">> ")
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("error reading stdin")
		return err
	}
	return nil
}
