// Command magicgen searches for rook and bishop magic multipliers and prints
// them as Go source for internal/board/magic.go.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/hailam/chesscore/internal/board"
)

var (
	maxTries = flag.Int("tries", 100_000_000, "candidates to try per square before giving up")
	workers  = flag.Int("workers", runtime.NumCPU(), "parallel searches")
	logLevel = flag.String("loglevel", "info", "log level (debug, info, warn, error)")
)

func randomWord() uint64 {
	return binary.LittleEndian.Uint64(frand.Bytes(8))
}

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var found [2][64]uint64
	start := time.Now()

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)
	for _, s := range []board.Slider{board.RookSlider, board.BishopSlider} {
		for sq := board.A1; sq <= board.H8; sq++ {
			s, sq := s, sq
			g.Go(func() error {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				magic, err := board.FindMagic(s, sq, randomWord, *maxTries)
				if err != nil {
					return err
				}
				found[s][sq] = magic
				log.Debug().Str("slider", s.String()).Str("square", sq.String()).
					Str("magic", fmt.Sprintf("%#016x", magic)).Msg("found")
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("magic search failed")
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("all magics found")

	fmt.Print(formatTable("rookMagicNumbers", found[board.RookSlider]))
	fmt.Println()
	fmt.Print(formatTable("bishopMagicNumbers", found[board.BishopSlider]))
}

func formatTable(name string, magics [64]uint64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "var %s = [64]uint64{\n", name)
	for i, m := range magics {
		if i%4 == 0 {
			sb.WriteByte('\t')
		}
		fmt.Fprintf(&sb, "0x%016X,", m)
		if i%4 == 3 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}
