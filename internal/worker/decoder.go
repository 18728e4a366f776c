package worker

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/parser"
)

// Decoder parses the games of a document on several goroutines. Results
// come back in document order and errors are the ones a sequential parse
// would report first.
//
// A Decoder may be shared; with duplicate suppression on, games already
// returned by any earlier Decode call count as seen.
type Decoder struct {
	cfg     *config.Config
	log     zerolog.Logger
	workers int
	dups    *hashing.ThreadSafeDuplicateDetector
}

// NewDecoder creates a decoder. If cfg is nil, a default config is used.
func NewDecoder(cfg *config.Config) *Decoder {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	d := &Decoder{
		cfg:     cfg,
		log:     cfg.Logger(),
		workers: cfg.Workers,
	}
	if d.workers < 1 {
		d.workers = 1
	}
	if cfg.Duplicate != nil && cfg.Duplicate.Suppress {
		d.dups = hashing.NewThreadSafeDuplicateDetector(cfg.Duplicate.ExactMatch, cfg.Duplicate.MaxCapacity)
	}
	return d
}

// NumWorkers returns the number of decoding goroutines.
func (d *Decoder) NumWorkers() int {
	return d.workers
}

// Duplicates returns the number of games dropped as duplicates so far.
func (d *Decoder) Duplicates() int {
	if d.dups == nil {
		return 0
	}
	return d.dups.DuplicateCount()
}

// DecodeString decodes every game in text.
func (d *Decoder) DecodeString(ctx context.Context, text string) ([]*chess.Game, error) {
	return d.Decode(ctx, strings.NewReader(text))
}

// Decode reads a whole document from r and decodes its games. On error it
// returns the games that precede the failing one.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) ([]*chess.Game, error) {
	chunks, splitErr := SplitGames(r)

	d.log.Debug().
		Int("chunks", len(chunks)).
		Int("workers", d.workers).
		Msg("split document")

	games := make([]*chess.Game, len(chunks))
	errs := make([]error, len(chunks))

	// Chunks after the first failure need no decoding.
	var failAt atomic.Int64
	failAt.Store(int64(len(chunks)))

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range chunks {
			if int64(i) > failAt.Load() {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < d.workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				if int64(i) > failAt.Load() {
					continue
				}
				game, err := d.decodeChunk(chunks[i])
				if err != nil {
					errs[i] = err
					lowerFailAt(&failAt, int64(i))
					continue
				}
				games[i] = game
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, err := range errs {
		if err != nil {
			return d.dedupe(games[:i]), err
		}
	}
	games = d.dedupe(games)
	if splitErr != nil {
		return games, splitErr
	}

	d.log.Debug().
		Int("games", len(games)).
		Int("duplicates", d.Duplicates()).
		Msg("decoded document")
	return games, nil
}

func lowerFailAt(failAt *atomic.Int64, i int64) {
	for {
		cur := failAt.Load()
		if i >= cur || failAt.CompareAndSwap(cur, i) {
			return
		}
	}
}

// decodeChunk parses the single game held in a chunk.
func (d *Decoder) decodeChunk(c Chunk) (*chess.Game, error) {
	p := parser.NewParser(strings.NewReader(c.Text), d.cfg)
	p.SetOrigin(c.Index+1, c.Line, c.Column)

	game, err := p.ParseGame()
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &errors.GameError{
			Err:     fmt.Errorf("%w: empty game", errors.ErrInvalidPGN),
			GameNum: c.Index + 1,
			Line:    c.Line,
		}
	}
	return game, nil
}

// dedupe drops games already seen, keeping the first copy in document
// order.
func (d *Decoder) dedupe(games []*chess.Game) []*chess.Game {
	if d.dups == nil {
		return games
	}
	kept, dropped := d.dups.Filter(games)
	for _, i := range dropped {
		d.log.Debug().Int("game", i+1).Msg("dropped duplicate game")
	}
	return kept
}
