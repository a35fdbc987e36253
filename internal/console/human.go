package console

import (
	"bufio"
	"context"
	"ctchen222/connect-n/internal/game"
	"ctchen222/connect-n/internal/player"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

type line struct {
	text string
	err  error
}

// Human reads moves typed on a terminal.
type Human struct {
	in  io.Reader
	out io.Writer

	once      sync.Once
	lines     chan line
	stopped   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{
		in:      in,
		out:     out,
		stopped: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Close stops handing out lines. A reader goroutine waiting to deliver a line
// exits; one blocked inside a Read exits once that Read returns.
func (h *Human) Close() error {
	h.closeOnce.Do(func() { close(h.done) })
	return nil
}

// readLines feeds lines from h.in into h.lines until the input ends. Reads
// happen on their own goroutine so a cancelled context does not wait for the
// user to press enter.
func (h *Human) readLines() {
	h.lines = make(chan line)
	send := func(l line) bool {
		select {
		case h.lines <- l:
			return true
		case <-h.done:
			return false
		}
	}

	go func() {
		defer close(h.stopped)
		defer close(h.lines)
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			if !send(line{text: scanner.Text()}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(line{err: err})
		}
	}()
}

// NextMove asks for a row and a column index. A non-numeric answer returns
// player.ErrInvalidInput; the end of the input or a closed Human returns io.EOF.
func (h *Human) NextMove(ctx context.Context, _ *game.State) (game.Position, error) {
	h.once.Do(h.readLines)

	row, err := h.readInt(ctx, "Row index: ")
	if err != nil {
		return game.Position{}, err
	}
	col, err := h.readInt(ctx, "Column index: ")
	if err != nil {
		return game.Position{}, err
	}
	return game.Position{Row: row, Col: col}, nil
}

func (h *Human) readInt(ctx context.Context, prompt string) (int, error) {
	select {
	case <-h.done:
		return 0, io.EOF
	default:
	}

	fmt.Fprint(h.out, prompt)

	select {
	case <-h.done:
		return 0, io.EOF
	case <-ctx.Done():
		return 0, ctx.Err()
	case l, ok := <-h.lines:
		if !ok {
			return 0, io.EOF
		}
		if l.err != nil {
			return 0, fmt.Errorf("read move: %w", l.err)
		}
		text := strings.TrimSpace(l.text)
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("%q is not an index: %w", text, player.ErrInvalidInput)
		}
		return n, nil
	}
}
