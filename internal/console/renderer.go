package console

import (
	"context"
	"ctchen222/connect-n/internal/events"
	"ctchen222/connect-n/internal/game"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

const (
	columnSeparator = "|"
	cellWidth       = 4
)

// Renderer prints the board and game messages to a terminal.
type Renderer struct {
	mu  sync.Mutex
	w   io.Writer
	out *termenv.Output

	xColor termenv.Color
	oColor termenv.Color
}

// NewRenderer writes to w. Colours follow the terminal's capabilities unless
// noColor is set.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	var out *termenv.Output
	if noColor {
		out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	} else {
		out = termenv.NewOutput(w)
	}
	return &Renderer{
		w:      w,
		out:    out,
		xColor: out.Color("1"),
		oColor: out.Color("4"),
	}
}

func (r *Renderer) mark(m game.PlayerMark) string {
	switch m {
	case game.PlayerX:
		return r.out.String(string(m)).Foreground(r.xColor).Bold().String()
	case game.PlayerO:
		return r.out.String(string(m)).Foreground(r.oColor).Bold().String()
	}
	return " "
}

// Draw prints rows as a grid with row and column indices.
func (r *Renderer) Draw(rows [][]game.PlayerMark) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.w, r.grid(rows))
}

func (r *Renderer) grid(rows [][]game.PlayerMark) string {
	size := len(rows)
	labelWidth := len(fmt.Sprint(max(size-1, 0)))
	indent := strings.Repeat(" ", labelWidth)
	rule := indent + strings.Repeat("-", size*cellWidth+1) + "\n"

	var header strings.Builder
	header.WriteString(indent + " ")
	for c := 0; c < size; c++ {
		fmt.Fprintf(&header, " %-3d", c)
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(header.String(), " ") + "\n")

	sb.WriteString(rule)
	for i, row := range rows {
		fmt.Fprintf(&sb, "%*d%s", labelWidth, i, columnSeparator)
		for _, cell := range row {
			fmt.Fprintf(&sb, " %s %s", r.mark(cell), columnSeparator)
		}
		sb.WriteString("\n")
		sb.WriteString(rule)
	}
	return sb.String()
}

// Println prints a message line.
func (r *Renderer) Println(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, msg)
}

// Notify renders session events.
func (r *Renderer) Notify(ctx context.Context, ev events.Event) {
	switch ev.Type {
	case events.GameStarted:
		var p events.GameStartedPayload
		if !r.decode(ctx, ev, &p) {
			return
		}
		r.Println(fmt.Sprintf("%dx%d board, %d in a row wins. You play %s.",
			p.Size, p.Size, p.RequiredRun, r.mark(p.AIPlayer.Opponent())))
		empty := make([][]game.PlayerMark, p.Size)
		for i := range empty {
			empty[i] = make([]game.PlayerMark, p.Size)
		}
		r.Draw(empty)

	case events.TurnStarted:
		var p events.TurnStartedPayload
		if !r.decode(ctx, ev, &p) {
			return
		}
		r.Println(fmt.Sprintf("== %s playing ==", r.mark(p.Player)))
		if p.IsBot {
			r.Println(fmt.Sprintf("%s's thinking...", r.mark(p.Player)))
		}

	case events.MovePlayed:
		var p events.MovePlayedPayload
		if !r.decode(ctx, ev, &p) {
			return
		}
		r.Draw(p.Board)

	case events.MoveRejected:
		r.Println("Unallowed move! Try again...")

	case events.GameOver:
		var p events.GameOverPayload
		if !r.decode(ctx, ev, &p) {
			return
		}
		if p.Draw {
			r.Println("It's a draw!")
			return
		}
		r.Println(fmt.Sprintf("%s won!", r.mark(p.Winner)))
	}
}

func (r *Renderer) decode(ctx context.Context, ev events.Event, v any) bool {
	if err := ev.Decode(v); err != nil {
		slog.WarnContext(ctx, "Dropping malformed event", "event", ev.Type, "error", err)
		return false
	}
	return true
}
