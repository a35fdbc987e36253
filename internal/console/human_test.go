package console

import (
	"bytes"
	"context"
	"ctchen222/connect-n/internal/game"
	"ctchen222/connect-n/internal/player"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ player.MoveSource = (*Human)(nil)

type brokenReader struct{}

// blockingReader never returns until the test ends.
func blockingReader(t *testing.T) io.Reader {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	return pr
}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("terminal gone") }

func TestHumanNextMove(t *testing.T) {
	var out bytes.Buffer
	h := NewHuman(strings.NewReader("1\n 2 \n0\n0\n"), &out)
	state := game.New(3, game.PlayerX, game.PlayerO)

	pos, err := h.NextMove(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, game.Position{Row: 1, Col: 2}, pos)
	assert.Equal(t, "Row index: Column index: ", out.String())

	pos, err = h.NextMove(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, game.Position{Row: 0, Col: 0}, pos)

	_, err = h.NextMove(context.Background(), state)
	assert.ErrorIs(t, err, io.EOF)
}

func TestHumanNextMoveErrors(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		in      io.Reader
		wantErr error
	}{
		{name: "Not a number", ctx: context.Background(), in: strings.NewReader("one\n1\n"), wantErr: player.ErrInvalidInput},
		{name: "Column missing", ctx: context.Background(), in: strings.NewReader("1\n"), wantErr: io.EOF},
		{name: "Empty input", ctx: context.Background(), in: strings.NewReader(""), wantErr: io.EOF},
		{name: "Cancelled", ctx: cancelled, in: blockingReader(t), wantErr: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHuman(tt.in, io.Discard)
			_, err := h.NextMove(tt.ctx, game.New(3, game.PlayerX, game.PlayerO))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("Read failure", func(t *testing.T) {
		h := NewHuman(brokenReader{}, io.Discard)
		_, err := h.NextMove(context.Background(), game.New(3, game.PlayerX, game.PlayerO))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "terminal gone")
	})
}

func TestHumanRetriesAfterInvalidInput(t *testing.T) {
	h := NewHuman(strings.NewReader("x\n2\n1\n"), io.Discard)
	state := game.New(3, game.PlayerX, game.PlayerO)

	_, err := h.NextMove(context.Background(), state)
	require.ErrorIs(t, err, player.ErrInvalidInput)

	pos, err := h.NextMove(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, game.Position{Row: 2, Col: 1}, pos)
}

func TestHumanCloseReleasesReader(t *testing.T) {
	h := NewHuman(strings.NewReader("1\n2\n0\n0\n"), io.Discard)
	state := game.New(3, game.PlayerX, game.PlayerO)

	_, err := h.NextMove(context.Background(), state)
	require.NoError(t, err)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close(), "closing twice is allowed")

	select {
	case <-h.stopped:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still waiting to deliver a line")
	}

	_, err = h.NextMove(context.Background(), state)
	assert.ErrorIs(t, err, io.EOF)
}
