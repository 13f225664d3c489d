package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/table"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPlayerNamePrompt(t *testing.T) {
	out := &syncBuffer{}
	c, err := New(strings.NewReader("  Alice \nhello\n"), out, table.New())
	require.NoError(t, err)

	name, err := c.PlayerName(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Alice", name)
	require.Equal(t, "Please enter your name: ", out.String())

	line, err := c.ReadLine(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hello", line)

	_, err = c.ReadLine(context.Background())
	require.True(t, errors.Is(err, ErrInputClosed))
}

func TestPlayerNamePreset(t *testing.T) {
	out := &syncBuffer{}
	c, err := New(strings.NewReader(""), out, table.New(), WithPlayerName("Bob"))
	require.NoError(t, err)
	name, err := c.PlayerName(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bob", name)
	require.Empty(t, out.String())
}

func TestReadLineCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	c, err := New(r, &syncBuffer{}, table.New())
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.ReadLine(ctx)
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRepaintAndMessages(t *testing.T) {
	out := &syncBuffer{}
	tbl := table.New()
	tbl.SetPlayerName(1, "Alice")
	c, err := New(strings.NewReader(""), out, tbl)
	require.NoError(t, err)

	c.Repaint()
	c.PrintMessage("Carol joins the game")
	c.SendChat("Carol: hi")
	c.SessionEnded(nil)

	got := out.String()
	require.Contains(t, got, "seat 0: (empty)")
	require.Contains(t, got, "seat 1: Alice")
	require.Contains(t, got, "Carol joins the game\n")
	require.Contains(t, got, "Carol: hi\n")
	require.True(t, strings.HasSuffix(got, "Disconnected.\n"))
}

func TestInputEnablement(t *testing.T) {
	c, err := New(strings.NewReader(""), &syncBuffer{}, table.New())
	require.NoError(t, err)
	require.True(t, c.InputEnabled())
	c.DisableInput()
	require.False(t, c.InputEnabled())
	c.EnableInput()
	require.True(t, c.InputEnabled())
}

func TestParseCommand(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		want    Command
		wantErr bool
	}{
		{name: "chat", line: " good luck ", want: Command{Kind: CommandChat, Text: "good luck"}},
		{name: "play", line: "/play 0 4 9", want: Command{Kind: CommandPlay, Cards: []int{0, 4, 9}}},
		{name: "pass", line: "/pass", want: Command{Kind: CommandPlay}},
		{name: "quit", line: "/quit", want: Command{Kind: CommandQuit}},
		{name: "play without cards", line: "/play", wantErr: true},
		{name: "play with junk", line: "/play 1 x", wantErr: true},
		{name: "negative index", line: "/play -1", wantErr: true},
		{name: "blank", line: "   ", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCommand(tc.line)
			if tc.wantErr {
				require.True(t, errors.Is(err, ErrBadCommand))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
