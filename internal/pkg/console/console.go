// Package console is a line-oriented terminal front end for the client: it
// prints table events and chat, shows the seats on repaint, and reads the
// player's name and commands from the input stream.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/table"

	"github.com/pkg/errors"
)

// ErrInputClosed is returned when the input stream ends.
var ErrInputClosed = errors.New("input closed")

// Seats is what the console needs from the table to repaint.
type Seats interface {
	PlayerSlots() []table.Slot
}

// Console is safe for concurrent use.
type Console struct {
	seats Seats
	name  string

	lines chan string

	mu           sync.Mutex
	out          io.Writer
	inputEnabled bool
}

// Cfg configures a Console.
type Cfg func(*Console) error

// WithPlayerName answers the name prompt without asking.
func WithPlayerName(name string) Cfg {
	return func(c *Console) error {
		c.name = name
		return nil
	}
}

// New creates a Console reading from in and writing to out. Input is read on
// a background goroutine until in is exhausted.
func New(in io.Reader, out io.Writer, seats Seats, cfgs ...Cfg) (*Console, error) {
	c := &Console{
		seats:        seats,
		out:          out,
		lines:        make(chan string),
		inputEnabled: true,
	}
	for _, cfg := range cfgs {
		if err := cfg(c); err != nil {
			return nil, errors.Wrap(err, "apply Console cfg failed")
		}
	}
	go c.scan(in)
	return c, nil
}

func (c *Console) scan(in io.Reader) {
	defer close(c.lines)
	s := bufio.NewScanner(in)
	for s.Scan() {
		c.lines <- s.Text()
	}
}

// ReadLine blocks until the user enters a line, the input ends, or ctx is done.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return line, nil
	}
}

// PlayerName asks for the player's display name.
func (c *Console) PlayerName(ctx context.Context) (string, error) {
	if c.name != "" {
		return c.name, nil
	}
	c.print("Please enter your name: ")
	line, err := c.ReadLine(ctx)
	if err != nil {
		return "", errors.Wrap(err, "read player name failed")
	}
	return strings.TrimSpace(line), nil
}

// PrintMessage shows a table event on its own line.
func (c *Console) PrintMessage(text string) {
	c.print(text + "\n")
}

// SendChat shows a chat line received from the table.
func (c *Console) SendChat(text string) {
	c.print(text + "\n")
}

// DisableInput blocks card play until EnableInput is called.
func (c *Console) DisableInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputEnabled = false
}

// EnableInput allows card play again.
func (c *Console) EnableInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputEnabled = true
}

// InputEnabled reports whether card play is currently allowed.
func (c *Console) InputEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputEnabled
}

// Repaint prints the seats.
func (c *Console) Repaint() {
	var b strings.Builder
	b.WriteString("---- table ----\n")
	for _, s := range c.seats.PlayerSlots() {
		name := s.Name
		if name == "" {
			name = "(empty)"
		}
		fmt.Fprintf(&b, "  seat %d: %s\n", s.Index, name)
	}
	c.print(b.String())
}

// SessionEnded reports the end of the session to the user.
func (c *Console) SessionEnded(err error) {
	if err != nil {
		c.print(fmt.Sprintf("Disconnected from server: %v\n", err))
		return
	}
	c.print("Disconnected.\n")
}

func (c *Console) print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, s)
}

// CommandKind is the kind of a user command.
type CommandKind int

const (
	CommandChat CommandKind = iota
	CommandPlay
	CommandQuit
)

// Command is one parsed line of user input.
type Command struct {
	Kind  CommandKind
	Text  string
	Cards []int
}

// ErrBadCommand is returned for malformed commands.
var ErrBadCommand = errors.New("bad command")

// ParseCommand interprets a line of input. "/play 0 3 5" plays the cards at
// those hand indices, "/pass" passes, "/quit" leaves, anything else is chat.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.Wrap(ErrBadCommand, "empty line")
	}
	switch fields[0] {
	case "/quit":
		return Command{Kind: CommandQuit}, nil
	case "/pass":
		return Command{Kind: CommandPlay}, nil
	case "/play":
		if len(fields) == 1 {
			return Command{}, errors.Wrap(ErrBadCommand, "/play needs card indices")
		}
		cards := make([]int, 0, len(fields)-1)
		for _, f := range fields[1:] {
			i, err := strconv.Atoi(f)
			if err != nil || i < 0 {
				return Command{}, errors.Wrapf(ErrBadCommand, "card index %q", f)
			}
			cards = append(cards, i)
		}
		return Command{Kind: CommandPlay, Cards: cards}, nil
	default:
		return Command{Kind: CommandChat, Text: strings.TrimSpace(line)}, nil
	}
}
