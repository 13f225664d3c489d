package client

import (
	"fmt"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/message"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/session"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Dispatcher applies server messages to the local state and answers the
// server where the protocol requires it. It is not safe for concurrent use:
// the receive loop is its only caller.
type Dispatcher struct {
	session *session.Session
	game    GameState
	ui      UI
	out     Sender
}

// NewDispatcher creates a Dispatcher for sess.
func NewDispatcher(sess *session.Session, game GameState, ui UI, out Sender) *Dispatcher {
	return &Dispatcher{
		session: sess,
		game:    game,
		ui:      ui,
		out:     out,
	}
}

// Dispatch handles one message. Errors from sending a reply are returned to
// the caller, as are protocol violations.
func (d *Dispatcher) Dispatch(msg message.Message) error {
	switch m := msg.(type) {
	case message.Roster:
		return d.handleRoster(m)
	case message.Join:
		return d.handleJoin(m)
	case message.Full:
		d.ui.PrintMessage("Server is full, you cannot join the game!")
		return nil
	case message.Quit:
		return d.handleQuit(m)
	case message.Ready:
		return d.handleReady(m)
	case message.Start:
		d.ui.DisableInput()
		d.game.Start(m.Deck)
		d.ui.Repaint()
		return nil
	case message.Move:
		d.game.CheckMove(m.Player, m.Cards)
		return nil
	case message.Chat:
		d.ui.SendChat(m.Text)
		return nil
	default:
		return errors.Wrapf(ErrUnhandledMessage, "%T", msg)
	}
}

// handleRoster seats the local player on the first roster and announces its
// name. Later rosters only refresh the seat names.
func (d *Dispatcher) handleRoster(m message.Roster) error {
	first := d.session.PlayerIndex() == message.NoPlayer
	if first {
		if err := d.session.SetPlayerIndex(m.Player); err != nil {
			return errors.Wrap(ErrInvalidSeat, err.Error())
		}
	} else if m.Player != d.session.PlayerIndex() {
		logger.WithFields(logrus.Fields{
			"session": d.session.ID.String(),
			"seat":    d.session.PlayerIndex(),
			"roster":  m.Player,
		}).Warn("ignoring seat change in repeated roster")
	}
	for i, name := range m.Names {
		d.game.SetPlayerName(i, name)
	}
	d.ui.Repaint()
	if !first {
		return nil
	}
	return d.send(message.NewJoin(d.session.PlayerName))
}

func (d *Dispatcher) handleJoin(m message.Join) error {
	if self := d.session.PlayerIndex(); self != message.NoPlayer && m.Player == self {
		return d.send(message.NewReady())
	}
	if !message.ValidSeat(m.Player) {
		return errors.Wrapf(ErrInvalidSeat, "JOIN from seat %d", m.Player)
	}
	d.game.SetPlayerName(m.Player, m.Name)
	d.ui.PrintMessage(m.Name + " joins the game")
	d.ui.Repaint()
	return nil
}

// handleQuit frees the seat and, while a game is in progress, re-arms
// readiness so the lobby can fill the seat again.
func (d *Dispatcher) handleQuit(m message.Quit) error {
	if !message.ValidSeat(m.Player) {
		return errors.Wrapf(ErrInvalidSeat, "QUIT from seat %d", m.Player)
	}
	d.game.SetPlayerName(m.Player, "")
	var err error
	if !d.game.EndOfGame() {
		d.ui.DisableInput()
		err = d.send(message.NewReady())
	}
	d.ui.Repaint()
	return err
}

func (d *Dispatcher) handleReady(m message.Ready) error {
	if !message.ValidSeat(m.Player) {
		return errors.Wrapf(ErrInvalidSeat, "READY from seat %d", m.Player)
	}
	name := ""
	if slots := d.game.PlayerSlots(); m.Player < len(slots) {
		name = slots[m.Player].Name
	}
	d.ui.PrintMessage(fmt.Sprintf("%s is ready!", name))
	return nil
}

func (d *Dispatcher) send(msg message.Message) error {
	if err := d.out.Send(msg); err != nil {
		return errors.Wrapf(err, "send %s failed", msg.Kind())
	}
	return nil
}
