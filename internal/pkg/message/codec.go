package message

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// envelope is the msgpack body of a frame.
type envelope struct {
	Kind   Kind               `msgpack:"t"`
	Player int                `msgpack:"p"`
	Data   msgpack.RawMessage `msgpack:"d"`
}

// Encode serialises a message into a frame body.
func Encode(msg Message) ([]byte, error) {
	var payload interface{}
	switch m := msg.(type) {
	case Roster:
		payload = m.Names[:]
	case Join:
		payload = m.Name
	case Full, Quit, Ready:
	case Start:
		payload = []Card(m.Deck)
	case Move:
		payload = m.Cards
	case Chat:
		payload = m.Text
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "encode %T failed", msg)
	}

	env := envelope{Kind: msg.Kind(), Player: msg.Origin()}
	if payload != nil {
		data, err := msgpack.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal %s payload failed", msg.Kind())
		}
		env.Data = data
	}
	body, err := msgpack.Marshal(&env)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s envelope failed", msg.Kind())
	}
	return body, nil
}

// Decode parses a frame body produced by Encode.
func Decode(body []byte) (Message, error) {
	var env envelope
	if err := msgpack.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "unmarshal envelope failed")
	}
	switch env.Kind {
	case KindRoster:
		var names []string
		if err := unmarshalData(env, &names); err != nil {
			return nil, err
		}
		if len(names) != Seats {
			return nil, errors.Wrapf(ErrBadRoster, "got %d names", len(names))
		}
		m := Roster{Player: env.Player}
		copy(m.Names[:], names)
		return m, nil
	case KindJoin:
		m := Join{Player: env.Player}
		if err := unmarshalData(env, &m.Name); err != nil {
			return nil, err
		}
		return m, nil
	case KindFull:
		return Full{Player: env.Player}, nil
	case KindQuit:
		return Quit{Player: env.Player}, nil
	case KindReady:
		return Ready{Player: env.Player}, nil
	case KindStart:
		var cards []Card
		if err := unmarshalData(env, &cards); err != nil {
			return nil, err
		}
		return Start{Player: env.Player, Deck: Deck(cards)}, nil
	case KindMove:
		m := Move{Player: env.Player}
		if err := unmarshalData(env, &m.Cards); err != nil {
			return nil, err
		}
		return m, nil
	case KindChat:
		m := Chat{Player: env.Player}
		if err := unmarshalData(env, &m.Text); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "kind %d", int(env.Kind))
	}
}

func unmarshalData(env envelope, v interface{}) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := msgpack.Unmarshal(env.Data, v); err != nil {
		return errors.Wrapf(err, "unmarshal %s payload failed", env.Kind)
	}
	return nil
}
