package message

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestRoundTrip(t *testing.T) {
	deck := Deck{{Suit: 0, Rank: 2}, {Suit: 3, Rank: 12}, {Suit: 1, Rank: 0}}
	cases := []struct {
		name string
		msg  Message
	}{
		{"roster", Roster{Player: 1, Names: [Seats]string{"", "Bob", "", ""}}},
		{"join", NewJoin("Alice")},
		{"join echo", Join{Player: 2, Name: "Carol"}},
		{"full", Full{Player: NoPlayer}},
		{"quit", Quit{Player: 3}},
		{"ready", NewReady()},
		{"start", Start{Player: NoPlayer, Deck: deck}},
		{"move", Move{Player: 0, Cards: []int{0, 4, 12}}},
		{"pass", NewMove(nil)},
		{"chat", Chat{Player: 2, Text: "Carol: hi all"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteFrame(&buf, tc.msg))
			got, err := ReadFrame(&buf)
			require.NoError(t, err)
			require.Equal(t, tc.msg, got)
			require.Zero(t, buf.Len())
		})
	}
}

func TestReadFramePreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 20; i++ {
		require.NoError(t, WriteFrame(&buf, Chat{Player: i % Seats, Text: string(rune('a' + i))}))
	}
	for i := 0; i < 20; i++ {
		got, err := ReadFrame(&buf)
		require.NoError(t, err)
		require.Equal(t, Chat{Player: i % Seats, Text: string(rune('a' + i))}, got)
	}
	_, err := ReadFrame(&buf)
	require.ErrorIs(t, err, io.EOF)
}

func TestReadBodyTruncated(t *testing.T) {
	frame, err := Frame(NewChat("hello"))
	require.NoError(t, err)
	_, err = ReadBody(bytes.NewReader(frame[:len(frame)-2]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadBodyTooLarge(t *testing.T) {
	header := make([]byte, FrameHeaderSize)
	binary.BigEndian.PutUint32(header, MaxBodySize+1)
	_, err := ReadBody(bytes.NewReader(header))
	require.True(t, errors.Is(err, ErrFrameTooLarge))
}

func TestDecodeUnknownKind(t *testing.T) {
	body, err := msgpack.Marshal(&envelope{Kind: Kind(42), Player: 0})
	require.NoError(t, err)
	_, err = Decode(body)
	require.True(t, errors.Is(err, ErrUnknownKind))
}

func TestDecodeShortRoster(t *testing.T) {
	data, err := msgpack.Marshal([]string{"a", "b"})
	require.NoError(t, err)
	body, err := msgpack.Marshal(&envelope{Kind: KindRoster, Player: 0, Data: data})
	require.NoError(t, err)
	_, err = Decode(body)
	require.True(t, errors.Is(err, ErrBadRoster))
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte{0xc1, 0x00})
	require.Error(t, err)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "ROSTER", KindRoster.String())
	require.Equal(t, "MSG", KindChat.String())
	require.Equal(t, "Kind(9)", Kind(9).String())
}

func TestCardString(t *testing.T) {
	require.Equal(t, "3d", Card{Suit: 0, Rank: 2}.String())
	require.Equal(t, "Ks", Card{Suit: 3, Rank: 12}.String())
	require.False(t, Card{Suit: 4}.Valid())
}
