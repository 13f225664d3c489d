package client

import (
	"context"
	"sync"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/message"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/table"

	"github.com/stretchr/testify/mock"
)

type mockGame struct {
	mock.Mock
}

func (m *mockGame) PlayerSlots() []table.Slot {
	args := m.Called()
	return args.Get(0).([]table.Slot)
}

func (m *mockGame) SetPlayerName(index int, name string) {
	m.Called(index, name)
}

func (m *mockGame) Start(deck message.Deck) {
	m.Called(deck)
}

func (m *mockGame) CheckMove(playerIndex int, cards []int) {
	m.Called(playerIndex, cards)
}

func (m *mockGame) EndOfGame() bool {
	return m.Called().Bool(0)
}

type mockUI struct {
	mock.Mock
}

func (m *mockUI) PrintMessage(text string) { m.Called(text) }
func (m *mockUI) SendChat(text string)     { m.Called(text) }
func (m *mockUI) DisableInput()            { m.Called() }
func (m *mockUI) Repaint()                 { m.Called() }
func (m *mockUI) SessionEnded(err error)   { m.Called(err) }

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(msg message.Message) error {
	return m.Called(msg).Error(0)
}

type staticPrompt string

func (p staticPrompt) PlayerName(context.Context) (string, error) {
	return string(p), nil
}

// recordingUI is a thread-safe UI used where calls arrive from the receive loop.
type recordingUI struct {
	mu       sync.Mutex
	printed  []string
	chats    []string
	disabled int
	ends     int
	ended    chan error
}

func newRecordingUI() *recordingUI {
	return &recordingUI{ended: make(chan error, 1)}
}

func (u *recordingUI) PrintMessage(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.printed = append(u.printed, text)
}

func (u *recordingUI) SendChat(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.chats = append(u.chats, text)
}

func (u *recordingUI) DisableInput() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.disabled++
}

func (u *recordingUI) Repaint() {}

func (u *recordingUI) SessionEnded(err error) {
	u.mu.Lock()
	u.ends++
	u.mu.Unlock()
	select {
	case u.ended <- err:
	default:
	}
}

func (u *recordingUI) Ends() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.ends
}

func (u *recordingUI) Chats() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.chats...)
}

func (u *recordingUI) Printed() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.printed...)
}
