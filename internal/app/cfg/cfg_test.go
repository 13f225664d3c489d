package cfg

import (
	"testing"
	"time"

	"github.com/davinnev/Big-Two-LAN/internal"
	"github.com/davinnev/Big-Two-LAN/internal/app/apps"

	"github.com/stretchr/testify/require"
)

func TestClientCfgs(t *testing.T) {
	app, err := apps.NewClientApp(
		NewServerAddrCfg("192.168.1.20"),
		NewPortCfg(4000),
		NewHealthPortCfg(9100),
		NewPlayerNameCfg("Alice"),
		NewDialTimeoutCfg(250*time.Millisecond),
	)
	require.NoError(t, err)
	require.Equal(t, "192.168.1.20", app.ServerAddr)
	require.Equal(t, uint16(4000), app.Port)
	require.Equal(t, uint16(9100), app.HealthPort)
	require.Equal(t, "Alice", app.PlayerName)
	require.Equal(t, 250*time.Millisecond, app.DialTimeout)
}

func TestClientFromEnv(t *testing.T) {
	internal.ServerAddr = "localhost"
	internal.Port = 2396
	internal.HealthPort = 0
	internal.PlayerName = "Bob"
	internal.DialTimeoutMS = 1500

	app, err := apps.NewClientApp(ClientFromEnv()...)
	require.NoError(t, err)
	require.Equal(t, "localhost", app.ServerAddr)
	require.Equal(t, uint16(2396), app.Port)
	require.Equal(t, "Bob", app.PlayerName)
	require.Equal(t, 1500*time.Millisecond, app.DialTimeout)
}
