package internal

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestRegisterCommandFlagsEnvFallback(t *testing.T) {
	t.Setenv("BIGTWO_SERVER_ADDR", "10.0.0.7")
	t.Setenv("BIGTWO_PORT", "4000")

	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	require.NoError(t, RegisterCommandFlags(cmd, []*Flag{&ServerAddrFlag, &PortFlag, &LogLevelFlag}))
	cmd.SetArgs([]string{"--log-level", "debug"})
	require.NoError(t, cmd.Execute())

	require.Equal(t, "10.0.0.7", ServerAddr)
	require.Equal(t, uint(4000), Port)
	require.Equal(t, "debug", LogLevel)
}

func TestRegisterCommandFlagsBadEnv(t *testing.T) {
	t.Setenv("BIGTWO_PORT", "lots")
	cmd := &cobra.Command{Use: "test"}
	require.Error(t, RegisterCommandFlags(cmd, []*Flag{&PortFlag}))
}

func TestRegisterCommandFlagsUnsupportedType(t *testing.T) {
	var f float64
	cmd := &cobra.Command{Use: "test"}
	require.Error(t, RegisterCommandFlags(cmd, []*Flag{{Name: "ratio", Env: "BIGTWO_RATIO", Value: &f}}))
}

func TestValidateEnv(t *testing.T) {
	Env, LogLevel, ServerAddr = "dev", "INFO", "127.0.0.1"
	Port, HealthPort, DialTimeoutMS = 2396, 0, 5000
	PlayerName = ""
	require.NoError(t, ValidateEnv())

	LogLevel = "verbose"
	require.Error(t, ValidateEnv())
	LogLevel = "info"

	Port = 0
	require.Error(t, ValidateEnv())
	Port = 70000
	require.Error(t, ValidateEnv())
	Port = 2396

	DialTimeoutMS = 0
	require.Error(t, ValidateEnv())
}
