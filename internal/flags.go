// Package internal holds the command line flags shared by every command.
//
// Each flag falls back to an environment variable, which may itself come from
// a .env file loaded before the flags are registered.
package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/validate"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Flag values, populated when the command line is parsed.
var (
	Env           string
	LogLevel      string
	ServerAddr    string
	Port          uint
	HealthPort    uint
	PlayerName    string
	DialTimeoutMS uint
)

// Flag describes a command line flag and the environment variable backing it.
type Flag struct {
	Name     string
	Env      string
	Usage    string
	Value    interface{}
	Default  interface{}
	Required bool
}

// Flag definitions.
var (
	EnvFlag = Flag{
		Name:    "env",
		Env:     "BIGTWO_ENV",
		Usage:   "runtime environment (dev, prod)",
		Value:   &Env,
		Default: "dev",
	}
	LogLevelFlag = Flag{
		Name:    "log-level",
		Env:     "BIGTWO_LOG_LEVEL",
		Usage:   "log level (trace, debug, info, warn, error)",
		Value:   &LogLevel,
		Default: "info",
	}
	ServerAddrFlag = Flag{
		Name:    "server-addr",
		Env:     "BIGTWO_SERVER_ADDR",
		Usage:   "address of the game server",
		Value:   &ServerAddr,
		Default: "127.0.0.1",
	}
	PortFlag = Flag{
		Name:    "port",
		Env:     "BIGTWO_PORT",
		Usage:   "TCP port of the game server",
		Value:   &Port,
		Default: uint(2396),
	}
	HealthPortFlag = Flag{
		Name:    "health-port",
		Env:     "BIGTWO_HEALTH_PORT",
		Usage:   "port serving /healthz and /metrics, 0 disables it",
		Value:   &HealthPort,
		Default: uint(0),
	}
	PlayerNameFlag = Flag{
		Name:  "player-name",
		Env:   "BIGTWO_PLAYER_NAME",
		Usage: "display name at the table, prompted for when empty",
		Value: &PlayerName,
	}
	DialTimeoutMSFlag = Flag{
		Name:    "dial-timeout-ms",
		Env:     "BIGTWO_DIAL_TIMEOUT_MS",
		Usage:   "milliseconds to wait for the server to accept the connection",
		Value:   &DialTimeoutMS,
		Default: uint(5000),
	}
)

// RegisterCommandFlags adds flags to cmd. A flag's default is taken from its
// environment variable when set.
func RegisterCommandFlags(cmd *cobra.Command, flags []*Flag) error {
	fs := cmd.PersistentFlags()
	for _, f := range flags {
		usage := fmt.Sprintf("%s [%s]", f.Usage, f.Env)
		env, fromEnv := os.LookupEnv(f.Env)
		switch v := f.Value.(type) {
		case *string:
			def, _ := f.Default.(string)
			if fromEnv {
				def = env
			}
			fs.StringVar(v, f.Name, def, usage)
		case *uint:
			def, _ := f.Default.(uint)
			if fromEnv {
				n, err := strconv.ParseUint(strings.TrimSpace(env), 10, 0)
				if err != nil {
					return errors.Wrapf(err, "parse %s failed", f.Env)
				}
				def = uint(n)
			}
			fs.UintVar(v, f.Name, def, usage)
		default:
			return errors.Errorf("flag %s has unsupported type %T", f.Name, f.Value)
		}
		if f.Required {
			if err := cmd.MarkPersistentFlagRequired(f.Name); err != nil {
				return errors.Wrapf(err, "mark flag %s required failed", f.Name)
			}
		}
	}
	return nil
}

type env struct {
	Env           string `validate:"oneof=dev prod"`
	LogLevel      string `validate:"oneof=trace debug info warn error"`
	ServerAddr    string `validate:"required"`
	Port          uint   `validate:"min=1,max=65535"`
	HealthPort    uint   `validate:"max=65535"`
	PlayerName    string `validate:"max=32"`
	DialTimeoutMS uint   `validate:"min=1"`
}

// ValidateEnv checks the parsed flag values.
func ValidateEnv() error {
	e := env{
		Env:           strings.ToLower(Env),
		LogLevel:      strings.ToLower(LogLevel),
		ServerAddr:    ServerAddr,
		Port:          Port,
		HealthPort:    HealthPort,
		PlayerName:    PlayerName,
		DialTimeoutMS: DialTimeoutMS,
	}
	if err := validate.Validate().Struct(e); err != nil {
		return errors.Wrap(err, "invalid environment")
	}
	return nil
}
