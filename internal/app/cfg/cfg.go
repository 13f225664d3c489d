// Package cfg implements functionality to configure an app.
//
// The configuration objects defined here need only be implemented once,
// but can be applied to multiple types.
//
// In order to add support for a new type, the configuration
// need only implement an ApplyX method.
package cfg

import (
	"time"

	"github.com/davinnev/Big-Two-LAN/internal"
	"github.com/davinnev/Big-Two-LAN/internal/app/apps"
)

// PortCfg is configuration for the game server port.
type PortCfg struct {
	port uint16
}

// NewPortCfg creates a new PortCfg from the given config.
func NewPortCfg(port uint16) *PortCfg {
	return &PortCfg{port: port}
}

// PortFromEnv creates a new PortCfg from the current environment.
func PortFromEnv() *PortCfg {
	return &PortCfg{port: uint16(internal.Port)}
}

// ApplyClientApp applies the PortCfg to a ClientApp.
func (cfg PortCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.Port = cfg.port
	return nil
}

// ServerAddrCfg is configuration for the game server host.
type ServerAddrCfg struct {
	addr string
}

// NewServerAddrCfg creates a new ServerAddrCfg from the given config.
func NewServerAddrCfg(addr string) *ServerAddrCfg {
	return &ServerAddrCfg{addr: addr}
}

// ServerAddrFromEnv creates a new ServerAddrCfg from the current environment.
func ServerAddrFromEnv() *ServerAddrCfg {
	return &ServerAddrCfg{addr: internal.ServerAddr}
}

// ApplyClientApp applies the ServerAddrCfg to a ClientApp.
func (cfg ServerAddrCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.ServerAddr = cfg.addr
	return nil
}

// HealthPortCfg is configuration for the status endpoint. Zero disables it.
type HealthPortCfg struct {
	port uint16
}

// NewHealthPortCfg creates a new HealthPortCfg from the given config.
func NewHealthPortCfg(port uint16) *HealthPortCfg {
	return &HealthPortCfg{port: port}
}

// HealthPortFromEnv creates a new HealthPortCfg from the current environment.
func HealthPortFromEnv() *HealthPortCfg {
	return &HealthPortCfg{port: uint16(internal.HealthPort)}
}

// ApplyClientApp applies the HealthPortCfg to a ClientApp.
func (cfg HealthPortCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.HealthPort = cfg.port
	return nil
}

// PlayerNameCfg sets the display name so the client does not prompt for it.
type PlayerNameCfg struct {
	name string
}

// NewPlayerNameCfg creates a new PlayerNameCfg from the given config.
func NewPlayerNameCfg(name string) *PlayerNameCfg {
	return &PlayerNameCfg{name: name}
}

// PlayerNameFromEnv creates a new PlayerNameCfg from the current environment.
func PlayerNameFromEnv() *PlayerNameCfg {
	return &PlayerNameCfg{name: internal.PlayerName}
}

// ApplyClientApp applies the PlayerNameCfg to a ClientApp.
func (cfg PlayerNameCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.PlayerName = cfg.name
	return nil
}

// DialTimeoutCfg bounds how long Connect waits for the server.
type DialTimeoutCfg struct {
	timeout time.Duration
}

// NewDialTimeoutCfg creates a new DialTimeoutCfg from the given config.
func NewDialTimeoutCfg(timeout time.Duration) *DialTimeoutCfg {
	return &DialTimeoutCfg{timeout: timeout}
}

// DialTimeoutFromEnv creates a new DialTimeoutCfg from the current environment.
func DialTimeoutFromEnv() *DialTimeoutCfg {
	return &DialTimeoutCfg{timeout: time.Duration(internal.DialTimeoutMS) * time.Millisecond}
}

// ApplyClientApp applies the DialTimeoutCfg to a ClientApp.
func (cfg DialTimeoutCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.DialTimeout = cfg.timeout
	return nil
}

// ClientFromEnv returns every ClientApp configuration taken from the environment.
func ClientFromEnv() []apps.ClientAppCfg {
	return []apps.ClientAppCfg{
		ServerAddrFromEnv(),
		PortFromEnv(),
		HealthPortFromEnv(),
		PlayerNameFromEnv(),
		DialTimeoutFromEnv(),
	}
}
