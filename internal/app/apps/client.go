package apps

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/davinnev/Big-Two-LAN/internal"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/channel"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/client"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/console"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/metrics"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/status"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/table"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/validate"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

const shutdownTimeout = 5 * time.Second

// ClientAppCfg configures a ClientApp.
type ClientAppCfg interface {
	ApplyClientApp(*ClientApp) error
}

// ClientApp joins a Big Two table from the terminal.
type ClientApp struct {
	ServerAddr  string        `validate:"required,hostname_rfc1123|ip"`
	Port        uint16        `validate:"required"`
	HealthPort  uint16        `validate:"omitempty,nefield=Port"`
	PlayerName  string        `validate:"max=32"`
	DialTimeout time.Duration `validate:"required,min=1ms"`

	In  io.Reader `validate:"-"`
	Out io.Writer `validate:"-"`
}

// NewClientApp creates a new ClientApp.
func NewClientApp(cfgs ...ClientAppCfg) (*ClientApp, error) {
	app := &ClientApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyClientApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ClientApp cfg failed")
		}
	}
	if app.ServerAddr == "" {
		app.ServerAddr = internal.ServerAddr
	}
	if app.Port == 0 {
		app.Port = uint16(internal.Port)
	}
	if app.DialTimeout == 0 {
		app.DialTimeout = time.Duration(internal.DialTimeoutMS) * time.Millisecond
	}
	if app.In == nil {
		app.In = os.Stdin
	}
	if app.Out == nil {
		app.Out = os.Stdout
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ClientApp failed")
	}
	return app, nil
}

// Run connects to the server and plays until the session ends, the input is
// exhausted, the user quits, or ctx is done. A session closed by the server is
// not an error.
func (app *ClientApp) Run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		c   *client.Client
		con *console.Console
		err error
	)
	// card input is on only while the turn is at the local seat
	tbl := table.New(table.WithTurnListener(func(seat int) {
		if seat == c.PlayerIndex() {
			con.EnableInput()
		} else {
			con.DisableInput()
		}
	}))
	var consoleCfgs []console.Cfg
	if app.PlayerName != "" {
		consoleCfgs = append(consoleCfgs, console.WithPlayerName(app.PlayerName))
	}
	con, err = console.New(app.In, app.Out, tbl, consoleCfgs...)
	if err != nil {
		return errors.Wrap(err, "create console failed")
	}
	con.DisableInput()

	reg := prometheus.NewRegistry()
	c, err = client.NewClient(
		client.WithServerAddr(app.ServerAddr),
		client.WithServerPort(app.Port),
		client.WithDialTimeout(app.DialTimeout),
		client.WithPrompt(con),
		client.WithGameState(tbl),
		client.WithUI(con),
		client.WithMetrics(metrics.New(reg)),
	)
	if err != nil {
		return errors.Wrap(err, "create client failed")
	}
	if err := c.Connect(ctx); err != nil {
		return errors.Wrap(err, "connect client failed")
	}
	defer func() { _ = c.Close() }()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-c.Done():
			cancel()
			return sessionErr(c.Err())
		case <-gctx.Done():
			_ = c.Close()
			<-c.Done()
			return nil
		}
	})
	g.Go(func() error {
		return app.readCommands(gctx, c, con)
	})
	if app.HealthPort != 0 {
		addr := net.JoinHostPort("", strconv.Itoa(int(app.HealthPort)))
		g.Go(func() error {
			return serveStatus(gctx, addr, status.NewRouter(c, reg))
		})
	}
	return g.Wait()
}

func (app *ClientApp) readCommands(ctx context.Context, c *client.Client, con *console.Console) error {
	for {
		line, err := con.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, console.ErrInputClosed) {
				return errors.Wrap(c.Close(), "close client failed")
			}
			return nil
		}
		cmd, err := console.ParseCommand(line)
		if err != nil {
			if strings.TrimSpace(line) != "" {
				con.PrintMessage(err.Error())
			}
			continue
		}
		switch cmd.Kind {
		case console.CommandQuit:
			return errors.Wrap(c.Close(), "close client failed")
		case console.CommandChat:
			err = c.SendChat(cmd.Text)
		case console.CommandPlay:
			if !con.InputEnabled() {
				con.PrintMessage("It is not your turn.")
				continue
			}
			err = c.SendMove(cmd.Cards)
		}
		if err != nil {
			// the session watcher reports the failure
			logger.WithError(err).Debug("send command failed")
		}
	}
}

func serveStatus(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: shutdownTimeout,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("status server shutdown failed")
		}
	}()
	logger.WithField("addr", addr).Info("serving status")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve status failed")
	}
	return nil
}

func sessionErr(err error) error {
	if err == nil || errors.Is(err, channel.ErrChannelClosed) {
		return nil
	}
	return errors.Wrap(err, "session ended")
}
