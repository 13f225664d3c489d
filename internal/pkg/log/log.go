// Package log add logging utilities.
package log

import (
	"strings"
	"time"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/message"

	"github.com/sirupsen/logrus"
)

// SetLogger sets the default logger's level.
func SetLogger(level string) {
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = time.RFC3339
	customFormatter.FullTimestamp = true
	logrus.SetFormatter(customFormatter)
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.ErrorLevel)
	}
}

// MessageToFields describes a protocol message for structured logging.
func MessageToFields(msg message.Message) logrus.Fields {
	fields := logrus.Fields{
		"kind":   msg.Kind().String(),
		"player": msg.Origin(),
	}
	switch m := msg.(type) {
	case message.Roster:
		fields["names"] = m.Names
	case message.Join:
		fields["name"] = m.Name
	case message.Start:
		fields["cards"] = len(m.Deck)
	case message.Move:
		fields["cards"] = m.Cards
	case message.Chat:
		fields["len"] = len(m.Text)
	}
	return fields
}
