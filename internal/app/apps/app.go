// Package apps holds the runnable applications behind each CLI command.
package apps

import "context"

// App is started by a CLI command and runs until ctx is done or it fails.
type App interface {
	Run(ctx context.Context, args []string) error
}
