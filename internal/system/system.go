// Package system launches applications, opens URLs and changes the power
// state of the host. Commands are started and left running; nothing waits
// for them and their exit status is not inspected.
package system

import (
	"errors"
	"fmt"
	"os/exec"
	"time"
)

var ErrUnsupported = errors.New("system: action not supported on this platform")

type App string

const (
	Chrome     App = "chrome"
	Notepad    App = "notepad"
	Calculator App = "calculator"
	Explorer   App = "explorer"
)

// Starter starts a command without waiting for it.
type Starter func(name string, args ...string) error

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap
	go cmd.Wait()
	return nil
}

type Actions struct {
	start Starter
}

func New() *Actions {
	return &Actions{start: startDetached}
}

func (a *Actions) Launch(app App) error {
	cands := appCommands(app)
	if len(cands) == 0 {
		return fmt.Errorf("launch %s: %w", app, ErrUnsupported)
	}
	return a.first("launch "+string(app), cands)
}

func (a *Actions) OpenURL(url string) error {
	return a.first("open "+url, urlCommands(url))
}

func (a *Actions) Shutdown(delay time.Duration) error {
	return a.first("shutdown", powerCommands(false, delay))
}

func (a *Actions) Restart(delay time.Duration) error {
	return a.first("restart", powerCommands(true, delay))
}

func (a *Actions) Lock() error {
	return a.first("lock", lockCommands())
}

// first starts the first candidate whose binary exists.
func (a *Actions) first(what string, cands [][]string) error {
	if len(cands) == 0 {
		return fmt.Errorf("%s: %w", what, ErrUnsupported)
	}

	var lastErr error
	for _, c := range cands {
		err := a.start(c[0], c[1:]...)
		if err == nil {
			return nil
		}
		lastErr = err
		if !errors.Is(err, exec.ErrNotFound) {
			break
		}
	}
	return fmt.Errorf("%s: %w", what, lastErr)
}

func seconds(d time.Duration) int {
	return int(d.Round(time.Second) / time.Second)
}
