// Package progress shows a spinner while a blocking call runs.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/paylens/payreport/internal/logging"
)

var (
	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Show runs a spinner with a message using gum if available, otherwise a
// simple text spinner. Outside a TTY the message is logged and fn runs
// directly.
func Show(ctx context.Context, message string, fn func() error) error {
	if !isTerminal(os.Stderr) {
		logging.Info("%s", message)
		return fn()
	}

	if gumAvailable() {
		return showWithGum(ctx, message, fn)
	}
	return showSimple(ctx, message, fn)
}

func showWithGum(ctx context.Context, message string, fn func() error) error {
	done := make(chan error, 1)
	spinnerDone := make(chan struct{})

	cmd := exec.CommandContext(ctx, "gum", "spin", "--spinner", "dot", "--title", message, "--", "sh", "-c", "while true; do sleep 0.1; done")
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stderr

	go func() {
		defer close(spinnerDone)
		_ = cmd.Run()
	}()

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		_ = cmd.Process.Kill()
		<-spinnerDone
		finish(message, err)
		return err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-spinnerDone
		return ctx.Err()
	}
}

func showSimple(ctx context.Context, message string, fn func() error) error {
	spinnerChars := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	done := make(chan error, 1)
	spinnerCtx, cancel := context.WithCancel(ctx)
	spinnerDone := make(chan struct{})

	go func() {
		defer close(spinnerDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-spinnerCtx.Done():
				return
			case <-ticker.C:
				char := spinnerChars[i%len(spinnerChars)]
				fmt.Fprintf(os.Stderr, "\r%s %s", spinnerStyle.Render(char), message)
				i++
			}
		}
	}()

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		cancel()
		<-spinnerDone
		finish(message, err)
		return err
	case <-ctx.Done():
		cancel()
		<-spinnerDone
		return ctx.Err()
	}
}

func finish(message string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\r%s %s\n", failStyle.Render("✗"), message)
		return
	}
	fmt.Fprintf(os.Stderr, "\r%s %s\n", okStyle.Render("✓"), message)
}

// gumAvailable checks if gum is available
func gumAvailable() bool {
	_, err := exec.LookPath("gum")
	return err == nil
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
