package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paylens/payreport/internal/export"
	"github.com/paylens/payreport/internal/logging"
	"github.com/paylens/payreport/internal/progress"
	"github.com/paylens/payreport/internal/session"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive report session",
	Long: `Open an interactive session with the report assistant.

If 'payreport open' or 'payreport templates run' left a pending
conversation or prompt, the session picks it up automatically.

Session commands:
  /use <n>    Send the n-th suggested follow-up prompt
  /save <name>  Save the current report to the dashboard
  /export [format]  Write the current report to a file (csv, json, md)
  /quit       Leave the session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := session.New(newService())

		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		handoff := session.NewHandoff(st)

		// A loaded conversation from `open` takes precedence over a
		// pending template prompt.
		payload, ok, err := handoff.Consume()
		if err != nil {
			logging.Warn("Failed to read handoff state: %v", err)
		}
		if ok {
			logging.Debug("Restoring conversation %s from handoff", payload.ConversationID)
			sess.RestoreFromHandoff(cmd.Context(), payload)
		}

		var pending string
		if prompt, fromTemplate, pendingOK, perr := handoff.ConsumePendingPrompt(); perr != nil {
			logging.Warn("Failed to read pending prompt: %v", perr)
		} else if pendingOK {
			pending = prompt
			if fromTemplate {
				logging.Debug("Pending prompt came from a template")
			}
		}

		return runChatLoop(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), sess, pending)
	},
}

// runChatLoop drives the interactive session until /quit or EOF.
func runChatLoop(ctx context.Context, out io.Writer, in io.Reader, sess *session.Session, pending string) error {
	renderTranscript(out, sess.Messages())

	scanner := bufio.NewScanner(in)
	for {
		if pending != "" {
			fmt.Fprintln(out, userMessageStyle.Render("You"))
			fmt.Fprintln(out, messageContentStyle.Render(pending))
			sendPrompt(ctx, out, sess, pending)
			pending = ""
			continue
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			done, err := runChatCommand(ctx, out, sess, line)
			if err != nil {
				fmt.Fprintln(out, errorStyle.Render(err.Error()))
			}
			if done {
				return nil
			}
			continue
		}

		sendPrompt(ctx, out, sess, line)
	}
}

// sendPrompt routes a prompt to the right endpoint: the first prompt starts
// a conversation, later ones continue it.
func sendPrompt(ctx context.Context, out io.Writer, sess *session.Session, prompt string) {
	err := progress.Show(ctx, session.ThinkingMessage, func() error {
		if sess.ConversationID() == "" {
			_, startErr := sess.StartNewChat(ctx, prompt)
			return startErr
		}
		_, sendErr := sess.SendChatMessage(ctx, prompt)
		return sendErr
	})
	if err != nil {
		logging.Error("Failed to send prompt: %v", err)
		fmt.Fprintln(out, errorStyle.Render(session.ApologyMessage))
		return
	}
	touchIndex(sess.ConversationID(), "", prompt, len(sess.Messages()))

	if last := lastAssistantMessage(sess.Messages()); last != nil {
		renderChatMessage(out, *last)
		renderSuggestedPrompts(out, last.SuggestedPrompts)
	}
}

// runChatCommand handles slash commands; done is true for /quit.
func runChatCommand(ctx context.Context, out io.Writer, sess *session.Session, line string) (done bool, err error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil

	case "/use":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: /use <n>")
		}
		n, convErr := strconv.Atoi(fields[1])
		last := lastAssistantMessage(sess.Messages())
		if convErr != nil || last == nil || n < 1 || n > len(last.SuggestedPrompts) {
			return false, fmt.Errorf("no suggested prompt #%s", fields[1])
		}
		prompt := last.SuggestedPrompts[n-1]
		fmt.Fprintln(out, userMessageStyle.Render("You"))
		fmt.Fprintln(out, messageContentStyle.Render(prompt))
		sendPrompt(ctx, out, sess, prompt)
		return false, nil

	case "/save":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /save <name>")
		}
		if sess.ConversationID() == "" {
			return false, session.ErrNoConversation
		}
		name := strings.Join(fields[1:], " ")
		if err := sess.Service().SaveReportMetadata(ctx, sess.ConversationID(), name, ""); err != nil {
			return false, fmt.Errorf("save failed: %w", err)
		}
		touchIndex(sess.ConversationID(), name, "", len(sess.Messages()))
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Saved to dashboard as %q", name)))
		return false, nil

	case "/export":
		format := "csv"
		if len(fields) > 1 {
			format = fields[1]
		}
		if sess.CurrentReport() == nil {
			return false, fmt.Errorf("no report to export yet")
		}
		path, err := exportReport(sess, format, "")
		if err != nil {
			return false, err
		}
		fmt.Fprintln(out, successStyle.Render("✅ Exported to "+path))
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %s (try /use, /save, /export, /quit)", fields[0])
	}
}

// exportReport writes the session's current report to outPath, or to a
// filename derived from the report title when outPath is empty.
func exportReport(sess *session.Session, format, outPath string) (string, error) {
	r := sess.CurrentReport()
	exporter, err := export.NewExporter(format)
	if err != nil {
		return "", err
	}

	if outPath == "" {
		outPath = export.Filename(r, exporter)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", &export.ExportError{Format: format, Path: outPath, Err: err}
		}
	}

	file, err := os.Create(outPath)
	if err != nil {
		return "", &export.ExportError{Format: format, Path: outPath, Err: err}
	}
	if err := exporter.Export(r, file); err != nil {
		_ = file.Close()
		return "", &export.ExportError{Format: format, Path: outPath, Err: err}
	}
	if err := file.Close(); err != nil {
		return "", &export.ExportError{Format: format, Path: outPath, Err: err}
	}
	return outPath, nil
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
