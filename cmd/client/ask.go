package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/secplus-chat/internal/client/chat"
	"github.com/yourusername/secplus-chat/internal/client/render"
	"github.com/yourusername/secplus-chat/internal/client/transcript"
)

const waitingLine = "⏳ ..."

var askWidth int

// askCmd runs one exchange without the TUI
var askCmd = &cobra.Command{
	Use:   "ask [text]",
	Short: "Analyze one text and print the answer",
	Long: `Sends the text to the backend once and prints the rendered answer.
With no arguments the text is read from standard input.

Example:
  secplus-chat ask "A firewall filters inbound traffic"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if text == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		}
		return ask(cmd.Context(), cmd.OutOrStdout(), text)
	},
}

func init() {
	askCmd.Flags().IntVar(&askWidth, "width", 80, "output width")
}

// errAnswerFailed makes the command exit non-zero after the error was printed
var errAnswerFailed = errors.New("analysis failed")

func ask(ctx context.Context, out io.Writer, text string) error {
	t := transcript.New()
	defer t.Close()

	view := &printView{}
	client, err := chat.New(chat.Handles{
		Input: &staticInput{value: text},
		Send:  noopControl{},
		Icon:  &progressIndicator{out: os.Stderr},
		View:  view,
	}, t, newManager(), chat.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := client.Run(ctx); err != nil {
		if errors.Is(err, chat.ErrEmptyInput) {
			return errors.New("nothing to analyze")
		}
		return err
	}

	r := render.Terminal{Width: askWidth}
	fmt.Fprintln(out, r.RenderAll(view.shown))

	if _, failed := view.shown[len(view.shown)-1].(transcript.ErrorMessage); failed {
		logger.Warn("ask failed", zap.Int("text_len", len(text)))
		return errAnswerFailed
	}
	return nil
}

type staticInput struct{ value string }

func (s *staticInput) Value() string     { return s.value }
func (s *staticInput) SetValue(v string) { s.value = v }

type noopControl struct{}

func (noopControl) SetEnabled(bool) {}

// progressIndicator shows a waiting line on out while busy
type progressIndicator struct {
	out   io.Writer
	shown bool
}

func (p *progressIndicator) ShowBusy() {
	p.shown = true
	fmt.Fprint(p.out, waitingLine)
}

func (p *progressIndicator) ShowIdle() {
	if p.shown {
		fmt.Fprint(p.out, "\r"+ansi.EraseEntireLine)
		p.shown = false
	}
}

type printView struct{ shown []transcript.Message }

func (p *printView) Refresh(msgs []transcript.Message) { p.shown = msgs }
func (p *printView) ScrollToBottom()                   {}
