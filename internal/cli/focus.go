package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tasktrack/pkg/session"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run a focus timer until Ctrl-C",
	Args:  cobra.NoArgs,
	RunE:  runFocus,
}

func runFocus(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(ctxOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	timer := session.NewFocusTimer()
	unsubscribe := timer.Subscribe(func(d time.Duration) {
		fmt.Fprintf(out, "\r%s %s", title("Focus"), formatElapsed(d))
	})

	fmt.Fprintln(out, dim("Started at "+time.Now().Format("15:04")+", Ctrl-C to stop"))
	timer.Toggle()

	<-ctx.Done()
	total := timer.Elapsed()
	unsubscribe()
	timer.Stop()
	fmt.Fprintf(out, "\n%s Focused for %s\n", success("✓"), formatElapsed(total))
	return nil
}

// formatElapsed HH:MM:SS
func formatElapsed(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
