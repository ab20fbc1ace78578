package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentic-research/folio/internal/nav"
	"github.com/agentic-research/folio/internal/tree"
)

const browseHelp = `Type a key (or its menu number) to select it.
  :up      back to the parent
  :root    back to the root
  :reload  re-read the declaration
  :quit    leave`

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Navigate the tree interactively, one key per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			hs := tree.NewHotSwap(s)
			n := nav.New(hs, nav.WithLogger(a.logger))
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, browseHelp)
			render(out, n)

			in := bufio.NewScanner(cmd.InOrStdin())
			for in.Scan() {
				line := strings.TrimSpace(in.Text())
				switch line {
				case "":
					continue
				case ":quit", ":q":
					return nil
				case ":up":
					if !n.Up() {
						fmt.Fprintln(out, "already at the root")
						continue
					}
				case ":root":
					n.Reset()
				case ":reload":
					next, err := a.loadStore(cmd.Context())
					if err != nil {
						// Keep browsing the tree we have.
						fmt.Fprintf(out, "reload failed: %v\n", err)
						continue
					}
					hs.Swap(next)
					if !n.Rebind(hs) {
						fmt.Fprintln(out, "current node is gone; back at the root")
					}
					a.logger.Info("reloaded", zap.Int("nodes", next.Len()))
				default:
					r := selectLine(n, line)
					if !r.Moved() {
						fmt.Fprintln(out, describe(r))
						continue
					}
				}
				render(out, n)
			}
			return in.Err()
		},
	}
}

// selectLine selects line as a key. A line that names no child but is a
// valid menu number selects that entry instead.
func selectLine(n *nav.Navigator, line string) nav.Result {
	if n.Peek(line).Outcome == nav.Dead {
		menu := n.Menu()
		if i, err := strconv.Atoi(line); err == nil && i >= 1 && i <= len(menu) {
			return n.Select(menu[i-1].Key)
		}
	}
	return n.Select(line)
}
