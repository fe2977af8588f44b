// Package completion provides the completion command, which prints shell
// completion scripts for termsync.
package completion

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/termsync/pkg/errors"
)

// Supported shells.
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowerShell = "powershell"
)

// NewCommand creates the completion command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell to stdout.

  termsync completion bash > /etc/bash_completion.d/termsync
  termsync completion zsh > "${fpath[1]}/_termsync"
  termsync completion fish > ~/.config/fish/completions/termsync.fish`,
		Args:                  cobra.ExactArgs(1),
		ValidArgs:             []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell},
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Generate(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// Generate writes the completion script of root for shell to w.
func Generate(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case ShellBash:
		return root.GenBashCompletionV2(w, true)
	case ShellZsh:
		return root.GenZshCompletion(w)
	case ShellFish:
		return root.GenFishCompletion(w, true)
	case ShellPowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.NewValidationError("shell", shell, "must be one of: bash, zsh, fish, powershell")
	}
}
