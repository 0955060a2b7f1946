package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/goodnews/pkg/style"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for goodnews.

Bash:
  $ source <(goodnews completion bash)

Zsh:
  $ goodnews completion zsh > "${fpath[1]}/_goodnews"

Fish:
  $ goodnews completion fish | source

PowerShell:
  PS> goodnews completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// registerStyleCompletions completes the values of the style flags.
func registerStyleCompletions(cmd *cobra.Command) {
	complete := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}

	var categories, aligns, fontKeys []string
	for _, v := range style.Categories {
		categories = append(categories, string(v))
	}
	for _, v := range style.Alignments {
		aligns = append(aligns, string(v))
	}
	for _, v := range style.FontKeys {
		fontKeys = append(fontKeys, string(v)+"\t"+style.FontLabels[v])
	}

	_ = cmd.RegisterFlagCompletionFunc("category", complete(categories...))
	_ = cmd.RegisterFlagCompletionFunc("align", complete(aligns...))
	_ = cmd.RegisterFlagCompletionFunc("font", complete(fontKeys...))
}
