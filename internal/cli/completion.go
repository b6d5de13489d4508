package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
// Flag values (figure kinds, output formats) complete through completeList.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for shapescatter.

To load completions:

Bash:
  $ source <(shapescatter completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ shapescatter completion bash > /etc/bash_completion.d/shapescatter
  # macOS:
  $ shapescatter completion bash > $(brew --prefix)/etc/bash_completion.d/shapescatter

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ shapescatter completion zsh > "${fpath[1]}/_shapescatter"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ shapescatter completion fish | source

  # To load completions for each session, execute once:
  $ shapescatter completion fish > ~/.config/fish/completions/shapescatter.fish

PowerShell:
  PS> shapescatter completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> shapescatter completion powershell > shapescatter.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		Annotations:           map[string]string{skipConfig: "true"},
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

	return cmd
}

// registerListCompletions adds value completion to whichever of the
// --kinds and --format flags cmd defines.
func registerListCompletions(cmd *cobra.Command) {
	lists := map[string][]string{
		"kinds":  figure.Names(figure.All),
		"format": formatNames(),
	}
	for name, choices := range lists {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, completeList(choices))
		}
	}
}

func formatNames() []string {
	names := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// completeList completes one item of a comma-separated flag value. Items
// already typed are kept as a prefix and not offered again.
func completeList(choices []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix, current := "", toComplete
		seen := make(map[string]bool)
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix, current = toComplete[:i+1], toComplete[i+1:]
			for _, item := range strings.Split(toComplete[:i], ",") {
				seen[strings.ToLower(strings.TrimSpace(item))] = true
			}
		}
		var out []string
		for _, choice := range choices {
			if !seen[choice] && strings.HasPrefix(choice, strings.ToLower(current)) {
				out = append(out, prefix+choice)
			}
		}
		return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
	}
}
