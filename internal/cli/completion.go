package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/pipeline"
	"github.com/matzehuels/mazer/pkg/style"
)

func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mazer.

To load completions:

Bash:
  $ source <(mazer completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ mazer completion bash > /etc/bash_completion.d/mazer
  # macOS:
  $ mazer completion bash > $(brew --prefix)/etc/bash_completion.d/mazer

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ mazer completion zsh > "${fpath[1]}/_mazer"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ mazer completion fish | source

  # To load completions for each session, execute once:
  $ mazer completion fish > ~/.config/fish/completions/mazer.fish

PowerShell:
  PS> mazer completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> mazer completion powershell > mazer.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := c.out()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// =============================================================================
// Flag Values
// =============================================================================

// flagCompletions maps flag names to their candidate values. Candidates may
// carry a tab-separated description.
var flagCompletions = map[string]func() []string{
	"topology":   topologyNames,
	"palette":    paletteNames,
	"background": backgroundNames,
	"tier":       tierNames,
	"format":     formatNames,
}

// registerCompletions attaches value completion to every flag of cmd that
// has an entry in flagCompletions. Snapshot arguments complete to .json
// files.
func registerCompletions(cmd *cobra.Command) {
	for name, values := range flagCompletions {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, completeFrom(values))
	}
	cmd.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	}
}

func completeFrom(values func() []string) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		prefix := strings.ToLower(toComplete)
		for _, v := range values() {
			if strings.HasPrefix(strings.ToLower(v), prefix) {
				out = append(out, v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func topologyNames() []string {
	out := make([]string, len(maze.Topologies))
	for i, t := range maze.Topologies {
		out[i] = t.String()
	}
	return out
}

func paletteNames() []string {
	var out []string
	for _, p := range style.Palettes() {
		out = append(out, p.Name)
	}
	return out
}

func backgroundNames() []string {
	var out []string
	for _, b := range style.Backgrounds() {
		out = append(out, b.Name+"\t"+b.Color.Hex())
	}
	return out
}

func tierNames() []string {
	out := make([]string, len(maze.CellSizes))
	for i, s := range maze.CellSizes {
		out[i] = s.String()
	}
	return out
}

func formatNames() []string {
	return pipeline.FormatNames
}
