package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Output shell wrapper function",
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.ExactArgs(1),
		Long: `Output a shell wrapper function that makes ncd change directories.

ncd itself only prints the resolved path, since a subprocess cannot
change its parent shell's directory. The wrapper captures the output
and performs the actual cd, keeping OLDPWD intact so 'ncd -' works.`,
		Example: `  eval "$(ncd init bash)"          # add to ~/.bashrc
  eval "$(ncd init zsh)"           # add to ~/.zshrc
  ncd init fish | source           # add to ~/.config/fish/config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Print(bashInit)
			case "zsh":
				fmt.Print(zshInit)
			case "fish":
				fmt.Print(fishInit)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", args[0])
			}
			return nil
		},
	}

	return cmd
}

const bashInit = `# ncd shell wrapper
# Install: eval "$(ncd init bash)"

ncd() {
    case "$1" in
        init|completion|help|-h|--help|--version|-l|--list)
            command ncd "$@"
            ;;
        *)
            local dir
            dir="$(command ncd "$@")" && cd "$dir"
            ;;
    esac
}
`

const zshInit = `# ncd shell wrapper
# Install: eval "$(ncd init zsh)"

ncd() {
    case "$1" in
        init|completion|help|-h|--help|--version|-l|--list)
            command ncd "$@"
            ;;
        *)
            local dir
            dir="$(command ncd "$@")" && cd "$dir"
            ;;
    esac
}
`

const fishInit = `# ncd shell wrapper
# Install: ncd init fish | source
# Or add to config.fish: ncd init fish | source

function ncd --wraps=ncd --description 'Directory navigator'
    if contains -- "$argv[1]" init completion help -h --help --version -l --list
        command ncd $argv
    else
        set -l dir (command ncd $argv)
        and cd $dir
    end
end
`
