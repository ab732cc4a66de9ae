package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/asian-mario/git-hydra/internal/config"
	"github.com/asian-mario/git-hydra/internal/git"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive hydra shell",
	Long: "A REPL over the hydra subcommands, so one session can run many of\n" +
		"them without repeating the binary name.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		runShell(cfg)
		return nil
	},
}

func runShell(cfg config.Config) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	if f, err := os.Open(cfg.HistoryFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(prefix string) []string {
		var matches []string
		for _, name := range commandNames() {
			if strings.HasPrefix(name, strings.ToLower(prefix)) {
				matches = append(matches, name)
			}
		}
		return matches
	})

	fmt.Println("hydra shell. 'exit' or Ctrl+D leaves, 'help' lists commands.")

	repo := git.New(repoPath)
	for {
		branch, err := repo.GetCurrentBranch()
		if err != nil {
			branch = "unknown"
		}

		input, err := line.Prompt(fmt.Sprintf("[%s]> ", branch))
		if err != nil {
			// Ctrl+D or a closed terminal.
			fmt.Println()
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if leave := runShellCommand(input); leave {
			break
		}
	}

	if f, err := os.Create(cfg.HistoryFile); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
}

// runShellCommand dispatches one input line; true means leave the loop.
func runShellCommand(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	case "clear", "cls":
		fmt.Print("\033[H\033[2J")
		return false
	case "help":
		rootCmd.Help()
		return false
	}

	args := splitCommandLine(input)
	if len(args) == 0 {
		return false
	}

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	rootCmd.SetArgs([]string{})
	return false
}

// splitCommandLine splits on spaces outside single or double quotes, so a
// quoted commit message stays one argument.
func splitCommandLine(input string) []string {
	var args []string
	var current strings.Builder
	var quote rune

	for _, r := range input {
		switch {
		case (r == '"' || r == '\'') && quote == 0:
			quote = r
		case r == quote && quote != 0:
			quote = 0
		case r == ' ' && quote == 0:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// commandNames feeds tab completion. The shell itself is excluded; nesting
// shells through completion helps nobody.
func commandNames() []string {
	var names []string
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "shell" {
			continue
		}
		names = append(names, sub.Name())
	}
	return names
}
