package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/asian-mario/git-hydra/internal/config"
	"github.com/asian-mario/git-hydra/internal/git"
	"github.com/asian-mario/git-hydra/internal/ui"
)

var repoPath string

var rootCmd = &cobra.Command{
	Use:   "hydra",
	Short: "An interactive terminal client for git",
	Long: "git-hydra drives everyday git work from one terminal UI, with a guided\n" +
		"flow for reviewing and resolving merge conflicts.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return ui.Start(git.New(repoPath), cfg)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", ".", "path to the repository to work in")

	logCmd.Flags().IntP("count", "n", 0, "number of commits to show (default from config)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(capCmd)
	rootCmd.AddCommand(shellCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a one-shot repository status",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := git.New(repoPath)

		status, err := repo.GetRepositoryStatus()
		if err != nil {
			return err
		}

		fmt.Printf("On branch %s", status.CurrentBranch)
		if status.Ahead > 0 || status.Behind > 0 {
			fmt.Printf(" (ahead %d, behind %d)", status.Ahead, status.Behind)
		}
		fmt.Println()

		if status.MergeInProgress {
			if len(status.UnmergedPaths) > 0 {
				fmt.Printf("Merge in progress, conflicted: %s\n", strings.Join(status.UnmergedPaths, ", "))
			} else {
				fmt.Println("Merge in progress, all conflicts staged.")
			}
		}

		printFileSection("Staged", status.StagedFiles)
		printFileSection("Unstaged", status.UnstagedFiles)
		printFileSection("Untracked", status.UntrackedFiles)

		if len(status.StagedFiles)+len(status.UnstagedFiles)+len(status.UntrackedFiles) == 0 &&
			!status.MergeInProgress {
			fmt.Println("Working tree clean.")
		}
		return nil
	},
}

func printFileSection(title string, files []git.FileStatus) {
	if len(files) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, file := range files {
		fmt.Printf("  %s %s\n", file.Status, file.Path)
	}
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print recent commits",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			count = cfg.LogCount
		}

		repo := git.New(repoPath)
		commits, err := repo.GetCommits(count)
		if err != nil {
			return err
		}

		for _, commit := range commits {
			mark := " "
			if len(commit.Parents) > 1 {
				mark = "M"
			}
			fmt.Printf("%s %s %-50.50s %s (%s)\n",
				commit.ShortID(), mark, commit.Summary, commit.Author, humanize.Time(commit.When))
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Pick modified files to stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := git.New(repoPath)

		files, err := repo.GetModifiedFiles()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("Nothing to stage.")
			return nil
		}

		selected, err := ui.SelectFiles("Select files to stage:", files)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			fmt.Println("Nothing selected.")
			return nil
		}

		if err := repo.AddFiles(selected); err != nil {
			return err
		}

		fmt.Printf("Staged %d files:\n", len(selected))
		for _, file := range selected {
			fmt.Printf("  %s\n", file)
		}
		return nil
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := git.New(repoPath)

		conflicted, err := repo.Merge(args[0])
		if err != nil {
			return err
		}
		if conflicted {
			fmt.Printf("Merging %s hit conflicts. Run hydra to resolve them.\n", args[0])
			return nil
		}
		fmt.Printf("Merged %s.\n", args[0])
		return nil
	},
}

var capCmd = &cobra.Command{
	Use:   "cap <message>",
	Short: "Commit staged changes and push",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := git.New(repoPath)

		if err := repo.Commit(args[0]); err != nil {
			return err
		}
		if err := repo.Push(); err != nil {
			return err
		}
		fmt.Println("Committed and pushed.")
		return nil
	},
}
