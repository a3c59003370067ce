package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fskit/files"
	"github.com/blackwell-systems/fskit/internal/output"
	"github.com/blackwell-systems/fskit/paths"
)

var (
	pruneFlagRoot    bool
	pruneFlagExclude []string
)

var pruneCmd = &cobra.Command{
	Use:   "rmd [path]",
	Short: "Recursively delete empty directories",
	Long: `rmd walks the given directory (default: the current one) and deletes
every directory that is empty, or becomes empty once its own empty
subdirectories are gone. Files are never touched.

Examples:
  fskit rmd                      # prune empty folders here, keep this one
  fskit rmd build                # prune inside build/
  fskit rmd build --root         # also delete build/ itself if emptied
  fskit rmd --exclude 'keep/**'  # protect a subtree`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneFlagRoot, "root", false, "Also delete the target directory if it ends up empty")
	pruneCmd.Flags().StringSliceVar(&pruneFlagExclude, "exclude", nil, "Glob patterns (doublestar) for subtrees to leave alone")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	excludes := append(appCfg.Prune.Exclude, pruneFlagExclude...)

	root := paths.Resolve(target, files.Getwd())
	log.Debug("pruning empty directories", "path", root, "excludes", excludes)

	var count int
	var err error
	if len(excludes) == 0 {
		count, err = files.RmDir(root, pruneFlagRoot)
	} else {
		count, err = pruneExcluding(root, root, excludes, pruneFlagRoot)
	}
	if err != nil {
		return err
	}
	fmt.Printf("deleted %s empty folder(s)\n", output.StyleSuccess.Render(fmt.Sprint(count)))
	return nil
}

// pruneExcluding mirrors files.RmDir but skips subtrees whose path relative
// to the starting directory matches an exclude pattern.
func pruneExcluding(root, dir string, excludes []string, delRoot bool) (int, error) {
	if dir != root {
		rel := strings.TrimPrefix(dir, root+"/")
		for _, pattern := range excludes {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return 0, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
			}
			if ok {
				log.Debug("excluded", "path", dir, "pattern", pattern)
				return 0, nil
			}
		}
	}
	count := 0
	subs, err := files.ListDirs(dir)
	if err != nil {
		return count, err
	}
	for _, sub := range subs {
		n, err := pruneExcluding(root, sub, excludes, true)
		count += n
		if err != nil {
			return count, err
		}
	}
	if !delRoot {
		return count, nil
	}
	remaining, err := files.ListDir(dir)
	if err != nil || len(remaining) > 0 {
		return count, err
	}
	if dir == files.Getwd() {
		if _, err := files.Cd(".."); err != nil {
			return count, err
		}
	}
	if err := os.Remove(dir); err != nil {
		return count, err
	}
	return count + 1, nil
}
