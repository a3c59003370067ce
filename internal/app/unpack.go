package app

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fskit/files"
	"github.com/blackwell-systems/fskit/internal/output"
)

var (
	unpackFlagStrict bool
	unpackFlagJobs   int
	unpackFlagGlob   string
)

var unpackCmd = &cobra.Command{
	Use:   "uzd [path]",
	Short: "Unpack every archive in a directory",
	Long: `uzd extracts all archive files directly inside the given directory
(default: the current one), deleting each archive after it is extracted.
It keeps going until a pass extracts nothing, so archives nested inside
other archives are unpacked too. Supported formats: .zip, .7z, .tar and
its .gz/.xz/.bz2 variants, and bare single-file compression.

Examples:
  fskit uzd                    # unpack everything here, skipping failures
  fskit uzd downloads --strict # stop at the first failure
  fskit uzd --glob '*.zip'     # one pass over just the zips`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUnpack,
}

func init() {
	unpackCmd.Flags().BoolVar(&unpackFlagStrict, "strict", false, "Stop at the first extraction failure")
	unpackCmd.Flags().IntVar(&unpackFlagJobs, "jobs", 0, "Concurrent extractions per pass (default from config)")
	unpackCmd.Flags().StringVar(&unpackFlagGlob, "glob", "", "Only unpack archives matching this pattern (single pass)")
	rootCmd.AddCommand(unpackCmd)
}

func runUnpack(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	strict := appCfg.Unpack.Strict
	if cmd.Flags().Changed("strict") {
		strict = unpackFlagStrict
	}
	jobs := appCfg.Unpack.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = unpackFlagJobs
	}

	var count int
	var err error
	if unpackFlagGlob != "" {
		count, err = unpackMatching(target, unpackFlagGlob, strict)
	} else {
		log.Debug("unpacking archives", "path", target, "jobs", jobs, "strict", strict)
		count, err = files.UnzipDir(target, strict, jobs)
	}
	if err != nil {
		return err
	}
	fmt.Printf("unzipped %s archive file(s)\n", output.StyleSuccess.Render(fmt.Sprint(count)))
	return nil
}

// unpackMatching does a single pass over the archives matching pattern,
// with no recursion into freshly extracted content.
func unpackMatching(dir, pattern string, strict bool) (int, error) {
	matches, err := files.Glob(dir, pattern)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, m := range matches {
		if !files.IsArchive(m) {
			continue
		}
		if err := files.Unzip(m, true); err != nil {
			if strict {
				return count, err
			}
			log.Debug("skipping archive", "path", m, "err", err)
			continue
		}
		count++
	}
	return count, nil
}
