package app

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fskit/files"
	"github.com/blackwell-systems/fskit/stamp"
)

var logFlagNoStamp bool

var logCmd = &cobra.Command{
	Use:   "log <file> <message>...",
	Short: "Append a timestamped line to a log file",
	Long: `log appends a message to the given file, creating the file and its
parent directory if they do not exist. The line is prefixed with a
timestamp whose rendering is controlled by the log section of the config
file.

Example:
  fskit log build.log nightly build started`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLog,
}

func init() {
	logCmd.Flags().BoolVar(&logFlagNoStamp, "no-stamp", false, "Write the message without a timestamp prefix")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	opts := files.LogOptions{
		Timestamp: appCfg.Log.Timestamp && !logFlagNoStamp,
		Stamp: stamp.Options{
			Brackets: true,
			Micro:    appCfg.Log.Micro,
			Offset:   appCfg.Log.Offset,
			Readable: appCfg.Log.Readable,
			Seconds:  appCfg.Log.Seconds,
			UTC:      appCfg.Log.UTC,
		},
	}
	return files.Log(args[0], strings.Join(args[1:], " "), opts)
}
