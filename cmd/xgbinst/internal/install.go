package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mlbuild/xgbinst/internal/orchestrator"
)

// timeUnit is the rounding applied to stage durations in the report.
const timeUnit = 10 * time.Millisecond

var installFlags buildFlags
var installVerbose bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Clone, build and install XGBoost",
	Long: `Install clones the repository, configures the native build with the
requested toolchain and feature flags, compiles it, and installs the Python
package into the active environment.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installFlags.register(installCmd)
	installCmd.Flags().BoolVarP(&installVerbose, "verbose", "v", false, "Show build tool output")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	opts := orchestrator.Options{}
	if installVerbose {
		opts.Stdout = os.Stdout
		opts.Stderr = os.Stderr
	}

	o := orchestrator.New(opts)
	report, err := o.Run(context.Background(), installFlags.request())
	printReport(report)

	if err != nil {
		var stageErr *orchestrator.StageError
		if errors.As(err, &stageErr) && stageErr.Tail != "" {
			fmt.Fprintln(os.Stderr, stageErr.Tail)
		}
		return fmt.Errorf("install failed: %w", err)
	}

	if report.Fresh() {
		fmt.Printf("installed %s %s\n", report.After.Name, report.After.Version)
	} else {
		fmt.Printf("%s %s already installed; build left it unchanged\n",
			report.After.Name, report.After.Version)
	}
	return nil
}

func printReport(report *orchestrator.Report) {
	if report == nil || len(report.Stages) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"STAGE", "STATUS", "TIME"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, s := range report.Stages {
		status := "ok"
		if s.Err != nil {
			status = "failed"
		}
		table.Append([]string{string(s.Stage), status, s.Duration.Round(timeUnit).String()})
	}
	table.Render()
}
