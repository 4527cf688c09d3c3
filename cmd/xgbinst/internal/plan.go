package internal

import (
	"os"
	"runtime"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/mlbuild/xgbinst/internal/orchestrator"
)

var planFlags buildFlags
var planOS string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the command sequence without running it",
	Long: `Plan prints the ordered commands install would execute for the given
options, without cloning or building anything. Use --os to inspect the
sequence another platform would get.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planFlags.register(planCmd)
	planCmd.Flags().StringVar(&planOS, "os", runtime.GOOS, "Target platform (linux, darwin, windows)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	req := planFlags.request()
	if req.OverridesIgnored(planOS) {
		log.Warn("CUDA toolkit and NCCL overrides are not supported on Windows; ignoring")
	}
	steps := orchestrator.Plan(req, planOS)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"STAGE", "DIR", "COMMAND"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, s := range steps {
		dir := s.Dir
		if dir == "" {
			dir = "."
		}
		table.Append([]string{string(s.Stage), dir, s.Bin + " " + strings.Join(s.Args, " ")})
	}
	table.Render()
	return nil
}
