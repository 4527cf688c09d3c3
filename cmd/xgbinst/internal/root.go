package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xgbinst",
	Short: "xgbinst builds and installs XGBoost from source",
	Long: `xgbinst clones the XGBoost repository, configures a native build with
optional CUDA, AVX and NCCL support, compiles it, and installs the Python
package, replacing the hand-typed command sequence on Windows and Unix.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
