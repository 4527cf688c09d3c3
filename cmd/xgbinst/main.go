package main

import "github.com/mlbuild/xgbinst/cmd/xgbinst/internal"

func main() {
	internal.Execute()
}
