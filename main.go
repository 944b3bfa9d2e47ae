package main

import (
	"fmt"
	"os"

	"fjacquet/budget-sim/cmd/batch"
	"fjacquet/budget-sim/cmd/build"
	"fjacquet/budget-sim/cmd/history"
	"fjacquet/budget-sim/cmd/list"
	"fjacquet/budget-sim/cmd/root"
	"fjacquet/budget-sim/cmd/run"
	"fjacquet/budget-sim/cmd/step"
	"fjacquet/budget-sim/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// Environment first, so LOG_LEVEL from .env is honoured before anything logs.
	config.LoadEnv()
	root.Log = config.ConfigureLogging()
	logrus.SetLevel(root.Log.GetLevel())

	root.Init()

	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(run.Cmd)
	root.Cmd.AddCommand(step.Cmd)
	root.Cmd.AddCommand(build.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(history.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
