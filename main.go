package main

import (
	"os"

	_ "zing-keeper/cmd"
	"zing-keeper/cmd/root"
	"zing-keeper/internal/config"
	"zing-keeper/internal/logger"
)

func main() {
	isServerMode := len(os.Args) > 1 && os.Args[1] == "server"

	logger.InitLoggerWithMode(&config.Config.Log, isServerMode)

	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}
