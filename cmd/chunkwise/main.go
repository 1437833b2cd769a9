package main

import (
	"os"

	"github.com/markdave123-py/Chunkwise/internal/logger"
)

func main() {
	if err := RootCmd().Execute(); err != nil {
		logger.GetDefault().Error("command failed", "error", err)
		os.Exit(1)
	}
}
