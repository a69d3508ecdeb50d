package app

import (
	"context"

	"github.com/Blackdeer1524/pagecache/src/cli"
)

var rootCmd = cli.Init("bufmgr", "Buffer manager over a page file")

func MustExecute(ctx context.Context) {
	initBench()
	initDescribe()
	rootCmd.MustExecute(ctx)
}
