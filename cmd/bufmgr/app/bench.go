package app

import (
	"github.com/Blackdeer1524/pagecache/src/app"
	"github.com/Blackdeer1524/pagecache/src/cli"
)

func initBench() {
	rootCmd.AddEntrypoint(
		"bench",
		"Runs a random workload against the page file and logs pool statistics",
		func(opts cli.Options) app.Entrypoint {
			e := &app.BenchEntrypoint{}
			e.ConfigPath = opts.ConfigPath
			return e
		},
	)
}
