package app

import (
	"github.com/Blackdeer1524/pagecache/src/app"
	"github.com/Blackdeer1524/pagecache/src/cli"
)

func initDescribe() {
	rootCmd.AddEntrypoint(
		"describe",
		"Loads the first pages of the page file and prints the frame table",
		func(opts cli.Options) app.Entrypoint {
			e := &app.DescribeEntrypoint{}
			e.ConfigPath = opts.ConfigPath
			return e
		},
	)
}
