package main

import (
	"context"

	"github.com/Blackdeer1524/pagecache/cmd/bufmgr/app"
)

func main() {
	app.MustExecute(context.Background())
}
