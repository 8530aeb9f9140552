//go:build cli
// +build cli

package main

import (
	_ "stocknet.GO/custom"

	"stocknet.GO/cmd"
	"stocknet.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
