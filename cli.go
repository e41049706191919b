//go:build cli
// +build cli

package main

import (
	_ "upsell.GO/custom"

	"upsell.GO/cmd"
	"upsell.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
