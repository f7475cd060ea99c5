package main

import (
	"pobsd/cmd"
	"pobsd/logger"

	_ "go.uber.org/automaxprocs/maxprocs"
)

func main() {
	defer logger.Sync() // flush logs on a normal exit
	cmd.Execute()
}
