package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/Tureright/performance-test-k6/cmd"
)

func main() {
	cmd.Execute()
}
