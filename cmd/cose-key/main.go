package main

import (
	"fmt"
	"os"

	"github.com/smithee-solutions/libcose/commands/cosekey"
)

func main() {
	cmd := cosekey.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
