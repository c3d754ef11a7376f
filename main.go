package main

import (
	"log"

	"github.com/uh-joan/cortellis-mcp-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
