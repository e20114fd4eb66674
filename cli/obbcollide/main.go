// Package main is the obbcollide command itself.
package main

import (
	"log"
	"os"

	"github.com/srizzi88/SENSEI-sub038/cli"
)

func main() {
	app := cli.NewApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
