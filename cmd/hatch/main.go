package main

import (
	"flag"
	"log"
	"os"

	hatchcmd "github.com/xtding233/egg-hatchery/internal/cmd/hatch"
)

func main() {
	log.SetPrefix("[HATCH] ")
	log.SetFlags(0)
	cfg, err := hatchcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	if err := hatchcmd.Run(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
