package main

import (
	"fmt"
	"os"

	"github.com/chazu/blockrt/trace"
)

// handleReportCommand processes the `blockdump report` subcommand.
// Usage:
//
//	blockdump report run.cbor          # report from a CBOR dump
//	blockdump report traces.db         # newest stored session
//	blockdump report traces.db <id>    # specific stored session
func handleReportCommand(args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		path = defaultStorePath()
		if path == "" {
			fmt.Fprintln(os.Stderr, "Error: no trace file given and no store configured in blockrt.toml")
			os.Exit(1)
		}
		log.Infof("using configured store %s", path)
	}

	var sess trace.Session
	if isStorePath(path) {
		id := ""
		if len(args) > 1 {
			id = args[1]
		}
		loaded, err := loadStoredSession(path, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
			os.Exit(1)
		}
		sess = loaded
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		decoded, err := trace.UnmarshalSession(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding %s: %v\n", path, err)
			os.Exit(1)
		}
		sess = *decoded
	}

	fmt.Print(trace.BuildReport(sess).String())
}
