package main

import (
	"fmt"
	"os"
	"time"

	"github.com/chazu/blockrt/trace"
)

// handleSessionsCommand processes the `blockdump sessions` subcommand.
func handleSessionsCommand(args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		path = defaultStorePath()
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: no store given and none configured in blockrt.toml")
		os.Exit(1)
	}

	store, err := trace.OpenStore(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	infos, err := store.ListSessions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing sessions: %v\n", err)
		os.Exit(1)
	}
	if len(infos) == 0 {
		fmt.Println("No sessions recorded.")
		return
	}
	for _, info := range infos {
		started := time.Unix(0, info.Started).Format(time.RFC3339)
		fmt.Printf("%s  %s  %d events\n", info.ID, started, info.Events)
	}
}
