package main

import (
	"fmt"
	"os"

	"github.com/chazu/blockrt/trace"
)

// handleExportCommand processes the `blockdump export` subcommand, writing
// a stored session out as a canonical CBOR dump.
func handleExportCommand(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: blockdump export <trace.db> <session-id> <out.cbor>")
		os.Exit(2)
	}
	dbPath, id, outPath := args[0], args[1], args[2]

	sess, err := loadStoredSession(dbPath, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
		os.Exit(1)
	}

	data, err := trace.MarshalSession(&sess)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding session: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}
	log.Infof("exported %d events to %s", len(sess.Events), outPath)
	fmt.Printf("Exported session %s (%d events) to %s\n", sess.ID, len(sess.Events), outPath)
}
