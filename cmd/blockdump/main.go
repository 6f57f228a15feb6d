// blockdump - inspects recorded closure runtime trace sessions
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/blockrt/manifest"
	"github.com/chazu/blockrt/trace"
)

var log = commonlog.GetLogger("blockdump")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: blockdump [options] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Inspects closure runtime trace sessions.\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  report <trace.cbor|trace.db> [session-id]   Print the aggregate report\n")
		fmt.Fprintf(os.Stderr, "  sessions <trace.db>                         List stored sessions\n")
		fmt.Fprintf(os.Stderr, "  export <trace.db> <session-id> <out.cbor>   Export a stored session\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  blockdump report run.cbor          # report from a CBOR dump\n")
		fmt.Fprintf(os.Stderr, "  blockdump report traces.db         # report for the newest stored session\n")
		fmt.Fprintf(os.Stderr, "  blockdump sessions traces.db\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "report":
		handleReportCommand(args[1:])
	case "sessions":
		handleSessionsCommand(args[1:])
	case "export":
		handleExportCommand(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
}

// isStorePath reports whether path names a SQLite store rather than a CBOR
// dump.
func isStorePath(path string) bool {
	return strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite")
}

// defaultStorePath resolves the trace store from blockrt.toml when the
// command line names none.
func defaultStorePath() string {
	m, err := manifest.FindAndLoad(".")
	if err != nil || m == nil {
		return ""
	}
	return m.StorePath()
}

// loadStoredSession opens a store and loads the named session, or the
// newest one when id is empty.
func loadStoredSession(path, id string) (trace.Session, error) {
	store, err := trace.OpenStore(path)
	if err != nil {
		return trace.Session{}, err
	}
	defer store.Close()

	if id == "" {
		infos, err := store.ListSessions()
		if err != nil {
			return trace.Session{}, err
		}
		if len(infos) == 0 {
			return trace.Session{}, fmt.Errorf("no sessions in %s", path)
		}
		id = infos[0].ID
		log.Infof("using newest session %s", id)
	}
	return store.LoadSession(id)
}
