// Command mvvmtool inspects, checks and snapshots session model documents.
//
// Usage:
//
//	mvvmtool dump [-format json|yaml|toml] FILE
//	mvvmtool check PATTERN...
//	mvvmtool demo [-o FILE] [-metrics] [-seed N]
//	mvvmtool snapshot save|list|restore [-db DIR] ...
//
// Configuration is read from MVVM_* environment variables.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/CrimsonAS/qmvvm/internal/config"
	"github.com/CrimsonAS/qmvvm/internal/logging"
)

const usage = `usage: mvvmtool <command> [arguments]

Commands:
  dump      print every model of a document
  check     load documents matching glob patterns
  demo      build, edit and save a graph model
  snapshot  save, list and restore document snapshots
`

var errUsage = errors.New("usage")

type tool struct {
	cfg    *config.Config
	log    *logging.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "mvvmtool: %v, using defaults\n", err)
		cfg = config.Default()
	}
	logger, err := logging.New(logging.FromConfig(cfg.Logging))
	if err != nil {
		logger = logging.NewDefault()
	}
	defer logger.Sync()

	t := &tool{cfg: cfg, log: logger, stdout: stdout, stderr: stderr}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var cmdErr error
	switch args[0] {
	case "dump":
		cmdErr = t.dump(args[1:])
	case "check":
		cmdErr = t.check(args[1:])
	case "demo":
		cmdErr = t.demo(args[1:])
	case "snapshot":
		cmdErr = t.snapshot(args[1:])
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "mvvmtool: unknown command %q\n%s", args[0], usage)
		return 2
	}

	switch {
	case cmdErr == nil:
		return 0
	case errors.Is(cmdErr, flag.ErrHelp):
		return 0
	case errors.Is(cmdErr, errUsage):
		fmt.Fprintf(stderr, "mvvmtool %s: %v\n", args[0], cmdErr)
		return 2
	default:
		logger.Debug("command failed", zap.String("command", args[0]), zap.Error(cmdErr))
		fmt.Fprintf(stderr, "mvvmtool %s: %v\n", args[0], cmdErr)
		return 1
	}
}

func (t *tool) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("mvvmtool "+name, flag.ContinueOnError)
	fs.SetOutput(t.stderr)
	return fs
}

// parse parses args, requiring between min and max positional arguments;
// max < 0 is unlimited.
func parse(fs *flag.FlagSet, args []string, min, max int) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if n := fs.NArg(); n < min || (max >= 0 && n > max) {
		return fmt.Errorf("%w: unexpected number of arguments", errUsage)
	}
	return nil
}
