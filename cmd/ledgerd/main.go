package main

import (
	"fmt"
	"os"

	"github.com/kaspanet/ledgerd/infrastructure/logger"
	"github.com/kaspanet/ledgerd/util/panics"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log)

	subCmd, cfg := parseCommandLine()

	var err error
	switch subCmd {
	case initSubCmd:
		err = initChain(cfg.(*initConfig))
	case importSubCmd:
		err = importChain(cfg.(*importConfig))
	case exportSubCmd:
		err = exportChain(cfg.(*exportConfig))
	case statusSubCmd:
		err = status(cfg.(*statusConfig))
	case genKeySubCmd:
		err = genKey(cfg.(*genKeyConfig))
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		printErrorAndExit(err)
	}
	closeLogger()
}

func printErrorAndExit(err error) {
	log.Errorf("%s", err)
	closeLogger()
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func closeLogger() {
	if logger.BackendLog.IsRunning() {
		logger.BackendLog.Close()
	}
}
