package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/ledgerd/infrastructure/config"
	"github.com/pkg/errors"
)

const (
	initSubCmd   = "init"
	importSubCmd = "import"
	exportSubCmd = "export"
	statusSubCmd = "status"
	genKeySubCmd = "genkey"
)

type configFlags struct{}

type initConfig struct {
	config.Flags
}

type importConfig struct {
	InFile string `long:"infile" short:"i" description:"File containing an exported chain" required:"true"`
	config.Flags
}

type exportConfig struct {
	OutFile string `long:"outfile" short:"o" description:"File to write the chain to" required:"true"`
	config.Flags
}

type statusConfig struct {
	config.Flags
}

type genKeyConfig struct{}

func parseCommandLine() (subCommand string, cfg interface{}) {
	parser := flags.NewParser(&configFlags{}, flags.PrintErrors|flags.HelpFlag)

	initConf := &initConfig{Flags: config.DefaultFlags()}
	parser.AddCommand(initSubCmd, "Creates a new chain",
		"Creates a new chain in the data directory, containing only the genesis block of the selected network",
		initConf)

	importConf := &importConfig{Flags: config.DefaultFlags()}
	parser.AddCommand(importSubCmd, "Appends the blocks of an exported chain",
		"Validates and appends every block of the given file that the local chain does not have yet. "+
			"Stops at the first rejected block", importConf)

	exportConf := &exportConfig{Flags: config.DefaultFlags()}
	parser.AddCommand(exportSubCmd, "Writes the chain to a file",
		"Writes every block of the chain along with its UTXO set to the given file", exportConf)

	statusConf := &statusConfig{Flags: config.DefaultFlags()}
	parser.AddCommand(statusSubCmd, "Shows the chain tip",
		"Shows the height, tip and UTXO set commitment of the chain", statusConf)

	genKeyConf := &genKeyConfig{}
	parser.AddCommand(genKeySubCmd, "Generates a key pair",
		"Generates a Schnorr key pair and prints it hex encoded", genKeyConf)

	_, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	switch parser.Command.Active.Name {
	case initSubCmd:
		resolveOrExit(parser, &initConf.Flags)
		cfg = initConf
	case importSubCmd:
		resolveOrExit(parser, &importConf.Flags)
		cfg = importConf
	case exportSubCmd:
		resolveOrExit(parser, &exportConf.Flags)
		cfg = exportConf
	case statusSubCmd:
		resolveOrExit(parser, &statusConf.Flags)
		cfg = statusConf
	case genKeySubCmd:
		cfg = genKeyConf
	}

	return parser.Command.Active.Name, cfg
}

func resolveOrExit(parser *flags.Parser, cfgFlags *config.Flags) {
	err := cfgFlags.Resolve(parser)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = cfgFlags.InitLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
