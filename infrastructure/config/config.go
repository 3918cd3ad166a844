package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/ledgerd/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	defaultDataDirname    = "data"
	defaultLogDirname     = "logs"
	defaultLogLevel       = "info"
	defaultLogFilename    = "ledgerd.log"
	defaultErrLogFilename = "ledgerd_err.log"
	defaultDBCacheSizeMiB = 64

	// LevelDBType selects the goleveldb backend
	LevelDBType = "leveldb"

	// BadgerDBType selects the badger backend
	BadgerDBType = "badger"
)

var (
	// DefaultAppDir is the default home directory for ledgerd.
	DefaultAppDir = defaultAppDir()

	defaultDataDir = filepath.Join(DefaultAppDir, defaultDataDirname)
	defaultLogDir  = filepath.Join(DefaultAppDir, defaultLogDirname)
	knownDBTypes   = []string{LevelDBType, BadgerDBType}
)

// Flags defines the options shared by every ledgerd command.
type Flags struct {
	DataDir        string `short:"b" long:"datadir" description:"Directory to store the chain in"`
	DBType         string `long:"dbtype" description:"Database backend to use for the chain {leveldb, badger}"`
	DBCacheSizeMiB int    `long:"dbcache" description:"Size of the leveldb block cache in MiB"`
	LogDir         string `long:"logdir" description:"Directory to log output"`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	NetworkFlags
}

// DefaultFlags returns the flags every command starts from before parsing
func DefaultFlags() Flags {
	return Flags{
		DataDir:        defaultDataDir,
		DBType:         LevelDBType,
		DBCacheSizeMiB: defaultDBCacheSizeMiB,
		LogDir:         defaultLogDir,
		DebugLevel:     defaultLogLevel,
	}
}

// Resolve validates the parsed flags, resolves the network and
// namespaces the data and log directories per network.
func (cfgFlags *Flags) Resolve(parser *flags.Parser) error {
	err := cfgFlags.ResolveNetwork(parser)
	if err != nil {
		return err
	}

	if !validDBType(cfgFlags.DBType) {
		return errors.Errorf("the specified database type [%s] is invalid -- supported types: %s",
			cfgFlags.DBType, strings.Join(knownDBTypes, ", "))
	}
	if cfgFlags.DBCacheSizeMiB <= 0 {
		return errors.Errorf("--dbcache must be positive, got %d", cfgFlags.DBCacheSizeMiB)
	}

	// Special show command to list supported subsystems
	if cfgFlags.DebugLevel == "show" {
		return errors.Errorf("supported subsystems: %s", strings.Join(logger.SupportedSubsystems(), ", "))
	}

	cfgFlags.DataDir = filepath.Join(cleanAndExpandPath(cfgFlags.DataDir), cfgFlags.NetParams().Name)
	cfgFlags.LogDir = filepath.Join(cleanAndExpandPath(cfgFlags.LogDir), cfgFlags.NetParams().Name)
	return nil
}

// InitLog starts logging into the log directory at the configured levels
func (cfgFlags *Flags) InitLog() error {
	logger.InitLog(filepath.Join(cfgFlags.LogDir, defaultLogFilename),
		filepath.Join(cfgFlags.LogDir, defaultErrLogFilename))
	return logger.ParseAndSetDebugLevels(cfgFlags.DebugLevel)
}

func validDBType(dbType string) bool {
	for _, knownType := range knownDBTypes {
		if dbType == knownType {
			return true
		}
	}
	return false
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = strings.Replace(path, "~", homeDir, 1)
		}
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

func defaultAppDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "ledgerd"
	}
	return filepath.Join(configDir, "ledgerd")
}
