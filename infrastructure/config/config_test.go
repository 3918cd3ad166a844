package config

import (
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/ledgerd/domain/chainconfig"
	"github.com/kaspanet/ledgerd/infrastructure/db/database"
)

func parseTestFlags(t *testing.T, args ...string) (*Flags, *flags.Parser) {
	cfgFlags := DefaultFlags()
	parser := flags.NewParser(&cfgFlags, flags.None)
	_, err := parser.ParseArgs(args)
	if err != nil {
		t.Fatalf("ParseArgs(%v): %s", args, err)
	}
	return &cfgFlags, parser
}

func TestResolveNetwork(t *testing.T) {
	tests := []struct {
		args           []string
		expectedParams *chainconfig.Params
		expectsError   bool
	}{
		{args: nil, expectedParams: &chainconfig.MainnetParams},
		{args: []string{"--testnet"}, expectedParams: &chainconfig.TestnetParams},
		{args: []string{"--simnet"}, expectedParams: &chainconfig.SimnetParams},
		{args: []string{"--testnet", "--simnet"}, expectsError: true},
	}

	for _, test := range tests {
		cfgFlags, _ := parseTestFlags(t, test.args...)
		err := cfgFlags.ResolveNetwork(nil)
		if test.expectsError {
			if err == nil {
				t.Fatalf("TestResolveNetwork: %v: expected an error", test.args)
			}
			continue
		}
		if err != nil {
			t.Fatalf("TestResolveNetwork: %v: unexpected error: %s", test.args, err)
		}
		if cfgFlags.NetParams() != test.expectedParams {
			t.Fatalf("TestResolveNetwork: %v: expected %s but got %s",
				test.args, test.expectedParams.Name, cfgFlags.NetParams().Name)
		}
	}
}

func TestResolve(t *testing.T) {
	dataDir := t.TempDir()
	cfgFlags, parser := parseTestFlags(t, "--simnet", "--datadir", dataDir, "--dbtype", BadgerDBType)
	err := cfgFlags.Resolve(parser)
	if err != nil {
		t.Fatalf("TestResolve: Resolve: %s", err)
	}
	expectedDataDir := filepath.Join(dataDir, chainconfig.SimnetParams.Name)
	if cfgFlags.DataDir != expectedDataDir {
		t.Fatalf("TestResolve: expected data directory %s but got %s", expectedDataDir, cfgFlags.DataDir)
	}

	cfgFlags, parser = parseTestFlags(t, "--dbtype", "ffldb")
	err = cfgFlags.Resolve(parser)
	if err == nil {
		t.Fatalf("TestResolve: an unknown database type was accepted")
	}

	cfgFlags, parser = parseTestFlags(t, "--dbcache", "0")
	err = cfgFlags.Resolve(parser)
	if err == nil {
		t.Fatalf("TestResolve: a zero database cache was accepted")
	}
}

func TestOpenDatabase(t *testing.T) {
	for _, dbType := range knownDBTypes {
		cfgFlags, parser := parseTestFlags(t, "--simnet", "--datadir", t.TempDir(), "--dbtype", dbType)
		err := cfgFlags.Resolve(parser)
		if err != nil {
			t.Fatalf("TestOpenDatabase: %s: Resolve: %s", dbType, err)
		}
		db, err := cfgFlags.OpenDatabase()
		if err != nil {
			t.Fatalf("TestOpenDatabase: %s: OpenDatabase: %s", dbType, err)
		}
		key := database.MakeBucket([]byte("test")).Key([]byte("key"))
		err = db.Put(key, []byte("value"))
		if err != nil {
			t.Fatalf("TestOpenDatabase: %s: Put: %s", dbType, err)
		}
		err = db.Close()
		if err != nil {
			t.Fatalf("TestOpenDatabase: %s: Close: %s", dbType, err)
		}
	}
}
