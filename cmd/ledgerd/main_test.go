package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kaspanet/ledgerd/infrastructure/config"
)

func newTestFlags(t *testing.T, dbType string) config.Flags {
	cfgFlags := config.DefaultFlags()
	cfgFlags.Simnet = true
	cfgFlags.DBType = dbType
	cfgFlags.DataDir = t.TempDir()
	cfgFlags.LogDir = t.TempDir()
	err := cfgFlags.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve: %s", err)
	}
	return cfgFlags
}

func TestInitExportImport(t *testing.T) {
	for _, dbType := range []string{config.LevelDBType, config.BadgerDBType} {
		source := newTestFlags(t, dbType)
		err := initChain(&initConfig{Flags: source})
		if err != nil {
			t.Fatalf("TestInitExportImport: %s: initChain: %+v", dbType, err)
		}
		err = initChain(&initConfig{Flags: source})
		if err == nil {
			t.Fatalf("TestInitExportImport: %s: a second init succeeded", dbType)
		}
		err = status(&statusConfig{Flags: source})
		if err != nil {
			t.Fatalf("TestInitExportImport: %s: status: %+v", dbType, err)
		}

		exported := filepath.Join(t.TempDir(), "chain.dat")
		err = exportChain(&exportConfig{OutFile: exported, Flags: source})
		if err != nil {
			t.Fatalf("TestInitExportImport: %s: exportChain: %+v", dbType, err)
		}

		// Importing into an empty chain and then into an up to date one
		destination := newTestFlags(t, dbType)
		for i := 0; i < 2; i++ {
			err = importChain(&importConfig{InFile: exported, Flags: destination})
			if err != nil {
				t.Fatalf("TestInitExportImport: %s: importChain #%d: %+v", dbType, i, err)
			}
		}

		reexported := filepath.Join(t.TempDir(), "chain.dat")
		err = exportChain(&exportConfig{OutFile: reexported, Flags: destination})
		if err != nil {
			t.Fatalf("TestInitExportImport: %s: exportChain: %+v", dbType, err)
		}
		if !bytes.Equal(readFile(t, exported), readFile(t, reexported)) {
			t.Fatalf("TestInitExportImport: %s: the imported chain differs from the exported one", dbType)
		}
	}
}

func TestImportMissingFile(t *testing.T) {
	cfgFlags := newTestFlags(t, config.LevelDBType)
	err := importChain(&importConfig{InFile: filepath.Join(t.TempDir(), "missing.dat"), Flags: cfgFlags})
	if err == nil {
		t.Fatalf("TestImportMissingFile: importing a missing file succeeded")
	}
}

func TestGenKey(t *testing.T) {
	err := genKey(&genKeyConfig{})
	if err != nil {
		t.Fatalf("TestGenKey: %+v", err)
	}
}

func readFile(t *testing.T, path string) []byte {
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	return content
}
