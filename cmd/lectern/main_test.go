package main

import (
	"os"
	"path/filepath"
	"testing"
)

const testDoc = `# Genesis
## Chapter 1
1. In the beginning God created the heavens and the earth.
2. Now the earth was formless and empty.
`

func writeTestDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gen.md")
	if err := os.WriteFile(path, []byte(testDoc), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolverForDocument(t *testing.T) {
	path := writeTestDoc(t)

	resolver, closer, err := resolverFor(path, "")
	if err != nil {
		t.Fatalf("resolverFor failed: %v", err)
	}
	defer closer()

	line, ok := resolver.SourceLine("Gen 1:1")
	if !ok {
		t.Fatal("SourceLine(Gen 1:1) not found")
	}
	if line != 2 {
		t.Errorf("line = %d, want 2", line)
	}
}

func TestVersionsAddAndLookup(t *testing.T) {
	CLI.Library = filepath.Join(t.TempDir(), "library.db")
	docPath := writeTestDoc(t)

	add := &VersionsAddCmd{Name: "kjv", Path: docPath}
	if err := add.Run(); err != nil {
		t.Fatalf("versions add failed: %v", err)
	}

	lookup := &LookupCmd{Ref: "Gen 1:1-2"}
	if err := lookup.Run(); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	line := &LineCmd{Ref: "Gen 1:2"}
	if err := line.Run(); err != nil {
		t.Fatalf("line failed: %v", err)
	}
}

func TestLookupUnknownVerse(t *testing.T) {
	path := writeTestDoc(t)

	lookup := &LookupCmd{Ref: "Exodus 1:1", Doc: path}
	if err := lookup.Run(); err == nil {
		t.Error("lookup of unknown book succeeded, want error")
	}
}

func TestStatsCmd(t *testing.T) {
	path := writeTestDoc(t)

	stats := &StatsCmd{Path: path}
	if err := stats.Run(); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
}
