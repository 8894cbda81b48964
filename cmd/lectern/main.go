// Command lectern parses scripture documents and resolves verse
// references against them. It manages a library of parsed versions and
// can serve lookups over HTTP/WebSocket.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"lectern/core/refs"
	"lectern/core/scripture"
	"lectern/internal/library"
	"lectern/internal/logging"
	"lectern/internal/server"
	"lectern/internal/zefania"
)

const version = "0.1.0"

// CLI defines the command-line interface for lectern.
var CLI struct {
	// Global flags
	Library   string `name:"library" short:"l" help:"Library database path" env:"LECTERN_LIBRARY" default:"lectern.db" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogFormat string `name:"log-format" help:"Log format" enum:"json,text" default:"text"`

	Lookup   LookupCmd     `cmd:"" help:"Render verse text for a reference"`
	Line     LineCmd       `cmd:"" help:"Print the zero-based source line of a reference"`
	Stats    StatsCmd      `cmd:"" help:"Print index statistics for a document"`
	Import   ImportCmd     `cmd:"" help:"Convert a Zefania XML bible to the document format"`
	Versions VersionsGroup `cmd:"" help:"Library version management (add, list, remove, use, search)"`
	Serve    ServeCmd      `cmd:"" help:"Serve lookups over HTTP and WebSocket"`
	Version  VersionCmd    `cmd:"" help:"Print version information"`
}

// VersionsGroup contains library version operations.
type VersionsGroup struct {
	Add    VersionsAddCmd    `cmd:"" help:"Parse a document and add it to the library"`
	List   VersionsListCmd   `cmd:"" help:"List library versions"`
	Remove VersionsRemoveCmd `cmd:"" help:"Remove a version from the library"`
	Use    VersionsUseCmd    `cmd:"" help:"Select the current version"`
	Search VersionsSearchCmd `cmd:"" help:"Search verse text across versions"`
}

// openLibrary opens the library database named by the global flag.
func openLibrary() (*library.Library, error) {
	lib, err := library.Open(CLI.Library)
	if err != nil {
		return nil, fmt.Errorf("failed to open library %s: %w", CLI.Library, err)
	}
	return lib, nil
}

// resolverFor returns a resolver for the given document path, named
// version, or the library's current version, in that preference order.
func resolverFor(doc, versionName string) (*refs.Resolver, func(), error) {
	if doc != "" {
		text, err := library.ReadDocument(doc)
		if err != nil {
			return nil, nil, err
		}
		return refs.NewResolver(scripture.Parse(text)), func() {}, nil
	}

	lib, err := openLibrary()
	if err != nil {
		return nil, nil, err
	}
	closer := func() { lib.Close() }

	var v *library.Version
	var ok bool
	if versionName != "" {
		v, ok = lib.Get(versionName)
		if !ok {
			closer()
			return nil, nil, fmt.Errorf("version not found: %s", versionName)
		}
	} else {
		v, ok = lib.Current()
		if !ok {
			closer()
			return nil, nil, fmt.Errorf("no current version; add one with 'lectern versions add'")
		}
	}
	return v.Resolver(), closer, nil
}

// LookupCmd renders verse text for a reference.
type LookupCmd struct {
	Ref     string `arg:"" help:"Reference, e.g. 'Gen 1:1-3' or '[[John 3:16]]'"`
	Doc     string `help:"Resolve against a document file instead of the library" type:"existingfile"`
	Version string `help:"Resolve against a named library version"`
}

func (c *LookupCmd) Run() error {
	resolver, closer, err := resolverFor(c.Doc, c.Version)
	if err != nil {
		return err
	}
	defer closer()

	text, ok := resolver.VerseText(c.Ref)
	logging.LookupEvent(c.Ref, ok)
	if !ok {
		return fmt.Errorf("verse not found: %s", c.Ref)
	}
	fmt.Println(text)
	return nil
}

// LineCmd prints the source line of a reference's first verse.
type LineCmd struct {
	Ref     string `arg:"" help:"Reference, e.g. 'Gen 1:1'"`
	Doc     string `help:"Resolve against a document file instead of the library" type:"existingfile"`
	Version string `help:"Resolve against a named library version"`
}

func (c *LineCmd) Run() error {
	resolver, closer, err := resolverFor(c.Doc, c.Version)
	if err != nil {
		return err
	}
	defer closer()

	line, ok := resolver.SourceLine(c.Ref)
	logging.LookupEvent(c.Ref, ok)
	if !ok {
		return fmt.Errorf("verse not found: %s", c.Ref)
	}
	fmt.Println(line)
	return nil
}

// StatsCmd prints index statistics for a document file.
type StatsCmd struct {
	Path string `arg:"" help:"Document path" type:"existingfile"`
}

func (c *StatsCmd) Run() error {
	text, err := library.ReadDocument(c.Path)
	if err != nil {
		return err
	}

	idx := scripture.Parse(text)
	stats := idx.Stats()
	fmt.Printf("Books:    %d\n", stats.Books)
	fmt.Printf("Chapters: %d\n", stats.Chapters)
	fmt.Printf("Verses:   %d\n", stats.Verses)
	for _, book := range idx.Books() {
		fmt.Printf("  %-20s %d chapters\n", book.Name, book.ChapterCount())
	}
	return nil
}

// ImportCmd converts a Zefania XML bible to the document format.
type ImportCmd struct {
	Path string `arg:"" help:"Zefania XML path" type:"existingfile"`
	Out  string `short:"o" help:"Output document path (default: stdout)"`
}

func (c *ImportCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}
	if !zefania.Detect(data) {
		return fmt.Errorf("%s is not a Zefania XML bible", c.Path)
	}

	doc, err := zefania.Convert(data)
	if err != nil {
		return err
	}

	if c.Out == "" {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	fmt.Printf("Wrote %s\n", c.Out)
	return nil
}

// VersionsAddCmd parses a document and adds it to the library.
type VersionsAddCmd struct {
	Name string `arg:"" help:"Version name, e.g. kjv"`
	Path string `arg:"" help:"Document path (.md or .md.xz)" type:"existingfile"`
}

func (c *VersionsAddCmd) Run() error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	v, err := lib.Add(c.Name, c.Path)
	if err != nil {
		return err
	}
	stats := v.Index.Stats()
	fmt.Printf("Added: %s\n", v.Name)
	fmt.Printf("  ID:     %s\n", v.ID)
	fmt.Printf("  BLAKE3: %s\n", v.Hash)
	fmt.Printf("  Size:   %d books, %d chapters, %d verses\n", stats.Books, stats.Chapters, stats.Verses)
	return nil
}

// VersionsListCmd lists library versions.
type VersionsListCmd struct{}

func (c *VersionsListCmd) Run() error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	versions := lib.List()
	if len(versions) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}

	current, _ := lib.Current()
	fmt.Printf("%-12s %-8s %-10s %s\n", "NAME", "BOOKS", "VERSES", "ADDED")
	for _, v := range versions {
		marker := " "
		if current != nil && v.Name == current.Name {
			marker = "*"
		}
		stats := v.Index.Stats()
		fmt.Printf("%s%-11s %-8d %-10d %s\n", marker, v.Name, stats.Books, stats.Verses, v.AddedAt.Format("2006-01-02"))
	}
	return nil
}

// VersionsRemoveCmd removes a version from the library.
type VersionsRemoveCmd struct {
	Name string `arg:"" help:"Version name"`
}

func (c *VersionsRemoveCmd) Run() error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Remove(c.Name); err != nil {
		return err
	}
	fmt.Printf("Removed: %s\n", c.Name)
	return nil
}

// VersionsUseCmd selects the current version.
type VersionsUseCmd struct {
	Name string `arg:"" help:"Version name"`
}

func (c *VersionsUseCmd) Run() error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Use(c.Name); err != nil {
		return err
	}
	fmt.Printf("Current version: %s\n", c.Name)
	return nil
}

// VersionsSearchCmd searches verse text across versions.
type VersionsSearchCmd struct {
	Query string `arg:"" help:"Substring to search for"`
	Limit int    `help:"Maximum results" default:"25"`
}

func (c *VersionsSearchCmd) Run() error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	results, err := lib.Search(c.Query, c.Limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("[%s] %s  %s\n", r.Version, r.Reference(), r.Text)
	}
	return nil
}

// ServeCmd serves lookups over HTTP and WebSocket.
type ServeCmd struct {
	Addr string `help:"Listen address" default:":8743"`
}

func (c *ServeCmd) Run() error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	return server.New(lib).ListenAndServe(c.Addr)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("lectern %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lectern"),
		kong.Description("Scripture index and verse reference resolver"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))

	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
