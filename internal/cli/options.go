// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jessevdk/go-flags"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatTSV  = "tsv"
)

// Options holds all CLI flags, parsed with go-flags.
type Options struct {
	Required `group:"required"`
	Run      `group:"run"`
	General  `group:"general"`
}

// Required groups the mandatory inputs.
type Required struct {
	Dataset  string `short:"d" long:"dataset" value-name:"<dir>" description:"Dataset directory containing dataset.yaml (reference, peptides, gene map, tree, labels)"`
	Analysis string `short:"a" long:"analysis" value-name:"<file>" description:"JSON file of per-query analysis records ('-' for stdin)"`
}

// Run groups execution and output knobs.
type Run struct {
	Output   string `short:"o" long:"output" value-name:"<file>" default:"-" description:"Output file ('-' for stdout)"`
	Format   string `short:"f" long:"format" choice:"json" choice:"tsv" default:"json" description:"Output format"`
	NoHeader bool   `long:"no-header" description:"Suppress the header line in TSV output"`
	Threads  int    `short:"t" long:"threads" default:"0" description:"Worker threads (0 = all CPUs)"`
	Progress bool   `long:"progress" description:"Show a progress bar on stderr"`
	Quiet    bool   `short:"q" long:"quiet" description:"Suppress warnings on stderr"`
}

// General groups help and version.
type General struct {
	Help    bool `short:"h" long:"help" description:"Show this help message"`
	Version bool `short:"v" long:"version" description:"Print the tool version and exit"`
}

func newParser(name string, opt *Options) *flags.Parser {
	p := flags.NewParser(opt, flags.Default&^flags.HelpFlag&^flags.PrintErrors)
	p.Name = name
	return p
}

// Parse parses argv into Options. Help/version short-circuit validation.
func Parse(name string, argv []string) (Options, error) {
	var opt Options
	if _, err := newParser(name, &opt).ParseArgs(argv); err != nil {
		return opt, err
	}
	if opt.Help || opt.Version {
		return opt, nil
	}
	return opt, opt.validate()
}

// WriteHelp renders the generated usage text to w.
func WriteHelp(name string, w io.Writer) {
	var opt Options
	newParser(name, &opt).WriteHelp(w)
}

func (o *Options) validate() error {
	if o.Dataset == "" {
		return errors.New("--dataset is required")
	}
	if o.Analysis == "" {
		return errors.New("--analysis is required")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be >= 0")
	}
	if o.Format != FormatJSON && o.Format != FormatTSV {
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	return nil
}
