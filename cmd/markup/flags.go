package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// assetFlags holds style and template selection flags.
type assetFlags struct {
	style     string // Name, file path, or inline CSS
	template  string // Name or file path of the page template
	assetPath string // Directory searched before the embedded assets
	noStyle   bool   // Disable CSS styling
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
	title   string
	pdf     bool
	page    pageFlags
	assets  assetFlags
}

// configFlags holds flags for the config command.
type configFlags struct {
	common commonFlags
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json      bool
	assetPath string
}

// flagAliases maps accepted long-flag spellings to their canonical name.
var flagAliases = map[string]string{
	"out": "output",
}

// normalizeFlagName resolves aliases such as --out to --output.
func normalizeFlagName(_ *flag.FlagSet, name string) flag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return flag.NormalizedName(name)
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds PDF page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or inline CSS")
	fs.StringVar(&f.template, "template", "", "page template name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
// Completion scripts are generated from the same set.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetNormalizeFunc(normalizeFlagName)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	// Document flags
	fs.StringVar(&f.title, "title", "", "page title when the source has no level-1 header")
	fs.BoolVar(&f.pdf, "pdf", false, "write PDF instead of HTML (requires Chrome)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// newConfigFlagSet registers the config command flags.
func newConfigFlagSet(f *configFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	return fs
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string) (*configFlags, []string, error) {
	f := &configFlags{}
	fs := newConfigFlagSet(f)
	fs.Usage = func() { printConfigUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// newDoctorFlagSet registers the doctor command flags.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory to check")
	return fs
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.Usage = func() { printDoctorUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
