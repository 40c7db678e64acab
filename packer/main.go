package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"spanzip/spanzip/display"
	"spanzip/spanzip/report"
	"spanzip/spanzip/spanfile"
	"spanzip/spanzip/spanzip"
)

// Describes config for the show command
type showConfig struct {
	delay time.Duration
	color string // auto, always or never
}

// Describes config for the pack command
type packConfig struct {
	verbose bool
	verify  bool
	report  bool // print output report
}

// Standard streams, replaced in tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type CliCommand struct {
	fn       func(args []string) error
	flagset  *flag.FlagSet
	argsdesc string // argument description
	desc     string
}

// Build the run markers for the terminal. Colour is dropped when
// color.NoColor is set, unless forced.
func runMarkers(mode string) (display.Markers, error) {
	switch mode {
	case "auto":
	case "always":
		color.NoColor = false
	case "never":
		return display.Markers{}, nil
	default:
		return display.Markers{}, fmt.Errorf("unknown color mode %q (auto|always|never)", mode)
	}
	var on, off strings.Builder
	hl := color.New(color.BgYellow)
	hl.SetWriter(&on)
	hl.UnsetWriter(&off)
	return display.Markers{On: on.String(), Off: off.String()}, nil
}

// Print the input back token by token, highlighting runs.
func (a *app) CommandShow(path string, cfg showConfig) error {
	data, err := loadInput(path, a.stdin)
	if err != nil {
		return err
	}
	markers, err := runMarkers(cfg.color)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(a.stdout)
	p := display.NewPrinter(markers, cfg.delay)
	return p.Print(out, spanzip.Encode(data))
}

// List the tokens with the bytes they stand for.
func (a *app) CommandTokens(path string) error {
	data, err := loadInput(path, a.stdin)
	if err != nil {
		return err
	}
	c := spanzip.Encode(data)
	for i, t := range c.Tokens {
		b, err := spanzip.DecodeToken(c.Raw, t)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%6d %-14s %q\n", i, t, b)
	}
	return nil
}

// Encode a file and write it as a container.
func (a *app) CommandPack(inputPath string, outputPath string, cfg packConfig) error {
	data, err := loadInput(inputPath, a.stdin)
	if err != nil {
		return err
	}

	if cfg.verbose {
		fmt.Fprintf(a.stdout, "Encoding %d bytes\n", len(data))
	}
	c := spanzip.Encode(data)
	if cfg.verbose {
		fmt.Fprintf(a.stdout, "\tRaw buffer %d bytes, %d tokens\n", len(c.Raw), c.Len())
	}

	packed, err := spanfile.Marshal(c)
	if err != nil {
		return err
	}

	// Verify by unpacking
	if cfg.verify {
		back, err := spanfile.Unmarshal(packed)
		if err != nil {
			return err
		}
		unpacked, err := back.All()
		if err != nil {
			return err
		}
		if !bytes.Equal(data, unpacked) {
			return errors.New("failed to verify pack<->unpack round trip, there is a bug")
		}
		if cfg.verbose {
			fmt.Fprintln(a.stdout, "\tVerify OK")
		}
	}

	if err := os.WriteFile(outputPath, packed, 0644); err != nil {
		return err
	}

	if cfg.report {
		s := report.Analyse(data, c)
		s.PackedSize = len(packed)
		s.ZstdSize = report.ZstdSize(data)
		return report.Write(a.stdout, s)
	}
	return nil
}

// Decode a container back to the original bytes.
func (a *app) CommandUnpack(inputPath string, outputPath string) error {
	c, err := loadContainer(inputPath)
	if err != nil {
		return err
	}
	data, err := c.All()
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}

// Print statistics, optionally graphing the run lengths.
func (a *app) CommandStats(path string, graphPath string, runs bool) error {
	data, err := loadInput(path, a.stdin)
	if err != nil {
		return err
	}
	c := spanzip.Encode(data)
	s := report.Analyse(data, c)
	s.ZstdSize = report.ZstdSize(data)
	if err := report.Write(a.stdout, s); err != nil {
		return err
	}
	if runs {
		if err := report.WriteRunLengths(a.stdout, s); err != nil {
			return err
		}
	}
	if graphPath == "" {
		return nil
	}

	fh, err := os.Create(graphPath)
	if err != nil {
		return err
	}
	png := strings.EqualFold(filepath.Ext(graphPath), ".png")
	err = report.WriteRunLengthGraph(fh, png, s)
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	return err
}

// Describes how to use a given command.
func (a *app) PrintCmdUsage(name string, cmd CliCommand) {
	fmt.Fprintf(a.stdout, "%s %s - %s\n", name, cmd.argsdesc, cmd.desc)
	fs := cmd.flagset
	var count int = 0
	fs.VisitAll(func(_ *flag.Flag) {
		count++
	})
	if count != 0 {
		fs.SetOutput(a.stdout)
		fs.PrintDefaults()
	}
}

func (a *app) PrintUsage(commands map[string]CliCommand) {
	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, "Usage: spanzip <command> [arguments]")
	fmt.Fprintln(a.stdout, "Commands available:")

	names := []string{}
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(a.stdout, "    %-10s %s\n", name, cmd.desc)
	}
}

func (a *app) commands() map[string]CliCommand {
	show_flags := flag.NewFlagSet("show", flag.ContinueOnError)
	tokens_flags := flag.NewFlagSet("tokens", flag.ContinueOnError)
	pack_flags := flag.NewFlagSet("pack", flag.ContinueOnError)
	unpack_flags := flag.NewFlagSet("unpack", flag.ContinueOnError)
	stats_flags := flag.NewFlagSet("stats", flag.ContinueOnError)
	help_flags := flag.NewFlagSet("help", flag.ContinueOnError)
	for _, fs := range []*flag.FlagSet{show_flags, tokens_flags, pack_flags, unpack_flags, stats_flags, help_flags} {
		fs.SetOutput(a.stderr)
	}

	showOptDelay := show_flags.Duration("delay", 0, "pause between tokens (e.g. 50ms)")
	showOptColor := show_flags.String("color", "auto", "highlight runs: auto|always|never")
	packOptVerbose := pack_flags.Bool("verbose", false, "verbose output")
	packOptVerify := pack_flags.Bool("verify", true, "unpack and compare after packing")
	statsOptGraph := stats_flags.String("graph", "", "write a run length graph (.svg or .png)")
	statsOptRuns := stats_flags.Bool("runs", false, "print the run length histogram")
	var commands map[string]CliCommand

	cmd_show := func(args []string) error {
		if err := show_flags.Parse(args); err != nil {
			return err
		}
		path, err := optionalFile(show_flags.Args())
		if err != nil {
			return fmt.Errorf("'show' command: %w", err)
		}
		return a.CommandShow(path, showConfig{delay: *showOptDelay, color: *showOptColor})
	}

	cmd_tokens := func(args []string) error {
		if err := tokens_flags.Parse(args); err != nil {
			return err
		}
		path, err := optionalFile(tokens_flags.Args())
		if err != nil {
			return fmt.Errorf("'tokens' command: %w", err)
		}
		return a.CommandTokens(path)
	}

	cmd_pack := func(args []string) error {
		if err := pack_flags.Parse(args); err != nil {
			return err
		}
		files := pack_flags.Args()
		if len(files) != 2 {
			return errors.New("'pack' command: expected <input> <output> arguments")
		}
		cfg := packConfig{}
		cfg.verbose = *packOptVerbose
		cfg.verify = *packOptVerify
		cfg.report = true
		return a.CommandPack(files[0], files[1], cfg)
	}

	cmd_unpack := func(args []string) error {
		if err := unpack_flags.Parse(args); err != nil {
			return err
		}
		files := unpack_flags.Args()
		if len(files) != 2 {
			return errors.New("'unpack' command: expected <input> <output> arguments")
		}
		return a.CommandUnpack(files[0], files[1])
	}

	cmd_stats := func(args []string) error {
		if err := stats_flags.Parse(args); err != nil {
			return err
		}
		path, err := optionalFile(stats_flags.Args())
		if err != nil {
			return fmt.Errorf("'stats' command: %w", err)
		}
		return a.CommandStats(path, *statsOptGraph, *statsOptRuns)
	}

	cmd_help := func(args []string) error {
		if err := help_flags.Parse(args); err != nil {
			return err
		}
		names := help_flags.Args()
		if len(names) > 0 {
			cmd, pres := commands[names[0]]
			if !pres {
				a.PrintUsage(commands)
				return errors.New("unknown command for help")
			}
			a.PrintCmdUsage(names[0], cmd)
		} else {
			a.PrintUsage(commands)
		}
		return nil
	}

	commands = map[string]CliCommand{
		"show":   {cmd_show, show_flags, "[file]", "print a file, highlighting repeated runs"},
		"tokens": {cmd_tokens, tokens_flags, "[file]", "list the tokens a file encodes to"},
		"pack":   {cmd_pack, pack_flags, "<input> <output>", "encode a file into a container"},
		"unpack": {cmd_unpack, unpack_flags, "<input> <output>", "decode a container"},
		"stats":  {cmd_stats, stats_flags, "[file]", "print packing statistics"},
		"help":   {cmd_help, help_flags, "[command]", "list commands or describe a single command"},
	}
	return commands
}

// Run a command line and return the exit status.
func (a *app) run(args []string) int {
	commands := a.commands()
	if len(args) < 1 {
		fmt.Fprintln(a.stderr, "error: expected a command")
		a.PrintUsage(commands)
		return 1
	}

	cmd, pres := commands[args[0]]
	if !pres {
		fmt.Fprintln(a.stderr, "error: unknown command")
		a.PrintUsage(commands)
		return 1
	}

	if err := cmd.fn(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(a.stderr, "Error:", err.Error())
		return 1
	}
	return 0
}

func main() {
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(os.Args[1:]))
}
