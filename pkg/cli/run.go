package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/mksdboot/mksdboot/pkg/media"
)

// Options holds the user-facing configuration for a provisioning run.
type Options struct {
	Device     string
	Size       string
	ConfigPath string
	ReportPath string
	Verbose    bool
	Help       bool
}

// UI abstracts user interaction so the confirmation gates stay testable
// with injected answers instead of a shared stdin.
type UI interface {
	Println(a ...any)
	Printf(format string, a ...any)
	Ask(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
}

type stdUI struct {
	in  io.Reader
	out io.Writer
}

// NewStdUI returns a UI backed by stdin/stdout.
func NewStdUI() UI {
	return &stdUI{
		in:  os.Stdin,
		out: os.Stdout,
	}
}

func (u *stdUI) Println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *stdUI) Printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

func (u *stdUI) Ask(prompt string) (string, error) {
	u.Printf("%s", prompt)
	reader := bufio.NewReader(u.in)
	text, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Confirm accepts only the exact token "yes"; anything else declines. The
// gates protect a destructive operation, so a bare "y" is not enough.
func (u *stdUI) Confirm(prompt string) (bool, error) {
	ans, err := u.Ask(fmt.Sprintf("%s Type 'yes' to continue: ", prompt))
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(ans) == "yes", nil
}

// newSession builds the provisioning session. It is a variable so tests can
// substitute a constructor that disables the host-tool preflight.
var newSession = media.NewSession

// Run is the main entrypoint for the CLI.
//
// It parses flags, loads configuration, and runs a provisioning session
// against the given device. User cancellation at a confirmation gate is not
// an error: Run returns nil so the process exits zero.
func Run(args []string) error {
	return run(args, NewStdUI(), media.NewLocalSystem(), nil)
}

// run is the internal implementation that allows injecting a custom UI,
// System, and Runner (useful for tests and, later, different front-ends).
// A nil runner selects the real command executor.
func run(args []string, ui UI, sys media.System, runner media.Runner) error {
	if len(args) == 0 {
		return fmt.Errorf("no arguments provided")
	}

	opts, fs, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.Help {
		printUsage(args[0], fs)
		return nil
	}

	rest := fs.Args()
	if len(rest) != 1 {
		printUsage(args[0], fs)
		return fmt.Errorf("exactly one device path is required")
	}
	opts.Device = rest[0]

	cfg, err := media.LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if fs.Changed("size") {
		cfg.Size = opts.Size
	}
	if opts.ReportPath != "" {
		cfg.ReportPath = opts.ReportPath
	}

	log := logrus.StandardLogger()
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if runner == nil {
		runner = media.NewExecRunner(opts.Verbose, log)
	}

	sess := newSession(opts.Device, cfg, sys, runner, ui, log)
	if err := sess.Run(); err != nil {
		if errors.Is(err, media.ErrCancelled) {
			ui.Println("Aborted, no changes made.")
			return nil
		}
		return err
	}
	return nil
}

// parseFlags parses command-line flags into Options and returns the flag
// set so callers can read the remaining positional arguments.
func parseFlags(args []string) (Options, *pflag.FlagSet, error) {
	fs := pflag.NewFlagSet("mksdboot", pflag.ContinueOnError)
	var opts Options

	fs.StringVarP(&opts.Size, "size", "s", "+64M", "boot partition size expression")
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "TOML configuration file")
	fs.StringVar(&opts.ReportPath, "report", "", "append a session record to this file")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "echo every external command before running it")
	fs.BoolVarP(&opts.Help, "help", "h", false, "show this help message")

	if err := fs.Parse(args[1:]); err != nil {
		return Options{}, nil, err
	}
	return opts, fs, nil
}

func printUsage(prog string, fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] <device>\n", prog)
	fmt.Fprintf(os.Stderr, "\nCreates a single bootable FAT32 partition on <device> and installs the\n")
	fmt.Fprintf(os.Stderr, "bootloader images from the build directory. ALL DATA on <device> is lost.\n")
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  %s /dev/sdb\n", prog)
	fmt.Fprintf(os.Stderr, "  %s --size +128M /dev/mmcblk1\n", prog)
	fmt.Fprintf(os.Stderr, "  %s --verbose --report provision.log /dev/sdb\n", prog)
	fmt.Fprintf(os.Stderr, "\nOptions:\n%s", fs.FlagUsages())
}
