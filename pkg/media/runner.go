package media

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Command describes one external tool invocation. Input, when non-empty, is
// fed to the tool on stdin (sfdisk takes its partitioning script that way).
type Command struct {
	Name  string
	Args  []string
	Input string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner abstracts how external commands are executed. The real
// implementation shells out; tests substitute a recording fake so the
// whole session can run without touching a disk.
type Runner interface {
	Run(cmd Command) error
}

// ExecRunner executes commands with os/exec. In verbose mode every command
// line is echoed before it runs, for operator auditability.
type ExecRunner struct {
	Verbose bool
	Log     logrus.FieldLogger
}

func NewExecRunner(verbose bool, log logrus.FieldLogger) *ExecRunner {
	return &ExecRunner{Verbose: verbose, Log: log}
}

func (r *ExecRunner) Run(c Command) error {
	if r.Verbose {
		r.Log.Infof("+ %s", c)
	} else {
		r.Log.Debugf("exec: %s", c)
	}

	cmd := exec.Command(c.Name, c.Args...)
	if c.Input != "" {
		cmd.Stdin = strings.NewReader(c.Input)
	}
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		r.Log.Debugf("output: %s", strings.TrimSpace(string(out)))
	}
	if err != nil {
		if len(out) > 0 {
			return fmt.Errorf("%s: %w: %s", c.Name, err, strings.TrimSpace(string(out)))
		}
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}
