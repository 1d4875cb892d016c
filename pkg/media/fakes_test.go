package media

import (
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// fakeSystem answers device questions from fixed data.
type fakeSystem struct {
	blockDevices map[string]bool
	mounted      []MountedPartition
	waitErr      error
}

func (f *fakeSystem) IsBlockDevice(path string) (bool, error) {
	return f.blockDevices[path], nil
}

func (f *fakeSystem) MountedPartitions(prefix string) ([]MountedPartition, error) {
	var out []MountedPartition
	for _, p := range f.mounted {
		if strings.HasPrefix(p.Device, prefix) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSystem) WaitForPartition(path string, timeout time.Duration) error {
	return f.waitErr
}

// fakeRunner records every command and fails any whose rendered command
// line starts with a configured prefix.
type fakeRunner struct {
	commands []Command
	failOn   map[string]error
}

func (f *fakeRunner) Run(c Command) error {
	f.commands = append(f.commands, c)
	for prefix, err := range f.failOn {
		if strings.HasPrefix(c.String(), prefix) {
			return err
		}
	}
	return nil
}

func (f *fakeRunner) ran(prefix string) bool {
	for _, c := range f.commands {
		if strings.HasPrefix(c.String(), prefix) {
			return true
		}
	}
	return false
}

func (f *fakeRunner) find(prefix string) (Command, bool) {
	for _, c := range f.commands {
		if strings.HasPrefix(c.String(), prefix) {
			return c, true
		}
	}
	return Command{}, false
}

// fakeUI replays scripted gate answers and records the prompts it saw.
type fakeUI struct {
	answers []bool
	prompts []string
}

func (f *fakeUI) Confirm(prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.answers) == 0 {
		return false, nil
	}
	ans := f.answers[0]
	f.answers = f.answers[1:]
	return ans, nil
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
