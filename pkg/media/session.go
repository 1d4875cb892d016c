package media

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UI is the subset of user interaction the session needs: the confirmation
// gates. The CLI's stdin/stdout implementation satisfies it; tests inject
// scripted answers.
type UI interface {
	Confirm(prompt string) (bool, error)
}

// Session orchestrates one provisioning run against one device: preflight,
// validation, the confirmation gates, partitioning, formatting, payload
// install, and guaranteed cleanup. It holds no global state; everything it
// touches is passed in.
type Session struct {
	Device string
	Config Config
	System System
	UI     UI
	Log    logrus.FieldLogger

	// ID tags log lines, the temporary mount directory, and the report
	// log so concurrent-looking records from separate runs stay apart.
	ID string

	// Tools lists the external utilities checked during preflight.
	// Defaults to RequiredTools.
	Tools []string

	runner   Runner
	executed []string
}

// NewSession wires a session. The runner is wrapped so every executed
// command is journaled for the report log.
func NewSession(device string, cfg Config, sys System, r Runner, ui UI, log logrus.FieldLogger) *Session {
	id := uuid.NewString()[:8]
	s := &Session{
		Device: device,
		Config: cfg,
		System: sys,
		UI:     ui,
		Log:    log.WithField("session", id),
		ID:     id,
		Tools:  RequiredTools,
	}
	s.runner = &journalRunner{next: r, session: s}
	return s
}

// Run executes the whole workflow. It returns nil on success, ErrCancelled
// when the user declines a gate, and a wrapped sentinel error otherwise.
// Whatever cleanup is owed for already-acquired resources runs on every
// path before Run returns.
func (s *Session) Run() error {
	err := s.run()
	s.writeReport(err)
	return err
}

func (s *Session) run() error {
	arts, err := CheckArtifacts(s.Config)
	if err != nil {
		return err
	}
	if err := CheckTools(s.Tools); err != nil {
		return err
	}

	if err := CheckBlockDevice(s.System, s.Device); err != nil {
		return err
	}
	if parts, _ := s.System.MountedPartitions(s.Device); len(parts) > 0 {
		s.Log.Warnf("%d filesystem(s) mounted from %s will be unmounted", len(parts), s.Device)
		for _, p := range parts {
			s.Log.Warnf("  %s on %s", p.Device, p.Mountpoint)
		}
	}

	if IsSensitiveDevice(s.Device, s.Config.SensitiveDevices) {
		ok, err := s.UI.Confirm(fmt.Sprintf("%s looks like a system disk.", s.Device))
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	ok, err := s.UI.Confirm(fmt.Sprintf("ALL data on %s will be destroyed.", s.Device))
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}

	part, err := ApplyPartitionPlan(s.Device, s.Config.Size, s.Config.SettleTimeout, s.System, s.runner, s.Log)
	if err != nil {
		return err
	}

	mnt, err := ProvisionFilesystem(part, s.Config.Label, s.ID, s.runner, s.Log)
	if err != nil {
		return err
	}
	defer mnt.Release()

	if err := InstallPayloads(mnt.Dir, arts, s.Config, s.Log); err != nil {
		return err
	}
	if err := VerifyPayloads(mnt.Dir, arts, s.Config); err != nil {
		return err
	}

	s.Log.Infof("%s is bootable: %s and %s installed on %s (label %q)",
		s.Device, s.Config.DestStageOne, s.Config.DestMain, part, s.Config.Label)
	return nil
}

func (s *Session) writeReport(err error) {
	if s.Config.ReportPath == "" {
		return
	}

	result := "SUCCESS"
	switch {
	case errors.Is(err, ErrCancelled):
		result = "CANCELLED"
	case err != nil:
		result = "FAILED: " + err.Error()
	}

	if werr := AppendReport(s.Config.ReportPath, s, result); werr != nil {
		s.Log.Warnf("cannot write report %s: %v", s.Config.ReportPath, werr)
	}
}

// journalRunner records every command it forwards so the report log can
// show exactly what ran.
type journalRunner struct {
	next    Runner
	session *Session
}

func (j *journalRunner) Run(c Command) error {
	j.session.executed = append(j.session.executed, c.String())
	return j.next.Run(c)
}
