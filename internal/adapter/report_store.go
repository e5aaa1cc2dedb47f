package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "minitest.dev/runner/internal/model"
	"minitest.dev/runner/pkg"
)

const (
	// ReportFileName is the name of the run report inside the output directory.
	ReportFileName = "report.yaml"

	journalDirName = "journal"
)

// ErrNoReport is returned when the output directory holds no run report.
var ErrNoReport = errors.New("no report found")

// ReportStore persists run reports and their event journals.
type ReportStore interface {
	CreateJournal(dir m.Path, runID string) (pkg.FileSpill[m.Event], error)
	OpenJournal(dir m.Path, name string) (pkg.FileSpill[m.Event], error)
	SaveReport(dir m.Path, report m.RunReport) error
	LoadReport(dir m.Path) (m.RunReport, error)
}

type reportStore struct{}

// NewReportStore creates a ReportStore writing YAML reports and gob journals.
func NewReportStore() ReportStore {
	return &reportStore{}
}

// CreateJournal creates an empty journal for runID below dir.
func (s *reportStore) CreateJournal(dir m.Path, runID string) (pkg.FileSpill[m.Event], error) {
	journal, err := pkg.NewFileSpill[m.Event](filepath.Join(string(dir), journalDirName), "run-"+runID+"-*.gob")
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}

	return journal, nil
}

// OpenJournal opens the journal called name, as recorded in a report, below dir.
func (s *reportStore) OpenJournal(dir m.Path, name string) (pkg.FileSpill[m.Event], error) {
	if name == "" {
		return nil, fmt.Errorf("open journal: %w", ErrNoReport)
	}

	journal, err := pkg.OpenFileSpill[m.Event](filepath.Join(string(dir), journalDirName, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	return journal, nil
}

// SaveReport writes report to dir, replacing the previous one.
func (s *reportStore) SaveReport(dir m.Path, report m.RunReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(string(dir), ReportFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		slog.Error("Failed to write report", "path", path, "error", err)
		return fmt.Errorf("write report: %w", err)
	}

	slog.Info("saved report", "path", path, "run_id", report.ID, "classes", len(report.Classes))

	return nil
}

// LoadReport reads the report saved in dir.
func (s *reportStore) LoadReport(dir m.Path) (m.RunReport, error) {
	path := filepath.Join(string(dir), ReportFileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return m.RunReport{}, fmt.Errorf("%w in %s", ErrNoReport, dir)
	}

	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("parse report %s: %w", path, err)
	}

	return report, nil
}
