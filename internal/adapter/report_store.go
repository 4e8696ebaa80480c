package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// ErrNoReports is returned when a reports directory holds no run report.
var ErrNoReports = errors.New("no reports found")

const (
	reportPrefix    = "run-"
	reportExtension = ".yaml"
	reportTimestamp = "20060102T150405.000Z"
)

// ReportStore persists and retrieves run reports.
type ReportStore interface {
	SaveReport(dir m.Path, report m.RunReport) (m.Path, error)
	LoadLatestReport(dir m.Path) (m.RunReport, error)
}

type reportStore struct{}

// NewReportStore constructs a YAML-backed ReportStore.
func NewReportStore() ReportStore {
	return &reportStore{}
}

// SaveReport writes report as `run-<timestamp>-<id>.yaml` under dir.
func (rs *reportStore) SaveReport(dir m.Path, report m.RunReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	id := report.ID
	if len(id) > 8 {
		id = id[:8]
	}

	name := reportPrefix + report.CreatedAt.UTC().Format(reportTimestamp) + "-" + id + reportExtension
	path := filepath.Join(string(dir), name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return m.Path(path), nil
}

// LoadLatestReport reads the most recent report in dir.
func (rs *reportStore) LoadLatestReport(dir m.Path) (m.RunReport, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.RunReport{}, fmt.Errorf("%s: %w", dir, ErrNoReports)
		}

		return m.RunReport{}, fmt.Errorf("read reports dir: %w", err)
	}

	var names []string

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, reportPrefix) && strings.HasSuffix(name, reportExtension) {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return m.RunReport{}, fmt.Errorf("%s: %w", dir, ErrNoReports)
	}

	sort.Strings(names)

	data, err := os.ReadFile(filepath.Join(string(dir), names[len(names)-1]))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}
