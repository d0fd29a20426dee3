package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/forgeqa/plugmatrix/common"
	"github.com/forgeqa/plugmatrix/file"
	"github.com/forgeqa/plugmatrix/matrix/ending"
	"github.com/forgeqa/plugmatrix/timefmt"
)

// Stats aggregates configuration outcomes for a run.
type Stats struct {
	Total    int     `yaml:"total"`
	Passed   int     `yaml:"passed"`
	Failed   int     `yaml:"failed"`
	Skipped  int     `yaml:"skipped"`
	PassRate float64 `yaml:"passRate"`
}

// ConfigurationReport is one configuration's outcome in the report.
type ConfigurationReport struct {
	Name     string   `yaml:"name"`
	Status   string   `yaml:"status"`
	Duration string   `yaml:"duration,omitempty"`
	Message  string   `yaml:"message,omitempty"`
	Errors   []string `yaml:"errors,omitempty"`
}

// Report is the persisted summary of one matrix run.
type Report struct {
	RunID       string    `yaml:"runId"`
	Matrix      string    `yaml:"matrix"`
	GeneratedAt time.Time `yaml:"generatedAt"`
	// Artifact is the distribution archive the run installed and tested,
	// resolved by the install step.
	Artifact       string                `yaml:"artifact,omitempty"`
	Stats          Stats                 `yaml:"stats"`
	Configurations []ConfigurationReport `yaml:"configurations"`
}

// FromRunResult builds a Report from a matrix run result.
func FromRunResult(res *ending.RunResult) *Report {
	r := &Report{
		RunID:       res.RunID,
		Matrix:      res.Matrix,
		GeneratedAt: time.Now(),
	}
	for _, cr := range res.Results {
		entry := ConfigurationReport{
			Name:    cr.Configuration,
			Status:  cr.Status.String(),
			Message: cr.Message,
		}
		if cr.Duration > 0 {
			entry.Duration = timefmt.ShortDur(cr.Duration)
		}
		for _, e := range cr.Errors {
			entry.Errors = append(entry.Errors, e.Error())
		}
		r.Configurations = append(r.Configurations, entry)

		r.Stats.Total++
		switch cr.Status {
		case ending.StatusSuccess:
			r.Stats.Passed++
		case ending.StatusSkipped:
			r.Stats.Skipped++
		default:
			r.Stats.Failed++
		}
	}
	if r.Stats.Total > 0 {
		r.Stats.PassRate = float64(r.Stats.Passed) / float64(r.Stats.Total)
	}
	return r
}

// WriteFile persists the report as YAML at path, creating parent directories.
func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "failed to marshal run report")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := file.CreateDir(dir); err != nil {
			return errors.Wrapf(err, "failed to create report directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, common.FileMode0644); err != nil {
		return errors.Wrapf(err, "failed to write run report to %s", path)
	}
	return nil
}

// Summary renders a short console summary, one line per configuration.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Matrix %s run %s: %d/%d configurations passed\n",
		r.Matrix, r.RunID, r.Stats.Passed, r.Stats.Total)
	if r.Artifact != "" {
		fmt.Fprintf(&b, "Artifact: %s\n", r.Artifact)
	}
	for _, cfg := range r.Configurations {
		line := fmt.Sprintf("  %-20s %s", cfg.Name, cfg.Status)
		if cfg.Duration != "" {
			line += " (" + cfg.Duration + ")"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
