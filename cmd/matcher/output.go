package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/report"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatCSV   outputFormat = "csv"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatTable, formatJSON, formatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q: use table, json or csv", s)
	}
}

type batchOutput struct {
	JobProfile models.JobProfile        `json:"job_profile"`
	Candidates []models.CandidateResult `json:"candidates"`
}

func render(w io.Writer, format outputFormat, profile models.JobProfile, results []models.CandidateResult) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(batchOutput{JobProfile: profile, Candidates: results})
	case formatCSV:
		return report.WriteCSV(w, results)
	default:
		return renderTable(w, profile, results)
	}
}

func renderTable(w io.Writer, profile models.JobProfile, results []models.CandidateResult) error {
	fmt.Fprintf(w, "Job: %s\n", profile.Title)
	fmt.Fprintf(w, "Must have: %s\n\n", strings.Join(profile.MustHaveSkills, ", "))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tSCORE\tVERDICT\tMATCHED\tMISSING")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%d\n",
			i+1,
			r.CandidateName,
			r.OverallScore,
			r.Verdict,
			len(r.MatchedSkills),
			len(r.MissingSkills),
		)
	}
	return tw.Flush()
}
