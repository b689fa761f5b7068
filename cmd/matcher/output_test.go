package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-matcher/internal/models"
)

func sampleBatch() (models.JobProfile, []models.CandidateResult) {
	profile := models.JobProfile{
		Title:          "Data Engineer",
		MustHaveSkills: []string{"Python", "SQL"},
	}
	results := []models.CandidateResult{
		{CandidateName: "alice", FileName: "alice.pdf", OverallScore: 77, Verdict: models.VerdictGoodFit, MatchedSkills: []string{"Python", "SQL"}},
		{CandidateName: "bob.txt", FileName: "bob.txt", OverallScore: 0, Verdict: models.VerdictFileProcessingError, MissingSkills: []string{"Python", "SQL"}},
	}
	return profile, results
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", " csv "} {
		_, err := parseFormat(in)
		assert.NoError(t, err, in)
	}

	_, err := parseFormat("xml")
	assert.Error(t, err)
}

func TestRenderTable(t *testing.T) {
	profile, results := sampleBatch()

	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatTable, profile, results))

	out := buf.String()
	assert.Contains(t, out, "Job: Data Engineer")
	assert.Contains(t, out, "Must have: Python, SQL")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Empty(t, lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "RANK"))
	assert.Equal(t, []string{"1", "alice", "77"}, strings.Fields(lines[4])[:3])
	assert.Equal(t, []string{"2", "bob.txt", "0"}, strings.Fields(lines[5])[:3])
}

func TestRenderJSON(t *testing.T) {
	profile, results := sampleBatch()

	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatJSON, profile, results))

	var out batchOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "Data Engineer", out.JobProfile.Title)
	require.Len(t, out.Candidates, 2)
	assert.Equal(t, "alice", out.Candidates[0].CandidateName)
}

func TestRenderCSV(t *testing.T) {
	profile, results := sampleBatch()

	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatCSV, profile, results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "alice,77,"))
}

type upperExtractor struct{}

func (upperExtractor) Extract(_ context.Context, data []byte, kind models.DocumentKind) (string, error) {
	return strings.ToUpper(string(data)) + " via " + string(kind), nil
}

func TestReadJobDescription(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "job.txt")
	pdf := filepath.Join(dir, "job.pdf")
	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(txt, []byte("Go engineer"), 0o600))
	require.NoError(t, os.WriteFile(pdf, []byte("go engineer"), 0o600))
	require.NoError(t, os.WriteFile(blank, []byte(" \n "), 0o600))

	text, err := readJobDescription(context.Background(), upperExtractor{}, txt)
	require.NoError(t, err)
	assert.Equal(t, "Go engineer", text)

	text, err = readJobDescription(context.Background(), upperExtractor{}, pdf)
	require.NoError(t, err)
	assert.Equal(t, "GO ENGINEER via pdf", text)

	_, err = readJobDescription(context.Background(), upperExtractor{}, blank)
	assert.Error(t, err)

	_, err = readJobDescription(context.Background(), upperExtractor{}, filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestReadResumes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "alice.pdf")
	b := filepath.Join(dir, "bob.rtf")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o600))

	inputs, err := readResumes([]string{a, b})
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "alice.pdf", inputs[0].Name)
	assert.Equal(t, models.KindPDF, inputs[0].Kind)
	assert.Equal(t, models.KindUnsupported, inputs[1].Kind)

	_, err = readResumes([]string{filepath.Join(dir, "nope.pdf")})
	assert.Error(t, err)
}
