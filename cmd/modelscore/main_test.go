package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/untoldecay/modelscore/internal/compare"
	"github.com/untoldecay/modelscore/internal/config"
	"github.com/untoldecay/modelscore/internal/manifest"
	"github.com/untoldecay/modelscore/internal/report"
)

func TestMain(m *testing.M) {
	// Commands read defaults such as precision and workers from config.
	if err := config.Initialize(""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompareRunValidate(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, filepath.Join(dir, "ref.puml"), "class A")

	run := compareRun{reference: filepath.Join(dir, "missing.puml"), models: []string{ref}}
	err := run.validate()
	require.Error(t, err)
	assert.Equal(t, "Reference file not found: "+filepath.Join(dir, "missing.puml"), err.Error())

	run = compareRun{reference: ref, models: []string{ref, filepath.Join(dir, "nope.puml")}}
	err = run.validate()
	require.Error(t, err)
	assert.Equal(t, "Model file not found: "+filepath.Join(dir, "nope.puml"), err.Error())
}

func TestCompareRunExecute(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, filepath.Join(dir, "ref.puml"), "class A\nclass B\nA --|> B\n")
	model := writeFile(t, filepath.Join(dir, "model.puml"), "class a {}\nclass B\nA --|> B\n")
	out := filepath.Join(dir, "out", "results.json")

	run := compareRun{
		reference: ref,
		models:    []string{model},
		output:    out,
		format:    report.FormatJSON,
		opts:      compare.DefaultOptions(),
	}
	var buf bytes.Buffer
	require.NoError(t, run.execute(context.Background(), &buf))

	var printed compare.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &printed))
	assert.Equal(t, 1.0, printed.Comparisons[0].Metrics.Classes.F1)

	saved, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, buf.String(), string(saved))
	assert.True(t, run.saved)

	run.format = report.FormatText
	run.output = ""
	buf.Reset()
	require.NoError(t, run.execute(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Comparing 1 model(s) against reference...")
	assert.Contains(t, buf.String(), "Differences Summary:")
}

func TestTermsRun(t *testing.T) {
	dir := t.TempDir()
	run := termsRun{
		reference:       writeFile(t, filepath.Join(dir, "ref", "terms.csv"), "term\nAPI Gateway\nLoad Balancer\n"),
		model:           writeFile(t, filepath.Join(dir, "run", "terms.csv"), "Term\napi_gateway\nCache\n"),
		scoredReference: writeFile(t, filepath.Join(dir, "ref", "scored_terms.csv"), "term,score\nA,1\n"),
		scoredModel:     filepath.Join(dir, "run", "scored_terms.csv"),
		column:          "term",
		precision:       4,
	}

	err := run.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Scored model file not found")

	writeFile(t, run.scoredModel, "term,score\nA,1\nB,2\n")
	require.NoError(t, run.validate())

	res, err := run.execute()
	require.NoError(t, err)
	require.Len(t, res.Comparisons, 2)
	assert.Equal(t, "terms", res.Comparisons[0].FileType)
	assert.Equal(t, 0.5, res.Comparisons[0].Metrics.F1)
	assert.Equal(t, "scored_terms", res.Comparisons[1].FileType)
	assert.Equal(t, 1.0, res.Comparisons[1].Metrics.Recall)

	run.scoredModel = ""
	res, err = run.execute()
	require.NoError(t, err)
	assert.Len(t, res.Comparisons, 1)
}

func TestRunModelsTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "baseline", "model.puml"), "class A\nclass B\n")
	writeFile(t, filepath.Join(dir, "runs", "run_1", "model.puml"), "class A\nclass B\n")
	writeFile(t, filepath.Join(dir, "runs", "run_2", "model.puml"), "class A\n")

	batch := &manifest.Models{
		Reference: filepath.Join(dir, "baseline", "model.puml"),
		Runs:      filepath.Join(dir, "runs", "run_*"),
		File:      "model.puml",
	}
	res, err := runModelsTable(batch)
	require.NoError(t, err)
	require.Len(t, res.Comparisons, 2)

	md := report.ModelsMarkdown(res, batch.Reference)
	assert.Contains(t, md, "| run_1 | 1.0000 | 1.0000 | 1.0000 | 2 | 0 | 0 |")
	assert.Contains(t, md, "| run_2 | 1.0000 | 0.5000 | 0.6667 | 1 | 0 | 1 |")

	writeFile(t, filepath.Join(dir, "runs", "run_3", "other.puml"), "")
	_, err = runModelsTable(batch)
	require.Error(t, err)
	assert.Equal(t, "Model file not found: "+filepath.Join(dir, "runs", "run_3", "model.puml"), err.Error())

	batch.Runs = filepath.Join(dir, "none_*")
	_, err = runModelsTable(batch)
	assert.ErrorContains(t, err, "no run directories match")
}

func TestRunTermsTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "baseline", "terms.csv"), "term\nA\nB\n")
	writeFile(t, filepath.Join(dir, "baseline", "scored_terms.csv"), "term\nA\n")
	writeFile(t, filepath.Join(dir, "runs", "run_1", "terms.csv"), "term\nA\n")
	writeFile(t, filepath.Join(dir, "runs", "run_1", "scored_terms.csv"), "term\nA\n")
	writeFile(t, filepath.Join(dir, "runs", "run_2", "terms.csv"), "term\nA\nB\nC\n")

	batch := &manifest.Terms{
		Baseline: filepath.Join(dir, "baseline"),
		Runs:     filepath.Join(dir, "runs", "run_*"),
		Files:    []string{"terms.csv", "scored_terms.csv"},
		Column:   "term",
	}
	var warn bytes.Buffer
	tables, err := runTermsTable(batch, &warn)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Equal(t, 2, tables[0].ReferenceCount)
	assert.Len(t, tables[0].Runs, 2)
	assert.Len(t, tables[1].Runs, 1)
	assert.Equal(t, "scored_terms", tables[1].Runs[0].FileType)
	assert.Equal(t, "Warning: "+filepath.Join(dir, "runs", "run_2", "scored_terms.csv")+" not found\n", warn.String())

	md := report.TermsMarkdown(tables)
	assert.Contains(t, md, "| run_2 | 0.8000 | N/A |")

	batch.Files = append(batch.Files, "missing.csv")
	_, err = runTermsTable(batch, &warn)
	assert.ErrorContains(t, err, "Reference file not found")
}

func TestDebouncer(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	d.Trigger()
	d.Cancel()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatchFilesRunsOnStartAndStops(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "model.puml"), "class A")

	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{path}, 20*time.Millisecond, func() { runs.Add(1) })
	}()

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	writeFile(t, path, "class B")
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchFiles did not stop after cancel")
	}
}
