package driver

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obriencj/go-values/pkg/runtime"
)

func runGolden(t *testing.T, name string) *Report {
	t.Helper()

	scenario, err := LoadScenario(filepath.Join("testdata", name+".yaml"))
	require.NoError(t, err)

	report, err := NewRunner(nil).Run(scenario)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(report.Render()))
	return report
}

func TestRunBasics(t *testing.T) {
	report := runGolden(t, "basics")
	assert.Equal(t, 0, report.Failures())
}

func TestRunMismatch(t *testing.T) {
	report := runGolden(t, "mismatch")
	assert.Equal(t, 1, report.Failures())
}

func TestRunUndefinedName(t *testing.T) {
	scenario := &Scenario{
		Name: "ghost",
		Checks: []CheckSpec{
			{Repr: &ReprClause{Of: "ghost", Want: "values()"}},
		},
	}

	report, err := NewRunner(nil).Run(scenario)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].OK)
	assert.Contains(t, report.Results[0].Detail, "undefined name")
}

func TestRunRecordShadowsBuiltin(t *testing.T) {
	scenario := &Scenario{
		Name: "shadow",
		Records: []RecordSpec{
			{Name: "values", Positionals: []runtime.Value{runtime.Int(1)}},
		},
		Checks: []CheckSpec{
			{Repr: &ReprClause{Of: "values", Want: "values(1)"}},
		},
	}

	report, err := NewRunner(nil).Run(scenario)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Failures())
}

func TestRunInvokeNonRecord(t *testing.T) {
	scenario := &Scenario{
		Name: "nonrecord",
		Checks: []CheckSpec{
			{Invoke: &InvokeClause{Of: "values", Target: "values", WantRepr: "values()"}},
		},
	}

	report, err := NewRunner(nil).Run(scenario)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].OK)
	assert.Contains(t, report.Results[0].Detail, "not a record")
}
