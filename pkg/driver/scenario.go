// Package driver loads check scenarios from YAML files and runs them
// against the runtime value model.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/obriencj/go-values/pkg/runtime"
)

// Scenario is a validated set of record definitions and checks loaded
// from a YAML file.
type Scenario struct {
	Name    string
	Path    string
	Records []RecordSpec
	Checks  []CheckSpec
}

// RecordSpec describes one record to build before the checks run. The
// record is bound to Name in the scenario environment.
type RecordSpec struct {
	Name        string
	Backend     string
	Positionals []runtime.Value
	Named       []runtime.NamedEntry
}

// CheckSpec holds exactly one populated clause.
type CheckSpec struct {
	Equal       *PairClause
	NotEqual    *PairClause
	HashEqual   *PairClause
	HashDiffers *PairClause
	Repr        *ReprClause
	Truthy      *TruthClause
	Index       *IndexClause
	Key         *KeyClause
	Invoke      *InvokeClause
	Unhashable  *RefClause
}

// PairClause compares the record Left against either another bound
// name or a literal value.
type PairClause struct {
	Left    string
	Right   string
	Literal runtime.Value
}

type ReprClause struct {
	Of   string
	Want string
}

type TruthClause struct {
	Of   string
	Want bool
}

type IndexClause struct {
	Of        string
	At        int
	Want      runtime.Value
	WantError bool
}

type KeyClause struct {
	Of        string
	Name      string
	Want      runtime.Value
	WantError bool
}

type InvokeClause struct {
	Of        string
	Target    string
	Extra     []runtime.Value
	Named     []runtime.NamedEntry
	WantRepr  string
	WantError bool
}

type RefClause struct {
	Of string
}

// ValidationError aggregates every problem found in a scenario file.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scenario %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		sb.WriteString("\n  - ")
		sb.WriteString(issue)
	}
	return sb.String()
}

type scenarioFile struct {
	Name    string           `yaml:"name"`
	Records []recordSpecFile `yaml:"records"`
	Checks  []checkSpecFile  `yaml:"checks"`
}

type recordSpecFile struct {
	Name        string    `yaml:"name"`
	Backend     string    `yaml:"backend"`
	Positionals []any     `yaml:"positionals"`
	Named       yaml.Node `yaml:"named"`
}

type checkSpecFile struct {
	Equal       *pairClauseFile   `yaml:"equal"`
	NotEqual    *pairClauseFile   `yaml:"not_equal"`
	HashEqual   *pairClauseFile   `yaml:"hash_equal"`
	HashDiffers *pairClauseFile   `yaml:"hash_differs"`
	Repr        *reprClauseFile   `yaml:"repr"`
	Truthy      *truthClauseFile  `yaml:"truthy"`
	Index       *indexClauseFile  `yaml:"index"`
	Key         *keyClauseFile    `yaml:"key"`
	Invoke      *invokeClauseFile `yaml:"invoke"`
	Unhashable  *refClauseFile    `yaml:"unhashable"`
}

type pairClauseFile struct {
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Literal *any   `yaml:"literal"`
}

type reprClauseFile struct {
	Of   string `yaml:"of"`
	Want string `yaml:"want"`
}

type truthClauseFile struct {
	Of   string `yaml:"of"`
	Want bool   `yaml:"want"`
}

type indexClauseFile struct {
	Of        string `yaml:"of"`
	At        int    `yaml:"at"`
	Want      *any   `yaml:"want"`
	WantError bool   `yaml:"want_error"`
}

type keyClauseFile struct {
	Of        string `yaml:"of"`
	Name      string `yaml:"name"`
	Want      *any   `yaml:"want"`
	WantError bool   `yaml:"want_error"`
}

type invokeClauseFile struct {
	Of        string         `yaml:"of"`
	Target    string         `yaml:"target"`
	Extra     []any          `yaml:"extra"`
	Named     map[string]any `yaml:"named"`
	WantRepr  string         `yaml:"want_repr"`
	WantError bool           `yaml:"want_error"`
}

type refClauseFile struct {
	Of string `yaml:"of"`
}

// LoadScenario reads and validates a scenario YAML file. Unknown
// fields are rejected so typos in check names surface immediately.
func LoadScenario(path string) (*Scenario, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving scenario path %s: %w", path, err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening scenario %s: %w", absPath, err)
	}
	defer file.Close()

	var raw scenarioFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", absPath, err)
	}

	scenario, issues := raw.toScenario(absPath)
	if len(issues) > 0 {
		return nil, &ValidationError{Path: absPath, Issues: issues}
	}
	return scenario, nil
}

func (raw *scenarioFile) toScenario(path string) (*Scenario, []string) {
	var issues []string

	scenario := &Scenario{
		Name: raw.Name,
		Path: path,
	}
	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	seen := make(map[string]bool)
	for i, rec := range raw.Records {
		spec, recIssues := rec.toRecordSpec(i)
		issues = append(issues, recIssues...)
		if spec.Name != "" {
			if seen[spec.Name] {
				issues = append(issues, fmt.Sprintf("records[%d]: duplicate record name %q", i, spec.Name))
			}
			seen[spec.Name] = true
		}
		scenario.Records = append(scenario.Records, spec)
	}

	if len(raw.Checks) == 0 {
		issues = append(issues, "scenario has no checks")
	}
	for i, chk := range raw.Checks {
		spec, chkIssues := chk.toCheckSpec(i)
		issues = append(issues, chkIssues...)
		scenario.Checks = append(scenario.Checks, spec)
	}

	return scenario, issues
}

func (raw *recordSpecFile) toRecordSpec(index int) (RecordSpec, []string) {
	var issues []string

	spec := RecordSpec{
		Name:    raw.Name,
		Backend: raw.Backend,
	}
	if spec.Name == "" {
		issues = append(issues, fmt.Sprintf("records[%d]: missing name", index))
	}
	switch spec.Backend {
	case "", "basic", "compact":
	default:
		issues = append(issues, fmt.Sprintf("records[%d]: unknown backend %q", index, spec.Backend))
	}

	for j, rawVal := range raw.Positionals {
		val, err := toValue(rawVal)
		if err != nil {
			issues = append(issues, fmt.Sprintf("records[%d].positionals[%d]: %v", index, j, err))
			continue
		}
		spec.Positionals = append(spec.Positionals, val)
	}

	entries, err := namedEntriesFromNode(&raw.Named)
	if err != nil {
		issues = append(issues, fmt.Sprintf("records[%d].named: %v", index, err))
	}
	spec.Named = entries

	return spec, issues
}

func (raw *checkSpecFile) toCheckSpec(index int) (CheckSpec, []string) {
	var issues []string
	var spec CheckSpec

	clauses := 0
	addIssue := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf("checks[%d]: ", index)+fmt.Sprintf(format, args...))
	}

	if raw.Equal != nil {
		clauses++
		spec.Equal = raw.Equal.toPairClause("equal", addIssue)
	}
	if raw.NotEqual != nil {
		clauses++
		spec.NotEqual = raw.NotEqual.toPairClause("not_equal", addIssue)
	}
	if raw.HashEqual != nil {
		clauses++
		spec.HashEqual = raw.HashEqual.toPairClause("hash_equal", addIssue)
	}
	if raw.HashDiffers != nil {
		clauses++
		spec.HashDiffers = raw.HashDiffers.toPairClause("hash_differs", addIssue)
	}
	if raw.Repr != nil {
		clauses++
		if raw.Repr.Of == "" {
			addIssue("repr: missing of")
		}
		spec.Repr = &ReprClause{Of: raw.Repr.Of, Want: raw.Repr.Want}
	}
	if raw.Truthy != nil {
		clauses++
		if raw.Truthy.Of == "" {
			addIssue("truthy: missing of")
		}
		spec.Truthy = &TruthClause{Of: raw.Truthy.Of, Want: raw.Truthy.Want}
	}
	if raw.Index != nil {
		clauses++
		spec.Index = raw.Index.toIndexClause(addIssue)
	}
	if raw.Key != nil {
		clauses++
		spec.Key = raw.Key.toKeyClause(addIssue)
	}
	if raw.Invoke != nil {
		clauses++
		spec.Invoke = raw.Invoke.toInvokeClause(addIssue)
	}
	if raw.Unhashable != nil {
		clauses++
		if raw.Unhashable.Of == "" {
			addIssue("unhashable: missing of")
		}
		spec.Unhashable = &RefClause{Of: raw.Unhashable.Of}
	}

	if clauses == 0 {
		addIssue("check has no clause")
	} else if clauses > 1 {
		addIssue("check has %d clauses, want exactly 1", clauses)
	}

	return spec, issues
}

func (raw *pairClauseFile) toPairClause(kind string, addIssue func(string, ...any)) *PairClause {
	clause := &PairClause{Left: raw.Left, Right: raw.Right}
	if clause.Left == "" {
		addIssue("%s: missing left", kind)
	}
	if raw.Right != "" && raw.Literal != nil {
		addIssue("%s: right and literal are mutually exclusive", kind)
	}
	if raw.Right == "" && raw.Literal == nil {
		addIssue("%s: needs right or literal", kind)
	}
	if raw.Literal != nil {
		val, err := toValue(*raw.Literal)
		if err != nil {
			addIssue("%s.literal: %v", kind, err)
		}
		clause.Literal = val
	}
	return clause
}

func (raw *indexClauseFile) toIndexClause(addIssue func(string, ...any)) *IndexClause {
	clause := &IndexClause{Of: raw.Of, At: raw.At, WantError: raw.WantError}
	if clause.Of == "" {
		addIssue("index: missing of")
	}
	if raw.Want != nil && raw.WantError {
		addIssue("index: want and want_error are mutually exclusive")
	}
	if raw.Want == nil && !raw.WantError {
		addIssue("index: needs want or want_error")
	}
	if raw.Want != nil {
		val, err := toValue(*raw.Want)
		if err != nil {
			addIssue("index.want: %v", err)
		}
		clause.Want = val
	}
	return clause
}

func (raw *keyClauseFile) toKeyClause(addIssue func(string, ...any)) *KeyClause {
	clause := &KeyClause{Of: raw.Of, Name: raw.Name, WantError: raw.WantError}
	if clause.Of == "" {
		addIssue("key: missing of")
	}
	if clause.Name == "" {
		addIssue("key: missing name")
	}
	if raw.Want != nil && raw.WantError {
		addIssue("key: want and want_error are mutually exclusive")
	}
	if raw.Want == nil && !raw.WantError {
		addIssue("key: needs want or want_error")
	}
	if raw.Want != nil {
		val, err := toValue(*raw.Want)
		if err != nil {
			addIssue("key.want: %v", err)
		}
		clause.Want = val
	}
	return clause
}

func (raw *invokeClauseFile) toInvokeClause(addIssue func(string, ...any)) *InvokeClause {
	clause := &InvokeClause{
		Of:        raw.Of,
		Target:    raw.Target,
		WantRepr:  raw.WantRepr,
		WantError: raw.WantError,
	}
	if clause.Of == "" {
		addIssue("invoke: missing of")
	}
	if clause.Target == "" {
		addIssue("invoke: missing target")
	}
	if raw.WantRepr != "" && raw.WantError {
		addIssue("invoke: want_repr and want_error are mutually exclusive")
	}
	if raw.WantRepr == "" && !raw.WantError {
		addIssue("invoke: needs want_repr or want_error")
	}

	for j, rawVal := range raw.Extra {
		val, err := toValue(rawVal)
		if err != nil {
			addIssue("invoke.extra[%d]: %v", j, err)
			continue
		}
		clause.Extra = append(clause.Extra, val)
	}
	for _, name := range sortedKeys(raw.Named) {
		val, err := toValue(raw.Named[name])
		if err != nil {
			addIssue("invoke.named[%s]: %v", name, err)
			continue
		}
		clause.Named = append(clause.Named, runtime.NamedEntry{Name: name, Value: val})
	}
	return clause
}
