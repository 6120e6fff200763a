package driver

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/obriencj/go-values/pkg/runtime"
)

// CheckResult is the outcome of one check. Detail is empty when the
// check passed.
type CheckResult struct {
	Desc   string
	OK     bool
	Detail string
}

// Report collects the results of running a scenario.
type Report struct {
	Scenario string
	Results  []CheckResult
}

// Failures counts the checks that did not pass.
func (r *Report) Failures() int {
	failures := 0
	for _, res := range r.Results {
		if !res.OK {
			failures++
		}
	}
	return failures
}

// Render produces the deterministic text form of the report, one line
// per check.
func (r *Report) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scenario %s: %d checks, %d failures\n", r.Scenario, len(r.Results), r.Failures())
	for _, res := range r.Results {
		status := "ok  "
		if !res.OK {
			status = "FAIL"
		}
		fmt.Fprintf(&sb, "  %s %s\n", status, res.Desc)
		if res.Detail != "" {
			fmt.Fprintf(&sb, "       %s\n", res.Detail)
		}
	}
	return sb.String()
}

// Runner executes scenarios against a fresh environment per run.
type Runner struct {
	logger *zap.Logger
}

func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run builds the scenario's records, executes every check, and
// returns the report. A non-nil error means the scenario could not be
// set up at all, not that a check failed.
func (r *Runner) Run(scenario *Scenario) (*Report, error) {
	env := runtime.NewEnvironment(builtins())

	for _, spec := range scenario.Records {
		record, err := BuildRecord(spec)
		if err != nil {
			return nil, fmt.Errorf("building record %q: %w", spec.Name, err)
		}
		env.Define(spec.Name, record)
	}

	report := &Report{Scenario: scenario.Name}
	for _, check := range scenario.Checks {
		result := r.runCheck(env, check)
		if result.OK {
			r.logger.Debug("check passed", zap.String("check", result.Desc))
		} else {
			r.logger.Warn("check failed",
				zap.String("check", result.Desc),
				zap.String("detail", result.Detail))
		}
		report.Results = append(report.Results, result)
	}

	r.logger.Info("scenario complete",
		zap.String("scenario", scenario.Name),
		zap.Int("checks", len(report.Results)),
		zap.Int("failures", report.Failures()))
	return report, nil
}

// builtins is the root scope shared by every scenario: the invocation
// targets that checks may name.
func builtins() *runtime.Environment {
	env := runtime.NewEnvironment(nil)
	env.Define("values", runtime.Constructor())
	env.Define("tuple", &runtime.FunctionValue{
		Name:     "tuple",
		Variadic: true,
		Impl: func(ctx *runtime.CallContext) (runtime.Value, error) {
			return runtime.NewTuple(ctx.Rest...), nil
		},
	})
	return env
}

// BuildRecord constructs the record a spec describes on the backend
// it names, defaulting to the compact backend.
func BuildRecord(spec RecordSpec) (*runtime.RecordValue, error) {
	switch spec.Backend {
	case "basic":
		return runtime.NewBasicRecord(spec.Positionals, spec.Named), nil
	case "compact", "":
		return runtime.NewCompactRecord(spec.Positionals, spec.Named), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", spec.Backend)
	}
}

func (r *Runner) runCheck(env *runtime.Environment, check CheckSpec) CheckResult {
	switch {
	case check.Equal != nil:
		return runPair(env, "equal", check.Equal, func(left, right runtime.Value) (bool, string) {
			if !runtime.Equal(left, right) {
				return false, fmt.Sprintf("%s != %s", runtime.Repr(left), runtime.Repr(right))
			}
			return true, ""
		})
	case check.NotEqual != nil:
		return runPair(env, "not_equal", check.NotEqual, func(left, right runtime.Value) (bool, string) {
			if runtime.Equal(left, right) {
				return false, fmt.Sprintf("%s == %s", runtime.Repr(left), runtime.Repr(right))
			}
			return true, ""
		})
	case check.HashEqual != nil:
		return runPair(env, "hash_equal", check.HashEqual, func(left, right runtime.Value) (bool, string) {
			return compareHashes(left, right, true)
		})
	case check.HashDiffers != nil:
		return runPair(env, "hash_differs", check.HashDiffers, func(left, right runtime.Value) (bool, string) {
			return compareHashes(left, right, false)
		})
	case check.Repr != nil:
		return runRepr(env, check.Repr)
	case check.Truthy != nil:
		return runTruthy(env, check.Truthy)
	case check.Index != nil:
		return runIndex(env, check.Index)
	case check.Key != nil:
		return runKey(env, check.Key)
	case check.Invoke != nil:
		return runInvoke(env, check.Invoke)
	case check.Unhashable != nil:
		return runUnhashable(env, check.Unhashable)
	default:
		return CheckResult{Desc: "empty check", Detail: "no clause"}
	}
}

func runPair(env *runtime.Environment, kind string, clause *PairClause, compare func(left, right runtime.Value) (bool, string)) CheckResult {
	desc := fmt.Sprintf("%s %s %s", kind, clause.Left, clause.Right)
	if clause.Right == "" {
		desc = fmt.Sprintf("%s %s <literal>", kind, clause.Left)
	}

	left, err := env.Get(clause.Left)
	if err != nil {
		return CheckResult{Desc: desc, Detail: err.Error()}
	}
	right := clause.Literal
	if clause.Right != "" {
		right, err = env.Get(clause.Right)
		if err != nil {
			return CheckResult{Desc: desc, Detail: err.Error()}
		}
	}

	ok, detail := compare(left, right)
	return CheckResult{Desc: desc, OK: ok, Detail: detail}
}

func compareHashes(left, right runtime.Value, wantEqual bool) (bool, string) {
	leftHash, err := runtime.HashValue(left)
	if err != nil {
		return false, err.Error()
	}
	rightHash, err := runtime.HashValue(right)
	if err != nil {
		return false, err.Error()
	}
	if (leftHash == rightHash) != wantEqual {
		return false, fmt.Sprintf("hashes %#x and %#x", leftHash, rightHash)
	}
	return true, ""
}

func runRepr(env *runtime.Environment, clause *ReprClause) CheckResult {
	desc := fmt.Sprintf("repr %s", clause.Of)
	val, err := env.Get(clause.Of)
	if err != nil {
		return CheckResult{Desc: desc, Detail: err.Error()}
	}
	got := runtime.Repr(val)
	if got != clause.Want {
		return CheckResult{Desc: desc, Detail: fmt.Sprintf("got %s, want %s", got, clause.Want)}
	}
	return CheckResult{Desc: desc, OK: true}
}

func runTruthy(env *runtime.Environment, clause *TruthClause) CheckResult {
	desc := fmt.Sprintf("truthy %s", clause.Of)
	val, err := env.Get(clause.Of)
	if err != nil {
		return CheckResult{Desc: desc, Detail: err.Error()}
	}
	if got := runtime.Truthy(val); got != clause.Want {
		return CheckResult{Desc: desc, Detail: fmt.Sprintf("got %v, want %v", got, clause.Want)}
	}
	return CheckResult{Desc: desc, OK: true}
}

func runIndex(env *runtime.Environment, clause *IndexClause) CheckResult {
	desc := fmt.Sprintf("index %s[%d]", clause.Of, clause.At)
	record, result := lookupRecord(env, clause.Of, desc)
	if record == nil {
		return result
	}

	got, err := record.At(clause.At)
	if clause.WantError {
		if err == nil {
			return CheckResult{Desc: desc, Detail: fmt.Sprintf("got %s, want an error", runtime.Repr(got))}
		}
		return CheckResult{Desc: desc, OK: true}
	}
	if err != nil {
		return CheckResult{Desc: desc, Detail: err.Error()}
	}
	if !runtime.Equal(got, clause.Want) {
		return CheckResult{Desc: desc, Detail: fmt.Sprintf("got %s, want %s", runtime.Repr(got), runtime.Repr(clause.Want))}
	}
	return CheckResult{Desc: desc, OK: true}
}

func runKey(env *runtime.Environment, clause *KeyClause) CheckResult {
	desc := fmt.Sprintf("key %s[%s]", clause.Of, clause.Name)
	record, result := lookupRecord(env, clause.Of, desc)
	if record == nil {
		return result
	}

	got, err := record.Get(clause.Name)
	if clause.WantError {
		if err == nil {
			return CheckResult{Desc: desc, Detail: fmt.Sprintf("got %s, want an error", runtime.Repr(got))}
		}
		return CheckResult{Desc: desc, OK: true}
	}
	if err != nil {
		return CheckResult{Desc: desc, Detail: err.Error()}
	}
	if !runtime.Equal(got, clause.Want) {
		return CheckResult{Desc: desc, Detail: fmt.Sprintf("got %s, want %s", runtime.Repr(got), runtime.Repr(clause.Want))}
	}
	return CheckResult{Desc: desc, OK: true}
}

func runInvoke(env *runtime.Environment, clause *InvokeClause) CheckResult {
	desc := fmt.Sprintf("invoke %s %s", clause.Of, clause.Target)
	record, result := lookupRecord(env, clause.Of, desc)
	if record == nil {
		return result
	}
	target, err := env.Get(clause.Target)
	if err != nil {
		return CheckResult{Desc: desc, Detail: err.Error()}
	}

	named := make(map[string]runtime.Value, len(clause.Named))
	for _, entry := range clause.Named {
		named[entry.Name] = entry.Value
	}

	got, err := record.Invoke(target, clause.Extra, named)
	if clause.WantError {
		if err == nil {
			return CheckResult{Desc: desc, Detail: fmt.Sprintf("got %s, want an error", runtime.Repr(got))}
		}
		return CheckResult{Desc: desc, OK: true}
	}
	if err != nil {
		return CheckResult{Desc: desc, Detail: err.Error()}
	}
	if gotRepr := runtime.Repr(got); gotRepr != clause.WantRepr {
		return CheckResult{Desc: desc, Detail: fmt.Sprintf("got %s, want %s", gotRepr, clause.WantRepr)}
	}
	return CheckResult{Desc: desc, OK: true}
}

func runUnhashable(env *runtime.Environment, clause *RefClause) CheckResult {
	desc := fmt.Sprintf("unhashable %s", clause.Of)
	val, err := env.Get(clause.Of)
	if err != nil {
		return CheckResult{Desc: desc, Detail: err.Error()}
	}
	hash, err := runtime.HashValue(val)
	if err == nil {
		return CheckResult{Desc: desc, Detail: fmt.Sprintf("hashed to %#x, want an error", hash)}
	}
	return CheckResult{Desc: desc, OK: true}
}

func lookupRecord(env *runtime.Environment, name string, desc string) (*runtime.RecordValue, CheckResult) {
	val, err := env.Get(name)
	if err != nil {
		return nil, CheckResult{Desc: desc, Detail: err.Error()}
	}
	record, ok := val.(*runtime.RecordValue)
	if !ok {
		return nil, CheckResult{Desc: desc, Detail: fmt.Sprintf("%s is a %s, not a record", name, val.Kind())}
	}
	return record, CheckResult{}
}
