// Package merge reconciles computed defaults with values persisted in an
// existing copy of an artifact. One generic Resolve serves every artifact
// kind; kinds differ only in their parameter descriptors.
//
// Precedence, per parameter:
//
//  1. target absent                     -> default, node is new
//  2. target present, override          -> default, node is new
//  3. target present, read succeeded    -> rebased persisted value or default, node is existing
//  4. target present, read failed       -> as rule 1; the file is left for generation to overwrite
//
// A target that is absent is always new. When an earlier copy was read from
// a relocation source, its values are rebased and carried over, but the node
// stays new.
package merge

import (
	"fmt"

	"github.com/specialistvlad/artifactsmith/internal/param"
	"github.com/specialistvlad/artifactsmith/internal/persist"
)

// State tells whether an artifact is a first-time scaffold.
type State int

const (
	// StateNew marks a hotspot: a fresh scaffold the user should review.
	StateNew State = iota
	// StateExisting marks an artifact regenerated around the user's edits.
	StateExisting
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateExisting:
		return "existing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Rule identifies which precedence rule decided the outcome.
type Rule int

const (
	RuleAbsent Rule = iota + 1
	RuleOverride
	RulePersisted
	RuleUnreadable
	RuleRelocated
)

// Input is everything the resolver needs for one artifact.
type Input struct {
	// Defaults carries computed defaults in declaration order.
	Defaults []param.Parameter
	Exists   bool
	Override bool
	// Relocated marks Persisted as read from an earlier location of an
	// absent target.
	Relocated bool
	// Persisted is the reader's result; ignored unless Exists or Relocated.
	Persisted persist.Result
	// PersistedDir is the directory of the file Persisted was read from.
	PersistedDir string
	// TargetDir is the directory the artifact will be written to.
	TargetDir string
}

// Output is the resolved parameter table plus classification.
type Output struct {
	Params *param.Table
	State  State
	Rule   Rule
	// Degraded is set when an existing file could not be read (rule 4).
	Degraded bool
	// Warnings lists non-fatal issues such as values that could not be
	// rebased.
	Warnings []string
}

// Resolve applies the merge policy. It is a pure function of its input.
func Resolve(in Input) Output {
	switch {
	case !in.Exists && in.Relocated && !in.Override && in.Persisted.Status == persist.StatusRead:
		return fromPersisted(in, StateNew, RuleRelocated)
	case !in.Exists:
		return fromDefaults(in.Defaults, RuleAbsent)
	case in.Override:
		return fromDefaults(in.Defaults, RuleOverride)
	case in.Persisted.Status != persist.StatusRead:
		out := fromDefaults(in.Defaults, RuleUnreadable)
		out.Degraded = true
		return out
	}
	return fromPersisted(in, StateExisting, RulePersisted)
}

func fromPersisted(in Input, state State, rule Rule) Output {
	out := Output{Params: param.NewTable(), State: state, Rule: rule}
	for _, p := range in.Defaults {
		p.Resolved, p.Source = p.Default, param.SourceDefault

		if v, ok := in.Persisted.Values[p.Name]; ok {
			if p.PathRelative {
				rebased, err := Rebase(v, in.PersistedDir, in.TargetDir)
				if err != nil {
					out.Warnings = append(out.Warnings, fmt.Sprintf("parameter %q: %v", p.Name, err))
					rebased = v
				}
				v = rebased
			}
			p.Resolved, p.Source = v, param.SourcePersisted
		}
		out.Params.Put(p)
	}
	return out
}

func fromDefaults(defaults []param.Parameter, rule Rule) Output {
	t := param.NewTable()
	for _, p := range defaults {
		p.Resolved, p.Source = p.Default, param.SourceDefault
		t.Put(p)
	}
	return Output{Params: t, State: StateNew, Rule: rule}
}
