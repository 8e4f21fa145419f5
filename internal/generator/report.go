package generator

import (
	"github.com/specialistvlad/artifactsmith/internal/errs"
	"github.com/specialistvlad/artifactsmith/internal/nodeid"
)

// Outcome is what happened to one artifact during a pass.
type Outcome string

const (
	// OutcomeCreated means the file did not exist and was written.
	OutcomeCreated Outcome = "created"
	// OutcomeRegenerated means an existing file was rewritten from defaults
	// (override or unreadable).
	OutcomeRegenerated Outcome = "regenerated"
	// OutcomeUpdated means an existing file was rewritten around its
	// persisted values.
	OutcomeUpdated Outcome = "updated"
	// OutcomeUnchanged means the rendered bytes matched the file on disk.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomePlanned means the artifact was resolved but not written.
	OutcomePlanned Outcome = "planned"
	// OutcomeKept means an unreadable file was left alone on request.
	OutcomeKept Outcome = "kept"
	// OutcomeFailed means resolution, rendering or writing failed.
	OutcomeFailed Outcome = "failed"
	// OutcomeSkipped means an included artifact could not be resolved.
	OutcomeSkipped Outcome = "skipped"
)

// Entry is the report line for one artifact.
type Entry struct {
	ID       string            `json:"id"`
	Kind     string            `json:"kind"`
	Path     string            `json:"path"`
	State    string            `json:"state,omitempty"`
	Hotspot  bool              `json:"hotspot"`
	Degraded bool              `json:"degraded"`
	Outcome  Outcome           `json:"outcome"`
	Params   map[string]string `json:"params,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	Error    string            `json:"error,omitempty"`
	Class    string            `json:"error_class,omitempty"`

	Err error `json:"-"`
}

// Report is the per-artifact result of one configure pass, in the order the
// artifacts were visited.
type Report struct {
	RunID   string  `json:"run_id"`
	DryRun  bool    `json:"dry_run"`
	Entries []Entry `json:"artifacts"`
}

func (r *Report) add(e Entry) {
	if e.Err != nil {
		e.Error = e.Err.Error()
		e.Class = errs.Class(e.Err)
	}
	r.Entries = append(r.Entries, e)
}

// Entry looks up the entry for an artifact, by id ("artifact.lib_build") or
// bare name ("lib_build").
func (r *Report) Entry(id string) (Entry, bool) {
	addr, err := nodeid.Parse(id)
	if err != nil || addr.Kind != nodeid.KindArtifact {
		return Entry{}, false
	}
	for _, e := range r.Entries {
		if e.ID == addr.String() {
			return e, true
		}
	}
	return Entry{}, false
}

// Failed returns the failed and skipped entries.
func (r *Report) Failed() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Outcome == OutcomeFailed || e.Outcome == OutcomeSkipped {
			out = append(out, e)
		}
	}
	return out
}

// HasFailures reports whether any artifact failed or was skipped.
func (r *Report) HasFailures() bool { return len(r.Failed()) > 0 }

// Hotspots returns the entries of freshly scaffolded artifacts.
func (r *Report) Hotspots() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Hotspot {
			out = append(out, e)
		}
	}
	return out
}
