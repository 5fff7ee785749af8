package schools

import (
	"sort"

	"github.com/pfrederiksen/school-names/internal/logger"
)

// Outcome says how a lookup was resolved.
type Outcome string

const (
	// OutcomeMissing means the input was blank; the result is "".
	OutcomeMissing Outcome = "missing"
	// OutcomeMatched means the input is a known spelling.
	OutcomeMatched Outcome = "matched"
	// OutcomePassthrough means the input is unknown and is returned unchanged.
	OutcomePassthrough Outcome = "passthrough"
)

// Result is the outcome of resolving one input name.
type Result struct {
	Input   string  `json:"input"`
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
}

// Collision records a lookup key produced by more than one reference row.
// The last row wins; Previous is the canonical name it replaced.
type Collision struct {
	Key      string `json:"key"`
	Previous string `json:"previous"`
	Winner   string `json:"winner"`
}

// Canonicalizer maps school-name spellings to canonical names.
// It is immutable once built and safe for concurrent use.
type Canonicalizer struct {
	names      map[string]string
	collisions []Collision
	log        *logger.Logger
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer)

// WithLogger sets the logger that receives unrecognized-name diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Canonicalizer) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds the lookup from refs in order. Each row contributes its
// alternate names, each alternate followed by a space and the nickname,
// the canonical name, and the canonical name followed by the nickname.
// On a key shared by several rows the last row wins.
func New(refs []Reference, opts ...Option) (*Canonicalizer, error) {
	c := &Canonicalizer{
		names: make(map[string]string),
		log:   logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	for i, ref := range refs {
		if IsMissing(ref.Team) {
			return nil, &RowError{Row: i, Err: ErrEmptyTeam}
		}
		for _, key := range keys(ref) {
			if prev, ok := c.names[key]; ok && prev != ref.Team {
				c.collisions = append(c.collisions, Collision{Key: key, Previous: prev, Winner: ref.Team})
			}
			c.names[key] = ref.Team
		}
	}

	return c, nil
}

// keys lists every lookup key a reference row contributes.
func keys(ref Reference) []string {
	nickname := cell(ref.Nickname)
	suffixed := func(name string) []string {
		if nickname == "" {
			return []string{name}
		}
		return []string{name, name + " " + nickname}
	}

	var out []string
	for _, alt := range ref.AltNames {
		if IsMissing(alt) {
			continue
		}
		out = append(out, suffixed(alt)...)
	}
	return append(out, suffixed(ref.Team)...)
}

// Resolve looks up raw without logging.
func (c *Canonicalizer) Resolve(raw string) Result {
	if IsMissing(raw) {
		return Result{Input: raw, Name: "", Outcome: OutcomeMissing}
	}
	if name, ok := c.names[raw]; ok {
		return Result{Input: raw, Name: name, Outcome: OutcomeMatched}
	}
	return Result{Input: raw, Name: raw, Outcome: OutcomePassthrough}
}

// Canonicalize returns the canonical name for raw, "" for a missing value,
// or raw itself when the name is not in the reference table. The last
// case is logged at WARN.
func (c *Canonicalizer) Canonicalize(raw string) string {
	res := c.Resolve(raw)
	if res.Outcome == OutcomePassthrough {
		c.log.Warn("school not found in reference table", logger.Fields{"name": raw})
	}
	return res.Name
}

// Len returns the number of lookup keys.
func (c *Canonicalizer) Len() int {
	return len(c.names)
}

// Entry is one key of the lookup.
type Entry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Entries returns every key and its canonical name, sorted by key.
func (c *Canonicalizer) Entries() []Entry {
	out := make([]Entry, 0, len(c.names))
	for k, v := range c.names {
		out = append(out, Entry{Key: k, Name: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Collisions returns keys that a later row overwrote, in build order.
func (c *Canonicalizer) Collisions() []Collision {
	return append([]Collision(nil), c.collisions...)
}
