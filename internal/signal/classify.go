package signal

import (
	"sort"
	"strings"

	"wifi-finder.klederson.com/internal/config"
)

// Reason names a suspicion rule that fired for a sample.
type Reason string

const (
	ReasonProximity   Reason = "proximity"
	ReasonHotspotName Reason = "hotspot_pattern"
	ReasonHiddenClose Reason = "hidden_close"
)

// Flagged is the set of identities classified as suspicious in one batch.
type Flagged map[string]struct{}

// Has reports whether identity was flagged.
func (f Flagged) Has(identity string) bool {
	_, ok := f[IdentityKey(identity)]
	return ok
}

func (f Flagged) Len() int {
	return len(f)
}

// Identities returns the flagged identities in sorted order.
func (f Flagged) Identities() []string {
	out := make([]string, 0, len(f))
	for id := range f {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Classifier flags access points that look like nearby mobile hotspots.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules  config.SuspicionRules
	tokens []string
}

// NewClassifier builds a classifier over a rule table. Tokens are matched
// as case-insensitive substrings.
func NewClassifier(rules config.SuspicionRules) *Classifier {
	if rules.HiddenName == "" {
		rules.HiddenName = HiddenName
	}
	tokens := make([]string, 0, len(rules.HotspotTokens))
	for _, tok := range rules.HotspotTokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return &Classifier{rules: rules, tokens: tokens}
}

// Rules returns the rule table the classifier was built from.
func (c *Classifier) Rules() config.SuspicionRules {
	return c.rules
}

// Classify returns the flagged subset of a batch. Malformed samples are
// dropped; the result depends only on the batch contents.
func (c *Classifier) Classify(samples []Sample) Flagged {
	flagged := make(Flagged)
	for _, s := range Sanitize(samples) {
		if len(c.Reasons(s)) > 0 {
			flagged[IdentityKey(s.Identity)] = struct{}{}
		}
	}
	return flagged
}

// Reasons evaluates every rule independently against one sample.
func (c *Classifier) Reasons(s Sample) []Reason {
	var reasons []Reason
	name := s.DisplayName
	if name == "" {
		name = c.rules.HiddenName
	}

	if s.Strength > c.rules.ProximityThreshold {
		reasons = append(reasons, ReasonProximity)
	}

	lower := strings.ToLower(name)
	for _, tok := range c.tokens {
		if strings.Contains(lower, tok) {
			reasons = append(reasons, ReasonHotspotName)
			break
		}
	}

	if name == c.rules.HiddenName && s.Strength > c.rules.HiddenThreshold {
		reasons = append(reasons, ReasonHiddenClose)
	}
	return reasons
}
