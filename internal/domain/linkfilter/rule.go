// Package linkfilter holds the versioned rules deciding which chat messages
// carry an acceptable post link, and how such links are normalised before
// they reach the ledger.
package linkfilter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const CurrentVersion = "v1"

type Rule struct {
	Version       string
	CanonicalHost string
	pattern       *regexp.Regexp
}

// Match is an accepted link found in a message.
type Match struct {
	Raw         string
	URL         string
	Kind        string
	PostID      string
	RuleVersion string
}

var rules = map[string]*Rule{
	"v1": {
		Version:       "v1",
		CanonicalHost: "www.instagram.com",
		pattern: regexp.MustCompile(
			`(?i)https?://(?:www\.)?(?:instagram\.com|instagr\.am)/(p|reel|tv)/([a-z0-9_\-]+)/?`,
		),
	},
}

// Current returns the rule new submissions are checked against.
func Current() *Rule {
	return rules[CurrentVersion]
}

func Lookup(version string) (*Rule, error) {
	rule, ok := rules[version]
	if !ok {
		return nil, fmt.Errorf("unknown link rule version %q (known: %s)", version, strings.Join(Versions(), ", "))
	}
	return rule, nil
}

func Versions() []string {
	versions := make([]string, 0, len(rules))
	for v := range rules {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Extract returns the first accepted link in text.
func (r *Rule) Extract(text string) (Match, bool) {
	m := r.pattern.FindStringSubmatch(text)
	if m == nil {
		return Match{}, false
	}

	kind := strings.ToLower(m[1])
	postID := m[2]
	return Match{
		Raw:         m[0],
		URL:         fmt.Sprintf("https://%s/%s/%s/", r.CanonicalHost, kind, postID),
		Kind:        kind,
		PostID:      postID,
		RuleVersion: r.Version,
	}, true
}

// Normalize returns the canonical form of a single link, or false when the
// link does not satisfy the rule.
func (r *Rule) Normalize(link string) (string, bool) {
	m, ok := r.Extract(strings.TrimSpace(link))
	if !ok {
		return "", false
	}
	return m.URL, true
}
