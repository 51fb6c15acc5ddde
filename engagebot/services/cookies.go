package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
)

var ErrInvalidCookies = errors.New("invalid cookie blob")

// browserCookie is one entry of a browser or automation-tool cookie export.
// Expires is seconds since the epoch, -1 or missing for session cookies.
type browserCookie struct {
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	Domain   string   `json:"domain"`
	Path     string   `json:"path"`
	Expires  *float64 `json:"expires,omitempty"`
	HTTPOnly bool     `json:"httpOnly"`
	Secure   bool     `json:"secure"`
	SameSite string   `json:"sameSite,omitempty"`
}

// ParseCookies decodes a cookie export into CDP cookie params. Entries with
// a missing or unknown sameSite value are treated as Lax.
func ParseCookies(blob []byte) ([]*network.CookieParam, error) {
	var raw []browserCookie
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCookies, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no cookies", ErrInvalidCookies)
	}

	params := make([]*network.CookieParam, 0, len(raw))
	for i, c := range raw {
		if c.Name == "" || c.Domain == "" {
			return nil, fmt.Errorf("%w: entry %d needs name and domain", ErrInvalidCookies, i)
		}
		p := &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: sameSite(c.SameSite),
		}
		if p.Path == "" {
			p.Path = "/"
		}
		if c.Expires != nil && *c.Expires > 0 {
			sec, frac := math.Modf(*c.Expires)
			ts := cdp.TimeSinceEpoch(time.Unix(int64(sec), int64(frac*1e9)))
			p.Expires = &ts
		}
		params = append(params, p)
	}
	return params, nil
}

// EncodeCookies writes live browser cookies back in the export format
// ParseCookies reads.
func EncodeCookies(cookies []*network.Cookie) ([]byte, error) {
	out := make([]browserCookie, 0, len(cookies))
	for _, c := range cookies {
		bc := browserCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(sameSite(c.SameSite.String())),
		}
		expires := float64(-1)
		if !c.Session {
			expires = c.Expires
		}
		bc.Expires = &expires
		out = append(out, bc)
	}
	return json.Marshal(out)
}

func sameSite(v string) network.CookieSameSite {
	switch strings.ToLower(v) {
	case "strict":
		return network.CookieSameSiteStrict
	case "none", "no_restriction":
		return network.CookieSameSiteNone
	default:
		return network.CookieSameSiteLax
	}
}
