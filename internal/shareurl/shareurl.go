// Package shareurl puts share tokens into links and takes them back out.
package shareurl

import (
	"fmt"
	"net/url"
	"strings"
)

// Query parameter names.
const (
	ParamSeries = "s"
	ParamUser   = "u"
	ParamToken  = "r"
)

// Link is the payload of a share link.
type Link struct {
	Series string `json:"series,omitempty"`
	UserID string `json:"user_id,omitempty"`
	Token  string `json:"token"`
}

// Build returns base with the link's parameters set, replacing any existing ones.
func Build(base string, l Link) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	set := func(k, v string) {
		if v == "" {
			q.Del(k)
			return
		}
		q.Set(k, v)
	}
	set(ParamSeries, l.Series)
	set(ParamUser, l.UserID)
	set(ParamToken, l.Token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Parse accepts a full link, a bare query string, or a bare token.
func Parse(raw string) (Link, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Link{}, nil
	}
	// '?' and '&' are outside the base64 alphabet.
	if !strings.ContainsAny(raw, "?&") && !hasParamPrefix(raw) {
		return Link{Token: raw}, nil
	}

	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}
	q, err := url.ParseQuery(query)
	if err != nil {
		return Link{}, fmt.Errorf("parse share link: %w", err)
	}
	return Link{
		Series: q.Get(ParamSeries),
		UserID: q.Get(ParamUser),
		Token:  q.Get(ParamToken),
	}, nil
}

func hasParamPrefix(s string) bool {
	for _, p := range []string{ParamSeries, ParamUser, ParamToken} {
		if strings.HasPrefix(s, p+"=") {
			return true
		}
	}
	return false
}
