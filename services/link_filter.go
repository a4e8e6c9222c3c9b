package services

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"linkscraper/domain"
)

// Filter decides whether a candidate absolute URL is kept. Filters are
// pure and composable; the orchestrator stacks a site-specific stage
// on top of the general policy.
type Filter interface {
	Accept(link string) bool
}

// LinkFilter applies the general FilterPolicy. Accept is total: a link
// that cannot be parsed is logged as a validation failure and rejected,
// never propagated as an error.
type LinkFilter struct {
	policy domain.FilterPolicy
	logger *zap.Logger
}

// NewLinkFilter case-folds the policy's host/path comparison values
// once, so the case-insensitive checks hold for any configured casing.
func NewLinkFilter(policy domain.FilterPolicy, logger *zap.Logger) *LinkFilter {
	policy.DomainSubstring = strings.ToLower(policy.DomainSubstring)
	policy.BlockedExtensions = lowered(policy.BlockedExtensions)
	policy.ExcludedPaths = lowered(policy.ExcludedPaths)
	return &LinkFilter{policy: policy, logger: logger}
}

func lowered(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func (f *LinkFilter) Accept(link string) bool {
	if !strings.HasPrefix(link, f.policy.RequiredPrefix) {
		return false
	}

	parsed, err := url.Parse(link)
	if err != nil {
		verr := &domain.ValidationError{Link: link, Err: err}
		f.logger.Warn("rejecting malformed link", zap.Error(verr))
		return false
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return false
	}

	if len(link) < f.policy.MinLinkLength {
		return false
	}

	host := strings.ToLower(parsed.Host)
	if !strings.Contains(host, f.policy.DomainSubstring) {
		return false
	}

	path := strings.ToLower(parsed.Path)
	for _, ext := range f.policy.BlockedExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}
	for _, excluded := range f.policy.ExcludedPaths {
		if strings.Contains(path, excluded) {
			return false
		}
	}

	return true
}

// PrefixFilter keeps links starting with one exact prefix. Used as the
// site-specific narrowing stage after the general policy.
type PrefixFilter struct {
	Prefix string
}

func (f PrefixFilter) Accept(link string) bool {
	return strings.HasPrefix(link, f.Prefix)
}
