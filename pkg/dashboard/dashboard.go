package dashboard

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/ghdash/pkg/errors"
	"github.com/matzehuels/ghdash/pkg/integrations/github"
	"github.com/matzehuels/ghdash/pkg/observability"
	"github.com/matzehuels/ghdash/pkg/stats"
)

// Upstream is the set of GitHub operations a build needs.
// *github.Client implements it.
type Upstream interface {
	ResolveCredential(user string) github.Credential
	FetchProfile(ctx context.Context, username string, cred github.Credential, refresh bool) (*github.Profile, error)
	FetchRepositories(ctx context.Context, username string, cred github.Credential, refresh bool) ([]github.Repository, error)
	FetchContributionCalendar(ctx context.Context, username string, cred github.Credential, refresh bool) ([]github.ContributionDay, error)
	FetchContributionTotals(ctx context.Context, username string, cred github.Credential, refresh bool) (*github.ContributionTotals, error)
	FetchOrganizations(ctx context.Context, username string, cred github.Credential, refresh bool) ([]github.Organization, error)
}

// Request is one dashboard request.
type Request struct {
	Username       string
	UserCredential string // GitHub token from the caller's session, may be empty
	Refresh        bool   // bypass the upstream cache
}

// Options configures a Service.
type Options struct {
	// TopN is the length of the top-repositories list. Default stats.DefaultTopN.
	TopN int
	// RequireToken rejects requests that resolve to no credential at all.
	RequireToken bool
	// Now stamps LastUpdated. Default time.Now.
	Now func() time.Time
}

// Service builds dashboard responses.
type Service struct {
	upstream Upstream
	opts     Options
}

// New creates a Service over upstream.
func New(upstream Upstream, opts Options) *Service {
	if opts.TopN <= 0 {
		opts.TopN = stats.DefaultTopN
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{upstream: upstream, opts: opts}
}

// Build fetches everything for req.Username and assembles the response.
//
// All five fetches run to completion even if one fails; the first
// fail-hard error (see Policies) is returned and no response is assembled.
func (s *Service) Build(ctx context.Context, req Request) (*Response, error) {
	username := strings.TrimSpace(req.Username)
	if err := errs.ValidateUsername(username); err != nil {
		return nil, err
	}

	cred := s.upstream.ResolveCredential(req.UserCredential)
	if s.opts.RequireToken && cred.IsZero() {
		return nil, errs.Configuration("Server configuration error: Missing GitHub token.")
	}

	start := time.Now()
	observability.Dashboard().OnBuildStart(ctx, username)
	resp, err := s.build(ctx, username, cred, req.Refresh)
	observability.Dashboard().OnBuildComplete(ctx, username, time.Since(start), err)
	return resp, err
}

func (s *Service) build(ctx context.Context, username string, cred github.Credential, refresh bool) (*Response, error) {
	var src sources

	// A plain Group: a critical failure must not cancel the other fetches.
	var g errgroup.Group
	g.Go(func() error {
		p, err := s.upstream.FetchProfile(ctx, username, cred, refresh)
		src.profile = p
		return apply(ctx, username, github.OpProfile, err)
	})
	g.Go(func() error {
		r, err := s.upstream.FetchRepositories(ctx, username, cred, refresh)
		src.repos = r
		return apply(ctx, username, github.OpRepositories, err)
	})
	g.Go(func() error {
		d, err := s.upstream.FetchContributionCalendar(ctx, username, cred, refresh)
		src.days = d
		return apply(ctx, username, github.OpCalendar, err)
	})
	g.Go(func() error {
		t, err := s.upstream.FetchContributionTotals(ctx, username, cred, refresh)
		src.totals = t
		return apply(ctx, username, github.OpTotals, err)
	})
	g.Go(func() error {
		o, err := s.upstream.FetchOrganizations(ctx, username, cred, refresh)
		src.orgs = o
		return apply(ctx, username, github.OpOrganizations, err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assemble(src, s.opts.TopN, s.opts.Now()), nil
}
