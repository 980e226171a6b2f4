package gitsync

import (
	"context"
	"errors"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Probe returns a ReachableFunc that lists the references of a remote URL.
// The remote counts as reachable when the listing succeeds or reports an
// empty repository. A positive timeout bounds each listing.
func Probe(ctx context.Context, timeout time.Duration) ReachableFunc {
	return func(url string) bool {
		pctx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			pctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		remote := gogit.NewRemote(memory.NewStorage(), &config.RemoteConfig{
			Name: "probe",
			URLs: []string{url},
		})
		_, err := remote.ListContext(pctx, &gogit.ListOptions{})
		return err == nil || errors.Is(err, transport.ErrEmptyRemoteRepository)
	}
}
