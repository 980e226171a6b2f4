package gitsync

import (
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"scratchrobin-hq/advanced/pkg/integration"
)

// ReachableFunc reports whether a remote URL can be reached.
type ReachableFunc func(url string) bool

// State is the sync readiness of a working copy.
type State struct {
	// Branch is the checked-out branch, empty when HEAD is detached.
	Branch string

	// Remotes lists the configured remote names.
	Remotes []string

	// Conflicts lists paths with unmerged index entries.
	Conflicts []string

	BranchSelected    bool
	RemoteReachable   bool
	ConflictsResolved bool
}

// Inspect opens the repository containing path and derives its State.
//
// A branch is selected when HEAD is a symbolic reference to a branch. A
// remote counts as reachable when one is configured and, if reachable is
// non-nil, it returns true for at least one of the remote URLs. Conflicts are
// resolved when no index entry sits at a merge stage.
func Inspect(path string, reachable ReachableFunc) (*State, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	state := &State{}

	head, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		state.Branch = head.Target().Short()
		state.BranchSelected = true
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	for _, remote := range remotes {
		cfg := remote.Config()
		state.Remotes = append(state.Remotes, cfg.Name)
		if state.RemoteReachable {
			continue
		}
		if reachable == nil {
			state.RemoteReachable = true
			continue
		}
		for _, url := range cfg.URLs {
			if reachable(url) {
				state.RemoteReachable = true
				break
			}
		}
	}

	sort.Strings(state.Remotes)

	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	seen := make(map[string]bool)
	for _, entry := range idx.Entries {
		if entry.Stage != 0 && !seen[entry.Name] {
			seen[entry.Name] = true
			state.Conflicts = append(state.Conflicts, entry.Name)
		}
	}
	state.ConflictsResolved = len(state.Conflicts) == 0

	return state, nil
}

// Validate applies integration.ValidateGitSync to the state.
func (s *State) Validate() error {
	return integration.ValidateGitSync(s.BranchSelected, s.RemoteReachable, s.ConflictsResolved)
}
