package stage

import (
	"context"
	"errors"

	"github.com/go-git/go-git/v5"
)

var errNoCommits = errors.New("repository has no commits")

// appRevisionRunner logs which checkout of the application is being run.
// A directory that is not a git worktree is skipped without comment.
func appRevisionRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	meta := ensureMeta(&out)
	if !cfgOf(in).Revision {
		recordSkipped(&out, AppRevision)
		return out, nil
	}
	rev, err := probeRevision(pathsOf(in).AppDir)
	if errors.Is(err, git.ErrRepositoryNotExists) || errors.Is(err, errNoCommits) {
		recordSkipped(&out, AppRevision)
		return out, nil
	}
	if err != nil {
		deps.logger().Debug("application revision unavailable", "err", err)
		recordSkipped(&out, AppRevision)
		return out, nil
	}
	meta.Revision = rev
	deps.logger().Debug("application revision", "commit", rev.Commit, "branch", rev.Branch, "dirty", rev.Dirty)
	recordStep(&out, AppRevision, 0, "")
	return out, nil
}

func probeRevision(dir string) (*RevisionMeta, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, errNoCommits
	}
	rev := &RevisionMeta{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return rev, nil
	}
	status, err := wt.Status()
	if err != nil {
		return rev, nil
	}
	rev.Dirty = !status.IsClean()
	return rev, nil
}

func init() { Register(AppRevision, appRevisionRunner) }
