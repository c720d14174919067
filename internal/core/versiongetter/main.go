// Package main contains an utility to get the software version.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/bluenviron/multilog/internal/logger"
)

const defaultVersion = "v0.0.0"

// describe is the equivalent of git describe --tags.
func describe(repo *git.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	tagIterator, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("failed to get tags: %w", err)
	}
	defer tagIterator.Close()

	// annotated tags point to tag objects, lightweight tags to commits
	tags := make(map[plumbing.Hash]string)

	err = tagIterator.ForEach(func(ref *plumbing.Reference) error {
		name := strings.TrimPrefix(ref.Name().String(), "refs/tags/")
		if obj, err2 := repo.TagObject(ref.Hash()); err2 == nil {
			tags[obj.Target] = name
		} else {
			tags[ref.Hash()] = name
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to iterate tags: %w", err)
	}

	commits, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return "", fmt.Errorf("failed to get log: %w", err)
	}
	defer commits.Close()

	for distance := 0; ; distance++ {
		commit, err := commits.Next()
		if err != nil {
			return "", fmt.Errorf("no tag reachable from HEAD: %w", err)
		}

		if name, ok := tags[commit.Hash]; ok {
			if distance != 0 {
				name += "-" + strconv.Itoa(distance) + "-" + head.Hash().String()[:8]
			}
			return name, nil
		}
	}
}

func openRepository(root string) (*git.Repository, error) {
	rootAbs, _ := filepath.Abs(root)

	// allow alternates that point outside of the .git directory
	storer := filesystem.NewStorageWithOptions(
		osfs.New(filepath.Join(rootAbs, ".git"), osfs.WithBoundOS()),
		cache.NewObjectLRUDefault(),
		filesystem.Options{
			AlternatesFS: osfs.New("/", osfs.WithBoundOS()),
		})

	return git.Open(storer, osfs.New(rootAbs, osfs.WithBoundOS()))
}

func versionFromGit(root string) (string, error) {
	repo, err := openRepository(root)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	version, err := describe(repo)
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("failed to get status: %w", err)
	}

	if !status.IsClean() {
		version += "-dirty"
	}

	return version, nil
}

func run() error {
	logger.InfoLog("getting multilog version...")

	version, err := versionFromGit("../..")
	if err != nil {
		logger.InfoLog("cannot get tag from .git folder (%v), using %s as version", err, defaultVersion)
		version = defaultVersion
	}

	err = os.WriteFile("VERSION", []byte(version), 0o644)
	if err != nil {
		return logger.ErrorLog("failed to write version file: %v", err)
	}

	logger.InfoLog("ok (%s)", version)
	return nil
}

func main() {
	l := logger.New(
		logger.NewConsoleDestination(),
		logger.NewFileDestination(logger.Info, nil, []io.Writer{os.Stdout}))
	logger.SetLogger(l)

	err := run()

	logger.SetLogger(nil)
	l.Close()

	if err != nil {
		os.Exit(1)
	}
}
