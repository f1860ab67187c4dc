package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	diffmark "github.com/diffmark/diffmark"
)

// App wires the review session together. Fields are exported so tests can
// inject mocks for each collaborator.
type App struct {
	// Input provides the diff content. Ignored when FilePath is set.
	Input io.Reader

	// FilePath reads the diff from a file instead of Input.
	FilePath string

	Parser diffmark.Parser
	Store  diffmark.DraftStore
	Viewer diffmark.Viewer
	Logger zerolog.Logger
}

// Run parses the diff, loads existing drafts, presents the review view, and
// persists whatever drafts remain when the view exits. It returns the final
// drafts.
func (a *App) Run(ctx context.Context) ([]diffmark.Comment, error) {
	input := a.Input
	if a.FilePath != "" {
		f, err := os.Open(a.FilePath)
		if err != nil {
			return nil, fmt.Errorf("open diff file: %w", err)
		}
		defer f.Close()
		input = f
	}
	if input == nil {
		return nil, errors.New("no diff input")
	}

	// The diff can be large and the drafts file lives on disk, so parse and
	// load in parallel.
	var (
		diff   *diffmark.Diff
		drafts []diffmark.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := a.Parser.Parse(input)
		if err != nil {
			return fmt.Errorf("parse diff: %w", err)
		}
		diff = d
		return nil
	})
	g.Go(func() error {
		if a.Store == nil {
			return nil
		}
		if err := gctx.Err(); err != nil {
			return err
		}
		loaded, err := a.Store.Load()
		if err != nil {
			return fmt.Errorf("load drafts: %w", err)
		}
		drafts = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(diff.Files) == 0 {
		return drafts, errors.New("diff contains no files")
	}
	a.Logger.Debug().
		Int("files", len(diff.Files)).
		Int("drafts", len(drafts)).
		Msg("starting review")

	final, err := a.Viewer.View(ctx, diff, drafts)
	if err != nil {
		return nil, fmt.Errorf("review view: %w", err)
	}

	if a.Store != nil {
		if err := a.Store.Save(final); err != nil {
			return final, fmt.Errorf("save drafts: %w", err)
		}
	}
	return final, nil
}
