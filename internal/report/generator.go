package report

import (
	"context"
	"image"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Afrawles/contribimg/internal/grid"
)

type Generator struct {
	Source   ContributionSource
	Renderer *grid.Renderer
	Logger   logrus.FieldLogger
}

func NewGenerator(source ContributionSource, renderer *grid.Renderer, logger logrus.FieldLogger) *Generator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Generator{Source: source, Renderer: renderer, Logger: logger}
}

type Result struct {
	Set   *ContributionSet
	Image *image.RGBA
	Stats Stats
}

// Generate fetches the subject's contributions and renders them.
// It never touches the filesystem.
func (g *Generator) Generate(ctx context.Context, subject string) (*Result, error) {
	if subject == "" {
		return nil, ErrUsage
	}

	log := g.Logger.WithFields(logrus.Fields{"source": g.Source.Name(), "user": subject})
	log.Debug("fetching contributions")

	set, err := g.Source.FetchContributions(ctx, subject)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to fetch contributions from %s", g.Source.Name())
	}

	if set == nil || len(set.Days) == 0 {
		log.Warn("source returned no contribution days")
		return nil, ErrNoContributions
	}

	layout := g.Renderer.Layout
	stats := Statistics(set, layout)
	if stats.Skipped > 0 {
		log.WithField("skipped", stats.Skipped).Info("dropping days that do not fit the grid")
	}

	img := g.Renderer.Render(layout.Cells(set.Levels()))
	log.WithFields(logrus.Fields{"days": stats.Days, "cells": stats.Drawn}).Debug("grid rendered")

	return &Result{Set: set, Image: img, Stats: stats}, nil
}

type Stats struct {
	Days    int
	Drawn   int
	Skipped int
	Active  int
	Total   int
	ByLevel [grid.Levels]int
}

// Statistics summarises a contribution set against the grid it is drawn on.
func Statistics(set *ContributionSet, layout grid.Layout) Stats {
	var s Stats
	s.Days = len(set.Days)
	s.Drawn = min(s.Days, layout.Capacity())
	s.Skipped = s.Days - s.Drawn

	sum := 0
	for _, d := range set.Days {
		lvl := grid.ClampLevel(d.Level)
		s.ByLevel[lvl]++
		if lvl > 0 {
			s.Active++
		}
		sum += d.Count
	}

	s.Total = set.Total
	if s.Total == 0 {
		s.Total = sum
	}
	return s
}
