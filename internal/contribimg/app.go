package contribimg

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Afrawles/contribimg/internal/config"
	"github.com/Afrawles/contribimg/internal/github"
	"github.com/Afrawles/contribimg/internal/report"
)

type Application struct {
	Config    *config.Config
	Logger    logrus.FieldLogger
	Generator *report.Generator
	Exporter  *report.Exporter
}

// New wires the GitHub source into the pipeline. The config must be valid.
func New(cfg *config.Config, logger logrus.FieldLogger) (*Application, error) {
	source := github.NewContributionSource(cfg.Source.BaseURL, cfg.Source.Timeout)
	return NewWithSource(cfg, source, logger)
}

func NewWithSource(cfg *config.Config, source report.ContributionSource, logger logrus.FieldLogger) (*Application, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	renderer, err := cfg.Renderer()
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Generator: report.NewGenerator(source, renderer, logger),
		Exporter:  report.NewExporter(cfg.Output.Directory),
	}, nil
}

type Outcome struct {
	Path    string
	Subject string
	Stats   report.Stats
}

// Run renders the subject's contribution grid and writes it to disk.
// No file is written unless rendering succeeded.
func (app *Application) Run(ctx context.Context, subject string) (*Outcome, error) {
	app.Logger.WithField("user", subject).Info("generating contribution image")

	result, err := app.Generator.Generate(ctx, subject)
	if err != nil {
		return nil, err
	}

	path, err := app.Exporter.ExportPNG(result.Image, app.Config.Output.Filename)
	if err != nil {
		return nil, err
	}

	app.Logger.WithFields(logrus.Fields{
		"file":   path,
		"days":   result.Stats.Days,
		"active": result.Stats.Active,
	}).Info("contribution image written")

	return &Outcome{Path: path, Subject: subject, Stats: result.Stats}, nil
}
