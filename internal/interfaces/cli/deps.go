package cli

import (
	"context"

	"github.com/turtacn/qsphere/internal/application/visualization"
	"github.com/turtacn/qsphere/internal/config"
	"github.com/turtacn/qsphere/internal/infrastructure/browser"
	"github.com/turtacn/qsphere/internal/infrastructure/render/plotly"
	"github.com/turtacn/qsphere/internal/infrastructure/storage/minio"
)

// launcher returns the injected launcher or the system browser.
func (c *CLIContext) launcher() browser.Launcher {
	if c.deps.Launcher != nil {
		return c.deps.Launcher
	}
	return browser.NewSystem()
}

// publisher returns the injected publisher or connects to the configured
// bucket.  The returned client is nil when the publisher was injected.
func (c *CLIContext) publisher(ctx context.Context, pc config.PublishConfig) (visualization.ArtifactPublisher, *minio.MinIOClient, error) {
	if c.deps.Publisher != nil {
		return c.deps.Publisher, nil, nil
	}
	client, err := minio.NewMinIOClient(ctx, &minio.MinIOConfig{
		Endpoint:        pc.Endpoint,
		AccessKeyID:     pc.AccessKeyID,
		SecretAccessKey: pc.SecretAccessKey,
		UseSSL:          pc.UseSSL,
		Region:          pc.Region,
		Bucket:          pc.Bucket,
		Prefix:          pc.Prefix,
		PresignExpiry:   pc.PresignExpiry,
		RetentionDays:   pc.RetentionDays,
	}, c.Logger.Named("minio"))
	if err != nil {
		return nil, nil, err
	}
	return minio.NewPublisher(client, c.Logger), client, nil
}

// renderService wires the render pipeline from cfg.  A publisher is
// connected only when withPublisher is set.
func (c *CLIContext) renderService(ctx context.Context, cfg *config.Config, withPublisher bool) (visualization.Service, *minio.MinIOClient, error) {
	var (
		pub    visualization.ArtifactPublisher
		client *minio.MinIOClient
		err    error
	)
	if withPublisher {
		if pub, client, err = c.publisher(ctx, cfg.Publish); err != nil {
			return nil, nil, err
		}
	}

	svc := visualization.NewService(
		plotly.NewRenderer(plotly.Options{PlotlyURL: cfg.Render.PlotlyCDN, Version: Version}),
		c.launcher(),
		pub,
		c.Metrics,
		c.Logger,
		visualization.Config{
			Width:         cfg.Render.Width,
			Height:        cfg.Render.Height,
			NormTolerance: cfg.Render.NormTolerance,
		},
	)
	return svc, client, nil
}

//Personal.AI order the ending
