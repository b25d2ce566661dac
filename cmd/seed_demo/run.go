// cmd/seed_demo/run.go
package main

import (
	"context"
	"io"
	"log"
	"os"

	"smartattender/internal/adapters/in/cli"
	"smartattender/internal/infra/config"
	"smartattender/internal/platform/di"
)

// dryRunOut is where --dry-run prints documents.
var dryRunOut io.Writer = os.Stdout

// run wires config -> DI container -> seed usecase for one invocation.
func run(ctx context.Context, inv cli.Invocation) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cont, err := di.NewContainer(ctx, cfg, di.Options{
		ServiceAccountPath:   inv.ServiceAccountPath,
		ServiceAccountSecret: inv.ServiceAccountSecret,
		ProjectID:            inv.ProjectID,
		DryRun:               inv.DryRun,
		DryRunOut:            dryRunOut,
		VerifyAuth:           inv.VerifyAuth,
		QROut:                inv.QROut,
		QRBucket:             inv.QRBucket,
	})
	if err != nil {
		return err
	}
	defer cont.Close()

	res, err := cont.SeedUsecase.Run(ctx, inv.Seed)
	if err != nil {
		return err
	}

	log.Printf("[seed] ✅ done: %d document(s) upserted", len(res.Writes))
	if res.SessionID != "" {
		log.Printf("[seed]   sessionId    = %s", res.SessionID)
		log.Printf("[seed]   sessionToken = %s", res.SessionToken)
	}
	if res.QRImageURL != "" {
		log.Printf("[seed]   qrImageUrl   = %s", res.QRImageURL)
	}
	return nil
}
