// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"smartattender/internal/adapters/out/dryrun"
	authadapter "smartattender/internal/adapters/out/firebaseauth"
	fs "smartattender/internal/adapters/out/firestore"
	gcsadapter "smartattender/internal/adapters/out/gcs"
	uc "smartattender/internal/application/usecase"
	appcfg "smartattender/internal/infra/config"
	"smartattender/internal/infra/credentials"
	"smartattender/internal/infra/qr"
)

// Options are the CLI-level switches that affect wiring.
// Flag values win over the matching env config.
type Options struct {
	ServiceAccountPath   string
	ServiceAccountSecret string
	ProjectID            string

	DryRun    bool
	DryRunOut io.Writer

	VerifyAuth bool
	QROut      string
	QRBucket   string
}

// Container owns the external clients for one seed run.
//
// - DryRun: no credentials, no clients; documents are printed
// - otherwise: service account -> firebase.App -> Firestore (strict)
// - Auth / GCS are created only when requested (strict once requested)
type Container struct {
	Config    *appcfg.Config
	ProjectID string

	ServiceAccount credentials.ServiceAccount

	// Clients (owned; Close-managed)
	FirebaseApp  *firebase.App
	Firestore    *firestore.Client
	FirebaseAuth *firebaseauth.Client
	GCS          *storage.Client

	SeedUsecase *uc.SeedUsecase
}

// NewContainer resolves credentials, connects, and wires the seed usecase.
func NewContainer(ctx context.Context, cfg *appcfg.Config, opts Options) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}
	c := &Container{Config: cfg}

	qrBucket := firstNonEmpty(opts.QRBucket, cfg.QRBucket)

	var (
		store      uc.DocumentStore
		ucOpts     []uc.SeedUsecaseOption
		publishers []uc.QRPublisher
	)

	if opts.DryRun {
		out := opts.DryRunOut
		if out == nil {
			out = os.Stdout
		}
		store = dryrun.NewDocumentStore(out)
		log.Printf("[di] dry-run: documents are printed, nothing is written")
		if opts.VerifyAuth {
			log.Printf("[di] WARN: --verify-auth ignored in dry-run")
		}
		if qrBucket != "" {
			log.Printf("[di] WARN: QR bucket %q ignored in dry-run", qrBucket)
			qrBucket = ""
		}
	} else {
		if err := c.connect(ctx, opts); err != nil {
			_ = c.Close()
			return nil, err
		}
		store = fs.NewDocumentStoreFS(c.Firestore)

		if opts.VerifyAuth {
			authClient, err := c.FirebaseApp.Auth(ctx)
			if err != nil {
				_ = c.Close()
				return nil, fmt.Errorf("di: firebase auth init failed: %w", err)
			}
			c.FirebaseAuth = authClient
			ucOpts = append(ucOpts, uc.WithTeacherVerifier(authadapter.NewTeacherVerifier(authClient)))
			log.Printf("[di] Firebase Auth initialized (teacher uid check enabled)")
		}

		if qrBucket != "" {
			gcsClient, err := storage.NewClient(ctx, c.clientOptions()...)
			if err != nil {
				_ = c.Close()
				return nil, fmt.Errorf("di: storage.NewClient failed: %w", err)
			}
			c.GCS = gcsClient
			publishers = append(publishers, gcsadapter.NewSessionQRRepositoryGCS(gcsClient, qrBucket))
			log.Printf("[di] GCS storage client initialized bucket=%s", qrBucket)
		}
	}

	if out := strings.TrimSpace(opts.QROut); out != "" {
		publishers = append(publishers, qr.NewFilePublisher(out))
	}
	if len(publishers) > 0 {
		ucOpts = append(ucOpts, uc.WithQR(qr.NewRenderer(), publishers...))
	}

	c.SeedUsecase = uc.NewSeedUsecase(store, ucOpts...)
	return c, nil
}

// connect runs stages 1-2: load + parse the key, then open Firestore.
func (c *Container) connect(ctx context.Context, opts Options) error {
	cfg := c.Config

	sa, err := credentials.Resolve(ctx, credentials.ResolveOptions{
		LocateOptions: credentials.LocateOptions{
			ExplicitPath: opts.ServiceAccountPath,
			EnvPath:      cfg.ServiceAccountPath,
			ScanDir:      cfg.ScanDir,
			ScanPattern:  cfg.ScanPattern,
		},
		SecretName: firstNonEmpty(opts.ServiceAccountSecret, cfg.ServiceAccountSecret),
	})
	if err != nil {
		return err
	}
	c.ServiceAccount = sa
	log.Printf("[di] Using service account %s (%s)", sa.ClientEmail, redactPath(sa.Origin))

	c.ProjectID = firstNonEmpty(opts.ProjectID, cfg.FirestoreProjectID, sa.ProjectID)
	if c.ProjectID == "" {
		return errors.New("di: projectID is empty (set --project or FIRESTORE_PROJECT_ID)")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: c.ProjectID}, c.clientOptions()...)
	if err != nil {
		return fmt.Errorf("di: firebase.NewApp failed (project=%s): %w", c.ProjectID, err)
	}
	c.FirebaseApp = app

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("di: firestore init failed (project=%s): %w", c.ProjectID, err)
	}
	c.Firestore = fsClient
	log.Printf("[di] ✅ Firestore connected project=%s", c.ProjectID)
	return nil
}

func (c *Container) clientOptions() []option.ClientOption {
	if len(c.ServiceAccount.Raw) == 0 {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsJSON(c.ServiceAccount.Raw)}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	return nil
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// redactPath keeps only the last path segment.
func redactPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "projects/") {
		return p
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
