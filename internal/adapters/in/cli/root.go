// internal/adapters/in/cli/root.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	uc "smartattender/internal/application/usecase"
	"smartattender/internal/infra/credentials"
)

// Invocation is the parsed command line.
type Invocation struct {
	Seed uc.SeedOptions

	ServiceAccountPath   string
	ServiceAccountSecret string
	ProjectID            string

	DryRun     bool
	VerifyAuth bool
	QROut      string
	QRBucket   string
}

// Runner performs the seed for a parsed invocation.
type Runner func(ctx context.Context, inv Invocation) error

// Execute parses args, runs the seed and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, run Runner) int {
	cmd := NewRootCommand(args, run)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// NewRootCommand builds the seed-demo command. rawArgs is used only to
// report unknown flags, which are otherwise ignored.
func NewRootCommand(rawArgs []string, run Runner) *cobra.Command {
	var inv Invocation

	cmd := &cobra.Command{
		Use:   "seed-demo --teacher <id> [flags]",
		Short: "Seed demo teacher, session and analytics documents into Firestore",
		Long: `seed-demo upserts demo data for one teacher:

  teachers/{teacherId}
  teachers/{teacherId}/sessions/{sessionId}   (unless --skip-session)
  publicSessions/{sessionToken}               (unless --skip-session)
  teacherAnalytics/{teacherId}

Every write merges into existing documents.`,
		Example: `  seed-demo --teacher abc123 --class "Grade 9A" --location "12.9,77.6"
  seed-demo --teacher abc123 --skip-session --service-account ./sa.json
  seed-demo --teacher abc123 --dry-run`,
		Args: cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		PreRun: func(cmd *cobra.Command, positional []string) {
			for _, name := range unknownFlags(cmd.Flags(), rawArgs) {
				fmt.Fprintf(cmd.ErrOrStderr(), "[seed] WARN: unknown flag %s ignored\n", name)
			}
			for _, a := range positional {
				fmt.Fprintf(cmd.ErrOrStderr(), "[seed] WARN: unexpected argument %q ignored\n", a)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// --teacher "" などの引数エラーは usage 付きで返す
			if err := inv.Seed.Normalize().Validate(); err != nil {
				return err
			}
			// 引数エラー以外では usage を出さない
			cmd.SilenceUsage = true
			if run == nil {
				return errors.New("seed: runner is nil")
			}
			return withHint(run(cmd.Context(), inv))
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVar(&inv.Seed.TeacherID, "teacher", "", "teacher uid / document id (required)")
	f.StringVar(&inv.Seed.TeacherName, "name", "", `teacher display name (default "Demo Teacher")`)
	f.StringVar(&inv.Seed.ClassName, "class", "", `class name (default "`+uc.DefaultClassName+`")`)
	f.StringVar(&inv.Seed.Subject, "subject", "", `subject (default "`+uc.DefaultSubject+`")`)
	f.StringVar(&inv.Seed.Location, "location", "", `session location "lat,lng" (default "0,0")`)
	f.StringVar(&inv.Seed.SessionID, "session-id", "", "session document id (generated when empty)")
	f.BoolVar(&inv.Seed.SkipSession, "skip-session", false, "do not create the session and public session documents")
	f.StringVar(&inv.ServiceAccountPath, "service-account", "", "path to the service account JSON (env "+credentials.EnvServiceAccountPath+")")
	f.StringVar(&inv.ServiceAccountSecret, "service-account-secret", "", "Secret Manager resource holding the service account JSON")
	f.StringVar(&inv.ProjectID, "project", "", "Firestore project id (default: project_id of the service account)")
	f.BoolVar(&inv.DryRun, "dry-run", false, "print the documents instead of writing them")
	f.BoolVar(&inv.VerifyAuth, "verify-auth", false, "fail unless --teacher is an existing Firebase Auth uid")
	f.StringVar(&inv.QROut, "qr-out", "", "write the session QR code PNG to this file")
	f.StringVar(&inv.QRBucket, "qr-bucket", "", "upload the session QR code PNG to this GCS bucket (env QR_BUCKET)")
	f.BoolP("help", "h", false, "show this help")

	_ = cmd.MarkFlagRequired("teacher")
	return cmd
}

func withHint(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, uc.ErrPermissionDenied):
		return fmt.Errorf("%w\nhint: grant the service account the Cloud Datastore User role", err)
	case errors.Is(err, uc.ErrUnauthenticated):
		return fmt.Errorf("%w\nhint: the service account key may be revoked or belong to another project", err)
	case errors.Is(err, credentials.ErrNoCandidate):
		return fmt.Errorf("%w\nhint: pass --service-account <path> or set %s", err, credentials.EnvServiceAccountPath)
	}
	return err
}
