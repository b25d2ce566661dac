// internal/application/usecase/seed_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	analyticsdom "smartattender/internal/domain/analytics"
	sessiondom "smartattender/internal/domain/session"
	teacherdom "smartattender/internal/domain/teacher"
)

// SeedUsecase writes the demo documents for one teacher.
//
// Order (固定):
//  1. teachers/{teacherId}
//  2. teachers/{teacherId}/sessions/{sessionId} + publicSessions/{token} (skip 可)
//  3. teacherAnalytics/{teacherId}
//
// Writes are independent upserts. A failure stops the run and leaves the
// earlier documents in place.
type SeedUsecase struct {
	store DocumentStore

	// optional
	verifier   TeacherVerifier
	renderer   QRRenderer
	publishers []QRPublisher

	now      func() time.Time
	newToken func(sessionID string) string
}

type SeedUsecaseOption func(*SeedUsecase)

func WithTeacherVerifier(v TeacherVerifier) SeedUsecaseOption {
	return func(u *SeedUsecase) { u.verifier = v }
}

// WithQR renders the session QR and hands it to every publisher.
func WithQR(r QRRenderer, publishers ...QRPublisher) SeedUsecaseOption {
	return func(u *SeedUsecase) {
		u.renderer = r
		for _, p := range publishers {
			if p != nil {
				u.publishers = append(u.publishers, p)
			}
		}
	}
}

func WithClock(now func() time.Time) SeedUsecaseOption {
	return func(u *SeedUsecase) { u.now = now }
}

func WithTokenGenerator(gen func(sessionID string) string) SeedUsecaseOption {
	return func(u *SeedUsecase) { u.newToken = gen }
}

func NewSeedUsecase(store DocumentStore, opts ...SeedUsecaseOption) *SeedUsecase {
	u := &SeedUsecase{
		store:    store,
		now:      time.Now,
		newToken: sessiondom.NewToken,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// SeedResult reports what was written.
type SeedResult struct {
	TeacherPath       string
	SessionPath       string
	PublicSessionPath string
	AnalyticsPath     string

	SessionID    string
	SessionToken string
	QRImageURL   string

	// 書き込み順
	Writes []string
}

func (u *SeedUsecase) Run(ctx context.Context, opts SeedOptions) (SeedResult, error) {
	var res SeedResult
	if u == nil || u.store == nil {
		return res, errors.New("seed: document store is nil")
	}

	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return res, err
	}
	now := u.now().UTC()

	// 0) optional auth check
	if u.verifier != nil {
		if err := u.verifier.VerifyTeacher(ctx, opts.TeacherID); err != nil {
			return res, fmt.Errorf("seed: verify teacher %s: %w", opts.TeacherID, err)
		}
		log.Printf("[seed] teacher %s verified in Firebase Auth", opts.TeacherID)
	}

	// 1) teacher
	t, err := teacherdom.New(opts.TeacherID, opts.TeacherName, opts.ClassName, opts.Subject)
	if err != nil {
		return res, err
	}
	if err := u.upsert(ctx, &res, t.Path(), t.Document()); err != nil {
		return res, fmt.Errorf("seed: upsert teacher: %w", err)
	}
	res.TeacherPath = t.Path()
	log.Printf("[seed] ✅ teacher profile upserted: %s (%s)", t.Path(), t.DisplayName)

	// 2) session + public pointer
	if opts.SkipSession {
		log.Printf("[seed] session creation skipped (--skip-session)")
	} else {
		if err := u.seedSession(ctx, &res, opts, now); err != nil {
			return res, err
		}
	}

	// 3) analytics (always)
	snap, err := analyticsdom.NewSnapshot(opts.TeacherID, opts.ClassName, now)
	if err != nil {
		return res, err
	}
	if err := u.upsert(ctx, &res, snap.Path(), snap.Document()); err != nil {
		return res, fmt.Errorf("seed: upsert analytics: %w", err)
	}
	res.AnalyticsPath = snap.Path()
	log.Printf("[seed] ✅ analytics snapshot upserted: %s (avg attendance %.1f%%)", snap.Path(), snap.AverageAttendanceRate)

	return res, nil
}

func (u *SeedUsecase) seedSession(ctx context.Context, res *SeedResult, opts SeedOptions, now time.Time) error {
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = strings.TrimSpace(u.store.NewID(sessiondom.CollectionPath(opts.TeacherID)))
		if sessionID == "" {
			return errors.New("seed: document store returned an empty session id")
		}
	}
	token := u.newToken(sessionID)

	s, err := sessiondom.NewSession(sessiondom.SessionInput{
		TeacherID:    opts.TeacherID,
		SessionID:    sessionID,
		SessionToken: token,
		ClassName:    opts.ClassName,
		Subject:      opts.Subject,
		Location:     opts.Location,
	}, now)
	if err != nil {
		return err
	}

	if u.renderer != nil && len(u.publishers) > 0 {
		url, err := u.publishQR(ctx, s)
		if err != nil {
			return err
		}
		s.QRImageURL = url
		res.QRImageURL = url
	}

	doc, err := s.Document()
	if err != nil {
		return err
	}
	if err := u.upsert(ctx, res, s.Path(), doc); err != nil {
		return fmt.Errorf("seed: upsert session: %w", err)
	}
	res.SessionPath = s.Path()
	res.SessionID = s.ID
	res.SessionToken = s.SessionToken
	log.Printf("[seed] ✅ session upserted: %s (scheduled %s)", s.Path(), s.ScheduledAt.Format(time.RFC3339))

	pub, err := sessiondom.NewPublicSession(s)
	if err != nil {
		return err
	}
	if err := u.upsert(ctx, res, pub.Path(), pub.Document()); err != nil {
		return fmt.Errorf("seed: upsert public session: %w", err)
	}
	res.PublicSessionPath = pub.Path()
	log.Printf("[seed] ✅ public session upserted: %s -> %s", pub.Path(), pub.SessionPath)
	return nil
}

func (u *SeedUsecase) publishQR(ctx context.Context, s sessiondom.Session) (string, error) {
	payload, err := s.QRPayload()
	if err != nil {
		return "", err
	}
	png, err := u.renderer.RenderPNG(payload)
	if err != nil {
		return "", fmt.Errorf("seed: render qr: %w", err)
	}

	var url string
	for _, p := range u.publishers {
		loc, err := p.PublishQR(ctx, s.SessionToken, png)
		if err != nil {
			return "", fmt.Errorf("seed: publish qr: %w", err)
		}
		if loc != "" {
			log.Printf("[seed] session QR written: %s", loc)
			if url == "" && strings.HasPrefix(loc, "https://") {
				url = loc
			}
		}
	}
	return url, nil
}

func (u *SeedUsecase) upsert(ctx context.Context, res *SeedResult, path string, data map[string]any) error {
	if err := u.store.Upsert(ctx, path, data); err != nil {
		return err
	}
	res.Writes = append(res.Writes, path)
	return nil
}
