// Package extractor turns one site URL into at most one saved logo image.
package extractor

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rydeebs/getlogo/internal/fetch"
	"github.com/rydeebs/getlogo/internal/imaging"
	"github.com/rydeebs/getlogo/internal/logodetect"
)

// LogoRecord is the immutable result of one successful extraction.
type LogoRecord struct {
	SiteURL  string `json:"site_url"`
	Domain   string `json:"domain"`
	Filename string `json:"filename"`
	Format   string `json:"format"`
	Path     string `json:"path"`
}

// Extractor fetches a site's page, ranks its logo candidates and saves the
// first one that decodes. It holds no per-run state.
type Extractor struct {
	Client *fetch.Client
	OutDir string
}

// Extract resolves a single site URL to zero or one saved logo.
//
// A (nil, nil) return means no logo was found, which is an expected outcome
// rather than a fault. Only a failure to fetch or parse the page itself is
// returned as an error; candidate-level failures silently disqualify that
// candidate.
func (e *Extractor) Extract(ctx context.Context, siteURL string) (*LogoRecord, error) {
	pageURL := NormalizeURL(siteURL)
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	body, contentType, err := e.Client.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	cands, err := logodetect.FromHTML(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	for _, cand := range cands {
		ref, err := base.Parse(cand.Ref)
		if err != nil {
			log.Debug().Str("ref", cand.Ref).Msg("skipping unresolvable candidate")
			continue
		}
		raw, _, err := e.Client.Get(ctx, ref.String())
		if err != nil {
			log.Debug().Err(err).Str("candidate", ref.String()).Msg("candidate fetch failed")
			continue
		}
		logo, err := imaging.Normalize(raw)
		if err != nil {
			log.Debug().Err(err).Str("candidate", ref.String()).Msg("candidate not a decodable image")
			continue
		}

		rec, err := e.save(siteURL, base.Hostname(), logo)
		if err != nil {
			log.Debug().Err(err).Str("candidate", ref.String()).Msg("saving candidate failed")
			continue
		}
		return rec, nil
	}

	return nil, nil
}

func (e *Extractor) save(siteURL, domain string, logo imaging.Logo) (*LogoRecord, error) {
	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	filename := Filename(domain, logo.Ext)
	path := filepath.Join(e.OutDir, filename)
	if err := os.WriteFile(path, logo.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}
	return &LogoRecord{
		SiteURL:  siteURL,
		Domain:   domain,
		Filename: filename,
		Format:   logo.Format,
		Path:     path,
	}, nil
}

// NormalizeURL prefixes bare host URLs with https.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// Filename derives a collision-resistant name from the domain: dots become
// underscores and a short random hex suffix keeps repeated domains distinct
// within a run without a lookup table.
func Filename(domain, ext string) string {
	u := uuid.New()
	suffix := hex.EncodeToString(u[:])[:8]
	return fmt.Sprintf("%s_%s.%s", strings.ReplaceAll(domain, ".", "_"), suffix, ext)
}
