// Package service implements save/load of context records with governance
// stamping: every save recomputes validation status, quality snapshot,
// content hash, and version
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"brandgate/internal/core/score"
	"brandgate/internal/core/ucr"
	"brandgate/internal/core/validate"
	perr "brandgate/internal/platform/errors"
	"brandgate/internal/platform/logger"
	"brandgate/internal/services/contexts/domain"
)

// Service saves and loads context records
type Service struct {
	Repo domain.RepoPort
}

// New builds the service
func New(repo domain.RepoPort) *Service { return &Service{Repo: repo} }

// Save stamps governance onto cfg and upserts it. The stamp recomputes
// validation status and quality snapshot, rehashes content, and bumps the
// version past any stored record. Returns the stamped configuration
func (s *Service) Save(ctx context.Context, cfg ucr.Configuration) (ucr.Configuration, error) {
	if cfg.ID == "" {
		return ucr.Configuration{}, perr.Invalidf("context id is required")
	}

	version := 1
	if prev, err := s.Repo.Get(ctx, cfg.ID); err == nil {
		version = prev.Config.Governance.ContextVersion + 1
	} else if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return ucr.Configuration{}, err
	}

	hash, err := ContentHash(cfg)
	if err != nil {
		return ucr.Configuration{}, err
	}

	res := validate.Check(cfg)
	snap := score.Compute(cfg).Snapshot()

	cfg.Governance.ValidationStatus = res.Status
	cfg.Governance.QualityScore = &snap
	cfg.Governance.ContextHash = hash
	cfg.Governance.ContextVersion = version

	rec := domain.Record{ID: cfg.ID, Config: cfg, UpdatedAt: time.Now().UTC()}
	if err := s.Repo.Put(ctx, rec); err != nil {
		return ucr.Configuration{}, err
	}

	logger.C(ctx).Info().
		Str("context_id", cfg.ID).
		Int("version", version).
		Str("status", string(res.Status)).
		Msg("context saved")
	return cfg, nil
}

// Load returns the stored configuration by id
func (s *Service) Load(ctx context.Context, id string) (ucr.Configuration, error) {
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return ucr.Configuration{}, err
	}
	return rec.Config, nil
}

// ContentHash hashes the configuration content with governance zeroed, so the
// hash tracks what the record says, not how it was stamped
func ContentHash(cfg ucr.Configuration) (string, error) {
	cfg.Governance = ucr.Governance{HumanVerified: cfg.Governance.HumanVerified}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeJSON, "hash context")
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
