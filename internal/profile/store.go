package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jesses-code-adventures/ndis-invoice/internal/database"
	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
)

// Key is the single storage key holding the seller profile.
const Key = "ndis_invoice_profile_v1"

const DefaultCountry = "Australia"

type Store struct {
	kv     database.KV
	logger *zap.Logger
}

func NewStore(kv database.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// Save overwrites any previously stored profile.
func (s *Store) Save(ctx context.Context, p models.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, Key, string(raw)); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	s.logger.Debug("profile saved", zap.String("key", Key))
	return nil
}

// Load returns the stored profile. A missing key, a corrupt or null value and
// a failed read all report false.
func (s *Store) Load(ctx context.Context) (models.Profile, bool) {
	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			s.logger.Warn("failed to read profile", zap.Error(err))
		}
		return models.Profile{}, false
	}

	// A stored null, or a record without a seller, reads as no profile.
	var stored struct {
		Seller *models.Seller `json:"seller"`
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("ignoring malformed profile", zap.String("key", Key), zap.Error(err))
		return models.Profile{}, false
	}
	if stored.Seller == nil {
		s.logger.Warn("ignoring profile without seller", zap.String("key", Key))
		return models.Profile{}, false
	}
	return models.Profile{Seller: *stored.Seller}, true
}

// Clear removes the stored profile. Clearing an absent profile succeeds.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	s.logger.Debug("profile cleared", zap.String("key", Key))
	return nil
}

// Empty returns a blank profile with the country preset.
func Empty() models.Profile {
	return models.Profile{
		Seller: models.Seller{Country: DefaultCountry},
	}
}
