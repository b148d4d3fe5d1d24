package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"HFRegistry/cache"
	"HFRegistry/database"
	"HFRegistry/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	registryCacheKey    = "registry_cache"
	patientCachePattern = "patient_cache:*"
	patientCacheExpiry  = 24 * time.Hour
)

// PatientRepository is the authoritative patient store: Postgres rows with a
// Redis snapshot cache in front. Mutations run under a Redis SETNX lock so
// no two derivations can race against the same stored record, and the cache
// is only invalidated after the database confirms the write.
type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

// GetAll returns the full collection, newest first.
func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cached, err := r.cache.Get(ctx, registryCacheKey)
	if err == nil {
		var patients []models.Patient
		if err := json.Unmarshal([]byte(cached), &patients); err == nil {
			return patients, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get registry snapshot from cache: %v", err)
	}

	var patients []models.Patient
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load patients")
	}

	if snapshot, err := json.Marshal(patients); err == nil {
		if err := r.cache.Set(ctx, registryCacheKey, snapshot, patientCacheExpiry); err != nil {
			log.Printf("Failed to cache registry snapshot: %v", err)
		}
	}

	return patients, nil
}

// GetByID returns one record, or (nil, nil) when the id is unknown.
func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := patientCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cached), &patient); err == nil {
			return &patient, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to load patient")
	}

	if body, err := json.Marshal(patient); err == nil {
		if err := r.cache.Set(ctx, cacheKey, body, patientCacheExpiry); err != nil {
			log.Printf("Failed to cache patient: %v", err)
		}
	}

	return &patient, nil
}

// Save upserts a finalized record keyed by id. The caller supplies the
// record exactly as it should be persisted; nothing is re-derived here.
func (r *PatientRepository) Save(ctx context.Context, patient *models.Patient) error {
	unlock, err := r.acquireLock(ctx, lockKey(patient.ID))
	if err != nil {
		return err
	}
	defer unlock()

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(patient).Error
	if err != nil {
		return errors.Wrap(err, "failed to save patient")
	}

	return r.invalidate(ctx, patient.ID)
}

// Delete removes one record permanently. There is no soft delete.
func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	unlock, err := r.acquireLock(ctx, lockKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	if err := r.db.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete patient")
	}

	return r.invalidate(ctx, id)
}

// ReplaceAll swaps the whole collection in one transaction, used by import.
// Either every record lands or none does.
func (r *PatientRepository) ReplaceAll(ctx context.Context, patients []models.Patient) error {
	unlock, err := r.acquireLock(ctx, "registry_lock:import")
	if err != nil {
		return err
	}
	defer unlock()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Patient{}).Error; err != nil {
			return err
		}
		if len(patients) == 0 {
			return nil
		}
		return tx.CreateInBatches(patients, 100).Error
	})
	if err != nil {
		return errors.Wrap(err, "failed to replace registry")
	}

	if err := r.cache.DeletePattern(ctx, patientCachePattern); err != nil {
		return errors.Wrap(err, "failed to invalidate patient cache")
	}
	return r.cache.Delete(ctx, registryCacheKey)
}

// acquireLock takes the named SETNX lock with retries and returns its
// release function.
func (r *PatientRepository) acquireLock(ctx context.Context, key string) (func(), error) {
	lockValue := uuid.New().String()

	const maxRetries = 3
	const retryDelay = 2 * time.Second

	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, key, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}

	return func() {
		if err := database.ReleaseLock(ctx, key, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}, nil
}

func (r *PatientRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, patientCacheKey(id)); err != nil {
		return errors.Wrap(err, "failed to invalidate patient cache")
	}
	return r.cache.Delete(ctx, registryCacheKey)
}

func patientCacheKey(id string) string {
	return fmt.Sprintf("patient_cache:%s", id)
}

func lockKey(id string) string {
	return fmt.Sprintf("patient_lock:%s", id)
}
