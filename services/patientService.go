package services

import (
	"context"
	"encoding/json"

	"HFRegistry/models"

	"github.com/pkg/errors"
)

// ErrMalformedImport is returned when an import payload does not parse as an
// array of patient records. Nothing is persisted in that case.
var ErrMalformedImport = errors.New("invalid import payload: expected an array of patient records")

// PatientStore is the persistence collaborator. It receives finalized
// records and never re-derives anything. GetByID returns (nil, nil) for an
// unknown id.
type PatientStore interface {
	GetAll(ctx context.Context) ([]models.Patient, error)
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	Save(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, patients []models.Patient) error
}

// PatientService orchestrates record edits: it loads the prior state, runs
// the admission derivation and hands the finalized record to the store. The
// store confirms every write before callers see the new state, so a failed
// save leaves the registry unchanged.
type PatientService struct {
	store      PatientStore
	admissions *AdmissionService
}

func NewPatientService(store PatientStore, admissions *AdmissionService) *PatientService {
	return &PatientService{store: store, admissions: admissions}
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.store.GetAll(ctx)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.store.GetByID(ctx, id)
}

// Save validates and finalizes the incoming record against its stored
// predecessor, persists it, and returns the finalized form.
func (s *PatientService) Save(ctx context.Context, incoming models.Patient) (models.Patient, error) {
	var previous *models.Patient
	if incoming.ID != "" {
		stored, err := s.store.GetByID(ctx, incoming.ID)
		if err != nil {
			return models.Patient{}, errors.Wrap(err, "failed to load previous record")
		}
		previous = stored
	}

	finalized, err := s.admissions.Finalize(previous, incoming)
	if err != nil {
		return models.Patient{}, err
	}

	if err := s.store.Save(ctx, &finalized); err != nil {
		return models.Patient{}, err
	}
	return finalized, nil
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Import parses a backup payload and replaces the whole collection with it.
// The operation is all-or-nothing: a malformed payload or a failed bulk
// write leaves the existing records in place.
func (s *PatientService) Import(ctx context.Context, payload []byte) ([]models.Patient, error) {
	var patients []models.Patient
	if err := json.Unmarshal(payload, &patients); err != nil || patients == nil {
		return nil, ErrMalformedImport
	}

	if err := s.store.ReplaceAll(ctx, patients); err != nil {
		return nil, err
	}
	return patients, nil
}
