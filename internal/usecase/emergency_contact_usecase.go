package usecase

import (
	"context"
	"strings"

	"healthtech-api/internal/converter"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/internal/service"
	"healthtech-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmergencyContactUsecase manages the caller's own emergency contacts.
type EmergencyContactUsecase interface {
	Create(ctx context.Context, req *dto.CreateEmergencyContactRequest) (*dto.EmergencyContactResponse, error)
	List(ctx context.Context) ([]dto.EmergencyContactResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type emergencyContactUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	tx          repository.Transactor
	contactRepo repository.EmergencyContactRepository
	audit       service.AuditService
}

func NewEmergencyContactUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tx repository.Transactor,
	contactRepo repository.EmergencyContactRepository,
	audit service.AuditService,
) EmergencyContactUsecase {
	return &emergencyContactUsecase{
		db:          db,
		log:         log,
		tx:          tx,
		contactRepo: contactRepo,
		audit:       audit,
	}
}

// Create stores a new contact. A new primary contact demotes the previous one.
func (u *emergencyContactUsecase) Create(ctx context.Context, req *dto.CreateEmergencyContactRequest) (*dto.EmergencyContactResponse, error) {
	actor, err := patientActor(ctx)
	if err != nil {
		return nil, err
	}
	patientID := *actor.PatientID

	contact := &entity.EmergencyContact{
		PatientID:              patientID,
		FullName:               strings.TrimSpace(req.FullName),
		Relationship:           entity.ContactRelationship(req.Relationship),
		Phone:                  req.Phone,
		Email:                  strings.ToLower(strings.TrimSpace(req.Email)),
		Address:                datatypes.NewJSONType(req.Address),
		IsPrimary:              req.IsPrimary,
		NotificationsEnabled:   true,
		PreferredContactMethod: entity.ContactMethodPhone,
		CanViewMedicalInfo:     req.CanViewMedicalInfo,
		CanMakeDecisions:       req.CanMakeDecisions,
		Notes:                  req.Notes,
	}
	if req.NotificationsEnabled != nil {
		contact.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.PreferredContactMethod != "" {
		contact.PreferredContactMethod = entity.ContactMethod(req.PreferredContactMethod)
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if contact.IsPrimary {
			if err := u.contactRepo.ClearPrimary(ctx, tx, patientID); err != nil {
				u.log.Warnf("Failed to clear primary contact of patient %s: %+v", patientID, err)
				return apperror.Internal(err)
			}
		}
		if err := u.contactRepo.Create(ctx, tx, contact); err != nil {
			if repository.IsDuplicateOn(err, repository.ConstraintEmergencyContactPrimary) {
				return ErrPrimaryContactChanged
			}
			u.log.Warnf("Failed to create emergency contact: %+v", err)
			return apperror.Internal(err)
		}
		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:    &actor.UserID,
			PatientID: &patientID,
			Action:    entity.AuditActionContactCreate,
			Entity:    "emergency_contact",
			EntityID:  contact.ID.String(),
			NewValue:  converter.EmergencyContactToResponse(contact),
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.WithField("patient_id", patientID).Info("Emergency contact added")
	return converter.EmergencyContactToResponse(contact), nil
}

func (u *emergencyContactUsecase) List(ctx context.Context) ([]dto.EmergencyContactResponse, error) {
	patientID, err := requirePatient(ctx)
	if err != nil {
		return nil, err
	}

	contacts, err := u.contactRepo.ListByPatient(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list emergency contacts: %+v", err)
		return nil, apperror.Internal(err)
	}
	return converter.EmergencyContactsToResponses(contacts), nil
}

// Delete removes one of the caller's contacts. Contacts of other patients
// are reported as not found.
func (u *emergencyContactUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := patientActor(ctx)
	if err != nil {
		return err
	}
	patientID := *actor.PatientID

	return u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		rows, err := u.contactRepo.Delete(ctx, tx, patientID, id)
		if err != nil {
			u.log.Warnf("Failed to delete emergency contact %s: %+v", id, err)
			return apperror.Internal(err)
		}
		if rows == 0 {
			return ErrEmergencyContactNotFound
		}
		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:    &actor.UserID,
			PatientID: &patientID,
			Action:    entity.AuditActionContactDelete,
			Entity:    "emergency_contact",
			EntityID:  id.String(),
		})
	})
}
