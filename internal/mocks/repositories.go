// Package mocks holds in-memory implementations of the repository and service
// interfaces for unit tests. They ignore the *gorm.DB argument.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transactor runs fn immediately with a nil transaction handle.
type Transactor struct {
	mu    sync.Mutex
	Calls int
}

func (t *Transactor) WithinTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(nil)
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type UserRepository struct {
	mu    sync.Mutex
	Users map[uuid.UUID]*entity.User
	Err   error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{Users: map[uuid.UUID]*entity.User{}}
}

func (r *UserRepository) Add(u *entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.Users[u.ID] = u
	return u
}

func (r *UserRepository) Create(_ context.Context, _ *gorm.DB, user *entity.User) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if u.Email == user.Email {
			return &repository.DuplicateKeyError{Constraint: repository.ConstraintUsersEmail}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.Users[user.ID] = user
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, _ *gorm.DB, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, r.Err
}

func (r *UserRepository) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Users[id], nil
}

func (r *UserRepository) UpdateFields(_ context.Context, _ *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "account_status":
			u.AccountStatus = v.(entity.AccountStatus)
		case "doctor_profile_id":
			u.DoctorProfileID = v.(*uuid.UUID)
		case "patient_profile_id":
			u.PatientProfileID = v.(*uuid.UUID)
		case "full_name":
			u.FullName = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "address":
			u.Address = v.(string)
		}
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(_ context.Context, _ *gorm.DB, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.Users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (r *UserRepository) List(_ context.Context, _ *gorm.DB, filter entity.UserFilter) ([]entity.User, int64, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, u := range r.Users {
		if filter.AccountStatus != "" && u.AccountStatus != filter.AccountStatus {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(u.FullName+" "+u.Email), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, filter.Limit, filter.Offset), int64(len(out)), nil
}

type PatientRepository struct {
	mu       sync.Mutex
	Patients map[uuid.UUID]*entity.Patient
	Err      error
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{Patients: map[uuid.UUID]*entity.Patient{}}
}

func (r *PatientRepository) Add(p *entity.Patient) *entity.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.Patients[p.ID] = p
	return p
}

func (r *PatientRepository) Create(_ context.Context, _ *gorm.DB, patient *entity.Patient) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Patients {
		if p.UserID == patient.UserID {
			return &repository.DuplicateKeyError{Constraint: repository.ConstraintPatientsUserID}
		}
	}
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.Patients[patient.ID] = patient
	return nil
}

func (r *PatientRepository) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Patients[id], nil
}

func (r *PatientRepository) FindByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PatientRepository) Update(_ context.Context, _ *gorm.DB, patient *entity.Patient) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Patients[patient.ID] = patient
	return nil
}

func (r *PatientRepository) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Patients[id]; !ok {
		return 0, nil
	}
	delete(r.Patients, id)
	return 1, nil
}

func (r *PatientRepository) List(_ context.Context, _ *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Patient
	for _, p := range r.Patients {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.PatientCode+" "+p.User.FullName), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatientCode < out[j].PatientCode })
	return page(out, filter.Limit, filter.Offset), int64(len(out)), nil
}

type DoctorRepository struct {
	mu      sync.Mutex
	Doctors map[uuid.UUID]*entity.Doctor
	Err     error
}

func NewDoctorRepository() *DoctorRepository {
	return &DoctorRepository{Doctors: map[uuid.UUID]*entity.Doctor{}}
}

func (r *DoctorRepository) Add(d *entity.Doctor) *entity.Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.Doctors[d.ID] = d
	return d
}

func (r *DoctorRepository) Create(_ context.Context, _ *gorm.DB, doctor *entity.Doctor) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.Doctors {
		if d.UserID == doctor.UserID {
			return &repository.DuplicateKeyError{Constraint: repository.ConstraintDoctorsUserID}
		}
		if d.MedicalLicenseNumber == doctor.MedicalLicenseNumber {
			return &repository.DuplicateKeyError{Constraint: repository.ConstraintDoctorsLicense}
		}
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	r.Doctors[doctor.ID] = doctor
	return nil
}

func (r *DoctorRepository) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.Doctors[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *DoctorRepository) FindByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.Doctors {
		if d.UserID == userID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *DoctorRepository) List(_ context.Context, _ *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Doctor
	for _, d := range r.Doctors {
		if filter.ApprovalStatus != "" && d.ApprovalStatus != filter.ApprovalStatus {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MedicalLicenseNumber < out[j].MedicalLicenseNumber })
	return page(out, filter.Limit, filter.Offset), int64(len(out)), nil
}

// UpdateDecision mirrors the conditional update on approval_status = pending.
func (r *DoctorRepository) UpdateDecision(_ context.Context, _ *gorm.DB, doctor *entity.Doctor) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.Doctors[doctor.ID]
	if !ok || stored.ApprovalStatus != entity.ApprovalStatusPending {
		return 0, nil
	}
	cp := *doctor
	r.Doctors[doctor.ID] = &cp
	return 1, nil
}

func (r *DoctorRepository) UpdateProfile(_ context.Context, _ *gorm.DB, doctor *entity.Doctor) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *doctor
	r.Doctors[doctor.ID] = &cp
	return nil
}

// RelationRepository enforces the same partial unique indexes as the schema:
// one active and one pending relation per doctor/patient pair.
type RelationRepository struct {
	mu        sync.Mutex
	Relations map[uuid.UUID]*entity.DoctorPatientRelation
	Err       error
}

func NewRelationRepository() *RelationRepository {
	return &RelationRepository{Relations: map[uuid.UUID]*entity.DoctorPatientRelation{}}
}

func (r *RelationRepository) Add(rel *entity.DoctorPatientRelation) *entity.DoctorPatientRelation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}
	cp := *rel
	r.Relations[rel.ID] = &cp
	return rel
}

// Get returns a copy of the stored row.
func (r *RelationRepository) Get(id uuid.UUID) *entity.DoctorPatientRelation {
	r.mu.Lock()
	defer r.mu.Unlock()
	rel, ok := r.Relations[id]
	if !ok {
		return nil
	}
	cp := *rel
	return &cp
}

func (r *RelationRepository) conflict(rel *entity.DoctorPatientRelation) error {
	for _, other := range r.Relations {
		if other.ID == rel.ID || other.DoctorID != rel.DoctorID || other.PatientID != rel.PatientID {
			continue
		}
		if other.Status == rel.Status {
			switch rel.Status {
			case entity.RelationStatusActive:
				return &repository.DuplicateKeyError{Constraint: repository.ConstraintRelationsActivePair}
			case entity.RelationStatusPending:
				return &repository.DuplicateKeyError{Constraint: repository.ConstraintRelationsPending}
			}
		}
	}
	return nil
}

func (r *RelationRepository) Create(_ context.Context, _ *gorm.DB, relation *entity.DoctorPatientRelation) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if relation.ID == uuid.Nil {
		relation.ID = uuid.New()
	}
	if err := r.conflict(relation); err != nil {
		return err
	}
	cp := *relation
	r.Relations[relation.ID] = &cp
	return nil
}

func (r *RelationRepository) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.DoctorPatientRelation, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Get(id), nil
}

func (r *RelationRepository) FindActive(_ context.Context, _ *gorm.DB, doctorID, patientID uuid.UUID) (*entity.DoctorPatientRelation, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rel := range r.Relations {
		if rel.DoctorID == doctorID && rel.PatientID == patientID && rel.Status == entity.RelationStatusActive {
			cp := *rel
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *RelationRepository) UpdateStatus(_ context.Context, _ *gorm.DB, relation *entity.DoctorPatientRelation, from entity.RelationStatus) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.Relations[relation.ID]
	if !ok || stored.Status != from {
		return 0, nil
	}
	if err := r.conflict(relation); err != nil {
		return 0, err
	}
	cp := *relation
	r.Relations[relation.ID] = &cp
	return 1, nil
}

func (r *RelationRepository) UpdatePermissions(_ context.Context, _ *gorm.DB, relation *entity.DoctorPatientRelation) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.Relations[relation.ID]; ok {
		stored.Permissions = relation.Permissions
		stored.LastUpdatedBy = relation.LastUpdatedBy
	}
	return nil
}

func (r *RelationRepository) List(_ context.Context, _ *gorm.DB, filter repository.RelationFilter) ([]entity.DoctorPatientRelation, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.DoctorPatientRelation
	for _, rel := range r.Relations {
		if filter.DoctorID != nil && rel.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && rel.PatientID != *filter.PatientID {
			continue
		}
		if filter.Status != "" && rel.Status != filter.Status {
			continue
		}
		out = append(out, *rel)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CountActive reports the active rows for a pair.
func (r *RelationRepository) CountActive(doctorID, patientID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rel := range r.Relations {
		if rel.DoctorID == doctorID && rel.PatientID == patientID && rel.Status == entity.RelationStatusActive {
			n++
		}
	}
	return n
}

type RoleRepository struct{}

func (RoleRepository) FindByName(_ context.Context, _ *gorm.DB, name string) (*entity.Role, error) {
	switch name {
	case entity.RoleAdmin:
		return &entity.Role{ID: entity.RoleIDAdmin, RoleName: name}, nil
	case entity.RoleUser:
		return &entity.Role{ID: entity.RoleIDUser, RoleName: name}, nil
	}
	return nil, nil
}

type AuditLogRepository struct {
	mu   sync.Mutex
	Logs []entity.AuditLog
	Err  error
}

func (r *AuditLogRepository) Create(_ context.Context, _ *gorm.DB, log *entity.AuditLog) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = int64(len(r.Logs) + 1)
	r.Logs = append(r.Logs, *log)
	return nil
}

func (r *AuditLogRepository) List(_ context.Context, _ *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.AuditLog
	for _, l := range r.Logs {
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.UserID != nil && (l.UserID == nil || *l.UserID != *filter.UserID) {
			continue
		}
		if filter.PatientID != nil && (l.PatientID == nil || *l.PatientID != *filter.PatientID) {
			continue
		}
		out = append(out, l)
	}
	return page(out, filter.Limit, filter.Offset), int64(len(out)), nil
}

// Actions lists recorded actions in order.
func (r *AuditLogRepository) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Logs))
	for _, l := range r.Logs {
		out = append(out, l.Action)
	}
	return out
}
