package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthMetricRepository struct {
	mu      sync.Mutex
	Metrics []entity.HealthMetric
	Err     error
}

func (r *HealthMetricRepository) Create(_ context.Context, _ *gorm.DB, metric *entity.HealthMetric) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if metric.ID == uuid.Nil {
		metric.ID = uuid.New()
	}
	r.Metrics = append(r.Metrics, *metric)
	return nil
}

func (r *HealthMetricRepository) List(_ context.Context, _ *gorm.DB, filter entity.HealthMetricFilter) ([]entity.HealthMetric, int64, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.HealthMetric
	for _, m := range r.Metrics {
		if m.PatientID != filter.PatientID {
			continue
		}
		if filter.MetricType != "" && m.MetricType != filter.MetricType {
			continue
		}
		if filter.From != nil && m.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Timestamp.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return page(out, filter.Limit, filter.Offset), int64(len(out)), nil
}

func (r *HealthMetricRepository) Latest(_ context.Context, _ *gorm.DB, patientID uuid.UUID, types []entity.MetricType, limit int) ([]entity.HealthMetric, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[entity.MetricType]bool{}
	for _, t := range types {
		wanted[t] = true
	}
	var out []entity.HealthMetric
	for _, m := range r.Metrics {
		if m.PatientID == patientID && (len(wanted) == 0 || wanted[m.MetricType]) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return page(out, limit, 0), nil
}

func (r *HealthMetricRepository) Trend(_ context.Context, _ *gorm.DB, patientID uuid.UUID, metricType entity.MetricType, from, to time.Time) ([]entity.HealthMetric, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.HealthMetric
	for _, m := range r.Metrics {
		if m.PatientID != patientID || m.MetricType != metricType {
			continue
		}
		if m.Timestamp.Before(from) || m.Timestamp.After(to) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

type MedicalRecordRepository struct {
	mu      sync.Mutex
	Records map[uuid.UUID]*entity.MedicalRecord
	Err     error
}

func NewMedicalRecordRepository() *MedicalRecordRepository {
	return &MedicalRecordRepository{Records: map[uuid.UUID]*entity.MedicalRecord{}}
}

func (r *MedicalRecordRepository) Create(_ context.Context, _ *gorm.DB, record *entity.MedicalRecord) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	cp := *record
	r.Records[record.ID] = &cp
	return nil
}

func (r *MedicalRecordRepository) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.Records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *MedicalRecordRepository) List(_ context.Context, _ *gorm.DB, filter entity.MedicalRecordFilter) ([]entity.MedicalRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.MedicalRecord
	for _, rec := range r.Records {
		if rec.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && (rec.DoctorID == nil || *rec.DoctorID != *filter.DoctorID) {
			continue
		}
		if filter.Status != "" && rec.RecordStatus != filter.Status {
			continue
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitDate.After(out[j].VisitDate) })
	return page(out, filter.Limit, filter.Offset), int64(len(out)), nil
}

func (r *MedicalRecordRepository) UpdateStatus(_ context.Context, _ *gorm.DB, record *entity.MedicalRecord) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.Records[record.ID]; ok {
		stored.RecordStatus = record.RecordStatus
		stored.LastUpdatedBy = record.LastUpdatedBy
	}
	return nil
}

type SymptomLogRepository struct {
	mu   sync.Mutex
	Logs []entity.SymptomLog
}

func (r *SymptomLogRepository) Create(_ context.Context, _ *gorm.DB, log *entity.SymptomLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	r.Logs = append(r.Logs, *log)
	return nil
}

func (r *SymptomLogRepository) ListByPatient(_ context.Context, _ *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.SymptomLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.SymptomLog
	for _, l := range r.Logs {
		if l.PatientID == patientID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return page(out, limit, offset), int64(len(out)), nil
}

type HealthGoalRepository struct {
	mu    sync.Mutex
	Goals map[uuid.UUID]*entity.HealthGoal
}

func NewHealthGoalRepository() *HealthGoalRepository {
	return &HealthGoalRepository{Goals: map[uuid.UUID]*entity.HealthGoal{}}
}

func (r *HealthGoalRepository) Create(_ context.Context, _ *gorm.DB, goal *entity.HealthGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	cp := *goal
	r.Goals[goal.ID] = &cp
	return nil
}

func (r *HealthGoalRepository) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.HealthGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.Goals[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *HealthGoalRepository) ListByPatient(_ context.Context, _ *gorm.DB, patientID uuid.UUID, activeOnly bool) ([]entity.HealthGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.HealthGoal
	for _, g := range r.Goals {
		if g.PatientID == patientID && (!activeOnly || g.IsActive) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TargetDate.Before(out[j].TargetDate) })
	return out, nil
}

func (r *HealthGoalRepository) Update(_ context.Context, _ *gorm.DB, goal *entity.HealthGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *goal
	r.Goals[goal.ID] = &cp
	return nil
}

type EmergencyContactRepository struct {
	mu       sync.Mutex
	Contacts map[uuid.UUID]*entity.EmergencyContact
	Err      error
}

func NewEmergencyContactRepository() *EmergencyContactRepository {
	return &EmergencyContactRepository{Contacts: map[uuid.UUID]*entity.EmergencyContact{}}
}

func (r *EmergencyContactRepository) Create(_ context.Context, _ *gorm.DB, contact *entity.EmergencyContact) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if contact.IsPrimary {
		for _, other := range r.Contacts {
			if other.PatientID == contact.PatientID && other.IsPrimary {
				return &repository.DuplicateKeyError{Constraint: repository.ConstraintEmergencyContactPrimary}
			}
		}
	}
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	cp := *contact
	r.Contacts[contact.ID] = &cp
	return nil
}

func (r *EmergencyContactRepository) ListByPatient(_ context.Context, _ *gorm.DB, patientID uuid.UUID) ([]entity.EmergencyContact, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.EmergencyContact
	for _, c := range r.Contacts {
		if c.PatientID == patientID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *EmergencyContactRepository) ClearPrimary(_ context.Context, _ *gorm.DB, patientID uuid.UUID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Contacts {
		if c.PatientID == patientID {
			c.IsPrimary = false
		}
	}
	return nil
}

func (r *EmergencyContactRepository) Delete(_ context.Context, _ *gorm.DB, patientID, id uuid.UUID) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Contacts[id]
	if !ok || c.PatientID != patientID {
		return 0, nil
	}
	delete(r.Contacts, id)
	return 1, nil
}
