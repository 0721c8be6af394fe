package employee

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go-hrms/internal/document"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	StatusActive     = "Active"
	StatusOnLeave    = "On Leave"
	StatusTerminated = "Terminated"

	DocumentResume       = "resume"
	DocumentCertificates = "certificates"

	DirectoryCacheKey = "employees:directory"
	directoryCacheTTL = time.Hour

	codeCounter       = "employee_code"
	defaultDepartment = "General"
	defaultSalary     = 50000
	defaultPassword   = "password123"
	recentPayrollSize = 6

	dateLayout = "2006-01-02"
)

// Options tunes an employee service. Nil Cache, Outbox, Store or Renderer
// disable the features that need them.
type Options struct {
	DefaultPassword string
	PasswordCost    int
	Cache           *redis.Client
	Outbox          kafka.OutboxRepository
	Store           document.FileStore
	Renderer        document.Renderer
	Now             func() time.Time
}

type OfferLetterFile struct {
	Filename string
	Content  []byte
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	Directory(ctx context.Context) ([]DirectoryEntry, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (EmployeeResponse, error)
	Documents(ctx context.Context, id string) (EmployeeDocumentsResponse, error)
	UploadDocument(ctx context.Context, id, documentType, filename string, r io.Reader) (UploadDocumentResponse, error)
	IssueOfferLetter(ctx context.Context, id string) (string, error)
	OfferLetter(ctx context.Context, id string) (OfferLetterFile, error)
	SalaryDetails(ctx context.Context, id string) (SalaryDetailsResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	opts    Options
	mu      sync.Mutex
	sf      singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if opts.DefaultPassword == "" {
		opts.DefaultPassword = defaultPassword
	}
	if opts.PasswordCost == 0 {
		opts.PasswordCost = bcrypt.DefaultCost
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{db: db, repo: repo, counter: counter, opts: opts, logger: l}
}

// DefaultStructure splits a base salary 60/20/15/5.
func DefaultStructure(base int64) SalaryStructure {
	return SalaryStructure{
		Basic:      base * 60 / 100,
		HRA:        base * 20 / 100,
		Allowances: base * 15 / 100,
		Deductions: base * 5 / 100,
	}
}

// Create issues the offer letter inline when no outbox is configured;
// otherwise the employee lifecycle consumer does it.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	resp, err := s.create(ctx, req)
	if err != nil || s.opts.Outbox != nil || s.opts.Store == nil || s.opts.Renderer == nil {
		return resp, err
	}

	ref, err := s.IssueOfferLetter(ctx, resp.ID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("issue offer letter after create failed",
			zap.String("employee_id", resp.ID), zap.Error(err))
		return resp, nil
	}
	resp.Documents.OfferLetter = &ref
	return resp, nil
}

func (s *service) create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	meta := contextutil.ExtractMetadata(ctx)
	log.Debug("create employee requested", zap.String("email", req.Email))

	hireDate := truncateDay(s.opts.Now())
	if req.HireDate != "" {
		parsed, err := time.Parse(dateLayout, req.HireDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
		}
		hireDate = parsed
	}

	base := int64(defaultSalary)
	if req.BaseSalary != nil {
		base = *req.BaseSalary
	}
	structure := DefaultStructure(base)
	if req.SalaryStructure != nil {
		structure = SalaryStructure(*req.SalaryStructure)
	}
	department := strings.TrimSpace(req.Department)
	if department == "" {
		department = defaultDepartment
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.opts.DefaultPassword), s.opts.PasswordCost)
	if err != nil {
		log.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	next, err := s.counter.WithTx(tx).GetNextValue(ctx, codeCounter)
	if err != nil {
		log.Error("create employee generate code failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		ID:           uuid.New(),
		EmployeeCode: fmt.Sprintf("EMP%03d", next),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		JobTitle:     req.JobTitle,
		Department:   department,
		BaseSalary:   base,
		HireDate:     hireDate,
		Status:       StatusActive,
		Phone:        req.Phone,
		Address:      req.Address,
		Salary:       structure,
		Certificates: []string{},
	}

	if err := s.repo.WithTx(tx).Create(ctx, emp); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.opts.Outbox != nil {
		event, err := kafka.NewOutboxEvent(
			meta.RequestID,
			"employee",
			emp.ID.String(),
			events.EmployeeCreatedType,
			events.EmployeeCreatedTopic,
			events.EmployeeCreatedEvent{
				EventType:    events.EmployeeCreatedType,
				EmployeeID:   emp.ID.String(),
				EmployeeCode: emp.EmployeeCode,
				OccurredAt:   s.opts.Now().UTC(),
			},
		)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.opts.Outbox.WithTx(tx).Create(ctx, event); err != nil {
			log.Error("create employee outbox persist failed", zap.String("employee_id", emp.ID.String()), zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateDirectory(ctx)
	log.Info("create employee success",
		zap.String("employee_id", emp.ID.String()),
		zap.String("employee_code", emp.EmployeeCode),
	)
	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	resp := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		resp[i] = mapToResponse(emp)
	}
	return resp, nil
}

// Directory is served from redis when available; concurrent misses share
// one query.
func (s *service) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if rdb := s.opts.Cache; rdb != nil {
		if cached, err := rdb.Get(ctx, DirectoryCacheKey).Bytes(); err == nil {
			var resp []DirectoryEntry
			if json.Unmarshal(cached, &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DirectoryCacheKey, func() (any, error) {
		employees, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		resp := make([]DirectoryEntry, len(employees))
		for i, emp := range employees {
			resp[i] = mapToDirectory(emp)
		}

		if rdb := s.opts.Cache; rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := rdb.Set(ctx, DirectoryCacheKey, payload, directoryCacheTTL).Err(); err != nil {
					log.Warn("cache employee directory failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]DirectoryEntry), nil
}

func (s *service) invalidateDirectory(ctx context.Context) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Del(ctx, DirectoryCacheKey).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("invalidate employee directory cache failed",
			zap.String("key", DirectoryCacheKey),
			zap.Error(err),
		)
	}
}

func (s *service) find(ctx context.Context, repo Repository, id string) (*Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	emp, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return emp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	emp, err := s.find(ctx, s.repo, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*emp), nil
}

// Update applies only the fields present in req. A new salary without a
// structure leaves the existing structure untouched.
func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.find(ctx, s.repo, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		emp.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.JobTitle != nil {
		emp.JobTitle = *req.JobTitle
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.BaseSalary != nil {
		emp.BaseSalary = *req.BaseSalary
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Address != nil {
		emp.Address = *req.Address
	}
	if req.Status != nil {
		emp.Status = *req.Status
	}
	if req.SalaryStructure != nil {
		emp.Salary = SalaryStructure(*req.SalaryStructure)
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		log.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateDirectory(ctx)
	log.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	s.invalidateDirectory(ctx)
	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (EmployeeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.find(ctx, s.repo, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Address != nil {
		emp.Address = *req.Address
	}
	if req.ProfilePhoto != nil {
		emp.ProfilePhoto = req.ProfilePhoto
	}
	if err := s.repo.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateDirectory(ctx)
	return mapToResponse(*emp), nil
}

func (s *service) Documents(ctx context.Context, id string) (EmployeeDocumentsResponse, error) {
	emp, err := s.find(ctx, s.repo, id)
	if err != nil {
		return EmployeeDocumentsResponse{}, err
	}
	return EmployeeDocumentsResponse{
		EmployeeID:   emp.ID.String(),
		EmployeeName: emp.Name,
		Documents:    mapDocuments(*emp),
	}, nil
}

// UploadDocument stores the file and records it on the employee: a resume
// replaces the previous one, certificates accumulate.
func (s *service) UploadDocument(ctx context.Context, id, documentType, filename string, r io.Reader) (UploadDocumentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if s.opts.Store == nil {
		return UploadDocumentResponse{}, employeeerrors.ErrDocumentsUnavailable
	}

	var storeType string
	switch documentType {
	case DocumentResume:
		storeType = document.TypeResume
	case DocumentCertificates:
		storeType = document.TypeCertificate
	default:
		return UploadDocumentResponse{}, employeeerrors.ErrInvalidDocumentType
	}

	if _, err := s.find(ctx, s.repo, id); err != nil {
		return UploadDocumentResponse{}, err
	}

	stored, err := s.opts.Store.Save(ctx, storeType, filename, r)
	if err != nil {
		log.Warn("upload document store failed", zap.String("employee_id", id), zap.Error(err))
		return UploadDocumentResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.find(ctx, s.repo, id)
	if err != nil {
		return UploadDocumentResponse{}, err
	}
	if documentType == DocumentResume {
		emp.ResumeRef = &stored.Reference
	} else {
		emp.Certificates = append(emp.Certificates, stored.Reference)
	}
	if err := s.repo.Update(ctx, emp); err != nil {
		log.Error("upload document persist failed", zap.String("employee_id", id), zap.Error(err))
		return UploadDocumentResponse{}, mapRepositoryError(err)
	}

	log.Info("upload document success",
		zap.String("employee_id", id),
		zap.String("document_type", documentType),
		zap.String("reference", stored.Reference),
	)
	return UploadDocumentResponse{
		Reference:    stored.Reference,
		Filename:     stored.Filename,
		ContentType:  stored.ContentType,
		DocumentType: documentType,
		Message:      strings.ToUpper(documentType[:1]) + documentType[1:] + " uploaded successfully",
	}, nil
}

// IssueOfferLetter renders the offer letter from the employee record and
// archives it. An employee that already has one keeps it.
func (s *service) IssueOfferLetter(ctx context.Context, id string) (string, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if s.opts.Store == nil || s.opts.Renderer == nil {
		return "", employeeerrors.ErrDocumentsUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.find(ctx, s.repo, id)
	if err != nil {
		return "", err
	}
	if emp.OfferLetterRef != nil {
		return *emp.OfferLetterRef, nil
	}

	content, err := s.opts.Renderer.OfferLetter(document.OfferLetterData{
		EmployeeName: emp.Name,
		EmployeeCode: emp.EmployeeCode,
		JobTitle:     emp.JobTitle,
		Department:   emp.Department,
		HireDate:     emp.HireDate.Format(dateLayout),
		IssuedOn:     s.opts.Now().Format(dateLayout),
		BaseSalary:   emp.BaseSalary,
		Structure: []document.Line{
			{Label: "Basic", Amount: emp.Salary.Basic},
			{Label: "House rent allowance", Amount: emp.Salary.HRA},
			{Label: "Allowances", Amount: emp.Salary.Allowances},
			{Label: "Deductions", Amount: emp.Salary.Deductions},
		},
	})
	if err != nil {
		log.Error("issue offer letter render failed", zap.String("employee_id", id), zap.Error(err))
		return "", err
	}

	stored, err := s.opts.Store.Save(ctx, document.TypeOfferLetter, offerLetterFilename(*emp), bytes.NewReader(content))
	if err != nil {
		log.Error("issue offer letter store failed", zap.String("employee_id", id), zap.Error(err))
		return "", err
	}

	emp.OfferLetterRef = &stored.Reference
	if err := s.repo.Update(ctx, emp); err != nil {
		return "", mapRepositoryError(err)
	}

	log.Info("issue offer letter success", zap.String("employee_id", id), zap.String("reference", stored.Reference))
	return stored.Reference, nil
}

func (s *service) OfferLetter(ctx context.Context, id string) (OfferLetterFile, error) {
	emp, err := s.find(ctx, s.repo, id)
	if err != nil {
		return OfferLetterFile{}, err
	}
	if emp.OfferLetterRef == nil {
		return OfferLetterFile{}, employeeerrors.ErrOfferLetterNotFound
	}
	if s.opts.Store == nil {
		return OfferLetterFile{}, employeeerrors.ErrDocumentsUnavailable
	}

	rc, err := s.opts.Store.Open(ctx, *emp.OfferLetterRef)
	if err != nil {
		return OfferLetterFile{}, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return OfferLetterFile{}, err
	}
	return OfferLetterFile{Filename: offerLetterFilename(*emp), Content: content}, nil
}

func (s *service) SalaryDetails(ctx context.Context, id string) (SalaryDetailsResponse, error) {
	emp, err := s.find(ctx, s.repo, id)
	if err != nil {
		return SalaryDetailsResponse{}, err
	}
	records, err := s.repo.RecentPayroll(ctx, id, recentPayrollSize)
	if err != nil {
		return SalaryDetailsResponse{}, err
	}

	recent := make([]PayrollRecordResponse, len(records))
	for i, r := range records {
		recent[i] = PayrollRecordResponse{
			ID:              r.ID.String(),
			Month:           r.Month,
			GrossSalary:     r.GrossSalary,
			TotalDeductions: r.TotalDeductions,
			IncomeTax:       r.IncomeTax,
			NetSalary:       r.NetSalary,
			Status:          r.Status,
		}
		if r.PaidDate != nil {
			recent[i].PaidDate = r.PaidDate.Format(dateLayout)
		}
	}

	return SalaryDetailsResponse{
		EmployeeID:      emp.ID.String(),
		EmployeeName:    emp.Name,
		BaseSalary:      emp.BaseSalary,
		SalaryStructure: emp.Salary,
		RecentPayroll:   recent,
	}, nil
}

func offerLetterFilename(emp Employee) string {
	return fmt.Sprintf("offer_letter_%s.pdf", emp.EmployeeCode)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mapDocuments(emp Employee) DocumentsResponse {
	certificates := emp.Certificates
	if certificates == nil {
		certificates = []string{}
	}
	return DocumentsResponse{
		Resume:       emp.ResumeRef,
		Certificates: certificates,
		OfferLetter:  emp.OfferLetterRef,
	}
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              emp.ID.String(),
		EmployeeCode:    emp.EmployeeCode,
		Name:            emp.Name,
		Email:           emp.Email,
		JobTitle:        emp.JobTitle,
		Department:      emp.Department,
		BaseSalary:      emp.BaseSalary,
		HireDate:        emp.HireDate.Format(dateLayout),
		Status:          emp.Status,
		Phone:           emp.Phone,
		Address:         emp.Address,
		ProfilePhoto:    emp.ProfilePhoto,
		SalaryStructure: emp.Salary,
		Documents:       mapDocuments(emp),
	}
}

func mapToDirectory(emp Employee) DirectoryEntry {
	return DirectoryEntry{
		ID:           emp.ID.String(),
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Email:        emp.Email,
		JobTitle:     emp.JobTitle,
		Department:   emp.Department,
		HireDate:     emp.HireDate.Format(dateLayout),
		Status:       emp.Status,
		Phone:        emp.Phone,
		ProfilePhoto: emp.ProfilePhoto,
	}
}
