package services

import (
	"context"

	"github.com/okandemir/studentdesk/internal/app/models"
	"github.com/okandemir/studentdesk/internal/app/models/dto"
	"github.com/okandemir/studentdesk/internal/app/repositories"
	"github.com/okandemir/studentdesk/internal/pkg/apperrors"
)

// StudentService sits between the transport layer and the repository. It
// owns the preconditions the repository assumes: fully-formed create
// payloads and the exists-check before delete.
type StudentService interface {
	List(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	studentRepo repositories.IStudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo repositories.IStudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo}
}

func (s *studentService) List(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.List(ctx)
}

func (s *studentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	// Binding tags already enforce these; repeated here because the
	// repository contract assumes a fully-formed payload regardless of
	// how the service was reached.
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.EnrollmentNumber == "" {
		return nil, apperrors.NewInvalidInputError("firstName, lastName, email and enrollmentNumber are required")
	}

	student := &models.Student{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		EnrollmentNumber: req.EnrollmentNumber,
		DateOfBirth:      req.DateOfBirth,
		Address:          req.Address,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

func (s *studentService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	return s.studentRepo.Update(ctx, id, req.Fields())
}

// Delete confirms the student exists before removing it. The repository
// delete itself is idempotent; the not-found signal belongs to this
// boundary.
func (s *studentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.studentRepo.Delete(ctx, id)
}
