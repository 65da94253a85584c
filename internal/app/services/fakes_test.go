package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/app/repositories"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/eduflow/eduflow/internal/pkg/email"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users      map[string]*models.User
	nextID     int64
	getUserErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) addUser(fullName, emailAddr string, role models.Role, department string) *models.User {
	user := &models.User{
		ID:         r.nextID,
		FullName:   fullName,
		Email:      emailAddr,
		Role:       role,
		Department: department,
		CreatedAt:  time.Now(),
	}
	r.nextID++
	r.users[emailAddr] = user
	return user
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) (int64, error) {
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return user.ID, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, emailAddr string) (*models.User, error) {
	if r.getUserErr != nil {
		return nil, r.getUserErr
	}
	if u, ok := r.users[emailAddr]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, emailAddr string) (bool, error) {
	_, ok := r.users[emailAddr]
	return ok, nil
}

func (r *fakeUserRepo) GetAllUsers(_ context.Context) ([]*models.User, error) {
	users := []*models.User{}
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	for e, u := range r.users {
		if u.ID == user.ID {
			delete(r.users, e)
			r.users[user.Email] = user
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id int64) error {
	for e, u := range r.users {
		if u.ID == id {
			delete(r.users, e)
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) CountByDepartment(_ context.Context) ([]repositories.DepartmentCount, error) {
	byDept := map[string]int64{}
	order := []string{}
	for _, u := range r.users {
		if u.Department == "" {
			continue
		}
		if _, seen := byDept[u.Department]; !seen {
			order = append(order, u.Department)
		}
		byDept[u.Department]++
	}
	counts := []repositories.DepartmentCount{}
	for _, dept := range order {
		counts = append(counts, repositories.DepartmentCount{Department: dept, Count: byDept[dept]})
	}
	return counts, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context) (map[models.Role]int64, error) {
	counts := map[models.Role]int64{}
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

type fakeResetCodeRepo struct {
	codes    map[string]*models.PasswordResetCode
	userRepo *fakeUserRepo
}

func newFakeResetCodeRepo(userRepo *fakeUserRepo) *fakeResetCodeRepo {
	return &fakeResetCodeRepo{codes: map[string]*models.PasswordResetCode{}, userRepo: userRepo}
}

func (r *fakeResetCodeRepo) Upsert(_ context.Context, emailAddr, code string, expiresAt time.Time) error {
	r.codes[emailAddr] = &models.PasswordResetCode{Email: emailAddr, Code: code, ExpiresAt: expiresAt}
	return nil
}

func (r *fakeResetCodeRepo) Get(_ context.Context, emailAddr string) (*models.PasswordResetCode, error) {
	if c, ok := r.codes[emailAddr]; ok {
		return c, nil
	}
	return nil, apperrors.ErrResetCodeNotFound
}

func (r *fakeResetCodeRepo) Delete(_ context.Context, emailAddr string) error {
	delete(r.codes, emailAddr)
	return nil
}

func (r *fakeResetCodeRepo) ConsumeWithPasswordUpdate(_ context.Context, emailAddr, passwordHash string) error {
	if _, ok := r.codes[emailAddr]; !ok {
		return apperrors.ErrResetCodeNotFound
	}
	u, ok := r.userRepo.users[emailAddr]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	delete(r.codes, emailAddr)
	return nil
}

type fakeAssignmentRepo struct {
	assignments []*models.StudentAssignment
	nextID      int64
	createErr   error
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{nextID: 1}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *models.StudentAssignment) error {
	if r.createErr != nil {
		return r.createErr
	}
	a.ID = r.nextID
	r.nextID++
	a.UploadedAt = time.Now()
	r.assignments = append(r.assignments, a)
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id int64) (*models.StudentAssignment, error) {
	for _, a := range r.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) GetByStudentEmail(_ context.Context, emailAddr string) ([]*models.StudentAssignment, error) {
	result := []*models.StudentAssignment{}
	for _, a := range r.assignments {
		if a.StudentEmail == emailAddr {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeAssignmentRepo) GetByProfessorEmail(_ context.Context, emailAddr string) ([]*models.StudentAssignment, error) {
	result := []*models.StudentAssignment{}
	for _, a := range r.assignments {
		if a.ProfessorEmail == emailAddr {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeAssignmentRepo) UpdateDecision(_ context.Context, id int64, status models.StudentAssignmentStatus, feedback *string) (*models.StudentAssignment, error) {
	for _, a := range r.assignments {
		if a.ID == id {
			a.Status = status
			a.Feedback = feedback
			return a, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

type fakeForwardedRepo struct {
	assignments []*models.ForwardedAssignment
	nextID      int64
}

func newFakeForwardedRepo() *fakeForwardedRepo {
	return &fakeForwardedRepo{nextID: 1}
}

func (r *fakeForwardedRepo) Create(_ context.Context, a *models.ForwardedAssignment) error {
	a.ID = r.nextID
	r.nextID++
	a.UploadedAt = time.Now()
	r.assignments = append(r.assignments, a)
	return nil
}

func (r *fakeForwardedRepo) GetByID(_ context.Context, id int64) (*models.ForwardedAssignment, error) {
	for _, a := range r.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (r *fakeForwardedRepo) GetByHodEmail(_ context.Context, hodEmail string) ([]*models.ForwardedAssignment, error) {
	result := []*models.ForwardedAssignment{}
	for _, a := range r.assignments {
		if a.HodEmail == hodEmail {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeForwardedRepo) UpdateStatus(_ context.Context, id int64, status models.ForwardedAssignmentStatus) (*models.ForwardedAssignment, error) {
	for _, a := range r.assignments {
		if a.ID == id {
			a.Status = status
			return a, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

type fakeDepartmentRepo struct {
	departments []*models.Department
	nextID      int64
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{nextID: 1}
}

func (r *fakeDepartmentRepo) Create(_ context.Context, d *models.Department) error {
	d.ID = r.nextID
	r.nextID++
	d.CreatedAt = time.Now()
	r.departments = append(r.departments, d)
	return nil
}

func (r *fakeDepartmentRepo) GetAll(_ context.Context) ([]*models.Department, error) {
	result := []*models.Department{}
	result = append(result, r.departments...)
	return result, nil
}

func (r *fakeDepartmentRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, d := range r.departments {
		if d.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// recordingEmailService captures sent messages
type recordingEmailService struct {
	sent    []*email.Message
	failure error
}

func (s *recordingEmailService) Send(_ context.Context, msg *email.Message) error {
	if s.failure != nil {
		return s.failure
	}
	s.sent = append(s.sent, msg)
	return nil
}

// recordingNotifier captures broadcast events
type recordingNotifier struct {
	events   []string
	payloads []interface{}
}

func (n *recordingNotifier) Notify(eventName string, payload interface{}) {
	n.events = append(n.events, eventName)
	n.payloads = append(n.payloads, payload)
}

// fakeFileStorage returns a fixed path without touching the filesystem
type fakeFileStorage struct {
	saved   int
	deleted []string
}

func (f *fakeFileStorage) SaveFile(_ *multipart.FileHeader) (string, error) {
	f.saved++
	return "uploads/test-file.pdf", nil
}

func (f *fakeFileStorage) SaveFileWithPath(_ *multipart.FileHeader, _ string) (string, error) {
	f.saved++
	return "uploads/test-file.pdf", nil
}

func (f *fakeFileStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}
