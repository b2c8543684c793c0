package service

import (
	"context"
	"io"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// mockStore runs WithinTx callbacks against the same repo set as Repos, so
// services under test see one consistent mock surface.
type mockStore struct {
	repos repository.Repos
}

func (s *mockStore) Repos() repository.Repos { return s.repos }

func (s *mockStore) WithinTx(ctx context.Context, fn func(repository.Repos) error) error {
	return fn(s.repos)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByLoginIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockAgentRepo
type MockAgentRepo struct {
	mock.Mock
}

func (m *MockAgentRepo) Create(ctx context.Context, agent *domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}
func (m *MockAgentRepo) GetByID(ctx context.Context, id int32) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}
func (m *MockAgentRepo) IdentifierExists(ctx context.Context, identifier string) (bool, error) {
	args := m.Called(ctx, identifier)
	return args.Bool(0), args.Error(1)
}
func (m *MockAgentRepo) List(ctx context.Context, filter repository.AgentFilter, page, pageSize int32) ([]domain.Agent, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Agent), args.Get(1).(int32), args.Error(2)
}
func (m *MockAgentRepo) Update(ctx context.Context, agent *domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) SetStatus(ctx context.Context, id int32, status domain.EquipmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockEquipmentRepo) SetStatusAndCondition(ctx context.Context, id int32, status domain.EquipmentStatus, condition domain.EquipmentCondition) error {
	args := m.Called(ctx, id, status, condition)
	return args.Error(0)
}
func (m *MockEquipmentRepo) SetQRCodePath(ctx context.Context, id int32, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}
func (m *MockEquipmentRepo) List(ctx context.Context, filter repository.EquipmentFilter, page, pageSize int32) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}

// MockAssignmentRepo
type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAssignmentRepo) GetByID(ctx context.Context, id int32) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}
func (m *MockAssignmentRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}
func (m *MockAssignmentRepo) Close(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAssignmentRepo) List(ctx context.Context, filter repository.AssignmentFilter, page, pageSize int32) ([]domain.Assignment, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Assignment), args.Get(1).(int32), args.Error(2)
}

// MockReturnRepo
type MockReturnRepo struct {
	mock.Mock
}

func (m *MockReturnRepo) Create(ctx context.Context, r *domain.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReturnRepo) GetByAssignmentID(ctx context.Context, assignmentID int32) (*domain.Return, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}
func (m *MockReturnRepo) List(ctx context.Context, filter repository.ReturnFilter, page, pageSize int32) ([]domain.Return, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Return), args.Get(1).(int32), args.Error(2)
}

// MockIncidentRepo
type MockIncidentRepo struct {
	mock.Mock
}

func (m *MockIncidentRepo) Create(ctx context.Context, inc *domain.Incident) error {
	args := m.Called(ctx, inc)
	return args.Error(0)
}
func (m *MockIncidentRepo) GetByID(ctx context.Context, id int32) (*domain.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Incident), args.Error(1)
}
func (m *MockIncidentRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Incident), args.Error(1)
}
func (m *MockIncidentRepo) Close(ctx context.Context, id int32, closedAt time.Time) error {
	args := m.Called(ctx, id, closedAt)
	return args.Error(0)
}
func (m *MockIncidentRepo) List(ctx context.Context, filter repository.IncidentFilter, page, pageSize int32) ([]domain.Incident, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Incident), args.Get(1).(int32), args.Error(2)
}

// MockInviteRepo
type MockInviteRepo struct {
	mock.Mock
}

func (m *MockInviteRepo) Create(ctx context.Context, inv *domain.Invite) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInviteRepo) GetByToken(ctx context.Context, token string) (*domain.Invite, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invite), args.Error(1)
}
func (m *MockInviteRepo) TokenExists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
func (m *MockInviteRepo) MarkUsed(ctx context.Context, token string, usedAt time.Time) (bool, error) {
	args := m.Called(ctx, token, usedAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockInviteRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Invite, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Invite), args.Get(1).(int32), args.Error(2)
}
func (m *MockInviteRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Append(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditRepo) List(ctx context.Context, filter repository.AuditFilter, page, pageSize int32) ([]domain.AuditLog, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.AuditLog), args.Get(1).(int32), args.Error(2)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) EquipmentCountsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}
func (m *MockReportRepo) IncidentCountsByType(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}
func (m *MockReportRepo) IncidentCountsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}
func (m *MockReportRepo) AgentCountsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}
func (m *MockReportRepo) OverdueAssignments(ctx context.Context, now time.Time) ([]repository.OverdueAssignment, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]repository.OverdueAssignment), args.Error(1)
}

// MockBlobStorage
type MockBlobStorage struct {
	mock.Mock
}

func (m *MockBlobStorage) Save(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}
func (m *MockBlobStorage) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockBlobStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockBlobStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvite(ctx context.Context, email, link string, expiresAt time.Time) error {
	args := m.Called(ctx, email, link, expiresAt)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, agentName, serial string, expected time.Time) error {
	args := m.Called(ctx, email, agentName, serial, expected)
	return args.Error(0)
}

// MockIssuer
type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) GenerateAgentIdentifier(ctx context.Context, now time.Time) (string, error) {
	args := m.Called(ctx, now)
	return args.String(0), args.Error(1)
}
func (m *MockIssuer) GenerateInviteToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// newMockRepos builds a full mock repo set and returns it with the typed
// handles tests stub expectations on.
type mockRepos struct {
	users       *MockUserRepo
	agents      *MockAgentRepo
	equipment   *MockEquipmentRepo
	assignments *MockAssignmentRepo
	returns     *MockReturnRepo
	incidents   *MockIncidentRepo
	invites     *MockInviteRepo
	audit       *MockAuditRepo
	reports     *MockReportRepo
}

func newMockRepos() (*mockStore, *mockRepos) {
	m := &mockRepos{
		users:       new(MockUserRepo),
		agents:      new(MockAgentRepo),
		equipment:   new(MockEquipmentRepo),
		assignments: new(MockAssignmentRepo),
		returns:     new(MockReturnRepo),
		incidents:   new(MockIncidentRepo),
		invites:     new(MockInviteRepo),
		audit:       new(MockAuditRepo),
		reports:     new(MockReportRepo),
	}
	store := &mockStore{repos: repository.Repos{
		Users:       m.users,
		Agents:      m.agents,
		Equipment:   m.equipment,
		Assignments: m.assignments,
		Returns:     m.returns,
		Incidents:   m.incidents,
		Invites:     m.invites,
		Audit:       m.audit,
		Reports:     m.reports,
	}}
	return store, m
}
