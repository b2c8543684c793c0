package repository

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	// GetByLoginIdentifier resolves a login identifier that may be a username,
	// email, phone number or agent identifier.
	GetByLoginIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error)
	Update(ctx context.Context, user *domain.User) error
}

type AgentFilter struct {
	Status     domain.AgentStatus
	Identifier string
	Name       string
}

type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id int32) (*domain.Agent, error)
	IdentifierExists(ctx context.Context, identifier string) (bool, error)
	List(ctx context.Context, filter AgentFilter, page, pageSize int32) ([]domain.Agent, int32, error)
	Update(ctx context.Context, agent *domain.Agent) error
}

type EquipmentFilter struct {
	Type         domain.EquipmentType
	Status       domain.EquipmentStatus
	Condition    domain.EquipmentCondition
	SerialNumber string
	IMEI         string
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	// GetByIDForUpdate locks the equipment row for the rest of the enclosing
	// transaction. Only meaningful inside Store.WithinTx.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Equipment, error)
	// Update persists the mutable metadata (imei, status, condition).
	Update(ctx context.Context, eq *domain.Equipment) error
	SetStatus(ctx context.Context, id int32, status domain.EquipmentStatus) error
	SetStatusAndCondition(ctx context.Context, id int32, status domain.EquipmentStatus, condition domain.EquipmentCondition) error
	SetQRCodePath(ctx context.Context, id int32, path string) error
	List(ctx context.Context, filter EquipmentFilter, page, pageSize int32) ([]domain.Equipment, int32, error)
}

type AssignmentFilter struct {
	AgentID        int32
	EquipmentID    int32
	IsActive       *bool
	AssignedAfter  *time.Time
	AssignedBefore *time.Time
}

type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, id int32) (*domain.Assignment, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Assignment, error)
	Close(ctx context.Context, id int32) error
	List(ctx context.Context, filter AssignmentFilter, page, pageSize int32) ([]domain.Assignment, int32, error)
}

type ReturnFilter struct {
	Condition      domain.EquipmentCondition
	ReturnedAfter  *time.Time
	ReturnedBefore *time.Time
}

type ReturnRepository interface {
	Create(ctx context.Context, r *domain.Return) error
	GetByAssignmentID(ctx context.Context, assignmentID int32) (*domain.Return, error)
	List(ctx context.Context, filter ReturnFilter, page, pageSize int32) ([]domain.Return, int32, error)
}

type IncidentFilter struct {
	Type        domain.IncidentType
	Status      domain.IncidentStatus
	EquipmentID int32
	AgentID     int32
}

type IncidentRepository interface {
	Create(ctx context.Context, inc *domain.Incident) error
	GetByID(ctx context.Context, id int32) (*domain.Incident, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Incident, error)
	Close(ctx context.Context, id int32, closedAt time.Time) error
	List(ctx context.Context, filter IncidentFilter, page, pageSize int32) ([]domain.Incident, int32, error)
}

type InviteRepository interface {
	Create(ctx context.Context, inv *domain.Invite) error
	GetByToken(ctx context.Context, token string) (*domain.Invite, error)
	TokenExists(ctx context.Context, token string) (bool, error)
	// MarkUsed stamps used_at only if it is still null and reports whether the
	// stamp was applied. This is the compare-and-swap guarding double use.
	MarkUsed(ctx context.Context, token string, usedAt time.Time) (bool, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Invite, int32, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type AuditFilter struct {
	UserID     int32
	Action     string
	TargetType string
}

type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
	List(ctx context.Context, filter AuditFilter, page, pageSize int32) ([]domain.AuditLog, int32, error)
}

type ReportRepository interface {
	EquipmentCountsByStatus(ctx context.Context) ([]domain.StatusCount, error)
	IncidentCountsByType(ctx context.Context) ([]domain.StatusCount, error)
	IncidentCountsByStatus(ctx context.Context) ([]domain.StatusCount, error)
	AgentCountsByStatus(ctx context.Context) ([]domain.StatusCount, error)
	// OverdueAssignments lists active assignments whose expected return date
	// passed before the given moment, with the holding agent's contact email.
	OverdueAssignments(ctx context.Context, now time.Time) ([]OverdueAssignment, error)
}

type OverdueAssignment struct {
	AssignmentID     int32
	EquipmentSerial  string
	AgentIdentifier  string
	AgentEmail       string
	ExpectedReturnAt time.Time
}

// Repos bundles every repository bound to one database handle. Inside
// Store.WithinTx all repos share a single transaction.
type Repos struct {
	Users       UserRepository
	Agents      AgentRepository
	Equipment   EquipmentRepository
	Assignments AssignmentRepository
	Returns     ReturnRepository
	Incidents   IncidentRepository
	Invites     InviteRepository
	Audit       AuditRepository
	Reports     ReportRepository
}

// Store is the persistence entry point for services. Repos gives auto-commit
// access; WithinTx runs fn with every repository bound to one transaction,
// committing when fn returns nil and rolling back otherwise.
type Store interface {
	Repos() Repos
	WithinTx(ctx context.Context, fn func(Repos) error) error
}
