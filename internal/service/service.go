package service

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type EquipmentService interface {
	// Create registers new equipment and renders its QR label. The returned
	// warning is non-empty when the label could not be stored; the equipment
	// record itself is already committed at that point.
	Create(ctx context.Context, actor domain.Actor, eq *domain.Equipment) (string, error)
	Get(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, actor domain.Actor, id int32, imei *string, condition domain.EquipmentCondition) (*domain.Equipment, error)
	Retire(ctx context.Context, actor domain.Actor, id int32) (*domain.Equipment, error)
	List(ctx context.Context, filter repository.EquipmentFilter, page, pageSize int32) ([]domain.Equipment, int32, error)
}

type CreateAssignmentInput struct {
	EquipmentID        int32
	AgentID            int32
	AssignedAt         *time.Time // defaults to now; set to record the actual handover moment
	ExpectedReturnAt   *time.Time
	SignaturePath      string
	EquipmentPhotoPath string
	Notes              string
}

type AssignmentService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateAssignmentInput) (*domain.Assignment, error)
	Get(ctx context.Context, id int32) (*domain.Assignment, error)
	List(ctx context.Context, filter repository.AssignmentFilter, page, pageSize int32) ([]domain.Assignment, int32, error)
}

type CreateReturnInput struct {
	AssignmentID       int32
	Condition          domain.EquipmentCondition
	ReturnedAt         *time.Time // defaults to now
	Notes              string
	EquipmentPhotoPath string
}

type ReturnService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateReturnInput) (*domain.Return, error)
	List(ctx context.Context, filter repository.ReturnFilter, page, pageSize int32) ([]domain.Return, int32, error)
}

type ReportIncidentInput struct {
	EquipmentID int32
	AgentID     *int32
	Type        domain.IncidentType
	Description string
	ReportedAt  *time.Time // defaults to now
}

type IncidentService interface {
	Report(ctx context.Context, actor domain.Actor, in ReportIncidentInput) (*domain.Incident, error)
	Close(ctx context.Context, actor domain.Actor, id int32) (*domain.Incident, error)
	Get(ctx context.Context, id int32) (*domain.Incident, error)
	List(ctx context.Context, filter repository.IncidentFilter, page, pageSize int32) ([]domain.Incident, int32, error)
}

type AgentService interface {
	// Create issues the agent identifier when none is supplied.
	Create(ctx context.Context, actor domain.Actor, agent *domain.Agent) error
	Get(ctx context.Context, id int32) (*domain.Agent, error)
	Update(ctx context.Context, actor domain.Actor, agent *domain.Agent) error
	List(ctx context.Context, filter repository.AgentFilter, page, pageSize int32) ([]domain.Agent, int32, error)
}

type IssueInviteInput struct {
	Email string
	Phone string
	Notes string
	TTL   time.Duration
}

type RegistrationInput struct {
	Username       string
	Password       string
	Identifier     string // optional; issued when empty
	Email          string
	Phone          string
	FirstName      string
	LastName       string
	Address        string
	IDNumber       string
	IDDocumentPath string
	ProjectType    string
}

type InviteService interface {
	// Issue creates a single-use invite and returns it with the registration
	// link. Delivery by email is best-effort.
	Issue(ctx context.Context, actor domain.Actor, in IssueInviteInput) (*domain.Invite, string, error)
	// Register consumes the invite token and creates the account plus the
	// agent profile in one transaction.
	Register(ctx context.Context, token string, in RegistrationInput, ip string) (*domain.User, *domain.Agent, error)
	// RegisterOpen is the invite-less self-registration path.
	RegisterOpen(ctx context.Context, in RegistrationInput, ip string) (*domain.User, *domain.Agent, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Invite, int32, error)
}

type AuthService interface {
	// Login resolves the identifier as username, email, phone or agent
	// identifier and returns access and refresh tokens.
	Login(ctx context.Context, identifier, password, ip string) (*domain.User, string, string, error)
}

type AuditService interface {
	List(ctx context.Context, filter repository.AuditFilter, page, pageSize int32) ([]domain.AuditLog, int32, error)
}

type ReportService interface {
	Build(ctx context.Context) (*domain.Report, error)
	// ExportExcel renders the full equipment and agent inventories as an
	// Excel workbook.
	ExportExcel(ctx context.Context) ([]byte, error)
}

type EmailService interface {
	SendInvite(ctx context.Context, email, link string, expiresAt time.Time) error
	SendReturnReminder(ctx context.Context, email, agentName, serial string, expected time.Time) error
}

// IdentifierIssuer generates the unique strings handed out by the system.
type IdentifierIssuer interface {
	GenerateAgentIdentifier(ctx context.Context, now time.Time) (string, error)
	GenerateInviteToken(ctx context.Context) (string, error)
}
