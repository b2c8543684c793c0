package http

import (
	"net/http"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/security"
	"equiptrack-backend/internal/service"
	"equiptrack-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Services bundles everything the router exposes.
type Services struct {
	Auth        service.AuthService
	Equipment   service.EquipmentService
	Assignments service.AssignmentService
	Returns     service.ReturnService
	Incidents   service.IncidentService
	Agents      service.AgentService
	Invites     service.InviteService
	Audit       service.AuditService
	Reports     service.ReportService
}

// NewRouter wires all handlers. Role gates: login and registration are open,
// reads need any authenticated actor, workflow writes need ADMIN or
// SUPERVISOR, account and invite management needs ADMIN.
func NewRouter(svcs Services, tokens security.TokenManager, blobs storage.BlobStorage, maxUploadMB int64) *mux.Router {
	authHandler := NewAuthHandler(svcs.Auth)
	equipmentHandler := NewEquipmentHandler(svcs.Equipment)
	assignmentHandler := NewAssignmentHandler(svcs.Assignments)
	returnHandler := NewReturnHandler(svcs.Returns)
	incidentHandler := NewIncidentHandler(svcs.Incidents)
	agentHandler := NewAgentHandler(svcs.Agents)
	inviteHandler := NewInviteHandler(svcs.Invites)
	auditHandler := NewAuditHandler(svcs.Audit)
	reportHandler := NewReportHandler(svcs.Reports)
	uploadHandler := NewUploadHandler(blobs, maxUploadMB)

	auth := NewAuthMiddleware(tokens)
	staff := RequireRole(domain.RoleAdmin, domain.RoleSupervisor)
	admin := RequireRole(domain.RoleAdmin)

	r := mux.NewRouter()

	// Open endpoints
	open := r.PathPrefix("/api").Subrouter()
	open.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	open.HandleFunc("/registration/{token}", inviteHandler.Register).Methods("POST")
	open.HandleFunc("/register", inviteHandler.RegisterOpen).Methods("POST")

	// Authenticated endpoints
	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Authenticate)

	api.HandleFunc("/equipments", equipmentHandler.List).Methods("GET")
	api.Handle("/equipments", staff(http.HandlerFunc(equipmentHandler.Create))).Methods("POST")
	api.HandleFunc("/equipments/{id}", equipmentHandler.Get).Methods("GET")
	api.Handle("/equipments/{id}", staff(http.HandlerFunc(equipmentHandler.Update))).Methods("PUT")
	api.Handle("/equipments/{id}/retire", admin(http.HandlerFunc(equipmentHandler.Retire))).Methods("POST")

	api.HandleFunc("/assignments", assignmentHandler.List).Methods("GET")
	api.Handle("/assignments", staff(http.HandlerFunc(assignmentHandler.Create))).Methods("POST")
	api.HandleFunc("/assignments/{id}", assignmentHandler.Get).Methods("GET")

	api.HandleFunc("/returns", returnHandler.List).Methods("GET")
	api.Handle("/returns", staff(http.HandlerFunc(returnHandler.Create))).Methods("POST")

	api.HandleFunc("/incidents", incidentHandler.List).Methods("GET")
	api.Handle("/incidents", staff(http.HandlerFunc(incidentHandler.Report))).Methods("POST")
	api.HandleFunc("/incidents/{id}", incidentHandler.Get).Methods("GET")
	api.Handle("/incidents/{id}/close", staff(http.HandlerFunc(incidentHandler.Close))).Methods("POST")

	api.HandleFunc("/agents", agentHandler.List).Methods("GET")
	api.Handle("/agents", staff(http.HandlerFunc(agentHandler.Create))).Methods("POST")
	api.HandleFunc("/agents/{id}", agentHandler.Get).Methods("GET")
	api.Handle("/agents/{id}", staff(http.HandlerFunc(agentHandler.Update))).Methods("PUT")

	api.Handle("/invites", admin(http.HandlerFunc(inviteHandler.List))).Methods("GET")
	api.Handle("/invites", admin(http.HandlerFunc(inviteHandler.Issue))).Methods("POST")

	api.Handle("/logs", staff(http.HandlerFunc(auditHandler.List))).Methods("GET")
	api.Handle("/reports", staff(http.HandlerFunc(reportHandler.Get))).Methods("GET")

	api.HandleFunc("/uploads", uploadHandler.Upload).Methods("POST")
	api.HandleFunc("/uploads", uploadHandler.Download).Methods("GET")

	return r
}
