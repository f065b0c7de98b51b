package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prodib01/BAYLOR-CDC/internal/app"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
	"github.com/prodib01/BAYLOR-CDC/internal/logger"
)

type FacilitatorService interface {
	Create(ctx context.Context, f domain.Facilitator) (domain.Facilitator, error)
	Get(ctx context.Context, id string) (domain.Facilitator, error)
	List(ctx context.Context) ([]domain.Facilitator, error)
	Update(ctx context.Context, f domain.Facilitator) (domain.Facilitator, error)
	Delete(ctx context.Context, id string) error
}

type EventService interface {
	Create(ctx context.Context, e domain.Event) (domain.Event, error)
	Get(ctx context.Context, id string) (domain.Event, error)
	Update(ctx context.Context, id string, change func(*domain.Event) error) (domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type AgeGroupService interface {
	Create(ctx context.Context, g domain.AgeGroup) (domain.AgeGroup, error)
	Get(ctx context.Context, id string) (domain.AgeGroup, error)
	List(ctx context.Context) ([]domain.AgeGroup, error)
	Update(ctx context.Context, g domain.AgeGroup) (domain.AgeGroup, error)
	Delete(ctx context.Context, id string) error
}

type ParticipantService interface {
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)
	Get(ctx context.Context, id string) (domain.Participant, error)
	Update(ctx context.Context, p domain.Participant) (domain.Participant, error)
	Delete(ctx context.Context, id string) error
}

type MaterialService interface {
	Create(ctx context.Context, m domain.Material) (domain.Material, error)
	Get(ctx context.Context, id string) (domain.Material, error)
	List(ctx context.Context) ([]domain.Material, error)
	Update(ctx context.Context, id string, change func(*domain.Material) error) (domain.Material, error)
	Delete(ctx context.Context, id string) error
}

type AllocationService interface {
	Allocate(ctx context.Context, in app.AllocateInput) (domain.MaterialEvent, error)
	Get(ctx context.Context, id string) (domain.MaterialEvent, error)
	Update(ctx context.Context, id string, change func(*app.AllocateInput) error) (domain.MaterialEvent, error)
	Delete(ctx context.Context, id string) error
}

type AttendanceService interface {
	Create(ctx context.Context, a domain.Attendance) (domain.Attendance, error)
	Get(ctx context.Context, id string) (domain.Attendance, error)
	Update(ctx context.Context, a domain.Attendance) (domain.Attendance, error)
	Delete(ctx context.Context, id string) error
}

// Projector renders the nested read views returned by the event,
// participant, attendance and allocation endpoints.
type Projector interface {
	Event(ctx context.Context, id string) (domain.EventView, error)
	Events(ctx context.Context) ([]domain.EventView, error)
	Participant(ctx context.Context, id string) (domain.ParticipantView, error)
	Participants(ctx context.Context) ([]domain.ParticipantView, error)
	Attendance(ctx context.Context, id string) (domain.AttendanceView, error)
	Attendances(ctx context.Context) ([]domain.AttendanceView, error)
	MaterialEvent(ctx context.Context, id string) (domain.MaterialEventView, error)
	MaterialEvents(ctx context.Context) ([]domain.MaterialEventView, error)
}

type AuthService interface {
	Authenticator
	Login(ctx context.Context, username, password string) (domain.Session, error)
}

// Services groups everything the router dispatches to.
type Services struct {
	Facilitators FacilitatorService
	Events       EventService
	AgeGroups    AgeGroupService
	Participants ParticipantService
	Materials    MaterialService
	Allocations  AllocationService
	Attendances  AttendanceService
	Projector    Projector
	Auth         AuthService
}

type routerConfig struct {
	log     *logger.Logger
	health  Pinger
	metrics MetricsHandler
}

type RouterOption func(*routerConfig)

// WithLogger logs the causes of internal errors to log.
func WithLogger(log *logger.Logger) RouterOption {
	return func(c *routerConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHealthCheck makes /health report the reachability of p.
func WithHealthCheck(p Pinger) RouterOption {
	return func(c *routerConfig) {
		c.health = p
	}
}

// MetricsHandler observes requests and serves the exposition endpoint.
type MetricsHandler interface {
	RequestObserver
	Handler() http.Handler
}

// WithMetrics observes every routed request and serves /metrics.
func WithMetrics(m MetricsHandler) RouterOption {
	return func(c *routerConfig) {
		c.metrics = m
	}
}

type handler struct {
	svc Services
	log *logger.Logger
}

// writeError writes the response for err and logs the cause of 5xx.
func (h *handler) writeError(w http.ResponseWriter, err error) {
	if status := writeDomainError(w, err); status >= http.StatusInternalServerError {
		h.log.Error("request failed", "error", err)
	}
}

// NewRouter builds the API router. Every path also matches with a trailing
// slash. All /api routes except login require a token.
func NewRouter(svc Services, opts ...RouterOption) *mux.Router {
	cfg := routerConfig{log: logger.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}
	h := &handler{svc: svc, log: cfg.log}

	r := mux.NewRouter()
	r.NotFoundHandler = h.notFound()
	r.MethodNotAllowedHandler = h.methodNotAllowed(r)
	if cfg.metrics != nil {
		r.Use(observeRequests(cfg.metrics))
		r.Handle("/metrics", cfg.metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", HealthHandler(cfg.health)).Methods(http.MethodGet)

	route(r, "/api/login", h.login, http.MethodPost)

	h.resource(r, "/api/facilitators", resourceHandlers{
		list: h.listFacilitators, create: h.createFacilitator,
		get: h.getFacilitator, put: h.putFacilitator, patch: h.patchFacilitator, delete: h.deleteFacilitator,
	})
	h.resource(r, "/api/events", resourceHandlers{
		list: h.listEvents, create: h.createEvent,
		get: h.getEvent, put: h.putEvent, patch: h.patchEvent, delete: h.deleteEvent,
	})
	h.resource(r, "/api/agegroups", resourceHandlers{
		list: h.listAgeGroups, create: h.createAgeGroup,
		get: h.getAgeGroup, put: h.putAgeGroup, patch: h.patchAgeGroup, delete: h.deleteAgeGroup,
	})
	h.resource(r, "/api/participants", resourceHandlers{
		list: h.listParticipants, create: h.createParticipant,
		get: h.getParticipant, put: h.putParticipant, patch: h.patchParticipant, delete: h.deleteParticipant,
	})
	h.resource(r, "/api/materials", resourceHandlers{
		list: h.listMaterials, create: h.createMaterial,
		get: h.getMaterial, put: h.putMaterial, patch: h.patchMaterial, delete: h.deleteMaterial,
	})
	h.resource(r, "/api/materialevents", resourceHandlers{
		list: h.listMaterialEvents, create: h.createMaterialEvent,
		get: h.getMaterialEvent, put: h.putMaterialEvent, patch: h.patchMaterialEvent, delete: h.deleteMaterialEvent,
	})
	h.resource(r, "/api/participantattendances", resourceHandlers{
		list: h.listAttendances, create: h.createAttendance,
		get: h.getAttendance, put: h.putAttendance, patch: h.patchAttendance, delete: h.deleteAttendance,
	})

	return r
}

type resourceHandlers struct {
	list, create, get, put, patch, delete http.HandlerFunc
}

func (h *handler) resource(r *mux.Router, base string, rh resourceHandlers) {
	item := base + "/{id}"
	route(r, base, h.requireToken(rh.list), http.MethodGet)
	route(r, base, h.requireToken(rh.create), http.MethodPost)
	route(r, item, h.requireToken(rh.get), http.MethodGet)
	route(r, item, h.requireToken(rh.put), http.MethodPut)
	route(r, item, h.requireToken(rh.patch), http.MethodPatch)
	route(r, item, h.requireToken(rh.delete), http.MethodDelete)
}

func route(r *mux.Router, path string, fn http.HandlerFunc, method string) {
	r.HandleFunc(path, fn).Methods(method)
	r.HandleFunc(path+"/", fn).Methods(method)
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}
