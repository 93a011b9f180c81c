package transport

import (
	"context"

	"github.com/easygo-schools/backend/internal/domain/schooling"
	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/easygo-schools/backend/internal/domain/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransportService handles bus routes and student enrollments
type TransportService struct {
	routeRepo   transport.RouteRepository
	studentRepo schooling.StudentRepository
	logger      *zap.Logger
}

// NewTransportService creates a new transport service
func NewTransportService(routeRepo transport.RouteRepository, studentRepo schooling.StudentRepository, logger *zap.Logger) *TransportService {
	return &TransportService{
		routeRepo:   routeRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// StopRequest is one pickup stop in a route request
type StopRequest struct {
	Name       string `json:"name" binding:"required"`
	PickupTime string `json:"pickup_time" binding:"required"`
}

// CreateRouteRequest carries a new transport route
type CreateRouteRequest struct {
	RouteCode     string          `json:"route_code"`
	RouteName     string          `json:"route_name" binding:"required"`
	Capacity      int             `json:"capacity" binding:"required"`
	DepartureTime string          `json:"departure_time" binding:"required"`
	ReturnTime    string          `json:"return_time" binding:"required"`
	MonthlyFee    decimal.Decimal `json:"monthly_fee"`
	Stops         []StopRequest   `json:"stops"`
}

// CreateRoute registers a new route with its pickup stops
func (s *TransportService) CreateRoute(ctx context.Context, req CreateRouteRequest) (*transport.Route, error) {
	route, err := transport.NewRoute(req.RouteCode, req.RouteName, req.Capacity, req.DepartureTime, req.ReturnTime, req.MonthlyFee)
	if err != nil {
		return nil, err
	}
	for _, stop := range req.Stops {
		if err := route.AddStop(stop.Name, stop.PickupTime); err != nil {
			return nil, err
		}
	}

	exists, err := s.routeRepo.ExistsByCode(ctx, route.RouteCode, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A route with this code already exists")
	}

	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, err
	}
	s.logger.Info("route created",
		zap.String("route_code", route.RouteCode),
		zap.Int("capacity", route.Capacity),
	)
	return route, nil
}

// AddStop appends a pickup stop to a route
func (s *TransportService) AddStop(ctx context.Context, id uuid.UUID, req StopRequest) (*transport.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := route.AddStop(req.Name, req.PickupTime); err != nil {
		return nil, err
	}
	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// EnrollStudentRequest carries a student enrollment on a route
type EnrollStudentRequest struct {
	StudentID  uuid.UUID       `json:"student_id" binding:"required"`
	StopName   string          `json:"stop_name" binding:"required"`
	MonthlyFee decimal.Decimal `json:"monthly_fee"`
}

// EnrollStudent adds an enrolled student to a route at a pickup stop
func (s *TransportService) EnrollStudent(ctx context.Context, routeID uuid.UUID, req EnrollStudentRequest) (*transport.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if !student.Status.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only enrolled students can use school transport")
	}

	if err := route.AddStudent(student.ID, req.StopName, req.MonthlyFee); err != nil {
		return nil, err
	}
	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, err
	}
	s.logger.Info("student enrolled on route",
		zap.String("route_code", route.RouteCode),
		zap.String("massar_code", student.MassarCode),
		zap.String("stop", req.StopName),
	)
	return route, nil
}

// RemoveStudentRequest carries the removal reason
type RemoveStudentRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	Reason    string    `json:"reason"`
}

// RemoveStudent ends a student's enrollment on a route
func (s *TransportService) RemoveStudent(ctx context.Context, routeID uuid.UUID, req RemoveStudentRequest) (*transport.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if err := route.RemoveStudent(req.StudentID, req.Reason); err != nil {
		return nil, err
	}
	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// SuspendRoute takes a route out of service
func (s *TransportService) SuspendRoute(ctx context.Context, id uuid.UUID) (*transport.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := route.Suspend(); err != nil {
		return nil, err
	}
	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, err
	}
	s.logger.Info("route suspended", zap.String("route_code", route.RouteCode))
	return route, nil
}

// ResumeRoute puts a suspended route back in service
func (s *TransportService) ResumeRoute(ctx context.Context, id uuid.UUID) (*transport.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := route.Resume(); err != nil {
		return nil, err
	}
	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// GetRoute fetches one route by ID
func (s *TransportService) GetRoute(ctx context.Context, id uuid.UUID) (*transport.Route, error) {
	return s.routeRepo.FindByID(ctx, id)
}

// ListRoutes returns routes matching the filter
func (s *TransportService) ListRoutes(ctx context.Context, filter transport.RouteFilter) ([]*transport.Route, int64, error) {
	return s.routeRepo.FindAll(ctx, filter)
}
