package transport

import (
	"fmt"
	"strings"
	"time"

	"github.com/easygo-schools/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RouteStatus represents whether a transport route is in service
type RouteStatus string

const (
	RouteStatusActive    RouteStatus = "ACTIVE"
	RouteStatusSuspended RouteStatus = "SUSPENDED"
)

// String returns the string representation of RouteStatus
func (s RouteStatus) String() string {
	return string(s)
}

// Stop is one pickup point on a route
type Stop struct {
	shared.BaseEntity
	RouteID    uuid.UUID `json:"route_id"`
	Name       string    `json:"name"`
	PickupTime string    `json:"pickup_time"` // HH:MM, school-local
	Sequence   int       `json:"sequence"`
}

// EnrollmentStatus tracks a student's enrollment on a route
type EnrollmentStatus string

const (
	EnrollmentStatusActive  EnrollmentStatus = "ACTIVE"
	EnrollmentStatusRemoved EnrollmentStatus = "REMOVED"
)

// Enrollment links a student to a route and pickup stop
type Enrollment struct {
	shared.BaseEntity
	RouteID       uuid.UUID        `json:"route_id"`
	StudentID     uuid.UUID        `json:"student_id"`
	StopName      string           `json:"stop_name"`
	MonthlyFee    decimal.Decimal  `json:"monthly_fee"`
	Status        EnrollmentStatus `json:"status"`
	EnrolledAt    time.Time        `json:"enrolled_at"`
	RemovedAt     *time.Time       `json:"removed_at"`
	RemovalReason string           `json:"removal_reason"`
}

// Route represents a school transport route aggregate root.
// Active enrollments may never exceed the vehicle capacity.
type Route struct {
	shared.BaseAggregateRoot
	RouteCode     string          `json:"route_code"`
	RouteName     string          `json:"route_name"`
	Capacity      int             `json:"capacity"`
	DepartureTime string          `json:"departure_time"` // HH:MM
	ReturnTime    string          `json:"return_time"`    // HH:MM
	MonthlyFee    decimal.Decimal `json:"monthly_fee"`
	OperatingDays string          `json:"operating_days"`
	Status        RouteStatus     `json:"status"`
	Stops         []Stop          `json:"stops"`
	Enrollments   []Enrollment    `json:"enrollments"`
}

// NewRoute creates an active transport route
func NewRoute(routeCode, routeName string, capacity int, departureTime, returnTime string, monthlyFee decimal.Decimal) (*Route, error) {
	if routeName == "" {
		return nil, shared.NewDomainError("INVALID_ROUTE_NAME", "Route name is required")
	}
	if routeCode == "" {
		// Original convention: RT- prefix plus the first letters of the name.
		prefix := strings.ToUpper(routeName)
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		routeCode = "RT-" + prefix
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Capacity must be positive")
	}
	dep, err := parseClock(departureTime)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TIME", "Departure time must be HH:MM")
	}
	ret, err := parseClock(returnTime)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TIME", "Return time must be HH:MM")
	}
	if !ret.After(dep) {
		return nil, shared.NewDomainError("INVALID_TIME", "Return time must be after departure time")
	}
	if monthlyFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Monthly fee cannot be negative")
	}

	return &Route{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RouteCode:         strings.ToUpper(routeCode),
		RouteName:         routeName,
		Capacity:          capacity,
		DepartureTime:     departureTime,
		ReturnTime:        returnTime,
		MonthlyFee:        monthlyFee,
		OperatingDays:     "Monday to Friday",
		Status:            RouteStatusActive,
	}, nil
}

// AddStop appends a pickup stop to the route
func (r *Route) AddStop(name, pickupTime string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_STOP", "Stop name is required")
	}
	if _, err := parseClock(pickupTime); err != nil {
		return shared.NewDomainError("INVALID_TIME", "Pickup time must be HH:MM")
	}
	for _, stop := range r.Stops {
		if stop.Name == name {
			return shared.NewDomainError("DUPLICATE_STOP", fmt.Sprintf("Stop %s already exists on this route", name))
		}
	}
	r.Stops = append(r.Stops, Stop{
		BaseEntity: shared.NewBaseEntity(),
		RouteID:    r.ID,
		Name:       name,
		PickupTime: pickupTime,
		Sequence:   len(r.Stops) + 1,
	})
	r.Touch()
	return nil
}

// ActiveEnrollmentCount returns the number of students currently on the route
func (r *Route) ActiveEnrollmentCount() int {
	count := 0
	for _, e := range r.Enrollments {
		if e.Status == EnrollmentStatusActive {
			count++
		}
	}
	return count
}

// UtilizationPercent returns occupied seats over capacity as a percentage
func (r *Route) UtilizationPercent() decimal.Decimal {
	if r.Capacity == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(r.ActiveEnrollmentCount())).
		Div(decimal.NewFromInt(int64(r.Capacity))).
		Mul(decimal.NewFromInt(100)).Round(2)
}

// AddStudent enrolls a student at a pickup stop. A zero fee falls back to the
// route's monthly fee.
func (r *Route) AddStudent(studentID uuid.UUID, stopName string, monthlyFee decimal.Decimal) error {
	if r.Status != RouteStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Students can only be added to an active route")
	}
	if studentID == uuid.Nil {
		return shared.NewDomainError("INVALID_STUDENT", "Student is required")
	}
	if r.ActiveEnrollmentCount() >= r.Capacity {
		return shared.NewDomainError("CAPACITY_EXCEEDED", fmt.Sprintf("Route capacity (%d) exceeded", r.Capacity))
	}
	if !r.hasStop(stopName) {
		return shared.NewDomainError("UNKNOWN_STOP", fmt.Sprintf("Stop %s is not on this route", stopName))
	}
	for _, e := range r.Enrollments {
		if e.StudentID == studentID && e.Status == EnrollmentStatusActive {
			return shared.NewDomainError("ALREADY_ENROLLED", "Student is already enrolled on this route")
		}
	}
	if monthlyFee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Monthly fee cannot be negative")
	}
	if monthlyFee.IsZero() {
		monthlyFee = r.MonthlyFee
	}

	r.Enrollments = append(r.Enrollments, Enrollment{
		BaseEntity: shared.NewBaseEntity(),
		RouteID:    r.ID,
		StudentID:  studentID,
		StopName:   stopName,
		MonthlyFee: monthlyFee,
		Status:     EnrollmentStatusActive,
		EnrolledAt: time.Now(),
	})
	r.Touch()
	return nil
}

// RemoveStudent ends a student's enrollment, recording the reason
func (r *Route) RemoveStudent(studentID uuid.UUID, reason string) error {
	for i := range r.Enrollments {
		e := &r.Enrollments[i]
		if e.StudentID == studentID && e.Status == EnrollmentStatusActive {
			now := time.Now()
			e.Status = EnrollmentStatusRemoved
			e.RemovedAt = &now
			e.RemovalReason = reason
			e.Touch()
			r.Touch()
			return nil
		}
	}
	return shared.NewDomainError("NOT_ENROLLED", "Student is not enrolled on this route")
}

// Suspend takes the route out of service
func (r *Route) Suspend() error {
	if r.Status == RouteStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Route is already suspended")
	}
	r.Status = RouteStatusSuspended
	r.Touch()
	return nil
}

// Resume puts a suspended route back in service
func (r *Route) Resume() error {
	if r.Status == RouteStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Route is already active")
	}
	r.Status = RouteStatusActive
	r.Touch()
	return nil
}

func (r *Route) hasStop(name string) bool {
	for _, stop := range r.Stops {
		if stop.Name == name {
			return true
		}
	}
	return false
}

func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}

// RouteFilter defines filtering options for route list queries
type RouteFilter struct {
	Search   string
	Status   RouteStatus
	Page     int
	PageSize int
}
