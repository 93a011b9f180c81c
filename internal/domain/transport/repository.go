package transport

import (
	"context"

	"github.com/google/uuid"
)

// RouteRepository defines persistence operations for transport routes
type RouteRepository interface {
	Create(ctx context.Context, route *Route) error
	Update(ctx context.Context, route *Route) error
	FindByID(ctx context.Context, id uuid.UUID) (*Route, error)
	FindByCode(ctx context.Context, routeCode string) (*Route, error)
	FindAll(ctx context.Context, filter RouteFilter) ([]*Route, int64, error)
	ExistsByCode(ctx context.Context, routeCode string, excludeID uuid.UUID) (bool, error)
}
