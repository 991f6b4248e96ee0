package api

import (
	"github.com/okrause/recallflow/internal/services"
)

// Server bundles the services exposed over HTTP.
type Server struct {
	ItemService   services.ItemService
	ReviewService services.ReviewService
	StatsService  services.StatsService
}
