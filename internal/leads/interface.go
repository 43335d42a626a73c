package leads

import (
	"context"

	"leadfinder/pkg/domain"
)

//go:generate mockgen -package mockleads -source=interface.go -destination=mock/mockleads.go *
type Runner interface {
	Run(ctx context.Context, req domain.RunRequest) ([]domain.Row, error)
	PlacesReport(ctx context.Context, query string, maxResults int, verify bool) (*domain.Report, error)
}
