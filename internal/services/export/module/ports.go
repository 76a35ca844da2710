package module

import (
	"context"

	"orderexport/internal/services/export/domain"
	"orderexport/internal/services/export/service"
)

// Ports returns the run port for callers outside HTTP
func (m *Module) Ports() any { return m.ports }

// adaptRunPort exposes Run as a module port
type adaptRunPort struct{ svc *service.Service }

func (a adaptRunPort) Run(ctx context.Context, in domain.RunInput) (domain.Report, error) {
	return a.svc.Run(ctx, in)
}
