package audit

import (
	auditdomain "github.com/carelinehq/careadmin/internal/audit/domain"
	"github.com/carelinehq/careadmin/internal/audit/repository"
	"github.com/carelinehq/careadmin/internal/audit/service"
	"github.com/carelinehq/careadmin/internal/crud"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(
		service.NewService,
		func(s *service.Service) auditdomain.Service { return s },
		func(s *service.Service) crud.AuditRecorder { return s },
	),
)
