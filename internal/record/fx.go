package record

import (
	"github.com/dairydesk/dairydesk/internal/record/repository"
	"github.com/dairydesk/dairydesk/internal/record/service"
	"go.uber.org/fx"
)

var Module = fx.Module("record.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
