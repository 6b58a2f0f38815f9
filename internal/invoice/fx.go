package invoice

import (
	"github.com/dairydesk/dairydesk/internal/invoice/render"
	"github.com/dairydesk/dairydesk/internal/invoice/repository"
	"github.com/dairydesk/dairydesk/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(render.NewRenderer),
	fx.Provide(service.New),
)
