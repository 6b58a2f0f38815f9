package customer

import (
	"github.com/dairydesk/dairydesk/internal/customer/repository"
	"github.com/dairydesk/dairydesk/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
