package order

import (
	"go.uber.org/fx"

	"github.com/pdushie/bundle-management-app-sub001/internal/order/repository"
	"github.com/pdushie/bundle-management-app-sub001/internal/order/service"
)

var Module = fx.Module("order.cost",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
