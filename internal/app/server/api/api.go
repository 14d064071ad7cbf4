//POST /api/v1/devices/register          # Регистрация push-токена устройства
//GET  /api/v1/devices/{device_id}       # Регистрация устройства (без токена)
//POST /api/v1/health/data/request       # Запросить данные у устройства
//GET  /api/v1/health/data/request/{id}  # Статус запроса
//POST /api/v1/health/data/response      # Загрузка данных устройством
//GET  /api/v1/health/data/response/{id} # Загруженные данные
//GET  /api/v1/health/analytics          # Анализ последней загрузки

package api

import (
	analyticsAPI "healthsync/internal/app/server/api/http/analytics"
	deviceAPI "healthsync/internal/app/server/api/http/device"
	healthAPI "healthsync/internal/app/server/api/http/health"
	"healthsync/internal/app/server/api/http/middleware"
	"healthsync/internal/app/server/api/http/middleware/logger"
	requestAPI "healthsync/internal/app/server/api/http/request"
	responseAPI "healthsync/internal/app/server/api/http/response"
	"healthsync/internal/domain/device"
	"healthsync/internal/domain/request"
	"healthsync/internal/domain/response"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// Services доменные сервисы, которые обслуживает API
type Services struct {
	Devices    device.Registrar
	Requests   request.Tracker
	Responses  response.Correlator
	Resolver   analyticsAPI.Resolver
	Store      healthAPI.Pinger
	TargetDate string
}

type Handlers struct {
	Health    *healthAPI.Handler
	Device    *deviceAPI.Handler
	Request   *requestAPI.Handler
	Response  *responseAPI.Handler
	Analytics *analyticsAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(svc Services, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("HealthSync API", "1.0.0")
	config.Info.Description = "Device registry, data request lifecycle and health analytics"

	API := humachi.New(mux, config)

	h := handlers(svc, log)
	h.Health.SetupRoutes(API)
	h.Device.SetupRoutes(API)
	h.Request.SetupRoutes(API)
	h.Response.SetupRoutes(API)
	h.Analytics.SetupRoutes(API)

	return mux
}

func handlers(svc Services, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(svc.Store, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	deviceHandler := deviceAPI.NewHandler(svc.Devices, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	requestHandler := requestAPI.NewHandler(svc.Requests, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	responseHandler := responseAPI.NewHandler(svc.Responses, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	analyticsHandler := analyticsAPI.NewHandler(svc.Resolver, svc.TargetDate, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:    healthHandler,
		Device:    deviceHandler,
		Request:   requestHandler,
		Response:  responseHandler,
		Analytics: analyticsHandler,
	}
}
