package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/config"
	"github.com/dairydesk/dairydesk/internal/customer"
	customerdomain "github.com/dairydesk/dairydesk/internal/customer/domain"
	"github.com/dairydesk/dairydesk/internal/invoice"
	domain "github.com/dairydesk/dairydesk/internal/invoice/domain"
	"github.com/dairydesk/dairydesk/internal/invoice/render"
	"github.com/dairydesk/dairydesk/internal/locks"
	"github.com/dairydesk/dairydesk/internal/record"
	recorddomain "github.com/dairydesk/dairydesk/internal/record/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	locks.Module,
	customer.Module,
	record.Module,
	invoice.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log))
	r.Use(MetricsMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	genID       *snowflake.Node
	customerSvc customerdomain.Service
	recordSvc   recorddomain.Service
	invoiceSvc  domain.Service
	renderer    *render.Renderer
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	GenID       *snowflake.Node
	CustomerSvc customerdomain.Service
	RecordSvc   recorddomain.Service
	InvoiceSvc  domain.Service
	Renderer    *render.Renderer
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("http.server"),
		genID:       p.GenID,
		customerSvc: p.CustomerSvc,
		recordSvc:   p.RecordSvc,
		invoiceSvc:  p.InvoiceSvc,
		renderer:    p.Renderer,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func registerRoutes(s *Server) {
	s.RegisterRoutes()
}

func (s *Server) RegisterRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/customers", s.CreateCustomer)
	v1.GET("/customers", s.ListCustomers)
	v1.GET("/customers/:id", s.GetCustomerByID)
	v1.PUT("/customers/:id", s.UpdateCustomer)

	v1.POST("/records", s.RecordDelivery)
	v1.GET("/records", s.ListRecords)

	invoices := v1.Group("/invoices")
	invoices.GET("/check-existing", s.CheckExistingInvoice)
	invoices.POST("/generate/customer/:id", s.GenerateInvoice)
	invoices.POST("/generate/batch", s.GenerateInvoiceBatch)
	invoices.GET("", s.ListInvoices)
	invoices.GET("/dashboard", s.InvoiceDashboard)
	invoices.GET("/customer/:id/summary", s.CustomerInvoiceSummary)
	invoices.GET("/:id", s.GetInvoiceByID)
	invoices.PUT("/:id/status", s.SetInvoiceStatus)
	invoices.POST("/:id/payment", s.AddInvoicePayment)
	invoices.DELETE("/:id", s.DeleteInvoice)
	invoices.GET("/:id/pdf", s.InvoiceStatement)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
