package api

import (
	"errors"
	"fmt"
	"net/http"
	"stockdash/internal/domain"
	"stockdash/internal/logger"
	"stockdash/internal/service"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type ApiHandler struct {
	QuoteService     service.QuoteService
	PortfolioService service.PortfolioService
	Logger           *zap.SugaredLogger
	CorsAllowOrigins []string
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(m.corsMiddleware())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to stockdash"})
	})

	router.GET("/api/quotes", m.getQuotes)
	router.GET("/api/stock/:symbol", m.getStock)

	router.GET("/api/portfolio", m.getPortfolio)
	router.POST("/api/portfolio", m.addHolding)
	router.POST("/api/portfolio/sell", m.sellHolding)
	router.GET("/api/portfolio/valuation", m.portfolioValuation)
	router.GET("/api/portfolio/export", m.exportPortfolio)
	router.PATCH("/api/portfolio/:symbol", m.adjustHolding)
	router.DELETE("/api/portfolio/:symbol", m.deleteHolding)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	m.logger().Infof("listening on :%d", port)
	return router.Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) logger() *zap.SugaredLogger {
	if m.Logger == nil {
		return zap.S()
	}
	return m.Logger
}

func (m ApiHandler) corsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader, "Content-Disposition"}

	if len(m.CorsAllowOrigins) == 0 || (len(m.CorsAllowOrigins) == 1 && m.CorsAllowOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = m.CorsAllowOrigins
	}

	return cors.New(config)
}

// logRequestMiddleware tags each request with an id and stores a request
// scoped logger in the request context.
func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)

	log := m.logger().With("requestID", requestID)
	c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), log))

	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	log.Infow("request completed",
		"method", c.Request.Method,
		"route", route,
		"status", c.Writer.Status(),
		"latencyMs", time.Since(start).Milliseconds(),
	)
}

// returnErrorJson maps typed domain errors to their status codes; anything
// else is a 500.
func returnErrorJson(err error, c *gin.Context) {
	log := logger.FromContext(c.Request.Context())

	var insufficientQuantityError *domain.InsufficientQuantityError
	switch {
	case errors.As(err, &insufficientQuantityError):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"symbol":    insufficientQuantityError.Symbol,
			"held":      insufficientQuantityError.Held,
			"requested": insufficientQuantityError.Requested,
		})
	case domain.IsValidationError(err):
		returnErrorJsonCode(err, c, http.StatusBadRequest)
	case domain.IsNotFoundError(err):
		returnErrorJsonCode(err, c, http.StatusNotFound)
	case domain.IsUpstreamError(err):
		log.Warnf("upstream failure: %v", err)
		returnErrorJsonCode(err, c, http.StatusBadGateway)
	default:
		log.Errorf("request failed: %v", err)
		returnErrorJsonCode(err, c, http.StatusInternalServerError)
	}
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}
