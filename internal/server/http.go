// Package server exposes the dispatcher and live-state queries over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mtgate/internal/journal"
	"mtgate/internal/terminal"
	"mtgate/internal/trade"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	addr       string
	dispatcher *trade.Dispatcher
	gw         terminal.Gateway
	journal    *journal.Store
	router     *gin.Engine
}

type HTTPConfig struct {
	Addr       string
	Dispatcher *trade.Dispatcher
	Gateway    terminal.Gateway
	Journal    *journal.Store
}

func NewHTTPServer(cfg HTTPConfig) (*HTTPServer, error) {
	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if cfg.Gateway == nil {
		return nil, errors.New("gateway is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9982"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &HTTPServer{
		addr:       cfg.Addr,
		dispatcher: cfg.Dispatcher,
		gw:         cfg.Gateway,
		journal:    cfg.Journal,
		router:     router,
	}
	s.registerRoutes()
	return s, nil
}

func (s *HTTPServer) registerRoutes() {
	api := s.router.Group("/api")
	api.POST("/orders", s.handleSubmit)
	api.GET("/positions", s.handlePositions)
	api.GET("/orders", s.handlePendingOrders)
	api.POST("/positions/close-profitable", s.handleCloseProfitable)
	api.POST("/positions/:ticket/close", s.handleClosePosition)
	api.GET("/history/deals", s.handleDeals)
	api.GET("/journal", s.handleJournal)
	api.GET("/health", s.handleHealth)
}

func (s *HTTPServer) handleSubmit(c *gin.Context) {
	var intent trade.Intent
	if err := c.ShouldBindJSON(&intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcome := s.dispatcher.Submit(c.Request.Context(), intent)
	c.JSON(http.StatusOK, outcome)
}

func (s *HTTPServer) handlePositions(c *gin.Context) {
	records, err := trade.Positions(c.Request.Context(), s.gw, queryFilter(c))
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": records, "count": len(records)})
}

func (s *HTTPServer) handlePendingOrders(c *gin.Context) {
	records, err := trade.PendingOrders(c.Request.Context(), s.gw, queryFilter(c))
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": records, "count": len(records)})
}

func (s *HTTPServer) handleCloseProfitable(c *gin.Context) {
	outcome := s.dispatcher.CloseAllProfitable(c.Request.Context())
	c.JSON(http.StatusOK, outcome)
}

func (s *HTTPServer) handleClosePosition(c *gin.Context) {
	ticket, err := strconv.ParseInt(c.Param("ticket"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket"})
		return
	}
	outcome := s.dispatcher.ClosePosition(c.Request.Context(), ticket)
	c.JSON(http.StatusOK, outcome)
}

func (s *HTTPServer) handleDeals(c *gin.Context) {
	query := terminal.DealsQuery{
		Symbol: c.Query("symbol"),
		Group:  c.Query("group"),
	}
	if raw := c.Query("from"); raw != "" {
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
			return
		}
		query.From = time.Unix(ts, 0).UTC()
	}
	if raw := c.Query("to"); raw != "" {
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
			return
		}
		query.To = time.Unix(ts, 0).UTC()
	}
	if raw := c.Query("ticket"); raw != "" {
		ticket, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket"})
			return
		}
		query.Ticket = ticket
	}
	deals, err := s.gw.Deals(c.Request.Context(), query)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals, "count": len(deals)})
}

func (s *HTTPServer) handleJournal(c *gin.Context) {
	if s.journal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "journal disabled"})
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	var (
		rows []journal.DispatchModel
		err  error
	)
	if symbol := c.Query("symbol"); symbol != "" {
		rows, err = s.journal.BySymbol(c.Request.Context(), symbol, limit)
	} else {
		rows, err = s.journal.Recent(c.Request.Context(), limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": rows, "count": len(rows)})
}

func (s *HTTPServer) handleHealth(c *gin.Context) {
	if !s.gw.Connected() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func queryFilter(c *gin.Context) trade.QueryFilter {
	filter := trade.QueryFilter{
		Ticket: c.Query("ticket"),
		Symbol: c.Query("symbol"),
		Group:  c.Query("group"),
	}
	if raw := c.Query("order_type"); raw != "" {
		filter.OrderType = raw
	}
	return filter
}

func writeQueryError(c *gin.Context, err error) {
	if errors.Is(err, terminal.ErrNotConnected) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *HTTPServer) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
