package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retgits/tuleap-settings/tuleap"
	"github.com/rs/zerolog/log"
)

// Server exposes the Tuleap settings and the form validation endpoints used by the web UI.
type Server struct {
	store   *tuleap.Store
	checker *tuleap.Checker
	http    *http.Server
}

type configureResponse struct {
	DisplayName string `json:"displayName"`
	APIBaseURL  string `json:"apiBaseUrl"`
	GitBaseURL  string `json:"gitBaseUrl"`
}

func NewServer(store *tuleap.Store, checker *tuleap.Checker, addr string) *Server {
	s := &Server{
		store:   store,
		checker: checker,
	}
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the gin engine with all routes.
func (s *Server) Handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())

	descriptor := engine.Group("/descriptor")
	descriptor.GET("/verifyUrls", s.handleVerifyURLs)
	descriptor.GET("/checkApiBaseUrl", s.handleCheckAPIBaseURL)
	descriptor.GET("/checkGitBaseUrl", s.handleCheckGitBaseURL)

	engine.GET("/configure", s.handleGetConfiguration)
	engine.POST("/configure", s.handleConfigure)
	return engine
}

func (s *Server) Start() error {
	log.Info().Msgf("Starting server on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop() {
	log.Info().Msg("Preparing to shutdown server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		log.Error().Msgf("Error while shutting down server: %s", err.Error())
	}
}

func (s *Server) handleVerifyURLs(ctx *gin.Context) {
	ans := s.checker.VerifyURLs(
		ctx.Request.Context(),
		ctx.Query("apiBaseUrl"),
		ctx.Query("gitBaseUrl"),
	)
	ctx.JSON(http.StatusOK, ans)
}

func (s *Server) handleCheckAPIBaseURL(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, tuleap.CheckAPIBaseURL(ctx.Query("apiBaseUrl")))
}

func (s *Server) handleCheckGitBaseURL(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, tuleap.CheckGitBaseURL(ctx.Query("gitBaseUrl")))
}

func (s *Server) handleGetConfiguration(ctx *gin.Context) {
	settings := s.store.Settings()
	ctx.JSON(http.StatusOK, configureResponse{
		DisplayName: tuleap.DisplayName,
		APIBaseURL:  settings.APIBaseURL,
		GitBaseURL:  settings.GitBaseURL,
	})
}

// handleConfigure binds the submitted form and saves it. Binding errors go back to the
// client as they are, nothing gets applied in that case.
func (s *Server) handleConfigure(ctx *gin.Context) {
	var settings tuleap.Settings
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		log.Error().Msgf("Error while binding settings form: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Apply(settings); err != nil {
		log.Error().Msgf("Error while saving settings: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t0 := time.Now()
		ctx.Next()
		log.Debug().
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("took", time.Since(t0)).
			Msg("handled request")
	}
}
