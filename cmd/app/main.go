package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"journal/internal/config"
	"journal/internal/handler"
	"journal/internal/middleware"
	"journal/internal/repository"
	"journal/internal/service"
	"journal/internal/session"
	"journal/internal/view"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	db, err := repository.Open(cfg.DBPath)
	if err != nil {
		logrus.WithError(err).Fatal("Opening database")
	}

	tmplMap, err := config.Templates(cfg.TemplateDir)
	if err != nil {
		logrus.WithError(err).Fatal("Discovering templates")
	}
	renderer := view.NewPageRenderer(tmplMap)

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionKey))

	users := repository.NewSQLiteUserRepository(db)
	entries := repository.NewSQLiteEntryRepository(db)

	sess := session.New()
	authService := service.NewAuthService(users, sess)
	userService := service.NewUserService(users)
	entryService := service.NewEntryService(entries)

	authHandler := handler.NewAuthHandler(authService, cookieStore, renderer)
	userHandler := handler.NewUserHandler(userService, cookieStore, renderer)
	entryHandler := handler.NewEntryHandler(entryService, cookieStore, renderer)

	auth := func(h func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
		return middleware.Auth(cookieStore, users, h)
	}
	admin := func(h func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
		return auth(middleware.AdminOnly(h))
	}

	r := mux.NewRouter()
	r.HandleFunc("/login", authHandler.Login).Methods("GET", "POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	r.HandleFunc("/", auth(authHandler.Home)).Methods("GET")

	r.HandleFunc("/users", admin(userHandler.ListUsers)).Methods("GET")
	r.HandleFunc("/users/new", admin(userHandler.NewUser)).Methods("GET", "POST")
	r.HandleFunc("/users/{uuid}/edit", admin(userHandler.EditUser)).Methods("GET", "POST")
	r.HandleFunc("/users/{uuid}/delete", admin(userHandler.DeleteUser)).Methods("POST")

	r.HandleFunc("/entries", auth(entryHandler.ListEntries)).Methods("GET")
	r.HandleFunc("/entries/new", auth(entryHandler.NewEntry)).Methods("GET")
	r.HandleFunc("/entries", auth(entryHandler.SaveEntry)).Methods("POST")

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("addr", cfg.Addr).Info("Journal server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting off...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Shutdown")
	}
}
