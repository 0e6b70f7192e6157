package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/gestor-app/gestor/internal/auth"
	"github.com/gestor-app/gestor/internal/config"
	"github.com/gestor-app/gestor/internal/handlers"
	"github.com/gestor-app/gestor/internal/models"
	"github.com/gestor-app/gestor/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. Services are built here and injected; nothing is process-global.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	sessions := auth.NewSessions(cfg.SessionSecret, func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	saleSvc := services.NewSaleService(db, cfg.RestockOnSaleDelete)
	reportSvc := services.NewReportService(db)

	ah := handlers.NewAuthHandler(db, sessions)
	dh := handlers.NewDashboardHandler(db)
	ch := handlers.NewClientHandler(db)
	ph := handlers.NewProductHandler(db)
	fh := handlers.NewSupplierHandler(db)
	vh := handlers.NewSaleHandler(db, saleSvc)
	rh := handlers.NewReportHandler(reportSvc)
	sh := handlers.NewSettingsHandler(db, sessions)
	uh := handlers.NewUserHandler(db)

	mux := http.NewServeMux()

	// Public routes; logged-in users get bounced to the dashboard.
	anon := func(h http.HandlerFunc) http.Handler { return sessions.RedirectIfAuthenticated(h) }
	mux.Handle("GET /login", anon(ah.LoginPage))
	mux.Handle("POST /login", anon(ah.Login))
	mux.Handle("GET /register", anon(ah.RegisterPage))
	mux.Handle("POST /register", anon(ah.Register))
	mux.HandleFunc("GET /logout", ah.Logout)
	mux.HandleFunc("POST /logout", ah.Logout)

	// Protected routes.
	prot := func(h http.HandlerFunc) http.Handler { return sessions.RequireAuth(h) }
	mux.Handle("GET /{$}", prot(dh.Home))
	mux.Handle("GET /dashboard", prot(dh.Dashboard))

	mux.Handle("GET /clientes", prot(ch.List))
	mux.Handle("GET /clientes/novo", prot(ch.New))
	mux.Handle("POST /clientes/novo", prot(ch.Create))
	mux.Handle("GET /clientes/editar/{id}", prot(ch.Edit))
	mux.Handle("POST /clientes/editar/{id}", prot(ch.Update))
	mux.Handle("POST /clientes/deletar/{id}", prot(ch.Delete))

	mux.Handle("GET /produtos", prot(ph.List))
	mux.Handle("GET /produtos/novo", prot(ph.New))
	mux.Handle("POST /produtos/novo", prot(ph.Create))
	mux.Handle("GET /produtos/editar/{id}", prot(ph.Edit))
	mux.Handle("POST /produtos/editar/{id}", prot(ph.Update))
	mux.Handle("POST /produtos/deletar/{id}", prot(ph.Delete))

	mux.Handle("GET /fornecedores", prot(fh.List))
	mux.Handle("GET /fornecedores/novo", prot(fh.New))
	mux.Handle("POST /fornecedores/novo", prot(fh.Create))
	mux.Handle("GET /fornecedores/editar/{id}", prot(fh.Edit))
	mux.Handle("POST /fornecedores/editar/{id}", prot(fh.Update))
	mux.Handle("POST /fornecedores/deletar/{id}", prot(fh.Delete))

	mux.Handle("GET /vendas", prot(vh.List))
	mux.Handle("GET /vendas/nova", prot(vh.New))
	mux.Handle("POST /vendas/nova", prot(vh.Create))
	mux.Handle("POST /vendas/deletar/{id}", prot(vh.Delete))

	mux.Handle("GET /relatorios", prot(rh.Show))

	mux.Handle("GET /configuracoes", prot(sh.Show))
	mux.Handle("POST /configuracoes/senha", prot(sh.ChangePassword))
	mux.Handle("POST /configuracoes/email", prot(sh.ChangeEmail))
	mux.Handle("POST /configuracoes/excluir", prot(sh.DeleteAccount))

	mux.Handle("GET /users", prot(uh.List))
	mux.Handle("POST /users/delete/{id}", prot(uh.Delete))

	return sessions.Middleware(withRecover(withLogging(mux)))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				http.Error(w, "erro interno", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
