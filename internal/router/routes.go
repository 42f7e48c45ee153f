package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/webshop/billing/internal/config"
	"github.com/webshop/billing/internal/handlers"
	"github.com/webshop/billing/internal/middleware"
	"github.com/webshop/billing/internal/signature"
	"github.com/webshop/billing/internal/storage"
	"github.com/webshop/billing/internal/tokens"
	"github.com/webshop/billing/internal/usecase"
)

const (
	APIPrefix        = "/api"
	RegisterPath     = "/register"
	ActivatePath     = "/register/activate-user/{link}"
	LoginPath        = "/login"
	LogoutPath       = "/logout"
	ProductsListPath = "/products-list"
	WebhookPath      = "/payment/webhook"
	BillsInfoPath    = "/receive-bills-info"
	PurchasePath     = "/product-payment"
	PurchasesPath    = "/purchases"
	AdminPrefix      = "/api/admin"
	AdminProducts    = "/products"
	AdminUsers       = "/users"
)

func SetupRoutes(store *storage.Storage, tokenStore *tokens.Store, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	verifier := signature.NewVerifier(cfg.PrivateKey, cfg.LegacySignature)
	webhookUC := usecase.NewWebhookUseCase(verifier, store, store)
	purchaseUC := usecase.NewPurchaseUseCase(store, store)
	billsUC := usecase.NewBillsUseCase(store)

	r.Post(APIPrefix+RegisterPath, handlers.NewRegisterHandler(store, cfg.BaseURL).ServeHTTP)
	r.Get(APIPrefix+ActivatePath, handlers.NewActivateHandler(store, tokenStore, cfg.JWTSecret).ServeHTTP)
	r.Post(APIPrefix+LoginPath, handlers.NewLoginHandler(store, tokenStore, cfg.JWTSecret).ServeHTTP)
	r.Get(APIPrefix+ProductsListPath, handlers.NewProductsListHandler(store).ServeHTTP)

	// The webhook authenticates by payload signature, not by session.
	r.Post(APIPrefix+WebhookPath, handlers.NewWebhookHandler(webhookUC).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret, tokenStore, store))
		r.Post(APIPrefix+LogoutPath, handlers.NewLogoutHandler(tokenStore).ServeHTTP)
		r.Get(APIPrefix+BillsInfoPath, handlers.NewBillsHandler(billsUC).ServeHTTP)
		r.Post(APIPrefix+PurchasePath, handlers.NewPurchaseHandler(purchaseUC).ServeHTTP)
		r.Get(APIPrefix+PurchasesPath, handlers.NewPurchasesHandler(purchaseUC).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin)
			adminProducts := handlers.NewAdminProductsHandler(store)
			adminUsers := handlers.NewAdminUsersHandler(store)
			r.Get(AdminPrefix+AdminProducts, adminProducts.List)
			r.Post(AdminPrefix+AdminProducts, adminProducts.Create)
			r.Put(AdminPrefix+AdminProducts, adminProducts.Update)
			r.Delete(AdminPrefix+AdminProducts, adminProducts.Delete)
			r.Get(AdminPrefix+AdminUsers, adminUsers.List)
			r.Patch(AdminPrefix+AdminUsers, adminUsers.Patch)
		})
	})

	return r
}
