package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/steffenjoachim/my-shop/internal/auth"
	"github.com/steffenjoachim/my-shop/internal/cart"
	"github.com/steffenjoachim/my-shop/internal/categories"
	"github.com/steffenjoachim/my-shop/internal/config"
	"github.com/steffenjoachim/my-shop/internal/db"
	"github.com/steffenjoachim/my-shop/internal/domain/user"
	"github.com/steffenjoachim/my-shop/internal/mail"
	"github.com/steffenjoachim/my-shop/internal/orders"
	"github.com/steffenjoachim/my-shop/internal/products"
	"github.com/steffenjoachim/my-shop/internal/returns"
	"github.com/steffenjoachim/my-shop/internal/reviews"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	pool, err := db.NewPostgres(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	mailer := mail.NewMailer(mail.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})
	notifier := mail.NewNotifier(mailer, cfg.ReturnAddress)

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:         cfg.JWTIssuer,
		AccessSecret:   cfg.JWTAccessSecret,
		RefreshSecret:  cfg.JWTRefreshSecret,
		AccessTTLMin:   cfg.AccessTokenTTLMin,
		RefreshTTLDays: cfg.RefreshTokenTTLDays,
	})

	// Repos
	userRepo := auth.NewUserRepo(pool)
	refreshRepo := auth.NewRefreshRepo(pool)
	catRepo := categories.NewRepo(pool)
	prodRepo := products.NewRepo(pool)
	cartRepo := cart.NewRepo(pool)
	orderRepo := orders.NewRepo(pool)
	returnRepo := returns.NewRepo(pool)
	reviewRepo := reviews.NewRepo(pool)

	returnWorkflow := returns.NewWorkflow(returnRepo, orderRepo, notifier)

	// Handlers
	authHandler := auth.NewHandler(auth.Dependencies{
		JWT:     jwtMgr,
		Users:   userRepo,
		Refresh: refreshRepo,
	})
	catHandler := categories.NewHandler(catRepo)
	prodHandler := products.NewHandler(prodRepo)
	cartHandler := cart.NewHandler(cartRepo, orderRepo)
	orderHandler := orders.NewHandler(orderRepo)
	returnHandler := returns.NewHandler(returnWorkflow, returnRepo)
	reviewHandler := reviews.NewHandler(reviewRepo)

	r := gin.Default()

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Public catalog routes (no login required)
	api.GET("/categories", catHandler.List)
	api.GET("/delivery-times", catHandler.ListDeliveryTimes)
	api.GET("/products", prodHandler.ListPublic)
	api.GET("/products/:id", prodHandler.GetPublic)
	api.GET("/products/:id/reviews", reviewHandler.ListForProduct)

	protected := api.Group("/")
	protected.Use(auth.AuthMiddleware(jwtMgr))
	{
		protected.GET("/me", authHandler.Me)

		// cart
		protected.GET("/cart", cartHandler.GetMyCart)
		protected.POST("/cart/items", cartHandler.AddItem)
		protected.PATCH("/cart/items", cartHandler.UpdateQty)
		protected.DELETE("/cart/items", cartHandler.RemoveItem)
		protected.POST("/cart/checkout", cartHandler.Checkout)

		// orders
		protected.POST("/orders", orderHandler.Place)
		protected.GET("/orders", orderHandler.ListMine)
		protected.GET("/orders/:id", orderHandler.Get)
		protected.POST("/orders/:id/cancel", orderHandler.Cancel)

		// returns
		protected.POST("/orders/:id/returns", returnHandler.Request)
		protected.GET("/returns", returnHandler.ListMine)
		protected.GET("/returns/:id", returnHandler.Get)

		// reviews
		protected.POST("/products/:id/reviews", reviewHandler.Create)
		protected.PATCH("/reviews/:id", reviewHandler.Update)
		protected.DELETE("/reviews/:id", reviewHandler.Delete)

		// shipping staff (shipping group or admin)
		shipping := protected.Group("/shipping")
		shipping.Use(auth.RequireStaff())
		{
			shipping.GET("/orders", orderHandler.ListShipping)
			shipping.POST("/orders/:id/shipping", orderHandler.SetShipping)
			shipping.POST("/orders/:id/status", orderHandler.UpdateStatus)
			shipping.POST("/orders/:id/paid", orderHandler.MarkPaid)
			shipping.GET("/returns", returnHandler.ListAll)
			shipping.PATCH("/returns/:id", returnHandler.Transition)
		}

		adminOnly := protected.Group("/admin")
		adminOnly.Use(auth.RequireRole(user.RoleAdmin))
		{
			adminOnly.POST("/categories", catHandler.AdminCreate)
			adminOnly.PATCH("/categories/:id", catHandler.AdminUpdate)
			adminOnly.POST("/products", prodHandler.AdminCreate)
			adminOnly.POST("/products/:id/variations", prodHandler.AdminAddVariation)
			adminOnly.PATCH("/reviews/:id/approved", reviewHandler.AdminSetApproved)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
