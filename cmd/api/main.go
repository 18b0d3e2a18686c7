package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/obelyakova/warehouse-api/internal/modules/auth"
	"github.com/obelyakova/warehouse-api/internal/modules/product"
	"github.com/obelyakova/warehouse-api/internal/modules/shipment"
	"github.com/obelyakova/warehouse-api/internal/modules/user"
	"github.com/obelyakova/warehouse-api/internal/modules/warehouse"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.StripSlashes)

	// ── Identity & sessions ─────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)

	sessionRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(userRepo, sessionRepo, []byte(os.Getenv("JWT_SECRET")))
	mw := auth.NewMiddleware(authService)

	user.NewHandler(userService).RegisterRoutes(router, mw.Authenticate)
	auth.NewHandler(authService).RegisterRoutes(router, mw.Authenticate)

	// ── Warehouses & stock ──────────────────────────────────
	warehouseRepo := warehouse.NewPostgresRepository(db)
	warehouseService := warehouse.NewService(warehouseRepo)
	warehouse.NewHandler(warehouseService).RegisterRoutes(router, mw.Authenticate, mw.RequireSeller)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	product.NewHandler(productService).RegisterRoutes(router, mw.Authenticate, mw.RequireSeller)

	// ── Shipments ───────────────────────────────────────────
	shipmentRepo := shipment.NewPostgresRepository(db)
	shipmentService := shipment.NewService(shipmentRepo)
	shipment.NewHandler(shipmentService).RegisterRoutes(router, mw.Authenticate, mw.RequireBuyer)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Warehouse API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
