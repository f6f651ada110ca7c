// Package app wires repositories, services and handlers into a Fiber application.
package app

import (
	"store/internal/config"
	"store/internal/database"
	"store/internal/handlers"
	"store/internal/middleware"
	"store/internal/models"
	"store/internal/repositories"
	"store/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// App is the assembled HTTP application together with its services.
type App struct {
	Fiber *fiber.App

	Products          *services.ProductService
	ProductCategories *services.ProductCategoryService
	Customers         *services.CustomerDetailsService
	Users             *services.UserService
	ShoppingCarts     *services.ShoppingCartService
	ProductOrders     *services.ProductOrderService

	log zerolog.Logger
}

// New builds the application on db. events may be nil, in which case no entity
// events are published.
func New(cfg *config.Config, db *gorm.DB, events services.EventPublisher, logger zerolog.Logger) *App {
	// Initialize Repositories
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMRepository[models.ProductCategory](db)
	productRepo := repositories.NewGORMRepository[models.Product](db)
	customerRepo := repositories.NewGORMCustomerDetailsRepository(db)
	cartRepo := repositories.NewGORMRepository[models.ShoppingCart](db)
	orderRepo := repositories.NewGORMRepository[models.ProductOrder](db)

	// Initialize Services
	a := &App{
		Users:             services.NewUserService(userRepo, events, logger),
		ProductCategories: services.NewProductCategoryService(categoryRepo, events, logger),
		Products:          services.NewProductService(productRepo, categoryRepo, events, logger),
		Customers:         services.NewCustomerDetailsService(customerRepo, userRepo, events, logger),
		ShoppingCarts:     services.NewShoppingCartService(cartRepo, customerRepo, events, logger),
		ProductOrders:     services.NewProductOrderService(orderRepo, productRepo, cartRepo, events, logger),
		log:               logger,
	}

	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ErrorHandler:          handlers.NewErrorHandler(cfg.AppName, logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(logger))

	handlers.NewHealthHandler(database.Ping(db)).RegisterRoutes(app)

	// API Routes
	api := app.Group("/api")
	handlers.NewLoggingHandler(logger).RegisterRoutes(api)

	handlers.NewResourceHandler[models.Product](a.Products, cfg.AppName, "products", map[string]string{
		"id": "id", "name": "name", "description": "description", "price": "price", "size": "size", "image": "image",
	}).RegisterRoutes(api)
	handlers.NewResourceHandler[models.ProductCategory](a.ProductCategories, cfg.AppName, "product-categories", map[string]string{
		"id": "id", "name": "name", "description": "description",
	}).RegisterRoutes(api)
	handlers.NewResourceHandler[models.CustomerDetails](a.Customers, cfg.AppName, "customer-details", map[string]string{
		"id": "id", "gender": "gender", "phone": "phone", "addressLine1": "address_line1",
		"addressLine2": "address_line2", "city": "city", "country": "country",
	}).RegisterRoutes(api)
	handlers.NewResourceHandler[models.User](a.Users, cfg.AppName, "users", map[string]string{
		"id": "id", "login": "login", "email": "email", "firstName": "first_name",
		"lastName": "last_name", "activated": "activated",
	}).RegisterRoutes(api)
	handlers.NewResourceHandler[models.ShoppingCart](a.ShoppingCarts, cfg.AppName, "shopping-carts", map[string]string{
		"id": "id", "placedDate": "placed_date", "status": "status", "totalPrice": "total_price",
		"paymentMethod": "payment_method", "paymentReference": "payment_reference",
	}).RegisterRoutes(api)
	handlers.NewResourceHandler[models.ProductOrder](a.ProductOrders, cfg.AppName, "product-orders", map[string]string{
		"id": "id", "quantity": "quantity", "totalPrice": "total_price",
	}).RegisterRoutes(api)

	a.Fiber = app
	return a
}
