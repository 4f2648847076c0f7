package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"filedrop/internal/auth"
	"filedrop/internal/config"
	apperrors "filedrop/internal/errors"
	"filedrop/internal/handler"
	"filedrop/internal/middleware"
	"filedrop/internal/model"
	"filedrop/internal/repository"
)

// uploadBodyLimit caps multipart uploads at 1 MB.
const uploadBodyLimit = "1M"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	fileHandler *handler.FileHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())
	e.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rate.Limit(20))))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// All handler errors funnel through the central translator.
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(!cfg.IsProduction())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := e.Group("/api/v1/users")

	// Public routes
	users.POST("/signup", authHandler.Signup)
	users.POST("/login", authHandler.Login)
	users.POST("/forgotPassword", authHandler.ForgotPassword)
	users.PATCH("/resetPassword/:token", authHandler.ResetPassword)

	// Authenticated routes: bearer token verified, identity resolved and
	// staleness-checked before any handler runs.
	protected := users.Group("", middleware.JWT(jwtService), middleware.LoadUser(userRepo))

	protected.PATCH("/updateMyPassword", authHandler.UpdatePassword)
	protected.PATCH("/updateMe", userHandler.UpdateMe)
	protected.DELETE("/deleteMe", userHandler.DeleteMe)

	protected.POST("/uploadFile", fileHandler.UploadFile, echomw.BodyLimit(uploadBodyLimit))
	protected.GET("/getMyLinks", fileHandler.GetMyLinks)

	// Admin routes
	admin := protected.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.GET("", userHandler.GetAllUsers)
	admin.POST("", userHandler.CreateUser)
	admin.GET("/:id", userHandler.GetUser)
	admin.PATCH("/:id", userHandler.UpdateUser)
	admin.DELETE("/:id", userHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
