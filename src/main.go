package main

import (
	"crypto/subtle"
	"crs/src/boot"
	"crs/src/config"
	"crs/src/db"
	"crs/src/lib"
	"crs/src/middlewares"
	"crs/src/models"
	"crs/src/services"
	"crs/src/types"
	"crs/src/utils"
	"crs/src/workers"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"
)

const (
	apiPrefix string = "/api/v1"
)

var rentalDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	if ok {
		today := time.Now()
		if today.After(datetime) {
			return false
		}
	}
	return true
}

var gtfield validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	fieldValue := field.Interface().(string)
	fielddatetime, err := time.Parse(config.TIME_PARSE_FORMAT, fieldValue)
	if err != nil {
		return false
	}
	if ok {
		if fielddatetime.After(datetime) {
			return false
		}
	}
	return true
}

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

var currencyCodeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	code, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return currencyCodeRe.MatchString(code)
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		if mm == "true" || mm == "1" {
			log.Println("server is under maintenance")
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, "server is under maintenance")
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	guest := apiv1.Group("/auth")
	guest.
		POST("/login", func(ctx *gin.Context) {
			secret := os.Getenv("API_SECRET")
			supplied := ctx.GetHeader("x-secret")
			if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(supplied)) != 1 {
				ctx.Status(http.StatusUnauthorized)
				return
			}
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var user models.User
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Where(&models.User{Email: body.Email}).
					First(&user).
					Error; err != nil {
					return err
				}
				now := time.Now()
				return tx.Model(&models.User{}).Where("id = ?", user.ID).Update("last_active", &now).Error
			}); err != nil {
				log.Printf("[AuthLogin] error: %s\n", err.Error())
				ctx.Status(http.StatusUnauthorized)
				return
			}
			token, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
			if err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"token": token,
			})
		})
	return guest
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func newPaymentService() *services.PaymentService {
	cfg := config.LoadAppSettings()
	gdb := db.GetDb()
	return services.NewPaymentService(
		cfg,
		&services.GormBookingStore{DB: gdb},
		&services.GormPaymentStore{DB: gdb},
		&services.GormDepositStore{DB: gdb},
		&services.GormAuditStore{DB: gdb},
		lib.StripeGateway{},
		&services.QueueReceiptGenerator{Cfg: cfg},
		&services.MailNotifier{Cfg: cfg},
		&lib.RedisBookingLocker{},
	)
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()
	svc := newPaymentService()
	boot.InitScheduler(svc)
	workers.Start()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization", "x-secret")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("rentaldate", rentalDateValidatorFunc)
		v.RegisterValidation("gtdate", gtfield)
		v.RegisterValidation("currencycode", currencyCodeValidatorFunc)
	}

	router = maintenanceModeMiddleware(router)

	guestAuthRoutes(router)

	// The gateway calls back unauthenticated; the endpoint verifies its own
	// signature.
	paymentWebhookRoute(apiv1Group(router), svc)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	{
		authorized = bookingHandlers(authorized, svc)
		authorized = paymentHandlers(authorized, svc)
		authorized = vehicleHandlers(authorized)

		authorized.
			GET("/users/me", func(ctx *gin.Context) {
				var user models.User
				userId := ctx.GetUint("id")
				db := db.GetDb()
				if err := db.
					Where(&models.User{ID: userId}).
					First(&user).
					Error; err != nil {
					ctx.Status(http.StatusBadRequest)
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": user})
			})

		authorized.
			POST("/settings", middlewares.RequireRole("admin"), func(ctx *gin.Context) {
				var body struct {
					Key   string `json:"key" binding:"required"`
					Value any    `json:"value" binding:"required"`
					Group string `json:"group"`
				}
				if err := ctx.ShouldBindJSON(&body); err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				db := db.GetDb()
				setting := models.Setting{
					SettingKey:   body.Key,
					SettingValue: types.JSONBAny{Inner: body.Value},
					Group:        body.Group,
				}
				if err := db.Create(&setting).Error; err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				ctx.Status(http.StatusOK)
			}).
			GET("/settings", func(ctx *gin.Context) {
				var settings []models.Setting
				db := db.GetDb()
				if err := db.Find(&settings).Error; err != nil {
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": settings})
			})
	}

	if os.Getenv("TLS_ENABLE") == "true" {
		cwd, _ := os.Getwd()
		certpath := path.Join(cwd, "certificates", "localhost.pem")
		keypath := path.Join(cwd, "certificates", "localhost-key.pem")
		if err := router.RunTLS(":9090", certpath, keypath); err != nil {
			log.Fatalf("Failed to start server: %s", err)
		}
	}
	if err := router.Run(":9090"); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
