package routes

import (
	"context"
	"log"
	"os"
	"strconv"

	_ "garagehub/docs" // This will be auto-generated
	"garagehub/internal/adapter/http/handlers"
	repository2 "garagehub/internal/adapter/persistence/repository"
	"garagehub/internal/infrastructure/database"
	"garagehub/internal/infrastructure/notify"
	"garagehub/internal/infrastructure/payments"
	"garagehub/internal/usecase"
	"garagehub/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	jobCardRepo := repository2.NewJobCardDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)
	jobUpdateRepo := repository2.NewJobUpdateDynamoRepository(ddb)

	dispatcher := notify.NewDispatcher(notify.NewLogSender())
	go dispatcher.Run(context.Background())

	jobCardUseCase := usecase.NewJobCardUseCase(jobCardRepo, jobUpdateRepo, dispatcher)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewPaymentUseCase(jobCardRepo, paymentRepo, dispatcher, paymentGateway)

	jobCardHandler := handlers.NewJobCardHandler(jobCardUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addJobCardRoutes(v1, jobCardHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
