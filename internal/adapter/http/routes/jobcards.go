package routes

import (
	"garagehub/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathJobs        = "/jobs"
	PathJobStatuses = "/job-statuses"
)

func addJobCardRoutes(rg *gin.RouterGroup, jobCardHandler *handlers.JobCardHandler, paymentHandler *handlers.PaymentHandler) {
	rg.GET(PathJobStatuses, jobCardHandler.ListStatuses)

	jobs := rg.Group(PathJobs)
	{
		jobs.POST("", jobCardHandler.CreateJob)
		jobs.GET("/:job_id", jobCardHandler.GetJob)
		jobs.GET("/:job_id/transitions", jobCardHandler.ListTransitions)
		jobs.POST("/:job_id/transition", jobCardHandler.RequestTransition)
		jobs.POST("/:job_id/estimate", jobCardHandler.SubmitEstimate)
		jobs.POST("/:job_id/estimate/response", jobCardHandler.RespondToEstimate)
		jobs.POST("/:job_id/quotes", jobCardHandler.MarkQuotesReceived)
		jobs.POST("/:job_id/quotes/selection", jobCardHandler.SelectQuote)
		jobs.POST("/:job_id/parts/response", jobCardHandler.RespondToParts)
		jobs.POST("/:job_id/updates", jobCardHandler.PostUpdate)
		jobs.POST("/:job_id/cancel", jobCardHandler.CancelJob)
		jobs.POST("/:job_id/reopen", jobCardHandler.ReopenJob)
		jobs.POST("/:job_id/feedback", jobCardHandler.SubmitFeedback)

		jobs.POST("/:job_id/payments", paymentHandler.RecordPayment)
		jobs.POST("/:job_id/payments/online", paymentHandler.CreateOnlinePayment)
		jobs.GET("/:job_id/payments", paymentHandler.ListPayments)
	}
}
