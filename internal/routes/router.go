package routes

import (
	"github.com/gin-gonic/gin"

	"tasks-api/internal/controller"
	"tasks-api/internal/middleware"
	"tasks-api/internal/validation"
)

// Router wires every endpoint with its middleware pipeline. Per route the order
// is: parse body, authenticate, validate, handle. Errors from any step are
// rendered once by ErrorHandler.
func Router(h *controller.Handlers, verifier middleware.TokenVerifier) *gin.Engine {
	validation.Setup()

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(), middleware.Recovery())
	router.NoRoute(middleware.NotFound)

	// Health for load balancers and K8s probes
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	router.POST("/auth/login",
		middleware.ParseJSON(),
		middleware.ValidateJSON[validation.LoginRequest](),
		h.Login)

	authn := middleware.Auth(verifier)
	tasks := router.Group("/tasks")
	{
		tasks.POST("",
			middleware.ParseJSON(), authn,
			middleware.ValidateJSON[validation.CreateTaskRequest](),
			h.CreateTask)
		tasks.GET("", authn, middleware.ValidateQuery[validation.ListTasksParams](), h.ListTasks)
		tasks.POST("/import", authn, h.ImportTasks)
		tasks.GET("/:id", authn, h.GetTask)
		tasks.PATCH("/:id",
			middleware.ParseJSON(), authn,
			middleware.ValidateJSON[validation.UpdateTaskRequest](),
			h.UpdateTask)
		tasks.DELETE("/:id", authn, h.DeleteTask)
	}

	return router
}
