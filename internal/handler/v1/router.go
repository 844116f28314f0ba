package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ehospital/medications/pkg/auth"
	"github.com/ehospital/medications/pkg/metrics"
)

type RouterDeps struct {
	Drugs         *DrugHandler
	Prescriptions *PrescriptionHandler
	Directory     *DirectoryHandler
	JWTManager    *auth.JWTManager
	Metrics       *metrics.Collector
	Log           *zap.Logger
}

// NewRouter assembles the HTTP surface. Health and metrics endpoints stay
// outside the authenticated group.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(deps.Log), Metrics(deps.Metrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api", Authenticate(deps.JWTManager))

	drugs := api.Group("/drugs")
	{
		drugs.GET("", deps.Drugs.List)
		drugs.GET("/filter", deps.Drugs.Filter)
		drugs.GET("/:id", deps.Drugs.GetByID)
		drugs.POST("/add", deps.Drugs.Create)
		drugs.PUT("/edit/:id", deps.Drugs.Update)
		drugs.DELETE("/remove/:id", deps.Drugs.Delete)
	}

	prescriptions := api.Group("/prescriptions")
	{
		prescriptions.GET("", deps.Prescriptions.List)
		prescriptions.GET("/:id", deps.Prescriptions.GetByID)
		prescriptions.GET("/guide/:id", deps.Prescriptions.Guide)
		prescriptions.GET("/details/:patientId", deps.Prescriptions.Details)
		prescriptions.POST("/add", deps.Prescriptions.Create)
		prescriptions.PUT("/edit/:id", deps.Prescriptions.Update)
		prescriptions.PUT("/edit/status/:id", deps.Prescriptions.ToggleStatus)
		prescriptions.DELETE("/remove/:id", deps.Prescriptions.Delete)
	}

	api.GET("/doctors", deps.Directory.Doctors)
	api.GET("/patients/:id", deps.Directory.Patient)
	api.GET("/patients/:id/image", deps.Directory.PatientImage)

	return r
}
