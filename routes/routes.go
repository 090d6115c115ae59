package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/momin096/MediCamp-server/config"
	controllers "github.com/momin096/MediCamp-server/controllers"
	middleware "github.com/momin096/MediCamp-server/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// public
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "MediCamp server is running")
	})
	r.POST("/jwt", controllers.IssueToken(cfg))
	r.POST("/users/:email", controllers.EnsureUser(cfg))
	r.GET("/camps", controllers.ListCamps(cfg))
	r.GET("/camps/:id", controllers.GetCamp(cfg))
	r.GET("/top-camps", controllers.ListTopCamps(cfg))

	auth := middleware.RequireToken(cfg)
	organizer := middleware.RequireOrganizer(cfg)

	// profile
	r.GET("/profile/:email", auth, controllers.GetProfile(cfg))
	r.PATCH("/update-profile/:email", auth, controllers.UpdateProfile(cfg))
	r.GET("/users/role/:email", auth, controllers.GetRole(cfg))

	// camp administration
	r.POST("/camps", auth, organizer, controllers.CreateCamp(cfg))
	r.PATCH("/camps/:id", auth, organizer, controllers.UpdateCamp(cfg))
	r.DELETE("/camps/:id", auth, organizer, controllers.DeleteCamp(cfg))
	r.POST("/camps/:id/image", auth, organizer, controllers.UploadCampImage(cfg))
	r.POST("/camps/:id/reconcile", auth, organizer, controllers.ReconcileParticipants(cfg))
	r.PATCH("/change-status/:id", auth, organizer, controllers.ConfirmRegistration(cfg))

	// registrations
	r.POST("/registrations", auth, controllers.Register(cfg))
	r.GET("/registered-camps", auth, controllers.ListRegistrations(cfg))
	r.DELETE("/delete-registered-camp/:id", auth, controllers.CancelRegistration(cfg))
	r.PATCH("/registered-camps/payment/:id", auth, controllers.MarkRegistrationPaid(cfg))

	// payments
	r.POST("/create-payment-intent", auth, controllers.CreatePaymentIntent(cfg))
	r.POST("/payments", auth, controllers.RecordPayment(cfg))
	r.GET("/payment-history", auth, controllers.PaymentHistory(cfg))
}
