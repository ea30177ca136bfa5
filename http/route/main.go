package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/http/controller"
	middlewares "github.com/tnqbao/gau-showcase-service/http/middleware"
)

// SetupRouter mounts every route at the root; write routes sit behind the
// auth middleware.
func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}
	r.Use(middles.CORSMiddleware, middles.TelemetryMiddleware)

	auth := middles.AuthMiddleware

	r.GET("/health", ctrl.Health)

	projectRoutes := r.Group("/projects")
	{
		projectRoutes.GET("", ctrl.ListProjects)
		projectRoutes.GET("/:id", ctrl.GetProjectByID)
		projectRoutes.POST("", auth, ctrl.CreateProject)
		projectRoutes.PUT("/:id", auth, ctrl.UpdateProject)
		projectRoutes.DELETE("/:id", auth, ctrl.DeleteProject)
	}

	partnerRoutes := r.Group("/partners")
	{
		partnerRoutes.GET("", ctrl.ListPartners)
		partnerRoutes.GET("/:id", ctrl.GetPartnerByID)
		partnerRoutes.POST("", auth, ctrl.CreatePartner)
		partnerRoutes.PUT("/:id", auth, ctrl.UpdatePartner)
		partnerRoutes.DELETE("/:id", auth, ctrl.DeletePartner)
	}

	statRoutes := r.Group("/stats")
	{
		statRoutes.GET("", ctrl.ListStats)
		statRoutes.GET("/:id", ctrl.GetStatByID)
		statRoutes.POST("", auth, ctrl.CreateStat)
		statRoutes.PUT("/:id", auth, ctrl.UpdateStat)
		statRoutes.DELETE("/:id", auth, ctrl.DeleteStat)
	}

	boxRoutes := r.Group("/box")
	{
		boxRoutes.GET("/getBoxDescription", ctrl.GetBoxDescription)
		boxRoutes.PUT("/updateBoxDescription", auth, ctrl.UpdateBoxDescription)
	}

	adminRoutes := r.Group("/admin")
	{
		adminRoutes.POST("/loginAdmin", ctrl.LoginAdmin)
		adminRoutes.POST("/addAdmin", auth, ctrl.AddAdmin)
		adminRoutes.DELETE("/:id", auth, ctrl.DeleteAdmin)
	}

	r.POST("/email/send-email", ctrl.SendEmail)

	imageRoutes := r.Group("/images")
	{
		imageRoutes.GET("/getAllImages", ctrl.GetAllImages)
		imageRoutes.POST("/uploadFile", auth, ctrl.UploadImage)
		imageRoutes.PUT("/updateFile", auth, ctrl.UpdateImage)
		imageRoutes.DELETE("/deleteFile", auth, ctrl.DeleteImage)
	}

	videoRoutes := r.Group("/videos")
	{
		videoRoutes.GET("/getAllVideos", ctrl.GetAllVideos)
		videoRoutes.POST("/uploadFile", auth, ctrl.UploadVideo)
		videoRoutes.PUT("/updateFile", auth, ctrl.UpdateVideo)
		videoRoutes.DELETE("/deleteFile", auth, ctrl.DeleteVideo)
	}

	return r
}
