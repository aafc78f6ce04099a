package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由；除注册、登录、注销外均需认证
func RegisterV1Routes(v1 *gin.RouterGroup, h *Handlers, auth gin.HandlerFunc) {
	// 认证管理
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	protected := v1.Group("", auth)

	protected.GET("/models", h.Workspace.ListModels)

	// 故事
	stories := protected.Group("/stories")
	{
		stories.GET("", h.Story.ListStories)
		stories.POST("", h.Story.CreateStory)
		stories.GET("/:sid", h.Story.GetStory)
		stories.PUT("/:sid", h.Story.UpdateStory)
		stories.DELETE("/:sid", h.Story.DeleteStory)

		// 角色
		stories.GET("/:sid/characters", h.Character.ListCharacters)
		stories.POST("/:sid/characters", h.Character.CreateCharacter)
		stories.GET("/:sid/characters/search", h.Character.SearchCharacters)
		stories.PUT("/:sid/characters/:chid", h.Character.UpdateCharacter)
		stories.DELETE("/:sid/characters/:chid", h.Character.DeleteCharacter)

		// 情节笔记
		stories.GET("/:sid/plot", h.Plot.GetPlotNotes)
		stories.PUT("/:sid/plot", h.Plot.SavePlotNotes)
	}

	// 章节
	chapters := stories.Group("/:sid/chapters")
	{
		chapters.GET("", h.Chapter.ListChapters)
		chapters.POST("", h.Chapter.CreateChapter)
		chapters.GET("/:cid", h.Chapter.GetChapter)
		chapters.PUT("/:cid", h.Chapter.SaveChapter)
		chapters.DELETE("/:cid", h.Chapter.DeleteChapter)

		// 工作台与生成
		chapters.GET("/:cid/workspace", h.Workspace.Load)
		chapters.POST("/:cid/workspace", h.Workspace.Submit)
		chapters.POST("/:cid/generate", h.Workspace.Generate)

		// 场景节拍
		chapters.GET("/:cid/beats", h.Outline.ListSceneBeats)
		chapters.POST("/:cid/beats", h.Outline.AddSceneBeat)
		chapters.PUT("/:cid/beats/:bid", h.Outline.EditSceneBeat)
		chapters.DELETE("/:cid/beats/:bid", h.Outline.DeleteSceneBeat)

		// 关键事件
		chapters.GET("/:cid/events", h.Outline.ListKeyEvents)
		chapters.POST("/:cid/events", h.Outline.AddKeyEvent)
		chapters.PUT("/:cid/events/:eid", h.Outline.EditKeyEvent)
		chapters.DELETE("/:cid/events/:eid", h.Outline.DeleteKeyEvent)

		// 世界观条目（不支持删除）
		chapters.GET("/:cid/world-elements", h.Outline.ListWorldElements)
		chapters.POST("/:cid/world-elements", h.Outline.AddWorldElement)
		chapters.PUT("/:cid/world-elements/:wid", h.Outline.EditWorldElement)
	}
}
