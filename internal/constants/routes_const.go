package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
)

// Notice Routes
const (
	NoticesBasePath      = "/api/notices"
	NoticeRenderPath     = "/api/notices/render"
	NoticeStylesheetPath = "/api/notices/stylesheet"
)

// Admin Routes
const (
	AdminBasePath        = "/api/admin"
	AdminSettingsPath    = "/api/admin/settings"
	AdminPreviewPath     = "/api/admin/settings/preview"
	AdminItemDisablePath = "/api/admin/items/{itemID}/disable"
)

// URL Parameters
const (
	ParamItemID = "itemID"
)
