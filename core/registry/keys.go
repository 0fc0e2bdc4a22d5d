package registry

// Core keys for GlobalRegistry.
const (
	// Extension registries (cron, api, cmd) stored in GlobalRegistry
	KeyRegistryCron   = "registry:cron"
	KeyRegistryAPI    = "registry:api"
	KeyRegistryRoutes = "registry:routes"
	KeyRegistryCmd    = "registry:cmd"
)
