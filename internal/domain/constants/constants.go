// Package constants holds identifiers shared across layers.
package constants

const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Context keys under which the request guard stores the authenticated principal.
const (
	ContextKeyPrincipal   = "principal"
	ContextKeyPrincipalID = "principal_id"
)
