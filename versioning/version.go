package versioning

// Version is set at build time with -ldflags "-X github.com/arcana-network/keygen/versioning.Version=...".
var Version = "dev"
