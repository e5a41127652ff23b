package config

// Config is the full configuration surface. Components depend on the
// narrow interface they need rather than on the whole thing.
type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetDataFolder() string
	GetDefaultLocale() string
}

// APIConfig exposes the single backend endpoint all API calls target.
// An empty base endpoint is not fatal here: surfaces that need it report
// a configuration error at the point of use instead of crashing startup.
type APIConfig interface {
	GetBaseEndpoint() string
}

// StorageConfig holds the upload proxy's listen address and the object
// storage credentials it forwards files to.
type StorageConfig interface {
	GetUploadListenAddr() string
	GetS3Bucket() string
	GetS3Region() string
	GetS3AccessKey() string
	GetS3SecretKey() string
}
