package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	S3         S3Config         `mapstructure:"s3"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig points at the service-account credential document; the
// document itself (URI, database name) is loaded separately at startup so
// that a missing or malformed file can abort the process with a cause-
// specific message.
type DatabaseConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

// StorageConfig selects the media storage provider implementation.
type StorageConfig struct {
	// Provider is "cloudinary" (default) or "s3".
	Provider string `mapstructure:"provider"`
}

// CloudinaryConfig carries the account credentials for the Cloudinary
// provider. CloudName and APIKey are public identifiers handed to clients;
// APISecret never leaves the process.
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	// UploadPrefix overrides the provider API base URL, mainly for tests.
	UploadPrefix string `mapstructure:"upload_prefix"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variables override file values,
	// e.g. cloudinary.api_secret -> CLOUDINARY_API_SECRET.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8000")
	viper.SetDefault("database.credentials_file", "credentials/database.json")
	viper.SetDefault("storage.provider", "cloudinary")
	viper.SetDefault("cloudinary.upload_prefix", "https://api.cloudinary.com")
	viper.SetDefault("s3.use_ssl", true)

	err = viper.ReadInConfig()
	// A missing config file is fine; the process may be configured entirely
	// through the environment. Any other read error is fatal.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	// A bare PORT value (the conventional PaaS contract) wins over the
	// composed server address.
	if port := viper.GetString("port"); port != "" {
		config.Server.Address = ":" + port
	}

	return config, nil
}
