package remote

// Config holds configuration for the translation service.
type Config struct {
	// Host is the base URL of the service, e.g. https://i18n.example.com.
	Host string `mapstructure:"host" default:""`
	// SubSystemName identifies the sub-system whose terms are synchronized.
	SubSystemName string `mapstructure:"sub_system_name" default:""`
	// ProductCode identifies the product.
	ProductCode string `mapstructure:"product_code" default:""`
	// VersionNo selects the translation version.
	VersionNo string `mapstructure:"version_no" default:"1.0.0"`
	// Preview is sent as the preview header on reads.
	Preview string `mapstructure:"preview" default:"1"`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// BlobKeyTemplate locates a language inside a downloaded blob.
	BlobKeyTemplate string `mapstructure:"blob_key_template" default:"languages/%s.json"`
}
