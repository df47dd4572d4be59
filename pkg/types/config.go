package types

// ArchiverType identifies the archiver backend named in the config file.
type ArchiverType string

const (
	ArchiverS3 ArchiverType = "s3"
)

// ArchiverConfig holds the optional archiver section of the config file.
// A nil *ArchiverConfig means no archiver section was present.
type ArchiverConfig struct {
	// Type selects the backend. Only "s3" is recognised.
	Type ArchiverType `json:"type" yaml:"type" mapstructure:"type"`

	// AccessKeyID and SecretAccessKey are the static object-store credentials.
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id" mapstructure:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key" mapstructure:"secret_access_key"`

	// Bucket is the bucket (or container) receiving archived files.
	Bucket string `json:"bucket" yaml:"bucket" mapstructure:"bucket"`

	// Region defaults to eu-west-2 when empty.
	Region string `json:"region,omitempty" yaml:"region,omitempty" mapstructure:"region"`

	// Endpoint overrides the service endpoint for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`
}

// HistoryConfig controls the run history ledger.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups everything pdfsp reads from its config file and environment.
type Config struct {
	// Tool is the external splitting binary (default "pdftk").
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`

	// CloudfileDir is the staging directory selected by --cloudfile.
	CloudfileDir string `json:"cloudfile_dir" yaml:"cloudfile_dir" mapstructure:"cloudfile_dir"`

	// SecretsDir holds credential files that fill an incomplete archiver section.
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`

	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`

	Archiver *ArchiverConfig `json:"archiver,omitempty" yaml:"archiver,omitempty" mapstructure:"archiver"`
}
