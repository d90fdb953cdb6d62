package config

// DefaultTimestampURL is the timestamp authority seeded by `config init`.
const DefaultTimestampURL = "http://timestamp.digicert.com"

// Config represents the winsign CLI configuration.
// Use mapstructure tags for Viper unmarshaling; yaml tags render the
// default file written by `config init`.
type Config struct {
	Signtool  string     `mapstructure:"signtool" yaml:"signtool"`
	Progress  string     `mapstructure:"progress" yaml:"progress"`
	ExtraArgs string     `mapstructure:"extra_args" yaml:"extra_args"`
	Sign      SignConfig `mapstructure:"sign" yaml:"sign"`
}

// SignConfig holds sign-related settings. The PFX password is
// deliberately not a field: it is read from flags, WINSIGN_SIGN_PASSWORD,
// or an explicit `config set sign.password`, so `config init` never
// seeds a password key.
type SignConfig struct {
	Target         string `mapstructure:"target" yaml:"target"`
	Subject        string `mapstructure:"subject" yaml:"subject"`
	PFX            string `mapstructure:"pfx" yaml:"pfx"`
	TimestampURL   string `mapstructure:"timestamp_url" yaml:"timestamp_url"`
	Digest         string `mapstructure:"digest" yaml:"digest"`
	Description    string `mapstructure:"description" yaml:"description"`
	DescriptionURL string `mapstructure:"description_url" yaml:"description_url"`
	Backup         bool   `mapstructure:"backup" yaml:"backup"`
	Verify         bool   `mapstructure:"verify" yaml:"verify"`
}

// Default returns the configuration written by `config init`.
func Default() Config {
	return Config{
		Progress: "auto",
		Sign: SignConfig{
			TimestampURL: DefaultTimestampURL,
			Digest:       "sha256",
			Verify:       true,
		},
	}
}
