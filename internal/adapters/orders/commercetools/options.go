package commercetools

import (
	"orderexport/internal/platform/config"
	"orderexport/internal/platform/validate"
)

// OptionsFromConfig reads CTP_* keys
// AUTH_URL and API_URL default to the europe-west1 GCP region
func OptionsFromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CTP_")
	return Options{
		ProjectKey:   c.MayString("PROJECT_KEY", ""),
		ClientID:     c.MayString("CLIENT_ID", ""),
		ClientSecret: c.MayString("CLIENT_SECRET", ""),
		AuthURL:      c.MayString("AUTH_URL", "https://auth.europe-west1.gcp.commercetools.com"),
		APIURL:       c.MayString("API_URL", "https://api.europe-west1.gcp.commercetools.com"),
		Scopes:       c.MayCSV("SCOPES", nil),
		Timeout:      c.MayDuration("TIMEOUT", 0),
	}
}

// Validate checks the required credentials are present
func (o Options) Validate() error { return validate.Struct(o) }
