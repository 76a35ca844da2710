package module

import (
	"orderexport/internal/adapters/blob"
	"orderexport/internal/adapters/orders/commercetools"
	"orderexport/internal/core/csvexport"
	"orderexport/internal/platform/config"
	"orderexport/internal/platform/validate"
)

// Options controls the export pipeline and its collaborators
type Options struct {
	Source      string `env:"ORDERS_SOURCE" validate:"oneof=commercetools postgres clickhouse"`
	Folder      string `env:"CORE_EXPORT_FOLDER" validate:"folder"`
	Mode        string `env:"CORE_EXPORT_MODE" validate:"oneof=today recent"`
	RecentLimit int    `env:"CORE_EXPORT_RECENT_LIMIT" validate:"min=1,max=500"`
	Table       string

	CTP     commercetools.Options `validate:"-"`
	Storage blob.Options          `validate:"-"`
}

// FromConfig reads ORDERS_*, CORE_EXPORT_*, CTP_* and STORAGE_* values
func FromConfig(cfg config.Conf) Options {
	ex := cfg.Prefix("CORE_EXPORT_")
	o := Options{
		Source:      cfg.Prefix("ORDERS_").MayEnum("SOURCE", "commercetools", "commercetools", "postgres", "clickhouse"),
		Folder:      ex.MayString("FOLDER", ""),
		Mode:        ex.MayEnum("MODE", "today", "today", "recent"),
		RecentLimit: ex.MayInt("RECENT_LIMIT", 20),
		CTP:         commercetools.OptionsFromConfig(cfg),
		Storage:     blob.OptionsFromConfig(cfg),
	}
	o.Storage.ContentType = csvexport.ContentType
	return o
}

// Validate checks the pipeline options and the options of the selected source
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return err
	}
	if o.Source == "commercetools" {
		return o.CTP.Validate()
	}
	return nil
}
