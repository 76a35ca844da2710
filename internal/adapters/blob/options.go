package blob

import (
	"context"

	"orderexport/internal/platform/config"
	perr "orderexport/internal/platform/errors"
	"orderexport/internal/platform/logger"
	"orderexport/internal/platform/validate"
)

// Strategy names how content reaches the backend
type Strategy string

const (
	StrategyStage  Strategy = "stage"
	StrategyStream Strategy = "stream"
	StrategyBuffer Strategy = "buffer"
)

// Options selects and configures the sink
type Options struct {
	Backend         string `env:"STORAGE_BACKEND" validate:"oneof=gcs s3 local"`
	Bucket          string `env:"STORAGE_BUCKET" validate:"required_unless=Backend local,omitempty,bucket"`
	Region          string
	Endpoint        string
	CredentialsFile string
	AccessKey       string
	SecretKey       string
	LocalRoot       string   `env:"STORAGE_LOCAL_ROOT" validate:"required_if=Backend local"`
	Gzip            bool     // ignored for the local backend and the buffer strategy
	Strategy        Strategy `env:"CORE_EXPORT_STRATEGY" validate:"oneof=stage stream buffer"`
	ScratchDir      string
	ContentType     string
}

// OptionsFromConfig reads STORAGE_* and the CORE_EXPORT_ strategy keys
func OptionsFromConfig(cfg config.Conf) Options {
	st := cfg.Prefix("STORAGE_")
	ex := cfg.Prefix("CORE_EXPORT_")
	return Options{
		Backend:         st.MayEnum("BACKEND", "gcs", "gcs", "s3", "local"),
		Bucket:          st.MayString("BUCKET", ""),
		Region:          st.MayString("REGION", ""),
		Endpoint:        st.MayString("ENDPOINT", ""),
		CredentialsFile: st.MayString("CREDENTIALS_FILE", ""),
		AccessKey:       st.MayString("ACCESS_KEY_ID", ""),
		SecretKey:       st.MayString("SECRET_ACCESS_KEY", ""),
		LocalRoot:       st.MayString("LOCAL_ROOT", ""),
		Gzip:            st.MayBool("GZIP", true),
		Strategy:        Strategy(ex.MayEnum("STRATEGY", "stage", "stage", "stream", "buffer")),
		ScratchDir:      ex.MayString("SCRATCH_DIR", ""),
	}
}

// Validate checks backend specific requirements
func (o Options) Validate() error { return validate.Struct(o) }

// backendOpeners are seams over the real client constructors
var (
	openGCS = func(ctx context.Context, o Options) (Backend, error) {
		return NewGCS(ctx, GCSOptions{Bucket: o.Bucket, CredentialsFile: o.CredentialsFile, Endpoint: o.Endpoint})
	}
	openS3 = func(ctx context.Context, o Options) (Backend, error) {
		return NewS3(ctx, S3Options{
			Bucket: o.Bucket, Region: o.Region, Endpoint: o.Endpoint,
			AccessKey: o.AccessKey, SecretKey: o.SecretKey,
		})
	}
	openLocal = func(_ context.Context, o Options) (Backend, error) { return NewLocal(o.LocalRoot) }
)

// Open builds the backend once and wraps it in the configured strategy
func Open(ctx context.Context, o Options) (Sink, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var (
		b   Backend
		err error
	)
	switch o.Backend {
	case "gcs":
		b, err = openGCS(ctx, o)
	case "s3":
		b, err = openS3(ctx, o)
	case "local":
		b, err = openLocal(ctx, o)
		o.Gzip = false
	default:
		return nil, perr.Configf("unknown storage backend %q", o.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Wrap(b, o), nil
}

// Wrap applies the strategy in o to an already built backend
func Wrap(b Backend, o Options) Sink {
	switch o.Strategy {
	case StrategyStream:
		return NewStreamed(b, o.ContentType, o.Gzip)
	case StrategyBuffer:
		if o.Gzip {
			logger.Named("blob").Info().Str("backend", b.Name()).Msg("buffer strategy uploads uncompressed, gzip setting ignored")
		}
		return NewBuffered(b, o.ContentType)
	default:
		return NewStaged(b, o.ScratchDir, o.ContentType, o.Gzip)
	}
}
