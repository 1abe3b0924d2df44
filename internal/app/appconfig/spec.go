package appconfig

import (
	"time"

	"github.com/riftcoach/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address the HTTP server would listen on.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9410"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic.
	DevMode bool `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// RiotAPIKey authenticates requests against the match-data provider.
	RiotAPIKey string `split_words:"true"`

	// RiotRegion is the regional routing value used for account and match lookups.
	RiotRegion string `split_words:"true" default:"europe"`

	// RiotTagLine is the default Riot ID tag line when a request omits one.
	RiotTagLine string `split_words:"true" default:"EUW"`

	// MatchFetchCount is how many recent match ids are inspected when
	// looking for games on a given champion.
	MatchFetchCount int `split_words:"true" default:"20"`

	// OpenAIAPIKey authenticates requests against the text-generation provider.
	OpenAIAPIKey string `split_words:"true"`

	// AnalysisModel is the text-generation model used for all analysis stages.
	AnalysisModel string `split_words:"true" default:"gpt-4o"`

	// AnalysisMaxTokens caps the response size of a single analysis stage.
	AnalysisMaxTokens int64 `split_words:"true" default:"1024"`

	// AnalysisConcurrency caps how many phase/match analyses run in parallel.
	AnalysisConcurrency int `split_words:"true" default:"3"`

	// RoundDecimals is the decimal precision applied to every float leaf of an
	// artifact before it is serialized into a prompt, to bound prompt size.
	RoundDecimals int `split_words:"true" default:"3"`

	// ElevenLabsAPIKey authenticates requests against the speech provider.
	// Leaving this empty disables audio rendering.
	ElevenLabsAPIKey string `split_words:"true"`

	// ArtifactBucketURL is the gocloud.dev/blob URL of the artifact store.
	// Defaults to a local directory; an s3:// URL works as well.
	ArtifactBucketURL string `split_words:"true" default:"file://./artifacts?create_dir=true"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
