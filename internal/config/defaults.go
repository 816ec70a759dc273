package config

const (
	defaultConfigPath            = "~/.config/presentcoach/config.toml"
	defaultStateDir              = "~/.local/share/presentcoach"
	defaultWorkDir               = "~/.local/share/presentcoach/work"
	defaultLogDir                = "~/.local/share/presentcoach/logs"
	defaultTranscriptionCacheDir = "~/.local/share/presentcoach/cache/whisperx"
	defaultMinDurationSeconds    = 10.0
	defaultMinWordCount          = 10
	defaultMinFrames             = 50
	defaultTranscriptionModel    = "large-v3-turbo"
	defaultTranscriptionLanguage = "en"
	defaultVADMethod             = "silero"
	defaultLLMBaseURL            = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel              = "google/gemini-3-flash-preview"
	defaultLLMReferer            = "https://github.com/presentcoach/presentcoach"
	defaultLLMTitle              = "presentcoach feedback"
	defaultLLMTimeoutSeconds     = 60
	defaultServerBind            = "127.0.0.1:7590"
	defaultRequestTimeout        = 30
	defaultNotifyRequestTimeout  = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			WorkDir:  defaultWorkDir,
			LogDir:   defaultLogDir,
		},
		Analysis: Analysis{
			MinDurationSeconds: defaultMinDurationSeconds,
			MinWordCount:       defaultMinWordCount,
			MinFrames:          defaultMinFrames,
		},
		Transcription: Transcription{
			Model:     defaultTranscriptionModel,
			Language:  defaultTranscriptionLanguage,
			VADMethod: defaultVADMethod,
			CacheDir:  defaultTranscriptionCacheDir,
		},
		LLM: LLM{
			Enabled:        true,
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Server: Server{
			Bind:                  defaultServerBind,
			RequestTimeoutSeconds: defaultRequestTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			OnSuccess:      true,
			OnFailure:      true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
