package transcription

import (
	"fmt"
	"log"
	"net/http"

	"github.com/killallgit/scriptify/pkg/config"
)

// Variant names one backend strategy
type Variant string

const (
	VariantOpenAI Variant = "openai"
	VariantAzure  Variant = "azure"
	VariantLocal  Variant = "local"
	VariantNative Variant = "native"
)

// Environment is everything selection depends on
type Environment struct {
	// Service is the configured selector: auto or a pinned variant
	Service string
	// DesktopHost is true when running inside the desktop shell
	DesktopHost bool
	// NativeCheck reports whether the embedded routine is usable; nil means unusable
	NativeCheck func() error
}

// Probe picks a backend variant. A pinned service always wins; otherwise the
// native routine is preferred inside a desktop host and the local server is
// the fallback. The same Environment always yields the same Variant.
func Probe(env Environment) Variant {
	switch env.Service {
	case config.ServiceOpenAI:
		return VariantOpenAI
	case config.ServiceAzure:
		return VariantAzure
	case config.ServiceLocal:
		return VariantLocal
	case config.ServiceNative:
		return VariantNative
	}

	if env.DesktopHost && env.NativeCheck != nil {
		err := env.NativeCheck()
		if err == nil {
			return VariantNative
		}
		log.Printf("[INFO] Native transcription unavailable, falling back to local server: %v", err)
	}
	return VariantLocal
}

// NewBackend builds the backend for a variant from configuration
func NewBackend(variant Variant, cfg *config.Config, client *http.Client, bridge Bridge) (Backend, error) {
	if client == nil {
		client = NewHTTPClient(cfg.Transcription.Timeout)
	}

	switch variant {
	case VariantOpenAI:
		return NewOpenAIBackend(client, cfg.OpenAI.APIURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	case VariantAzure:
		return NewAzureBackend(client, cfg.Azure.EndpointTemplate, cfg.Azure.Region, cfg.Azure.SubscriptionKey), nil
	case VariantLocal:
		return NewLocalServerBackend(client, cfg.LocalServer.URL, cfg.LocalServer.Model), nil
	case VariantNative:
		if bridge == nil {
			bridge = NewScriptBridge(cfg.Native.PythonPath, cfg.Native.ScriptPath, cfg.Native.ModelSize, cfg.Native.TempDir)
		}
		return NewNativeBackend(bridge), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend: %s", variant)
	}
}

// Select probes the environment described by cfg and builds the chosen backend
func Select(cfg *config.Config, client *http.Client, bridge Bridge) (Backend, Variant, error) {
	if bridge == nil {
		bridge = NewScriptBridge(cfg.Native.PythonPath, cfg.Native.ScriptPath, cfg.Native.ModelSize, cfg.Native.TempDir)
	}

	variant := Probe(Environment{
		Service:     cfg.Transcription.Service,
		DesktopHost: cfg.Native.DesktopHost,
		NativeCheck: bridge.Available,
	})

	backend, err := NewBackend(variant, cfg, client, bridge)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[INFO] Transcription backend selected: %s", variant)
	return backend, variant, nil
}
