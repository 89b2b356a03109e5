// Config loading for the pantry CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir      = "data_dir"
	cfgKeySeedFile     = "seed_file"
	cfgKeyDiscoveryURL = "discovery_url"
	cfgKeySyncQuiet    = "sync_quiet"

	cfgKeyMirrorUploadURL    = "mirror.upload_url"
	cfgKeyMirrorUploadPreset = "mirror.upload_preset"
	cfgKeyMirrorPublicID     = "mirror.public_id"

	cfgKeyRelayServiceID  = "relay.service_id"
	cfgKeyRelayTemplateID = "relay.template_id"
	cfgKeyRelayToken      = "relay.token"
)

// appConfig is the loaded viper instance, set by the root PersistentPreRunE.
var appConfig *viper.Viper

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Pantry CLI configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Bundled seed snapshot used as the bootstrap fallback
# seed_file: seed.json

# Optional descriptor document naming the current mirror URL
# discovery_url:

# Mirror upload debounce window (default 2s)
# sync_quiet: 2s

# Remote mirror upload credentials (optional; mirror is silent without them)
# mirror:
#   upload_url:
#   upload_preset:
#   public_id:

# Email relay credentials ("pantry config relay" stores them durably instead)
# relay:
#   service_id:
#   template_id:
#   token:
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeySyncQuiet, 2*time.Second)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// fileMirrorConfig assembles the mirror credentials from config.yaml.
func fileMirrorConfig() types.MirrorConfig {
	return types.MirrorConfig{
		UploadURL:    appConfig.GetString(cfgKeyMirrorUploadURL),
		UploadPreset: appConfig.GetString(cfgKeyMirrorUploadPreset),
		PublicID:     appConfig.GetString(cfgKeyMirrorPublicID),
	}
}

// fileRelayConfig assembles relay credentials from config.yaml. Credentials
// stored durably via "pantry config relay" win over these.
func fileRelayConfig() types.RelayConfig {
	return types.RelayConfig{
		ServiceID:  appConfig.GetString(cfgKeyRelayServiceID),
		TemplateID: appConfig.GetString(cfgKeyRelayTemplateID),
		Token:      appConfig.GetString(cfgKeyRelayToken),
	}
}
