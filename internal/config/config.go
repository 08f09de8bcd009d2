package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/pelletier/go-toml/v2"
)

type Settings struct {
	SpawnInterval     float32 `json:"spawn_interval" toml:"spawn_interval"`
	MinLifetime       float32 `json:"min_lifetime" toml:"min_lifetime"`
	MaxLifetime       float32 `json:"max_lifetime" toml:"max_lifetime"`
	MinSpeed          float32 `json:"min_speed" toml:"min_speed"`
	MaxSpeed          float32 `json:"max_speed" toml:"max_speed"`
	MinSize           float32 `json:"min_size" toml:"min_size"`
	MaxSize           float32 `json:"max_size" toml:"max_size"`
	MaxShapes         int     `json:"max_shapes" toml:"max_shapes"`
	AnchorInterval    float32 `json:"anchor_interval" toml:"anchor_interval"`
	MaxSpawnsPerFrame int     `json:"max_spawns_per_frame" toml:"max_spawns_per_frame"`
	Width             int     `json:"width" toml:"width"`
	Height            int     `json:"height" toml:"height"`
}

func Default() Settings {
	return Settings{
		SpawnInterval:  0.08,
		MinLifetime:    0.25,
		MaxLifetime:    6,
		MinSpeed:       125,
		MaxSpeed:       350,
		MinSize:        2,
		MaxSize:        50,
		MaxShapes:      250,
		AnchorInterval: 3,
		Width:          800,
		Height:         600,
	}
}

func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "shapes")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

// GetSettingsPath prefers settings.toml and falls back to settings.json,
// which is also where defaults get written.
func GetSettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	tomlPath := filepath.Join(dir, "settings.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	return filepath.Join(dir, "settings.json"), nil
}

func LoadSettings() (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(settingsPath)
}

func LoadFile(settingsPath string) (*Settings, error) {
	log := logging.Logger()
	defaults := Default()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("creating default settings file", "path", settingsPath)
			if err := createDefaultSettings(settingsPath, &defaults); err != nil {
				log.Warn("failed to create default settings file", "err", err)
			}
			return &defaults, nil
		}
		return nil, err
	}

	return Parse(data, isTOML(settingsPath))
}

// Parse decodes settings on top of the defaults, so keys left out of the
// file keep their default value. Content that fails to decode yields the
// defaults.
func Parse(data []byte, asTOML bool) (*Settings, error) {
	settings, err := decode(data, asTOML)
	if err != nil {
		logging.Logger().Warn("invalid settings file, using defaults", "err", err)
		defaults := Default()
		return &defaults, nil
	}
	return settings, nil
}

func decode(data []byte, asTOML bool) (*Settings, error) {
	unmarshal := json.Unmarshal
	if asTOML {
		unmarshal = toml.Unmarshal
	}

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := unmarshal(data, &rawSettings); err != nil {
		return nil, err
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			logging.Logger().Warn("unrecognised setting key in settings file", "key", key)
		}
	}

	settings := Default()
	if err := unmarshal(data, &settings); err != nil {
		return nil, err
	}

	settings.Validate()
	return &settings, nil
}

// Validate resets every out-of-range value to its default.
func (s *Settings) Validate() {
	log := logging.Logger()
	d := Default()

	if s.SpawnInterval <= 0 {
		log.Warn("invalid spawn_interval, must be positive", "value", s.SpawnInterval, "default", d.SpawnInterval)
		s.SpawnInterval = d.SpawnInterval
	}
	if s.AnchorInterval <= 0 {
		log.Warn("invalid anchor_interval, must be positive", "value", s.AnchorInterval, "default", d.AnchorInterval)
		s.AnchorInterval = d.AnchorInterval
	}
	if s.MinLifetime < 0 || s.MaxLifetime < s.MinLifetime {
		log.Warn("invalid lifetime range", "min", s.MinLifetime, "max", s.MaxLifetime)
		s.MinLifetime, s.MaxLifetime = d.MinLifetime, d.MaxLifetime
	}
	if s.MinSpeed < 0 || s.MaxSpeed < s.MinSpeed {
		log.Warn("invalid speed range", "min", s.MinSpeed, "max", s.MaxSpeed)
		s.MinSpeed, s.MaxSpeed = d.MinSpeed, d.MaxSpeed
	}
	if s.MinSize < 0 || s.MaxSize < s.MinSize {
		log.Warn("invalid size range", "min", s.MinSize, "max", s.MaxSize)
		s.MinSize, s.MaxSize = d.MinSize, d.MaxSize
	}
	if s.MaxShapes <= 0 {
		log.Warn("invalid max_shapes, must be positive", "value", s.MaxShapes, "default", d.MaxShapes)
		s.MaxShapes = d.MaxShapes
	}
	if s.MaxSpawnsPerFrame < 0 {
		log.Warn("invalid max_spawns_per_frame, 0 means unbounded", "value", s.MaxSpawnsPerFrame)
		s.MaxSpawnsPerFrame = 0
	}
	if s.Width <= 0 || s.Height <= 0 {
		log.Warn("invalid canvas size", "width", s.Width, "height", s.Height)
		s.Width, s.Height = d.Width, d.Height
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func createDefaultSettings(path string, settings *Settings) error {
	var data []byte
	var err error
	if isTOML(path) {
		data, err = toml.Marshal(settings)
	} else {
		data, err = json.MarshalIndent(settings, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
