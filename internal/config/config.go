package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BlockSourceSubgraph = "subgraph"
	BlockSourceRPC      = "rpc"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	SubgraphURL     string
	SubgraphHeaders map[string]string
	BlocksURL       string
	RPCURL          string
	BlockSource     string
	TokenBlacklist  []string
	Timeout         time.Duration
	LogLevel        string
	Out             string
	PGDSN           string
	Listen          string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INFO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("block-source", BlockSourceSubgraph)
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("log-level", "info")
	v.SetDefault("listen", ":8080")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		SubgraphURL:     v.GetString("subgraph-url"),
		SubgraphHeaders: getStringMap(v, "subgraph-headers"),
		BlocksURL:       v.GetString("blocks-url"),
		RPCURL:          v.GetString("rpc"),
		BlockSource:     strings.ToLower(v.GetString("block-source")),
		TokenBlacklist:  getStringSlice(v, "token-blacklist"),
		Timeout:         v.GetDuration("timeout"),
		LogLevel:        v.GetString("log-level"),
		Out:             v.GetString("out"),
		PGDSN:           v.GetString("pg-dsn"),
		Listen:          v.GetString("listen"),
	}

	return cfg, nil
}

// Validate checks settings every command needs.
func (c Config) Validate() error {
	if c.SubgraphURL == "" {
		return fmt.Errorf("subgraph url is required")
	}
	switch c.BlockSource {
	case BlockSourceSubgraph, BlockSourceRPC:
	default:
		return fmt.Errorf("unsupported block source: %s", c.BlockSource)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// ValidateBlocks checks the settings needed to resolve timestamps to blocks.
func (c Config) ValidateBlocks() error {
	switch c.BlockSource {
	case BlockSourceSubgraph:
		if c.BlocksURL == "" {
			return fmt.Errorf("blocks url is required for block source %q", c.BlockSource)
		}
	case BlockSourceRPC:
		if c.RPCURL == "" {
			return fmt.Errorf("rpc url is required for block source %q", c.BlockSource)
		}
	}
	return nil
}

// ParseTimestamp parses a timestamp value (unix seconds or RFC3339). Empty input yields the zero time.
func ParseTimestamp(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, nil
	}

	if isNumeric(input) {
		val, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(val, 0).UTC(), nil
	}

	return time.Parse(time.RFC3339, input)
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		return typed
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = fmt.Sprintf("%v", v)
		}
		return out
	case string:
		return parseStringMap(typed)
	case []string:
		return parseStringMap(strings.Join(typed, ","))
	default:
		return map[string]string{}
	}
}

func parseStringMap(input string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(input) == "" {
		return out
	}
	pairs := strings.Split(input, ",")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
