// Package config loads ec2spend settings from flags, environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/younsl/ec2spend/pkg/filter"
	"github.com/younsl/ec2spend/pkg/pricing"
	"github.com/younsl/ec2spend/pkg/utils"
)

// Configuration keys, also used as flag names
const (
	KeyRegion        = "region"
	KeyProfile       = "profile"
	KeyName          = "name"
	KeyKeyName       = "key-name"
	KeySecurityGroup = "security-group"
	KeyInstanceType  = "instance-type"
	KeyAMIID         = "ami-id"
	KeyTags          = "tags"
	KeyOutput        = "output"
	KeyPriceSource   = "price-source"
	KeyRetries       = "retries"
	KeyLogLevel      = "log-level"

	flagTag = "tag"

	envPrefix      = "EC2SPEND"
	configFileName = ".ec2spend"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds the settings of one run
type Config struct {
	Region      string
	Profile     string
	Filter      filter.Spec
	Output      string
	PriceSource pricing.PricingSource
	Retries     int
	LogLevel    string
}

// RegisterFlags adds every configuration flag to flags
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP(KeyRegion, "r", utils.GetDefaultRegion(), "AWS region to report on")
	flags.String(KeyProfile, "", "AWS shared config profile")
	flags.String(KeyName, filter.MatchAll, "Glob on the Name tag")
	flags.String(KeyKeyName, filter.MatchAll, "Glob on the key pair name")
	flags.String(KeySecurityGroup, filter.MatchAll, "Glob on security group names (any group may match)")
	flags.String(KeyInstanceType, filter.MatchAll, "Glob on the instance type")
	flags.String(KeyAMIID, filter.MatchAll, "Glob on the AMI ID")
	flags.StringToString(flagTag, nil, "Glob on a tag value, as key=glob (repeatable)")
	flags.StringP(KeyOutput, "o", OutputText, "Output format: text or json")
	flags.String(KeyPriceSource, string(pricing.PricingSourceBuiltin), "On-demand price source: builtin, catalog or api")
	flags.Int(KeyRetries, 0, "Retries per AWS request with exponential backoff")
	flags.String(KeyLogLevel, "warn", "Log level: debug, info, warn or error")
}

// NewViper returns a viper instance bound to flags and EC2SPEND_* environment variables
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		KeyRegion, KeyProfile, KeyName, KeyKeyName, KeySecurityGroup, KeyInstanceType,
		KeyAMIID, KeyOutput, KeyPriceSource, KeyRetries, KeyLogLevel,
	} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return nil, fmt.Errorf("error binding flag %s: %w", key, err)
		}
	}
	if err := v.BindPFlag(KeyTags, flags.Lookup(flagTag)); err != nil {
		return nil, fmt.Errorf("error binding flag %s: %w", flagTag, err)
	}

	return v, nil
}

// ReadConfigFile reads path, or ~/.ec2spend.yaml when path is empty.
// A missing default file is not an error. It returns the file used, if any.
func ReadConfigFile(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(configFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("error reading config file: %w", err)
	}

	if err := checkFileTags(v.ConfigFileUsed()); err != nil {
		return "", err
	}

	return v.ConfigFileUsed(), nil
}

// checkFileTags rejects a tags map in the config file. Viper lower-cases map
// keys, which would silently break case-sensitive tag keys.
func checkFileTags(path string) error {
	fv := viper.New()
	fv.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		fv.SetConfigType("yaml")
	}
	if err := fv.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	if _, isMap := fv.Get(KeyTags).(map[string]interface{}); isMap {
		return fmt.Errorf("%s in %s must be a list of key=glob entries", KeyTags, path)
	}
	return nil
}

// Load builds a Config from v
func Load(v *viper.Viper) (Config, error) {
	tags, err := loadTags(v)
	if err != nil {
		return Config{}, err
	}

	spec := filter.Spec{
		Name:          v.GetString(KeyName),
		KeyName:       v.GetString(KeyKeyName),
		SecurityGroup: v.GetString(KeySecurityGroup),
		InstanceType:  v.GetString(KeyInstanceType),
		AMIID:         v.GetString(KeyAMIID),
		Tags:          tags,
	}

	return Config{
		Region:      v.GetString(KeyRegion),
		Profile:     v.GetString(KeyProfile),
		Filter:      spec,
		Output:      strings.ToLower(v.GetString(KeyOutput)),
		PriceSource: pricing.PricingSource(strings.ToLower(v.GetString(KeyPriceSource))),
		Retries:     v.GetInt(KeyRetries),
		LogLevel:    v.GetString(KeyLogLevel),
	}, nil
}

// loadTags reads tag globs from the --tag flag (a map), a config file list of
// "key=glob" entries, or a comma separated EC2SPEND_TAGS value.
// Tag keys are case-sensitive, so maps are only accepted from the flag.
func loadTags(v *viper.Viper) (map[string]string, error) {
	var entries []string

	switch raw := v.Get(KeyTags).(type) {
	case nil:
	case map[string]interface{}, map[string]string:
		return v.GetStringMapString(KeyTags), nil
	case []interface{}:
		for _, e := range raw {
			entries = append(entries, fmt.Sprint(e))
		}
	case []string:
		entries = raw
	case string:
		if raw != "" {
			entries = strings.Split(raw, ",")
		}
	default:
		return nil, fmt.Errorf("invalid %s value of type %T", KeyTags, raw)
	}

	tags := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, glob, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid tag filter '%s' (use key=glob)", entry)
		}
		tags[key] = glob
	}

	return tags, nil
}

// Validate checks the settings before any AWS request is made
func (c Config) Validate() error {
	if c.Region == "" {
		return errors.New("region must not be empty")
	}

	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("invalid output format '%s' (use text or json)", c.Output)
	}

	switch c.PriceSource {
	case pricing.PricingSourceBuiltin, pricing.PricingSourceCatalog:
	case pricing.PricingSourceAPI:
		if !utils.IsValidRegion(c.Region) {
			return fmt.Errorf("region '%s' has no Pricing API location", c.Region)
		}
	default:
		return fmt.Errorf("invalid price source '%s' (use builtin, catalog or api)", c.PriceSource)
	}

	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}

	return nil
}
