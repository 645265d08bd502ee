// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package checkconfig parses integration instance and init configs into a
// CheckConfig ready to be used by device checks.
package checkconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/sayap/integrations-core/pkg/networkdevice/profile"
	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
	"github.com/sayap/integrations-core/pkg/snmp/common"
	"github.com/sayap/integrations-core/pkg/util/log"
)

// DefaultPort is the standard SNMP UDP port
const DefaultPort = 161

const (
	defaultTimeout = 2
	defaultRetries = 3
)

// DefaultOidBatchSize is how many OIDs are packed in a single request
const DefaultOidBatchSize = 5

// DefaultBulkMaxRepetitions is the default max rep
// Using too high max repetitions might lead to tooBig SNMP error messages.
// - Java SNMP and gosnmp (gosnmp.defaultMaxRepetitions) uses 50
// - snmp-net uses 10
const DefaultBulkMaxRepetitions = uint32(10)

const (
	userProfilesFolder    = "profiles"
	defaultProfilesFolder = "default_profiles"
)

const defaultNamespace = "default"

// InstanceConfig is used to deserialize integration instance config
type InstanceConfig struct {
	IPAddress            string                                `yaml:"ip_address"`
	Port                 profiledefinition.Number              `yaml:"port"`
	CommunityString      string                                `yaml:"community_string"`
	SnmpVersion          string                                `yaml:"snmp_version"`
	Timeout              profiledefinition.Number              `yaml:"timeout"`
	Retries              profiledefinition.Number              `yaml:"retries"`
	OidBatchSize         profiledefinition.Number              `yaml:"oid_batch_size"`
	BulkMaxRepetitions   profiledefinition.Number              `yaml:"bulk_max_repetitions"`
	Profile              string                                `yaml:"profile"`
	Metrics              []profiledefinition.MetricsConfig     `yaml:"metrics"`
	MetricTags           profiledefinition.MetricTagConfigList `yaml:"metric_tags"`
	Tags                 []string                              `yaml:"tags"`
	Namespace            string                                `yaml:"namespace"`
	DetectMetricsEnabled profiledefinition.Boolean             `yaml:"experimental_detect_metrics_enabled"`
}

// InitConfig is used to deserialize integration init config
type InitConfig struct {
	Profiles           profile.ProfileConfigMap `yaml:"profiles"`
	OidBatchSize       profiledefinition.Number `yaml:"oid_batch_size"`
	BulkMaxRepetitions profiledefinition.Number `yaml:"bulk_max_repetitions"`
	Namespace          string                   `yaml:"namespace"`
}

// CheckConfig holds config needed for an integration instance to run
type CheckConfig struct {
	IPAddress            string
	Port                 uint16
	CommunityString      string
	SnmpVersion          string
	Timeout              int
	Retries              int
	OidBatchSize         int
	BulkMaxRepetitions   uint32
	Namespace            string
	Profiles             profile.ProfileConfigMap
	ProfileTags          []string
	Profile              string
	ProfileDef           *profiledefinition.ProfileDefinition
	Metrics              []profiledefinition.MetricsConfig
	MetricTags           []profiledefinition.MetricTagConfig
	OidConfig            OidConfig
	InstanceTags         []string
	AutodetectProfile    bool
	DetectMetricsEnabled bool
	DeviceID             string
	DeviceIDTags         []string
}

// RefreshWithProfile refreshes the config based on a new profile
func (c *CheckConfig) RefreshWithProfile(profileName string) error {
	if _, ok := c.Profiles[profileName]; !ok {
		return fmt.Errorf("unknown profile `%s`", profileName)
	}
	log.Debugf("Refreshing with profile `%s`", profileName)
	tags := []string{"snmp_profile:" + profileName}
	definition := c.Profiles[profileName].Definition
	c.ProfileDef = &definition
	c.Profile = profileName

	c.Metrics = append(c.Metrics, definition.Metrics...)
	c.MetricTags = append(c.MetricTags, definition.MetricTags...)
	c.OidConfig.addScalarOids(parseScalarOids(definition.Metrics, definition.MetricTags))
	c.OidConfig.addColumnOids(parseColumnOids(definition.Metrics))

	if definition.Device.Vendor != "" {
		tags = append(tags, "device_vendor:"+definition.Device.Vendor)
	}
	tags = append(tags, definition.StaticTags...)
	c.ProfileTags = tags
	return nil
}

// UpdateDeviceIDAndTags updates DeviceID and DeviceIDTags
func (c *CheckConfig) UpdateDeviceIDAndTags() {
	c.DeviceID = c.Namespace + ":" + c.IPAddress
	tags := []string{"device_namespace:" + c.Namespace, "snmp_device:" + c.IPAddress}
	sort.Strings(tags)
	c.DeviceIDTags = tags
}

// GetStaticTags returns the tags that do not depend on fetched values
func (c *CheckConfig) GetStaticTags() []string {
	tags := []string{"snmp_device:" + c.IPAddress}
	tags = append(tags, c.InstanceTags...)
	return tags
}

// AddDetectedMetrics adds metrics discovered on the device to the metrics to collect
func (c *CheckConfig) AddDetectedMetrics(metrics []profiledefinition.MetricsConfig, metricTags []profiledefinition.MetricTagConfig) {
	c.Metrics = append(c.Metrics, metrics...)
	c.MetricTags = append(c.MetricTags, metricTags...)
	c.OidConfig.addScalarOids(parseScalarOids(metrics, metricTags))
	c.OidConfig.addColumnOids(parseColumnOids(metrics))
}

// Copy makes a copy of CheckConfig
func (c *CheckConfig) Copy() *CheckConfig {
	newConfig := *c
	newConfig.OidConfig.ScalarOids = common.CopyStrings(c.OidConfig.ScalarOids)
	newConfig.OidConfig.ColumnOids = common.CopyStrings(c.OidConfig.ColumnOids)
	newConfig.Metrics = make([]profiledefinition.MetricsConfig, len(c.Metrics))
	copy(newConfig.Metrics, c.Metrics)
	newConfig.MetricTags = make([]profiledefinition.MetricTagConfig, len(c.MetricTags))
	copy(newConfig.MetricTags, c.MetricTags)
	newConfig.ProfileTags = common.CopyStrings(c.ProfileTags)
	newConfig.InstanceTags = common.CopyStrings(c.InstanceTags)
	newConfig.DeviceIDTags = common.CopyStrings(c.DeviceIDTags)
	return &newConfig
}

// CopyWithNewIP makes a copy of CheckConfig with a new IP address
func (c *CheckConfig) CopyWithNewIP(ipAddress string) *CheckConfig {
	newConfig := c.Copy()
	newConfig.IPAddress = ipAddress
	newConfig.UpdateDeviceIDAndTags()
	return newConfig
}

// NewCheckConfig builds a new check config
func NewCheckConfig(rawInstance []byte, rawInitConfig []byte) (*CheckConfig, error) {
	instance := InstanceConfig{}
	initConfig := InitConfig{}

	err := yaml.Unmarshal(rawInitConfig, &initConfig)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(rawInstance, &instance)
	if err != nil {
		return nil, err
	}

	c := &CheckConfig{}

	c.SnmpVersion = instance.SnmpVersion
	c.IPAddress = instance.IPAddress
	c.Port = uint16(instance.Port)

	if c.IPAddress == "" {
		return nil, errors.New("ip_address config must be provided")
	}

	if c.Port == 0 {
		c.Port = DefaultPort
	}

	if instance.Retries == 0 {
		c.Retries = defaultRetries
	} else {
		c.Retries = int(instance.Retries)
	}

	if instance.Timeout == 0 {
		c.Timeout = defaultTimeout
	} else {
		c.Timeout = int(instance.Timeout)
	}

	// SNMP connection configs
	c.CommunityString = instance.CommunityString

	c.OidBatchSize = DefaultOidBatchSize
	if initConfig.OidBatchSize != 0 {
		c.OidBatchSize = int(initConfig.OidBatchSize)
	}
	if instance.OidBatchSize != 0 {
		c.OidBatchSize = int(instance.OidBatchSize)
	}

	bulkMaxRepetitions := int(DefaultBulkMaxRepetitions)
	if initConfig.BulkMaxRepetitions != 0 {
		bulkMaxRepetitions = int(initConfig.BulkMaxRepetitions)
	}
	if instance.BulkMaxRepetitions != 0 {
		bulkMaxRepetitions = int(instance.BulkMaxRepetitions)
	}
	if bulkMaxRepetitions <= 0 {
		return nil, errors.New("bulk max repetition must be a positive integer. Invalid value: " + fmt.Sprint(bulkMaxRepetitions))
	}
	c.BulkMaxRepetitions = uint32(bulkMaxRepetitions)

	if instance.Namespace != "" {
		c.Namespace = instance.Namespace
	} else if initConfig.Namespace != "" {
		c.Namespace = initConfig.Namespace
	} else {
		c.Namespace = defaultNamespace
	}

	c.InstanceTags = common.CopyStrings(instance.Tags)
	c.DetectMetricsEnabled = bool(instance.DetectMetricsEnabled)

	c.Metrics = instance.Metrics
	profiledefinition.NormalizeMetrics(c.Metrics)
	errs := profiledefinition.ValidateEnrichMetrics(c.Metrics)
	errs = append(errs, profiledefinition.ValidateEnrichMetricTags(instance.MetricTags)...)
	if len(errs) > 0 {
		var errsStrings []string
		for _, e := range errs {
			errsStrings = append(errsStrings, e.Error())
		}
		return nil, fmt.Errorf("validation errors: %s", strings.Join(errsStrings, "\n"))
	}
	c.MetricTags = instance.MetricTags

	c.addUptimeMetric()

	c.OidConfig.addScalarOids(parseScalarOids(c.Metrics, c.MetricTags))
	c.OidConfig.addColumnOids(parseColumnOids(c.Metrics))

	// Profile Configs
	var profiles profile.ProfileConfigMap
	if len(initConfig.Profiles) > 0 {
		profiles, err = profile.LoadInitConfigProfiles(initConfig.Profiles, getProfilesRoot(userProfilesFolder), getProfilesRoot(defaultProfilesFolder))
	} else {
		profiles, err = profile.GetProfiles(getProfilesRoot(userProfilesFolder), getProfilesRoot(defaultProfilesFolder))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	c.Profiles = profiles

	profileName := instance.Profile
	if profileName == "" && len(instance.Metrics) == 0 {
		c.AutodetectProfile = true
	}

	if profileName != "" {
		err = c.RefreshWithProfile(profileName)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh with profile `%s`: %w", profileName, err)
		}
	}

	c.UpdateDeviceIDAndTags()

	return c, nil
}

func (c *CheckConfig) addUptimeMetric() {
	c.Metrics = append(c.Metrics, getUptimeMetricConfig())
}

func getUptimeMetricConfig() profiledefinition.MetricsConfig {
	// Reference sysUpTimeInstance directly, see http://oidref.com/1.3.6.1.2.1.1.3.0
	return profiledefinition.MetricsConfig{Symbol: profiledefinition.SymbolConfig{OID: "1.3.6.1.2.1.1.3.0", Name: "sysUpTimeInstance"}}
}

func parseScalarOids(metrics []profiledefinition.MetricsConfig, metricTags []profiledefinition.MetricTagConfig) []string {
	var oids []string
	for _, metric := range metrics {
		if metric.Symbol.OID != "" {
			oids = append(oids, metric.Symbol.OID)
		}
	}
	for _, metricTag := range metricTags {
		if metricTag.OID != "" {
			oids = append(oids, metricTag.OID)
		}
	}
	return oids
}

func parseColumnOids(metrics []profiledefinition.MetricsConfig) []string {
	var oids []string
	for _, metric := range metrics {
		for _, symbol := range metric.Symbols {
			oids = append(oids, symbol.OID)
		}
		for _, metricTag := range metric.MetricTags {
			if metricTag.Column.OID != "" {
				oids = append(oids, metricTag.Column.OID)
			}
		}
	}
	return oids
}

func getProfilesRoot(profilesFolder string) string {
	return filepath.Join(GetConfdPath(), "snmp.d", profilesFolder)
}
