// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package checkconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
)

func TestNewCheckConfigWithProfile(t *testing.T) {
	SetConfdPathAndCleanProfiles()

	// language=yaml
	rawInstanceConfig := []byte(`
ip_address: 1.2.3.4
community_string: public
profile: f5-big-ip
tags:
  - "mytag:val1"
`)
	// language=yaml
	rawInitConfig := []byte(`
profiles:
  f5-big-ip:
    definition_file: f5-big-ip.yaml
`)

	config, err := NewCheckConfig(rawInstanceConfig, rawInitConfig)
	assert.NoError(t, err)

	assert.Equal(t, "1.2.3.4", config.IPAddress)
	assert.Equal(t, uint16(161), config.Port)
	assert.Equal(t, "public", config.CommunityString)
	assert.Equal(t, 2, config.Timeout)
	assert.Equal(t, 3, config.Retries)
	assert.Equal(t, 5, config.OidBatchSize)
	assert.Equal(t, DefaultBulkMaxRepetitions, config.BulkMaxRepetitions)
	assert.Equal(t, "default", config.Namespace)
	assert.Equal(t, "f5-big-ip", config.Profile)
	assert.Equal(t, false, config.AutodetectProfile)
	assert.Equal(t, []string{"mytag:val1"}, config.InstanceTags)

	assert.Equal(t, []string{"snmp_profile:f5-big-ip", "device_vendor:f5", "static_tag:from_profile_root"}, config.ProfileTags)

	// uptime metric is always fetched, profile metrics are baked in
	assert.Equal(t, "sysUpTimeInstance", config.Metrics[0].Symbol.Name)
	var metricNames []string
	for _, metric := range config.Metrics[1:] {
		if metric.IsScalar() {
			metricNames = append(metricNames, metric.Symbol.Name)
		}
		for _, symbol := range metric.Symbols {
			metricNames = append(metricNames, symbol.Name)
		}
	}
	assert.ElementsMatch(t, []string{"sysStatMemoryTotal", "ifInErrors", "ifInDiscards"}, metricNames)

	assert.Equal(t, []string{
		"1.3.6.1.2.1.1.3.0",
		"1.3.6.1.4.1.3375.2.1.1.2.1.44.0",
		"1.3.6.1.2.1.1.5.0",
	}, config.OidConfig.ScalarOids)
	assert.ElementsMatch(t, []string{
		"1.3.6.1.2.1.2.2.1.14",
		"1.3.6.1.2.1.2.2.1.13",
		"1.3.6.1.2.1.31.1.1.1.1",
	}, config.OidConfig.ColumnOids)

	assert.Equal(t, "default:1.2.3.4", config.DeviceID)
	assert.Equal(t, []string{"device_namespace:default", "snmp_device:1.2.3.4"}, config.DeviceIDTags)
	assert.Equal(t, []string{"snmp_device:1.2.3.4", "mytag:val1"}, config.GetStaticTags())
}

func TestNewCheckConfigAutodetectProfile(t *testing.T) {
	SetConfdPathAndCleanProfiles()

	// language=yaml
	rawInstanceConfig := []byte(`
ip_address: 1.2.3.4
community_string: public
`)

	config, err := NewCheckConfig(rawInstanceConfig, []byte(``))
	assert.NoError(t, err)
	assert.True(t, config.AutodetectProfile)
	assert.Equal(t, "", config.Profile)

	// profiles from the default conf.d dirs are available for detection
	assert.Contains(t, config.Profiles, "f5-big-ip")
	assert.Contains(t, config.Profiles, "apc-ups")
}

func TestNewCheckConfigErrors(t *testing.T) {
	SetConfdPathAndCleanProfiles()

	tests := []struct {
		name              string
		rawInstanceConfig []byte
		rawInitConfig     []byte
		expectedErr       string
	}{
		{
			name: "missing ip_address",
			// language=yaml
			rawInstanceConfig: []byte(`
community_string: public
`),
			rawInitConfig: []byte(``),
			expectedErr:   "ip_address config must be provided",
		},
		{
			name: "unknown profile",
			// language=yaml
			rawInstanceConfig: []byte(`
ip_address: 1.2.3.4
community_string: public
profile: does-not-exist
`),
			rawInitConfig: []byte(``),
			expectedErr:   "failed to refresh with profile `does-not-exist`",
		},
		{
			name: "invalid bulk max repetitions",
			// language=yaml
			rawInstanceConfig: []byte(`
ip_address: 1.2.3.4
community_string: public
bulk_max_repetitions: -5
`),
			rawInitConfig: []byte(``),
			expectedErr:   "bulk max repetition must be a positive integer",
		},
		{
			name: "invalid instance metrics",
			// language=yaml
			rawInstanceConfig: []byte(`
ip_address: 1.2.3.4
community_string: public
metrics:
  - symbol:
      OID: 1.2.3
`),
			rawInitConfig: []byte(``),
			expectedErr:   "validation errors",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCheckConfig(tt.rawInstanceConfig, tt.rawInitConfig)
			assert.ErrorContains(t, err, tt.expectedErr)
		})
	}
}

func TestNewCheckConfigOverrides(t *testing.T) {
	SetConfdPathAndCleanProfiles()

	// language=yaml
	rawInstanceConfig := []byte(`
ip_address: 1.2.3.4
port: 1161
community_string: public
snmp_version: "1"
timeout: 5
retries: 1
oid_batch_size: 10
bulk_max_repetitions: 20
namespace: ns1
`)
	// language=yaml
	rawInitConfig := []byte(`
oid_batch_size: 15
bulk_max_repetitions: 25
namespace: ns2
`)

	config, err := NewCheckConfig(rawInstanceConfig, rawInitConfig)
	assert.NoError(t, err)

	// instance values take precedence over init config values
	assert.Equal(t, uint16(1161), config.Port)
	assert.Equal(t, "1", config.SnmpVersion)
	assert.Equal(t, 5, config.Timeout)
	assert.Equal(t, 1, config.Retries)
	assert.Equal(t, 10, config.OidBatchSize)
	assert.Equal(t, uint32(20), config.BulkMaxRepetitions)
	assert.Equal(t, "ns1", config.Namespace)
	assert.Equal(t, "ns1:1.2.3.4", config.DeviceID)
}

func Test_RefreshWithProfile(t *testing.T) {
	SetConfdPathAndCleanProfiles()

	// language=yaml
	rawInstanceConfig := []byte(`
ip_address: 1.2.3.4
community_string: public
`)

	config, err := NewCheckConfig(rawInstanceConfig, []byte(``))
	assert.NoError(t, err)
	assert.Equal(t, "", config.Profile)

	err = config.RefreshWithProfile("f5-big-ip")
	assert.NoError(t, err)
	assert.Equal(t, "f5-big-ip", config.Profile)
	assert.NotNil(t, config.ProfileDef)
	assert.Contains(t, config.ProfileTags, "snmp_profile:f5-big-ip")
	assert.Contains(t, config.ProfileTags, "device_vendor:f5")
	assert.Contains(t, config.OidConfig.ScalarOids, "1.3.6.1.4.1.3375.2.1.1.2.1.44.0")
	assert.Contains(t, config.OidConfig.ColumnOids, "1.3.6.1.2.1.2.2.1.14")

	err = config.RefreshWithProfile("does-not-exist")
	assert.ErrorContains(t, err, "unknown profile `does-not-exist`")
}

func Test_getUptimeMetricConfig(t *testing.T) {
	metric := getUptimeMetricConfig()
	assert.Equal(t, profiledefinition.MetricsConfig{Symbol: profiledefinition.SymbolConfig{OID: "1.3.6.1.2.1.1.3.0", Name: "sysUpTimeInstance"}}, metric)
}
