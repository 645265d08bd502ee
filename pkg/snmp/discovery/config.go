// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020-present Datadog, Inc.

package discovery

import (
	"fmt"
	"hash/fnv"
	"net"
	"strconv"

	"github.com/sayap/integrations-core/pkg/snmp/checkconfig"
)

// ListenerConfig holds the discovery configuration
type ListenerConfig struct {
	Workers           int            `yaml:"workers"`
	DiscoveryInterval int            `yaml:"discovery_interval"`
	AllowedFailures   int            `yaml:"discovery_allowed_failures"`
	CacheDir          string         `yaml:"cache_dir"`
	Configs           []SubnetConfig `yaml:"configs"`
}

// SubnetConfig holds configuration for one network to scan
type SubnetConfig struct {
	Network            string   `yaml:"network_address"`
	Port               uint16   `yaml:"port"`
	CommunityString    string   `yaml:"community_string"`
	SnmpVersion        string   `yaml:"snmp_version"`
	Timeout            int      `yaml:"timeout"`
	Retries            int      `yaml:"retries"`
	Namespace          string   `yaml:"namespace"`
	IgnoredIPAddresses []string `yaml:"ignored_ip_addresses"`
}

// Digest returns a hash value representing the minimal configuration used to
// connect to a device. IP addresses within the same subnet get different
// digests, the same address in different subnets too.
func (c *SubnetConfig) Digest(address string) string {
	h := fnv.New64()
	// Hash write never returns an error
	h.Write([]byte(address))                   //nolint:errcheck
	h.Write([]byte(c.Network))                 //nolint:errcheck
	h.Write([]byte(c.CommunityString))         //nolint:errcheck
	h.Write([]byte(strconv.Itoa(int(c.Port)))) //nolint:errcheck
	for _, ip := range c.IgnoredIPAddresses {
		h.Write([]byte(ip)) //nolint:errcheck
	}
	return fmt.Sprintf("%x", h.Sum64())
}

// IsIPIgnored checks if an IP is in the ignored list
func (c *SubnetConfig) IsIPIgnored(ip net.IP) bool {
	ipString := ip.String()
	for _, ignored := range c.IgnoredIPAddresses {
		if ipString == ignored {
			return true
		}
	}
	return false
}

// BuildDeviceConfig returns a CheckConfig ready to probe one device of the subnet
func (c *SubnetConfig) BuildDeviceConfig(deviceIP string) *checkconfig.CheckConfig {
	port := c.Port
	if port == 0 {
		port = checkconfig.DefaultPort
	}
	namespace := c.Namespace
	if namespace == "" {
		namespace = "default"
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 2
	}
	retries := c.Retries
	if retries == 0 {
		retries = 3
	}
	deviceConfig := &checkconfig.CheckConfig{
		IPAddress:          deviceIP,
		Port:               port,
		CommunityString:    c.CommunityString,
		SnmpVersion:        c.SnmpVersion,
		Timeout:            timeout,
		Retries:            retries,
		Namespace:          namespace,
		OidBatchSize:       checkconfig.DefaultOidBatchSize,
		BulkMaxRepetitions: checkconfig.DefaultBulkMaxRepetitions,
	}
	deviceConfig.UpdateDeviceIDAndTags()
	return deviceConfig
}
