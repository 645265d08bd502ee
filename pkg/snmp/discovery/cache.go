// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020-present Datadog, Inc.

package discovery

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sayap/integrations-core/pkg/util/log"
)

// The devices of each subnet are cached on disk so that a process restart
// rediscovers them without waiting for a full scan.

func (l *Listener) cachePath(subnet snmpSubnet) string {
	return filepath.Join(l.config.CacheDir, "snmp_"+subnet.cacheKey+".json")
}

func (l *Listener) loadCache(subnet snmpSubnet) {
	if l.config.CacheDir == "" {
		return
	}
	cacheValue, err := os.ReadFile(l.cachePath(subnet))
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		log.Errorf("Couldn't read cache for %s: %s", subnet.cacheKey, err)
		return
	}
	var deviceIPs []string
	if err = json.Unmarshal(cacheValue, &deviceIPs); err != nil {
		log.Errorf("Couldn't unmarshal cache for %s: %s", subnet.cacheKey, err)
		return
	}
	for _, deviceIP := range deviceIPs {
		deviceID := subnet.config.Digest(deviceIP)
		l.createDevice(deviceID, deviceIP, subnet, false)
	}
}

func (l *Listener) writeCache(subnet snmpSubnet) {
	l.Lock()
	defer l.Unlock()
	l.writeCacheLocked(subnet)
}

// writeCacheLocked expects the listener lock to be held
func (l *Listener) writeCacheLocked(subnet snmpSubnet) {
	if l.config.CacheDir == "" {
		return
	}
	deviceIPs := l.subnets[subnet.subnetID]
	cacheValue, err := json.Marshal(deviceIPs)
	if err != nil {
		log.Errorf("Couldn't marshal cache: %s", err)
		return
	}
	if err = os.MkdirAll(l.config.CacheDir, 0o755); err != nil {
		log.Errorf("Couldn't create cache dir: %s", err)
		return
	}
	if err = os.WriteFile(l.cachePath(subnet), cacheValue, 0o644); err != nil {
		log.Errorf("Couldn't write cache: %s", err)
	}
}
