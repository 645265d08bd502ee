// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package checkconfig

import (
	"os"
	"sync"
)

var (
	confdPathMu sync.RWMutex
	confdPath   = "/etc/datadog-agent/conf.d"
)

// SetConfdPath sets the path under which `snmp.d/profiles` and
// `snmp.d/default_profiles` are looked up.
func SetConfdPath(path string) {
	confdPathMu.Lock()
	defer confdPathMu.Unlock()
	confdPath = path
}

// GetConfdPath returns the configured conf.d path
func GetConfdPath() string {
	confdPathMu.RLock()
	defer confdPathMu.RUnlock()
	return confdPath
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// firstExistingPath returns the first path that exists on disk, or the last
// candidate when none do.
func firstExistingPath(candidates ...string) string {
	for _, candidate := range candidates {
		if pathExists(candidate) {
			return candidate
		}
	}
	return candidates[len(candidates)-1]
}
