// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2023-present Datadog, Inc.

// Package profile loads device profiles from disk, resolves their `extends`
// inheritance chains and matches resolved profiles to devices by sysObjectID.
package profile

import (
	"sync"

	"github.com/mohae/deepcopy"

	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
	"github.com/sayap/integrations-core/pkg/util/log"
)

// ProfileConfig represents one profile and its origin.
type ProfileConfig struct {
	DefinitionFile string                              `yaml:"definition_file"`
	Definition     profiledefinition.ProfileDefinition `yaml:"definition"`

	IsUserProfile bool `yaml:"-"`
}

// ProfileConfigMap is a set of ProfileConfig instances each identified by name.
type ProfileConfigMap map[string]ProfileConfig

// Clone duplicates this ProfileConfig
func (p ProfileConfig) Clone() ProfileConfig {
	return ProfileConfig{
		DefinitionFile: p.DefinitionFile,
		Definition:     deepcopy.Copy(p.Definition).(profiledefinition.ProfileDefinition),
		IsUserProfile:  p.IsUserProfile,
	}
}

var (
	globalProfileConfigMap ProfileConfigMap
	globalProfileMu        sync.Mutex
)

// SetGlobalProfileConfigMap sets global globalProfileConfigMap. Pass nil to
// force the next GetProfiles call to reload from disk.
func SetGlobalProfileConfigMap(configMap ProfileConfigMap) {
	globalProfileMu.Lock()
	defer globalProfileMu.Unlock()
	globalProfileConfigMap = configMap
}

// GetProfiles loads and resolves profiles from the user and default profile
// directories. The resolved map is cached for the process lifetime; resolved
// profiles are read-only and may be shared across concurrent device checks.
func GetProfiles(userProfilesDir string, defaultProfilesDir string) (ProfileConfigMap, error) {
	globalProfileMu.Lock()
	defer globalProfileMu.Unlock()
	if globalProfileConfigMap != nil {
		return globalProfileConfigMap, nil
	}
	profiles, err := loadResolveProfiles(userProfilesDir, defaultProfilesDir)
	if err != nil {
		return nil, err
	}
	globalProfileConfigMap = profiles
	return profiles, nil
}

func loadResolveProfiles(userProfilesDir string, defaultProfilesDir string) (ProfileConfigMap, error) {
	// Per-file errors are scoped to one profile: they are reported but do not
	// prevent the rest of the directory from loading.
	defaultProfiles, err := ProfilesFromDir(defaultProfilesDir, false)
	if defaultProfiles == nil {
		return nil, err
	}
	if err != nil {
		log.Warnf("errors loading default profiles: %v", err) //nolint:errcheck
	}
	userProfiles, err := ProfilesFromDir(userProfilesDir, true)
	if userProfiles == nil {
		return nil, err
	}
	if err != nil {
		log.Warnf("errors loading user profiles: %v", err) //nolint:errcheck
	}
	return ResolveProfiles(userProfiles, defaultProfiles), nil
}
