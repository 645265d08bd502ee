// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2023-present Datadog, Inc.

package profile

import (
	"fmt"
	"path/filepath"

	"github.com/sayap/integrations-core/pkg/util/log"
)

// LoadInitConfigProfiles resolves the profiles declared in an integration init
// config. Relative definition files are searched in the user profiles
// directory first, then in the default profiles one. A profile that fails to
// load is skipped with a warning, the others still resolve. Default profiles
// stay available as extend targets but are not part of the returned map.
func LoadInitConfigProfiles(rawInitConfigProfiles ProfileConfigMap, userProfilesDir string, defaultProfilesDir string) (ProfileConfigMap, error) {
	initConfigProfiles := make(ProfileConfigMap, len(rawInitConfigProfiles))
	for name, profConfig := range rawInitConfigProfiles {
		if profConfig.DefinitionFile != "" {
			definitionFile, err := resolveDefinitionFile(profConfig.DefinitionFile, userProfilesDir, defaultProfilesDir)
			if err != nil {
				log.Warnf("unable to load profile `%s`: %v", name, err) //nolint:errcheck
				continue
			}
			definition, err := readProfileDefinition(definitionFile)
			if err != nil {
				log.Warnf("unable to load profile `%s`: %v", name, err) //nolint:errcheck
				continue
			}
			profConfig.Definition = *definition
		}
		profConfig.IsUserProfile = true
		initConfigProfiles[name] = profConfig
	}

	defaultProfiles, err := ProfilesFromDir(defaultProfilesDir, false)
	if err != nil {
		if defaultProfiles == nil {
			return nil, fmt.Errorf("failed to load default profiles: %w", err)
		}
		log.Warnf("errors loading default profiles: %v", err) //nolint:errcheck
	}

	return normalizeProfiles(initConfigProfiles, defaultProfiles), nil
}

func resolveDefinitionFile(definitionFile string, userProfilesDir string, defaultProfilesDir string) (string, error) {
	if filepath.IsAbs(definitionFile) {
		return definitionFile, nil
	}
	for _, dir := range []string{userProfilesDir, defaultProfilesDir} {
		candidate := filepath.Join(dir, definitionFile)
		if pathExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("definition file `%s` not found", definitionFile)
}
