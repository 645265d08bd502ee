// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2023-present Datadog, Inc.

package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	yaml "gopkg.in/yaml.v2"

	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
	"github.com/sayap/integrations-core/pkg/util/log"
)

// ProfilesFromDir reads every `.yaml` file of a directory into a
// ProfileConfigMap keyed by file name without extension. A file that fails to
// parse is skipped with a warning so one malformed profile never prevents
// loading its siblings; all per-file errors are aggregated in the returned
// error. A missing directory is not an error, it returns an empty map.
func ProfilesFromDir(profilesDir string, isUserProfile bool) (ProfileConfigMap, error) {
	profiles := make(ProfileConfigMap)
	if profilesDir == "" || !pathExists(profilesDir) {
		return profiles, nil
	}
	files, err := os.ReadDir(profilesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile dir `%s`: %v", profilesDir, err)
	}

	var loadErrors *multierror.Error
	for _, f := range files {
		fName := f.Name()
		// ignore non yaml files
		if !strings.HasSuffix(fName, ".yaml") {
			continue
		}
		profileName := fName[:len(fName)-len(".yaml")]
		definitionFile := filepath.Join(profilesDir, fName)
		definition, err := readProfileDefinition(definitionFile)
		if err != nil {
			log.Warnf("cannot load profile `%s`: %v", profileName, err) //nolint:errcheck
			loadErrors = multierror.Append(loadErrors, fmt.Errorf("profile `%s`: %w", profileName, err))
			continue
		}
		profiles[profileName] = ProfileConfig{
			DefinitionFile: definitionFile,
			Definition:     *definition,
			IsUserProfile:  isUserProfile,
		}
	}
	return profiles, loadErrors.ErrorOrNil()
}

// readProfileDefinition parses a single profile document. It fails when the
// file cannot be read or is not valid YAML; structural validation happens
// later, at resolve time.
func readProfileDefinition(definitionFile string) (*profiledefinition.ProfileDefinition, error) {
	buf, err := os.ReadFile(definitionFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read file `%s`: %v", definitionFile, err)
	}

	profileDefinition := profiledefinition.NewProfileDefinition()
	err = yaml.Unmarshal(buf, profileDefinition)
	if err != nil {
		return nil, fmt.Errorf("unable to parse profile `%s`: %v", definitionFile, err)
	}
	return profileDefinition, nil
}
