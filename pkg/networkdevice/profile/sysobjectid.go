// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package profile

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sayap/integrations-core/pkg/util/log"
)

// GetProfileForSysObjectID returns the name of the single best matching
// profile for a device sysObjectID. When several profiles match, the one with
// the most specific sysobjectid pattern wins; a user profile wins over a
// default profile carrying an equally specific pattern.
func GetProfileForSysObjectID(profiles ProfileConfigMap, sysObjectID string) (string, error) {
	matched := MatchProfilesForSysObjectID(profiles, sysObjectID)
	if len(matched) == 0 {
		return "", fmt.Errorf("%w: `%s`", ErrNoMatchingProfile, sysObjectID)
	}
	return matched[0], nil
}

// MatchProfilesForSysObjectID returns every profile whose sysobjectid pattern
// matches the device sysObjectID, most specific pattern first. The result is
// deterministic: the same profiles and sysObjectID always yield the same
// ordering. An empty result is not an error, the caller decides whether an
// unmatched device is one.
func MatchProfilesForSysObjectID(profiles ProfileConfigMap, sysObjectID string) []string {
	type match struct {
		profile       string
		specificity   []int
		isUserProfile bool
	}
	var matches []match

	for name, profConfig := range profiles {
		for _, oidPattern := range profConfig.Definition.SysObjectIds {
			found, err := filepath.Match(oidPattern, sysObjectID)
			if err != nil {
				log.Debugf("pattern error in profile `%s`: %v", name, err)
				continue
			}
			if !found {
				continue
			}
			specificity, err := oidPatternSpecificity(oidPattern)
			if err != nil {
				log.Debugf("invalid pattern `%s` in profile `%s`: %v", oidPattern, name, err)
				continue
			}
			matches = append(matches, match{
				profile:       name,
				specificity:   specificity,
				isUserProfile: profConfig.IsUserProfile,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		cmp := compareSpecificity(matches[i].specificity, matches[j].specificity)
		if cmp != 0 {
			return cmp > 0
		}
		if matches[i].isUserProfile != matches[j].isUserProfile {
			return matches[i].isUserProfile
		}
		return matches[i].profile < matches[j].profile
	})

	var matchedProfiles []string
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m.profile] {
			continue
		}
		seen[m.profile] = true
		matchedProfiles = append(matchedProfiles, m.profile)
	}
	return matchedProfiles
}

// compareSpecificity returns a positive number when a is more specific than b.
// A longer pattern is more specific; at equal length the first differing
// segment decides, a literal segment beating a wildcard and a numerically
// greater literal beating a smaller one.
func compareSpecificity(a, b []int) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] - b[i]
		}
	}
	return 0
}

// oidPatternSpecificity parses a dot-delimited numeric pattern into its
// segments, wildcards mapping below any literal.
func oidPatternSpecificity(pattern string) ([]int, error) {
	wildcardKey := -1
	var parts []int
	for _, part := range strings.Split(strings.TrimLeft(pattern, "."), ".") {
		if part == "*" {
			parts = append(parts, wildcardKey)
		} else {
			intPart, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("error parsing part `%s` for pattern `%s`: %v", part, pattern, err)
			}
			parts = append(parts, intPart)
		}
	}
	return parts, nil
}
