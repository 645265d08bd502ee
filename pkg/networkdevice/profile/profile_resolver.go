// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
	"github.com/sayap/integrations-core/pkg/util/log"
)

// ResolveProfiles returns the merged user+default profiles, each normalized,
// validated and fully expanded (i.e. values from their .extends attributes are
// baked into the profile itself). A profile that fails to expand or validate
// is logged and dropped; its siblings still resolve. Resolving the same input
// twice yields identical results.
func ResolveProfiles(userProfiles, defaultProfiles ProfileConfigMap) ProfileConfigMap {
	rawProfiles := mergeProfiles(defaultProfiles, userProfiles)
	return normalizeProfiles(rawProfiles, defaultProfiles)
}

func normalizeProfiles(pConfig ProfileConfigMap, defaultProfiles ProfileConfigMap) ProfileConfigMap {
	profiles := make(ProfileConfigMap, len(pConfig))

	for name := range pConfig {
		// No need to resolve abstract profile
		if strings.HasPrefix(name, "_") {
			continue
		}

		newProfileConfig := pConfig[name].Clone()
		if err := validateProfileShape(&newProfileConfig.Definition); err != nil {
			log.Warnf("failed to expand profile `%s`: %v", name, err) //nolint:errcheck
			continue
		}
		err := recursivelyExpandBaseProfiles(name, &newProfileConfig.Definition, newProfileConfig.Definition.Extends, []string{}, pConfig, defaultProfiles)
		if err != nil {
			log.Warnf("failed to expand profile `%s`: %v", name, err) //nolint:errcheck
			continue
		}
		profiledefinition.NormalizeMetrics(newProfileConfig.Definition.Metrics)
		errors := profiledefinition.ValidateEnrichMetrics(newProfileConfig.Definition.Metrics)
		errors = append(errors, profiledefinition.ValidateEnrichMetricTags(newProfileConfig.Definition.MetricTags)...)
		if len(errors) > 0 {
			var errorsStrings []string
			for _, err := range errors {
				errorsStrings = append(errorsStrings, err.Error())
			}
			log.Warnf("validation errors in profile `%s`: %s", name, strings.Join(errorsStrings, "\n")) //nolint:errcheck
			continue
		}
		dedupeMetrics(&newProfileConfig.Definition)
		profiles[name] = newProfileConfig
	}

	return profiles
}

// validateProfileShape rejects profiles that declare neither an extends chain
// nor any metric or tag of their own.
func validateProfileShape(definition *profiledefinition.ProfileDefinition) error {
	if len(definition.Extends) == 0 && len(definition.Metrics) == 0 && len(definition.MetricTags) == 0 {
		return fmt.Errorf("%w: no extends, metrics or metric_tags", ErrMalformedProfile)
	}
	return nil
}

func recursivelyExpandBaseProfiles(parentName string, definition *profiledefinition.ProfileDefinition, extends []string, extendsHistory []string, profiles ProfileConfigMap, defaultProfiles ProfileConfigMap) error {
	// Parents are merged in reverse declared order: definitions are appended
	// child first and deduplicated first-occurrence-wins, so a later-listed
	// parent must land before an earlier-listed one to override it.
	for i := len(extends) - 1; i >= 0; i-- {
		extendEntry := strings.TrimSuffix(extends[i], ".yaml")

		var baseDefinition *profiledefinition.ProfileDefinition
		// A user profile can extend a default profile with the same name. If
		// the extend entry has the same name as the extending profile, the
		// entry is assumed to refer to the default profile.
		if extendEntry == parentName {
			p, ok := defaultProfiles[extendEntry]
			if !ok {
				return fmt.Errorf("%w: `%s`", ErrUnknownExtend, extendEntry)
			}
			baseDefinition = &p.Definition
		} else {
			p, ok := profiles[extendEntry]
			if !ok {
				p, ok = defaultProfiles[extendEntry]
				if !ok {
					return fmt.Errorf("%w: `%s`", ErrUnknownExtend, extendEntry)
				}
			}
			baseDefinition = &p.Definition
		}
		if slices.Contains(extendsHistory, extendEntry) {
			return fmt.Errorf("%w: `%s` has already been extended, extendsHistory=`%v`", ErrCyclicExtend, extendEntry, extendsHistory)
		}

		mergeProfileDefinition(definition, baseDefinition)

		newExtendsHistory := append(slices.Clone(extendsHistory), extendEntry)
		err := recursivelyExpandBaseProfiles(extendEntry, definition, baseDefinition.Extends, newExtendsHistory, profiles, defaultProfiles)
		if err != nil {
			return err
		}
	}
	return nil
}

// mergeProfileDefinition merges a base profile into the target definition.
// The target's own definitions are kept first so that, after deduplication,
// child definitions override inherited ones sharing the same name.
func mergeProfileDefinition(targetDefinition *profiledefinition.ProfileDefinition, baseDefinition *profiledefinition.ProfileDefinition) {
	targetDefinition.Metrics = append(targetDefinition.Metrics, baseDefinition.Metrics...)
	targetDefinition.MetricTags = append(targetDefinition.MetricTags, baseDefinition.MetricTags...)
	targetDefinition.StaticTags = append(targetDefinition.StaticTags, baseDefinition.StaticTags...)
	if targetDefinition.Device.Vendor == "" {
		targetDefinition.Device.Vendor = baseDefinition.Device.Vendor
	}
}

// dedupeMetrics drops inherited metric and tag definitions shadowed by an
// earlier definition with the same name. Metrics are merged child-first and,
// among parents, later-listed parent first, so the first occurrence wins.
func dedupeMetrics(definition *profiledefinition.ProfileDefinition) {
	seenMetrics := make(map[string]bool, len(definition.Metrics))
	metrics := definition.Metrics[:0]
	for _, metric := range definition.Metrics {
		key := metricKey(&metric)
		if seenMetrics[key] {
			continue
		}
		seenMetrics[key] = true
		metrics = append(metrics, metric)
	}
	definition.Metrics = metrics

	seenTags := make(map[string]bool, len(definition.MetricTags))
	tags := definition.MetricTags[:0]
	for _, tag := range definition.MetricTags {
		key := tagKey(&tag)
		if seenTags[key] {
			continue
		}
		seenTags[key] = true
		tags = append(tags, tag)
	}
	definition.MetricTags = tags
}

func metricKey(metric *profiledefinition.MetricsConfig) string {
	if metric.IsColumn() {
		names := make([]string, 0, len(metric.Symbols))
		for _, symbol := range metric.Symbols {
			names = append(names, symbol.Name)
		}
		return "table:" + strings.Join(names, ",")
	}
	if metric.IsScalar() {
		return "scalar:" + metric.Symbol.Name + ":" + metric.Options.MetricSuffix
	}
	// legacy syntax, not yet normalized
	return "scalar:" + metric.Name + ":" + metric.Options.MetricSuffix
}

func tagKey(tag *profiledefinition.MetricTagConfig) string {
	if tag.Tag != "" {
		return tag.Tag
	}
	return "match:" + tag.Match
}
