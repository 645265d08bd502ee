// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package profiledefinition holds the types of a declarative device profile:
// identification patterns, metric definitions and tag bindings. Profiles are
// parsed and validated once at load time and never re-interpreted per fetch.
package profiledefinition

// DeviceMeta holds device related static metadata
type DeviceMeta struct {
	// Vendor is the name of the device manufacturer.
	Vendor string `yaml:"vendor,omitempty"`
}

// ProfileDefinition is the root of a device profile document.
type ProfileDefinition struct {
	SysObjectIds StringArray       `yaml:"sysobjectid,omitempty"`
	Extends      []string          `yaml:"extends,omitempty"`
	Device       DeviceMeta        `yaml:"device,omitempty"`
	Metrics      []MetricsConfig   `yaml:"metrics,omitempty"`
	MetricTags   []MetricTagConfig `yaml:"metric_tags,omitempty"`
	StaticTags   []string          `yaml:"static_tags,omitempty"`
}

// NewProfileDefinition creates a new empty ProfileDefinition.
func NewProfileDefinition() *ProfileDefinition {
	return &ProfileDefinition{}
}
