// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package profiledefinition

import (
	"regexp"
)

// SymbolConfig holds info for a single symbol/oid
type SymbolConfig struct {
	OID  string `yaml:"OID,omitempty"`
	Name string `yaml:"name,omitempty"`

	ExtractValue         string         `yaml:"extract_value,omitempty"`
	ExtractValueCompiled *regexp.Regexp `yaml:"-"`

	MatchPattern         string         `yaml:"match_pattern,omitempty"`
	MatchValue           string         `yaml:"match_value,omitempty"`
	MatchPatternCompiled *regexp.Regexp `yaml:"-"`

	ScaleFactor float64 `yaml:"scale_factor,omitempty"`
	Format      string  `yaml:"format,omitempty"`
}

// MetricTagConfig holds metric tag info
type MetricTagConfig struct {
	Tag string `yaml:"tag"`

	// Table config
	Index  uint         `yaml:"index,omitempty"`
	Column SymbolConfig `yaml:"column,omitempty"`

	// Symbol config
	OID  string `yaml:"OID,omitempty"`
	Name string `yaml:"symbol,omitempty"`

	IndexTransform []MetricIndexTransform `yaml:"index_transform,omitempty"`

	Mapping map[string]string `yaml:"mapping,omitempty"`

	// Regex
	Match string            `yaml:"match,omitempty"`
	Tags  map[string]string `yaml:"tags,omitempty"`

	SymbolTag string         `yaml:"-"`
	Pattern   *regexp.Regexp `yaml:"-"`
}

// MetricTagConfigList holds configs for a list of metric tags
type MetricTagConfigList []MetricTagConfig

// MetricIndexTransform holds configs for metric index transform
type MetricIndexTransform struct {
	Start uint `yaml:"start"`
	End   uint `yaml:"end"`
}

// MetricsConfigOption holds config for metrics options
type MetricsConfigOption struct {
	Placement    uint   `yaml:"placement,omitempty"`
	MetricSuffix string `yaml:"metric_suffix,omitempty"`
}

// MetricsConfig holds configs for a metric
type MetricsConfig struct {
	MIB string `yaml:"MIB,omitempty"`

	// Table name symbol
	Table SymbolConfig `yaml:"table,omitempty"`

	// Symbol configs
	Symbol SymbolConfig `yaml:"symbol,omitempty"`

	// Legacy Symbol configs syntax
	OID  string `yaml:"OID,omitempty"`
	Name string `yaml:"name,omitempty"`

	// Table configs
	Symbols []SymbolConfig `yaml:"symbols,omitempty"`

	StaticTags []string            `yaml:"static_tags,omitempty"`
	MetricTags MetricTagConfigList `yaml:"metric_tags,omitempty"`

	ForcedType string              `yaml:"forced_type,omitempty"`
	Options    MetricsConfigOption `yaml:"options,omitempty"`
}

// GetSymbolTags returns symbol tags
func (m *MetricsConfig) GetSymbolTags() []string {
	var symbolTags []string
	for _, metricTag := range m.MetricTags {
		symbolTags = append(symbolTags, metricTag.SymbolTag)
	}
	return symbolTags
}

// IsColumn returns true if the metrics config define columns metrics
func (m *MetricsConfig) IsColumn() bool {
	return len(m.Symbols) > 0
}

// IsScalar returns true if the metrics config define scalar metrics
func (m *MetricsConfig) IsScalar() bool {
	return m.Symbol.OID != "" && m.Symbol.Name != ""
}

// NormalizeMetrics converts legacy syntax to new syntax
// 1/ converts old symbol syntax to new symbol syntax
// metric.Name and metric.OID info are moved to metric.Symbol.Name and metric.Symbol.OID
func NormalizeMetrics(metrics []MetricsConfig) {
	for i := range metrics {
		metric := &metrics[i]

		// converts old symbol syntax to new symbol syntax
		if metric.Symbol.Name == "" && metric.Symbol.OID == "" && metric.Name != "" && metric.OID != "" {
			metric.Symbol.Name = metric.Name
			metric.Symbol.OID = metric.OID
			metric.Name = ""
			metric.OID = ""
		}
	}
}
