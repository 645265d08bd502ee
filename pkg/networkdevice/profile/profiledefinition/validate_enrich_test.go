// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package profiledefinition

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ValidateEnrichMetrics(t *testing.T) {
	tests := []struct {
		name            string
		metrics         []MetricsConfig
		expectedErrors  []string
		expectedMetrics []MetricsConfig
	}{
		{
			name: "either table symbol or scalar symbol must be provided",
			metrics: []MetricsConfig{
				{},
			},
			expectedErrors: []string{
				"either a table symbol or a scalar symbol must be provided",
			},
		},
		{
			name: "table symbol and scalar symbol cannot be both provided",
			metrics: []MetricsConfig{
				{
					Symbol: SymbolConfig{OID: "1.2", Name: "abc"},
					Symbols: []SymbolConfig{
						{OID: "1.2", Name: "abc"},
					},
					MetricTags: MetricTagConfigList{
						{Tag: "row", Index: 1},
					},
				},
			},
			expectedErrors: []string{
				"table symbol and scalar symbol cannot be both provided",
			},
		},
		{
			name: "symbol name is missing",
			metrics: []MetricsConfig{
				{
					Symbol: SymbolConfig{OID: "1.2"},
				},
			},
			expectedErrors: []string{
				"symbol name missing",
			},
		},
		{
			name: "table column symbols doesn't have a metric_tags section",
			metrics: []MetricsConfig{
				{
					Symbols: []SymbolConfig{
						{OID: "1.2", Name: "abc"},
					},
				},
			},
			expectedErrors: []string{
				"doesn't have a 'metric_tags' section",
			},
		},
		{
			name: "invalid match pattern",
			metrics: []MetricsConfig{
				{
					Symbols: []SymbolConfig{
						{OID: "1.2", Name: "abc"},
					},
					MetricTags: MetricTagConfigList{
						{
							Column: SymbolConfig{OID: "1.2.3", Name: "def"},
							Match:  "[(",
							Tags: map[string]string{
								"foo": "\\1",
							},
						},
					},
				},
			},
			expectedErrors: []string{
				"cannot compile `match` (`[(`)",
			},
		},
		{
			name: "match without tags",
			metrics: []MetricsConfig{
				{
					Symbols: []SymbolConfig{
						{OID: "1.2", Name: "abc"},
					},
					MetricTags: MetricTagConfigList{
						{
							Column: SymbolConfig{OID: "1.2.3", Name: "def"},
							Match:  "(\\w+)",
						},
					},
				},
			},
			expectedErrors: []string{
				"`tags` mapping must be provided if `match`",
			},
		},
		{
			name: "compiled regexes are stored",
			metrics: []MetricsConfig{
				{
					Symbols: []SymbolConfig{
						{OID: "1.2", Name: "abc", ExtractValue: `(\d+)C`},
					},
					MetricTags: MetricTagConfigList{
						{
							Column: SymbolConfig{OID: "1.2.3", Name: "def"},
							Match:  "(\\w+)",
							Tags: map[string]string{
								"prefix": "\\1",
							},
						},
					},
				},
			},
			expectedErrors: []string{},
			expectedMetrics: []MetricsConfig{
				{
					Symbols: []SymbolConfig{
						{OID: "1.2", Name: "abc", ExtractValue: `(\d+)C`, ExtractValueCompiled: regexp.MustCompile(`(\d+)C`)},
					},
					MetricTags: MetricTagConfigList{
						{
							Column:  SymbolConfig{OID: "1.2.3", Name: "def"},
							Match:   "(\\w+)",
							Pattern: regexp.MustCompile(`(\w+)`),
							Tags: map[string]string{
								"prefix": "\\1",
							},
						},
					},
				},
			},
		},
		{
			name: "flag_stream needs placement and metric_suffix",
			metrics: []MetricsConfig{
				{
					Symbol:     SymbolConfig{OID: "1.2.3", Name: "upsBasicStateOutputState"},
					ForcedType: "flag_stream",
				},
			},
			expectedErrors: []string{
				"flag_stream metrics need a strictly positive placement",
				"flag_stream metrics need a metric_suffix",
			},
		},
		{
			name: "index transform start must not be greater than end",
			metrics: []MetricsConfig{
				{
					Symbols: []SymbolConfig{
						{OID: "1.2", Name: "abc"},
					},
					MetricTags: MetricTagConfigList{
						{
							Column:         SymbolConfig{OID: "1.2.3", Name: "def"},
							Tag:            "abc",
							IndexTransform: []MetricIndexTransform{{Start: 2, End: 1}},
						},
					},
				},
			},
			expectedErrors: []string{
				"transform rule end should be greater than start",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateEnrichMetrics(tt.metrics)
			assert.Equal(t, len(tt.expectedErrors), len(errors), "errors: %v", errors)
			for i := range errors {
				assert.Contains(t, errors[i].Error(), tt.expectedErrors[i])
			}
			if tt.expectedMetrics != nil {
				assert.Equal(t, tt.expectedMetrics, tt.metrics)
			}
		})
	}
}

func Test_ValidateEnrichMetricTags(t *testing.T) {
	tests := []struct {
		name           string
		metricTags     []MetricTagConfig
		expectedErrors []string
	}{
		{
			name: "invalid match pattern",
			metricTags: []MetricTagConfig{
				{
					Match: "([a-z)",
					Tags: map[string]string{
						"foo": "\\1",
					},
				},
			},
			expectedErrors: []string{
				"cannot compile `match`",
			},
		},
		{
			name: "valid global tag",
			metricTags: []MetricTagConfig{
				{
					Tag:    "snmp_host",
					OID:    "1.3.6.1.2.1.1.5.0",
					Name:   "sysName",
					Column: SymbolConfig{},
				},
			},
			expectedErrors: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateEnrichMetricTags(tt.metricTags)
			assert.Equal(t, len(tt.expectedErrors), len(errors), "errors: %v", errors)
			for i := range errors {
				assert.Contains(t, errors[i].Error(), tt.expectedErrors[i])
			}
		})
	}
}
