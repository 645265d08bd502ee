// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package report

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sayap/integrations-core/pkg/aggregator/mocksender"
	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
	"github.com/sayap/integrations-core/pkg/snmp/valuestore"
)

func Test_transformIndex(t *testing.T) {
	tests := []struct {
		name               string
		indexes            []string
		transformRules     []profiledefinition.MetricIndexTransform
		expectedNewIndexes []string
	}{
		{
			"no rule",
			[]string{"10", "11", "12", "13"},
			[]profiledefinition.MetricIndexTransform{},
			nil,
		},
		{
			"one transform",
			[]string{"10", "11", "12", "13"},
			[]profiledefinition.MetricIndexTransform{
				{Start: 2, End: 3},
			},
			[]string{"12", "13"},
		},
		{
			"multiple transforms",
			[]string{"10", "11", "12", "13"},
			[]profiledefinition.MetricIndexTransform{
				{Start: 2, End: 2},
				{Start: 0, End: 1},
			},
			[]string{"12", "10", "11"},
		},
		{
			"out of index end",
			[]string{"10", "11", "12", "13"},
			[]profiledefinition.MetricIndexTransform{
				{Start: 2, End: 1000},
			},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newIndexes := transformIndex(tt.indexes, tt.transformRules)
			assert.Equal(t, tt.expectedNewIndexes, newIndexes)
		})
	}
}

func Test_processValueUsingSymbolConfig(t *testing.T) {
	// extract_value
	value := valuestore.ResultValue{Value: "22C"}
	newValue, err := processValueUsingSymbolConfig(value, profiledefinition.SymbolConfig{
		ExtractValueCompiled: regexp.MustCompile(`(\d+)C`),
	})
	assert.NoError(t, err)
	assert.Equal(t, valuestore.ResultValue{Value: "22"}, newValue)

	// scale_factor
	value = valuestore.ResultValue{Value: float64(10)}
	newValue, err = processValueUsingSymbolConfig(value, profiledefinition.SymbolConfig{
		ScaleFactor: 10,
	})
	assert.NoError(t, err)
	assert.Equal(t, valuestore.ResultValue{Value: float64(100)}, newValue)

	// match_pattern and match_value
	value = valuestore.ResultValue{Value: "IOS 12.4, RELEASE"}
	newValue, err = processValueUsingSymbolConfig(value, profiledefinition.SymbolConfig{
		MatchPattern:         "IOS (\\S+),",
		MatchValue:           "$1",
		MatchPatternCompiled: regexp.MustCompile(`IOS (\S+),`),
	})
	assert.NoError(t, err)
	assert.Equal(t, valuestore.ResultValue{Value: "12.4"}, newValue)

	// match_pattern does not match
	value = valuestore.ResultValue{Value: "foo"}
	_, err = processValueUsingSymbolConfig(value, profiledefinition.SymbolConfig{
		MatchPattern:         "IOS (\\S+),",
		MatchValue:           "$1",
		MatchPatternCompiled: regexp.MustCompile(`IOS (\S+),`),
	})
	assert.ErrorContains(t, err, "does not match")

	// mac_address format
	value = valuestore.ResultValue{Value: []byte{0x82, 0xa5, 0x6e, 0xa5, 0xc8, 0x01}}
	newValue, err = processValueUsingSymbolConfig(value, profiledefinition.SymbolConfig{
		Format: "mac_address",
	})
	assert.NoError(t, err)
	assert.Equal(t, valuestore.ResultValue{Value: "82:a5:6e:a5:c8:01"}, newValue)
}

func Test_metricSender_getRowTags(t *testing.T) {
	sender := mocksender.NewMockSender("testID")
	ms := NewMetricSender(sender)

	values := &valuestore.ResultValueStore{
		ColumnValues: valuestore.ColumnResultValuesType{
			"1.3.6.1.2.1.31.1.1.1.1": {
				"1.2": {Value: "nameRow1"},
			},
			"1.3.6.1.2.1.4.31.3.1.3": {
				"2": {Value: "ipv6"},
			},
		},
	}

	metricConfig := profiledefinition.MetricsConfig{
		Symbols: []profiledefinition.SymbolConfig{
			{OID: "1.3.6.1.2.1.2.2.1.14", Name: "ifInErrors"},
		},
		MetricTags: profiledefinition.MetricTagConfigList{
			// tag from a column of the same table
			{Tag: "interface", Column: profiledefinition.SymbolConfig{OID: "1.3.6.1.2.1.31.1.1.1.1", Name: "ifName"}},
			// tag from an index position, with mapping
			{Tag: "ip_version", Index: 1, Mapping: map[string]string{"1": "ipv4", "2": "ipv6"}},
			// tag from an index position, no mapping
			{Tag: "row", Index: 2},
			// tag from a column of another table using index transform
			{Tag: "addr_type", Column: profiledefinition.SymbolConfig{OID: "1.3.6.1.2.1.4.31.3.1.3", Name: "ipIfStatsHCInOctets"}, IndexTransform: []profiledefinition.MetricIndexTransform{{Start: 1, End: 1}}},
		},
	}

	tags := ms.getRowTags(metricConfig, "1.2", values)
	assert.ElementsMatch(t, []string{"interface:nameRow1", "ip_version:ipv4", "row:2", "addr_type:ipv6"}, tags)
}
