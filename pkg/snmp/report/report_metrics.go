// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package report converts fetched OID values into metrics and tags and
// submits them to a Sender.
package report

import (
	"fmt"

	"github.com/sayap/integrations-core/pkg/aggregator"
	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
	"github.com/sayap/integrations-core/pkg/snmp/common"
	"github.com/sayap/integrations-core/pkg/snmp/valuestore"
	"github.com/sayap/integrations-core/pkg/util/log"
)

// MetricSender is a wrapper around aggregator.Sender
type MetricSender struct {
	sender           aggregator.Sender
	hostname         string
	submittedMetrics int
}

// NewMetricSender create a new MetricSender
func NewMetricSender(sender aggregator.Sender) *MetricSender {
	return &MetricSender{sender: sender}
}

// ReportMetrics reports metrics using Sender
func (ms *MetricSender) ReportMetrics(metrics []profiledefinition.MetricsConfig, values *valuestore.ResultValueStore, tags []string) {
	for _, metric := range metrics {
		if metric.IsScalar() {
			ms.reportScalarMetrics(metric, values, tags)
		} else if metric.IsColumn() {
			ms.reportColumnMetrics(metric, values, tags)
		}
	}
}

// GetCheckedTags returns tags based on metric tag configs that reference
// scalar OIDs, e.g. the device sysName. Tags that cannot be resolved from the
// fetched values are skipped.
func (ms *MetricSender) GetCheckedTags(metricTags []profiledefinition.MetricTagConfig, values *valuestore.ResultValueStore) []string {
	var globalTags []string
	for _, metricTag := range metricTags {
		if metricTag.OID == "" {
			continue
		}
		value, err := values.GetScalarValue(metricTag.OID)
		if err != nil {
			log.Debugf("report global tags: error getting scalar value: %v", err)
			continue
		}
		strValue, err := value.ToString()
		if err != nil {
			log.Debugf("report global tags: error converting value (%#v) to string : %v", value, err)
			continue
		}
		globalTags = append(globalTags, metricTag.GetTags(strValue)...)
	}
	return globalTags
}

// GetSubmittedMetrics returns the number of metrics submitted so far
func (ms *MetricSender) GetSubmittedMetrics() int {
	return ms.submittedMetrics
}

func (ms *MetricSender) reportScalarMetrics(metric profiledefinition.MetricsConfig, values *valuestore.ResultValueStore, tags []string) {
	value, err := getScalarValueFromSymbol(values, metric.Symbol)
	if err != nil {
		log.Debugf("report scalar: error getting scalar value: %v", err)
		return
	}

	scalarTags := common.CopyStrings(tags)
	scalarTags = append(scalarTags, metric.GetSymbolTags()...)
	scalarTags = append(scalarTags, metric.StaticTags...)
	ms.sendMetric(metric.Symbol.Name, value, scalarTags, metric.ForcedType, metric.Options)
}

func (ms *MetricSender) reportColumnMetrics(metricConfig profiledefinition.MetricsConfig, values *valuestore.ResultValueStore, tags []string) {
	rowTagsCache := make(map[string][]string)
	for _, symbol := range metricConfig.Symbols {
		metricValues, err := getColumnValueFromSymbol(values, symbol)
		if err != nil {
			log.Debugf("report column: error getting column value: %v", err)
			continue
		}
		for fullIndex, value := range metricValues {
			// cache row tags by fullIndex to avoid rebuilding them for each column
			if _, ok := rowTagsCache[fullIndex]; !ok {
				rowTags := common.CopyStrings(tags)
				rowTags = append(rowTags, ms.getRowTags(metricConfig, fullIndex, values)...)
				rowTags = append(rowTags, metricConfig.StaticTags...)
				rowTagsCache[fullIndex] = rowTags
			}
			ms.sendMetric(symbol.Name, value, rowTagsCache[fullIndex], metricConfig.ForcedType, metricConfig.Options)
		}
	}
}

func (ms *MetricSender) sendMetric(metricName string, value valuestore.ResultValue, tags []string, forcedType string, options profiledefinition.MetricsConfigOption) {
	metricFullName := "snmp." + metricName
	if forcedType == "" {
		if value.SubmissionType != "" {
			forcedType = value.SubmissionType
		} else {
			forcedType = "gauge"
		}
	} else if forcedType == "flag_stream" {
		strValue, err := value.ToString()
		if err != nil {
			log.Debugf("metric `%s`: failed to convert to string: %s", metricFullName, err)
			return
		}
		floatValue, err := getFlagStreamValue(options.Placement, strValue)
		if err != nil {
			log.Debugf("metric `%s`: failed to get flag stream value: %s", metricFullName, err)
			return
		}
		metricFullName = metricFullName + "." + options.MetricSuffix
		value = valuestore.ResultValue{Value: floatValue}
		forcedType = "gauge"
	}

	floatValue, err := value.ToFloat64()
	if err != nil {
		log.Debugf("metric `%s`: failed to convert to float64: %s", metricFullName, err)
		return
	}

	switch forcedType {
	case "gauge":
		ms.Gauge(metricFullName, floatValue, tags)
		ms.submittedMetrics++
	case "counter":
		ms.Rate(metricFullName, floatValue, tags)
		ms.submittedMetrics++
	case "percent":
		ms.Rate(metricFullName, floatValue*100, tags)
		ms.submittedMetrics++
	case "monotonic_count":
		ms.MonotonicCount(metricFullName, floatValue, tags)
		ms.submittedMetrics++
	case "monotonic_count_and_rate":
		ms.MonotonicCount(metricFullName, floatValue, tags)
		ms.Rate(metricFullName+".rate", floatValue, tags)
		ms.submittedMetrics += 2
	default:
		log.Debugf("metric `%s`: unsupported forcedType: %s", metricFullName, forcedType)
	}
}

// getFlagStreamValue returns the value of the flag at the given 1-based
// placement in the flag stream, e.g. placement 2 of `0101` is `1`.
func getFlagStreamValue(placement uint, strValue string) (float64, error) {
	if placement == 0 {
		return 0, fmt.Errorf("invalid flag stream placement: 0")
	}
	index := int(placement) - 1
	if index >= len(strValue) {
		return 0, fmt.Errorf("flag stream index `%d` not found in `%s`", index, strValue)
	}
	floatValue := 0.0
	if strValue[index] == '1' {
		floatValue = 1.0
	}
	return floatValue, nil
}

// Gauge sends a gauge metric
func (ms *MetricSender) Gauge(metric string, value float64, tags []string) {
	ms.sender.Gauge(metric, value, ms.hostname, tags)
}

// Rate sends a rate metric
func (ms *MetricSender) Rate(metric string, value float64, tags []string) {
	ms.sender.Rate(metric, value, ms.hostname, tags)
}

// MonotonicCount sends a monotonic count metric
func (ms *MetricSender) MonotonicCount(metric string, value float64, tags []string) {
	ms.sender.MonotonicCount(metric, value, ms.hostname, tags)
}

// ServiceCheck sends a service check
func (ms *MetricSender) ServiceCheck(checkName string, status aggregator.ServiceCheckStatus, tags []string, message string) {
	ms.sender.ServiceCheck(checkName, status, ms.hostname, tags, message)
}

// Commit commits to the sender
func (ms *MetricSender) Commit() {
	ms.sender.Commit()
}
