// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package mocksender provides a mock Sender for testing checks.
package mocksender

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/sayap/integrations-core/pkg/aggregator"
)

// NewMockSender initiates a new mock sender
func NewMockSender(id string) *MockSender {
	return &MockSender{id: id}
}

// MockSender allows mocking of the used sender for unit testing
type MockSender struct {
	mock.Mock
	id string
}

// SetupAcceptAll sets mock expectations to accept any call to any method
func (m *MockSender) SetupAcceptAll() {
	for _, method := range []string{"Gauge", "Rate", "Count", "MonotonicCount"} {
		m.On(method, mock.AnythingOfType("string"), mock.AnythingOfType("float64"), mock.AnythingOfType("string"), mock.AnythingOfType("[]string")).Return()
	}
	m.On("ServiceCheck", mock.AnythingOfType("string"), mock.AnythingOfType("aggregator.ServiceCheckStatus"), mock.AnythingOfType("string"), mock.AnythingOfType("[]string"), mock.AnythingOfType("string")).Return()
	m.On("Commit").Return()
}

// Gauge adds a gauge type to the mock calls.
func (m *MockSender) Gauge(metric string, value float64, hostname string, tags []string) {
	m.Called(metric, value, hostname, tags)
}

// Rate adds a rate type to the mock calls.
func (m *MockSender) Rate(metric string, value float64, hostname string, tags []string) {
	m.Called(metric, value, hostname, tags)
}

// Count adds a count type to the mock calls.
func (m *MockSender) Count(metric string, value float64, hostname string, tags []string) {
	m.Called(metric, value, hostname, tags)
}

// MonotonicCount adds a monotonic count type to the mock calls.
func (m *MockSender) MonotonicCount(metric string, value float64, hostname string, tags []string) {
	m.Called(metric, value, hostname, tags)
}

// ServiceCheck enables the service check mock call.
func (m *MockSender) ServiceCheck(checkName string, status aggregator.ServiceCheckStatus, hostname string, tags []string, message string) {
	m.Called(checkName, status, hostname, tags, message)
}

// Commit enables the commit mock call.
func (m *MockSender) Commit() {
	m.Called()
}

// AssertMetric allows to assert a metric was emitted with given parameters
func (m *MockSender) AssertMetric(t *testing.T, method string, metric string, value float64, hostname string, tags []string) {
	t.Helper()
	m.AssertCalled(t, method, metric, value, hostname, MatchTagsContains(tags))
}

// AssertMetricNotCalled allows to assert a metric was never emitted
func (m *MockSender) AssertMetricNotCalled(t *testing.T, method string, metric string) {
	t.Helper()
	m.AssertNotCalled(t, method, metric, mock.AnythingOfType("float64"), mock.AnythingOfType("string"), mock.AnythingOfType("[]string"))
}

// AssertServiceCheck allows to assert a service check was emitted with given parameters
func (m *MockSender) AssertServiceCheck(t *testing.T, checkName string, status aggregator.ServiceCheckStatus, hostname string, tags []string, message string) {
	t.Helper()
	m.AssertCalled(t, "ServiceCheck", checkName, status, hostname, MatchTagsContains(tags), message)
}

// MatchTagsContains is a mock.argumentMatcher builder to be used in asserts.
// It allows to check if the actual tags contains all the expected ones.
func MatchTagsContains(expected []string) interface{} {
	return mock.MatchedBy(func(actual []string) bool {
		for _, tag := range expected {
			found := false
			for _, aTag := range actual {
				if tag == aTag {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	})
}
