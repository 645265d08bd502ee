// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2023-present Datadog, Inc.

package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sayap/integrations-core/pkg/aggregator/mocksender"
	"github.com/sayap/integrations-core/pkg/snmp/checkconfig"
	"github.com/sayap/integrations-core/pkg/snmp/discovery"
	"github.com/sayap/integrations-core/pkg/snmp/session"
)

func makeDevice(t *testing.T, ip string) discovery.Device {
	t.Helper()
	subnetConfig := discovery.SubnetConfig{
		Network:         "192.168.0.0/24",
		CommunityString: "public",
	}
	return discovery.Device{
		ID:       subnetConfig.Digest(ip),
		IP:       ip,
		SubnetID: "snmp:" + subnetConfig.Digest(subnetConfig.Network),
		Config:   subnetConfig.BuildDeviceConfig(ip),
	}
}

func TestRunAll(t *testing.T) {
	sess := session.CreateMockSession()
	session.NewSession = func(*checkconfig.CheckConfig) (session.Session, error) {
		return sess, nil
	}

	testChan := make(chan checkJob, 10)
	worker = func(r *CheckRunner, jobs <-chan checkJob, workerID int) {
		for {
			job := <-jobs
			testChan <- job
		}
	}

	sender := mocksender.NewMockSender("123")
	sender.SetupAcceptAll()

	r := NewCheckRunner(sender, 1, time.Minute)
	err := r.AddDevice(makeDevice(t, "192.168.0.1"))
	assert.Nil(t, err)

	r.RunAll()
	job := <-testChan
	assert.Equal(t, "192.168.0.1", job.deviceCheck.GetIPAddress())

	// the device stays marked as running until the collection finishes, a
	// second scheduling pass must not queue it again
	r.RunAll()
	assert.Len(t, testChan, 0)

	r.runOneDevice(job.deviceCheck)

	// interval not reached yet
	r.RunAll()
	assert.Len(t, testChan, 0)

	r.RemoveDevice(makeDevice(t, "192.168.0.1").ID)
	r.RunAll()
	assert.Len(t, testChan, 0)
}

func TestRunOneDevice(t *testing.T) {
	sess := session.CreateMockSession()
	session.NewSession = func(*checkconfig.CheckConfig) (session.Session, error) {
		return sess, nil
	}

	// workers are not needed, runOneDevice is called directly
	worker = func(r *CheckRunner, jobs <-chan checkJob, workerID int) {}

	sender := mocksender.NewMockSender("123")
	sender.SetupAcceptAll()

	r := NewCheckRunner(sender, 1, 0)
	device := makeDevice(t, "192.168.0.2")
	err := r.AddDevice(device)
	assert.Nil(t, err)

	r.checksMu.Lock()
	deviceCk := r.checks[device.ID]
	r.checksMu.Unlock()

	devTags := []string{"device_id:" + deviceCk.GetDeviceID(), "device_ip:192.168.0.2"}

	r.runOneDevice(deviceCk)
	sender.AssertCalled(t, "Gauge", "datadog.snmp.runner.device.duration", mock.AnythingOfType("float64"), "", mocksender.MatchTagsContains(devTags))
	sender.AssertCalled(t, "Count", "datadog.snmp.runner.device.runs", float64(1), "", mocksender.MatchTagsContains(devTags))
	sender.AssertNotCalled(t, "Gauge", "datadog.snmp.runner.device.interval", mock.AnythingOfType("float64"), "", mocksender.MatchTagsContains(devTags))
	sender.AssertCalled(t, "Commit")

	// the device can run again, and the interval since the previous run is reported
	r.runOneDevice(deviceCk)
	sender.AssertCalled(t, "Gauge", "datadog.snmp.runner.device.interval", mock.AnythingOfType("float64"), "", mocksender.MatchTagsContains(devTags))

	r.isRunningMu.Lock()
	assert.Len(t, r.isRunning, 0)
	r.isRunningMu.Unlock()
}

func TestListen(t *testing.T) {
	sess := session.CreateMockSession()
	session.NewSession = func(*checkconfig.CheckConfig) (session.Session, error) {
		return sess, nil
	}

	worker = func(r *CheckRunner, jobs <-chan checkJob, workerID int) {}

	sender := mocksender.NewMockSender("123")
	sender.SetupAcceptAll()

	newDevice := make(chan discovery.Device, 10)
	delDevice := make(chan discovery.Device, 10)

	r := NewCheckRunner(sender, 1, time.Minute)
	r.Listen(newDevice, delDevice)

	device := makeDevice(t, "192.168.0.3")
	newDevice <- device

	assert.Eventually(t, func() bool {
		r.checksMu.Lock()
		defer r.checksMu.Unlock()
		_, ok := r.checks[device.ID]
		return ok
	}, time.Second, 10*time.Millisecond)

	delDevice <- device

	assert.Eventually(t, func() bool {
		r.checksMu.Lock()
		defer r.checksMu.Unlock()
		return len(r.checks) == 0
	}, time.Second, 10*time.Millisecond)

	r.Stop()
}
