// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2023-present Datadog, Inc.

// Package runner schedules device checks over a worker pool. Devices are
// independent so collections run concurrently, with a guard so that a slow
// device is never collected twice at the same time.
package runner

import (
	"sync"
	"time"

	"github.com/sayap/integrations-core/pkg/aggregator"
	"github.com/sayap/integrations-core/pkg/snmp/devicecheck"
	"github.com/sayap/integrations-core/pkg/snmp/discovery"
	"github.com/sayap/integrations-core/pkg/snmp/report"
	"github.com/sayap/integrations-core/pkg/util/log"
)

const (
	defaultWorkers               = 10
	defaultMinCollectionInterval = 15 * time.Second
)

// CheckRunner runs device checks for a dynamic set of devices
type CheckRunner struct {
	sender aggregator.Sender
	jobs   chan checkJob
	stop   chan struct{}

	minCollectionInterval time.Duration

	prevRunTime   map[string]time.Time
	prevRunTimeMu sync.Mutex

	isRunning   map[string]bool
	isRunningMu sync.Mutex

	checks   map[string]*devicecheck.DeviceCheck
	checksMu sync.Mutex
}

type checkJob struct {
	deviceCheck *devicecheck.DeviceCheck
}

// NewCheckRunner creates a CheckRunner and starts its workers
func NewCheckRunner(sender aggregator.Sender, workers int, minCollectionInterval time.Duration) *CheckRunner {
	if workers == 0 {
		workers = defaultWorkers
	}
	if minCollectionInterval == 0 {
		minCollectionInterval = defaultMinCollectionInterval
	}
	runner := &CheckRunner{
		sender:                sender,
		stop:                  make(chan struct{}),
		minCollectionInterval: minCollectionInterval,
		prevRunTime:           make(map[string]time.Time),
		isRunning:             make(map[string]bool),
		checks:                make(map[string]*devicecheck.DeviceCheck),
	}

	jobs := make(chan checkJob)
	for w := 0; w < workers; w++ {
		go worker(runner, jobs, w)
	}
	runner.jobs = jobs
	return runner
}

// Don't make it a method, to be overridden in tests
var worker = func(r *CheckRunner, jobs <-chan checkJob, workerID int) {
	for {
		select {
		case <-r.stop:
			log.Debug("Stopping check worker")
			return
		case job := <-jobs:
			log.Debugf("[worker %d] Handling device %s", workerID, job.deviceCheck.GetDeviceID())
			r.runOneDevice(job.deviceCheck)
		}
	}
}

// AddDevice registers a device so that the next RunAll collects from it
func (r *CheckRunner) AddDevice(device discovery.Device) error {
	deviceCk, err := devicecheck.NewDeviceCheck(device.Config, device.IP)
	if err != nil {
		return err
	}
	deviceCk.SetSender(report.NewMetricSender(r.sender))

	r.checksMu.Lock()
	defer r.checksMu.Unlock()
	r.checks[device.ID] = deviceCk
	return nil
}

// RemoveDevice unregisters a device
func (r *CheckRunner) RemoveDevice(deviceID string) {
	r.checksMu.Lock()
	defer r.checksMu.Unlock()
	delete(r.checks, deviceID)
}

// Listen consumes discovery events and keeps the set of devices up to date
func (r *CheckRunner) Listen(newDevice <-chan discovery.Device, delDevice <-chan discovery.Device) {
	go func() {
		for {
			select {
			case <-r.stop:
				return
			case device := <-newDevice:
				if err := r.AddDevice(device); err != nil {
					log.Errorf("failed to add device %s: %v", device.IP, err)
				}
			case device := <-delDevice:
				r.RemoveDevice(device.ID)
			}
		}
	}()
}

// Start schedules a RunAll every checkInterval until Stop is called
func (r *CheckRunner) Start(checkInterval time.Duration) {
	go func() {
		ticker := time.NewTicker(checkInterval)
		defer ticker.Stop()
		for {
			r.RunAll()
			select {
			case <-r.stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop shuts down the workers. In-flight collections finish first.
func (r *CheckRunner) Stop() {
	close(r.stop)
}

// RunAll queues one collection per known device, skipping devices collected
// too recently or still being collected
func (r *CheckRunner) RunAll() {
	r.checksMu.Lock()
	checks := make([]*devicecheck.DeviceCheck, 0, len(r.checks))
	for _, deviceCk := range r.checks {
		checks = append(checks, deviceCk)
	}
	r.checksMu.Unlock()

	for _, deviceCk := range checks {
		if !r.shouldRun(deviceCk.GetDeviceID()) {
			continue
		}
		r.jobs <- checkJob{deviceCheck: deviceCk}
	}
}

func (r *CheckRunner) shouldRun(deviceID string) bool {
	r.prevRunTimeMu.Lock()
	prevTime, ok := r.prevRunTime[deviceID]
	r.prevRunTimeMu.Unlock()
	if ok && time.Since(prevTime) < r.minCollectionInterval {
		log.Debugf("Skip device %s, interval not reached", deviceID)
		return false
	}

	r.isRunningMu.Lock()
	defer r.isRunningMu.Unlock()
	if r.isRunning[deviceID] {
		log.Debugf("Skip device %s, already running", deviceID)
		return false
	}
	r.isRunning[deviceID] = true
	return true
}

func (r *CheckRunner) runOneDevice(deviceCk *devicecheck.DeviceCheck) {
	startTime := time.Now()
	deviceID := deviceCk.GetDeviceID()
	devTags := []string{
		"device_id:" + deviceID,
		"device_ip:" + deviceCk.GetIPAddress(),
	}

	r.prevRunTimeMu.Lock()
	if prevTime, ok := r.prevRunTime[deviceID]; ok {
		r.sender.Gauge("datadog.snmp.runner.device.interval", startTime.Sub(prevTime).Seconds(), "", devTags)
	}
	r.prevRunTime[deviceID] = startTime
	r.prevRunTimeMu.Unlock()

	if err := deviceCk.Run(startTime); err != nil {
		log.Errorf("failed to collect device %s: %v", deviceID, err)
	}

	r.sender.Gauge("datadog.snmp.runner.device.duration", time.Since(startTime).Seconds(), "", devTags)
	r.sender.Count("datadog.snmp.runner.device.runs", 1, "", devTags)
	r.sender.Commit()

	r.isRunningMu.Lock()
	delete(r.isRunning, deviceID)
	r.isRunningMu.Unlock()
}
