// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020-present Datadog, Inc.

// Package discovery scans subnets for SNMP devices. Each responding device is
// published on a channel so that a runner can start collecting from it; devices
// that stop responding are eventually unpublished.
package discovery

import (
	"net"
	"sync"
	"time"

	"github.com/sayap/integrations-core/pkg/snmp/checkconfig"
	"github.com/sayap/integrations-core/pkg/snmp/session"
	"github.com/sayap/integrations-core/pkg/util/log"
)

// Device is a discovered SNMP device
type Device struct {
	ID       string
	IP       string
	SubnetID string
	Config   *checkconfig.CheckConfig
}

// Listener implements SNMP discovery
type Listener struct {
	sync.RWMutex
	newDevice chan<- Device
	delDevice chan<- Device
	stop      chan bool
	config    ListenerConfig
	devices   map[string]Device
	subnets   map[string][]string
	failures  map[string]int
}

type snmpSubnet struct {
	subnetID   string
	config     SubnetConfig
	startingIP net.IP
	network    net.IPNet
	cacheKey   string
}

type checkDeviceJob struct {
	subnet    snmpSubnet
	currentIP net.IP
}

// NewListener creates a Listener
func NewListener(config ListenerConfig) *Listener {
	return &Listener{
		devices:  map[string]Device{},
		subnets:  map[string][]string{},
		failures: map[string]int{},
		stop:     make(chan bool),
		config:   config,
	}
}

// Listen periodically refreshes devices
func (l *Listener) Listen(newDevice chan<- Device, delDevice chan<- Device) {
	l.newDevice = newDevice
	l.delDevice = delDevice

	go l.checkDevices()
}

// Stop shuts down the Listener. The stop channel is closed so the scan loop
// and every worker observe it.
func (l *Listener) Stop() {
	close(l.stop)
}

// GetDevices returns a snapshot of the currently discovered devices
func (l *Listener) GetDevices() []Device {
	l.RLock()
	defer l.RUnlock()
	devices := make([]Device, 0, len(l.devices))
	for _, device := range l.devices {
		devices = append(devices, device)
	}
	return devices
}

// Don't make it a method, to be overridden in tests
var worker = processJobs

func processJobs(l *Listener, jobs <-chan checkDeviceJob) {
	for {
		select {
		case <-l.stop:
			log.Debug("Stopping discovery worker")
			return
		case job := <-jobs:
			log.Debugf("Handling IP %s", job.currentIP.String())
			l.checkDevice(job)
		}
	}
}

func (l *Listener) checkDevice(job checkDeviceJob) {
	deviceIP := job.currentIP.String()
	deviceID := job.subnet.config.Digest(deviceIP)

	deviceConfig := job.subnet.config.BuildDeviceConfig(deviceIP)
	sess, err := session.NewSession(deviceConfig)
	if err != nil {
		log.Errorf("Error configuring session for %s: %v", deviceIP, err)
		l.deleteDevice(deviceID, job.subnet)
		return
	}
	if err := sess.Connect(); err != nil {
		log.Debugf("SNMP connect to %s error: %v", deviceIP, err)
		l.deleteDevice(deviceID, job.subnet)
		return
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Warnf("failed to close session for %s: %v", deviceIP, err)
		}
	}()

	sysObjectID, err := session.FetchSysObjectID(sess)
	if err != nil {
		log.Debugf("SNMP get to %s error: %v", deviceIP, err)
		l.deleteDevice(deviceID, job.subnet)
		return
	}
	log.Debugf("SNMP get to %s success: %v", deviceIP, sysObjectID)
	l.createDevice(deviceID, deviceIP, job.subnet, true)
}

func (l *Listener) checkDevices() {
	var subnets []snmpSubnet
	for _, config := range l.config.Configs {
		ipAddr, ipNet, err := net.ParseCIDR(config.Network)
		if err != nil {
			log.Errorf("Couldn't parse SNMP network: %s", err)
			continue
		}

		startingIP := ipAddr.Mask(ipNet.Mask)

		configHash := config.Digest(config.Network)
		subnet := snmpSubnet{
			subnetID:   "snmp:" + configHash,
			config:     config,
			startingIP: startingIP,
			network:    *ipNet,
			cacheKey:   configHash,
		}
		l.loadCache(subnet)
		subnets = append(subnets, subnet)
	}

	if l.config.Workers == 0 {
		l.config.Workers = 2
	}

	if l.config.DiscoveryInterval == 0 {
		l.config.DiscoveryInterval = 3600
	}

	if l.config.AllowedFailures == 0 {
		l.config.AllowedFailures = 3
	}

	jobs := make(chan checkDeviceJob)
	for w := 0; w < l.config.Workers; w++ {
		go worker(l, jobs)
	}

	discoveryTicker := time.NewTicker(time.Duration(l.config.DiscoveryInterval) * time.Second)
	defer discoveryTicker.Stop()

	for {
		for _, subnet := range subnets {
			startingIP := make(net.IP, len(subnet.startingIP))
			copy(startingIP, subnet.startingIP)
			for currentIP := startingIP; subnet.network.Contains(currentIP); incrementIP(currentIP) {

				if ignored := subnet.config.IsIPIgnored(currentIP); ignored {
					continue
				}

				job := checkDeviceJob{subnet: subnet}
				job.currentIP = make(net.IP, len(currentIP))
				copy(job.currentIP, currentIP)
				jobs <- job

				select {
				case <-l.stop:
					return
				default:
				}
			}
			l.writeCache(subnet)
		}

		select {
		case <-l.stop:
			return
		case <-discoveryTicker.C:
		}
	}
}

func (l *Listener) createDevice(deviceID string, deviceIP string, subnet snmpSubnet, writeCache bool) {
	l.Lock()
	defer l.Unlock()
	delete(l.failures, deviceID)
	if _, present := l.devices[deviceID]; present {
		return
	}
	device := Device{
		ID:       deviceID,
		IP:       deviceIP,
		SubnetID: subnet.subnetID,
		Config:   subnet.config.BuildDeviceConfig(deviceIP),
	}
	l.devices[deviceID] = device
	l.subnets[subnet.subnetID] = append(l.subnets[subnet.subnetID], deviceIP)
	if writeCache {
		l.writeCacheLocked(subnet)
	}
	l.newDevice <- device
}

// deleteDevice removes a previously discovered device after enough consecutive
// failed probes. A blip on one scan does not unpublish the device.
func (l *Listener) deleteDevice(deviceID string, subnet snmpSubnet) {
	l.Lock()
	defer l.Unlock()
	device, present := l.devices[deviceID]
	if !present {
		return
	}
	l.failures[deviceID]++
	if l.failures[deviceID] < l.config.AllowedFailures {
		return
	}
	l.delDevice <- device
	delete(l.devices, deviceID)
	delete(l.failures, deviceID)
	deviceIPs := l.subnets[subnet.subnetID]
	for i, ip := range deviceIPs {
		if ip == device.IP {
			l.subnets[subnet.subnetID] = append(deviceIPs[:i], deviceIPs[i+1:]...)
			break
		}
	}
	l.writeCacheLocked(subnet)
}

func incrementIP(ip net.IP) {
	for i := len(ip) - 1; i >= 0; i-- {
		ip[i]++
		if ip[i] > 0 {
			break
		}
	}
}
