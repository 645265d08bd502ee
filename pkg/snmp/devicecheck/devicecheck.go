// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package devicecheck runs a single collection cycle against one SNMP device:
// it detects the profile to use, fetches the configured OIDs and reports the
// resulting metrics and service checks.
package devicecheck

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/sayap/integrations-core/pkg/aggregator"
	"github.com/sayap/integrations-core/pkg/networkdevice/profile"
	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
	"github.com/sayap/integrations-core/pkg/snmp/checkconfig"
	"github.com/sayap/integrations-core/pkg/snmp/common"
	"github.com/sayap/integrations-core/pkg/snmp/fetch"
	"github.com/sayap/integrations-core/pkg/snmp/report"
	"github.com/sayap/integrations-core/pkg/snmp/session"
	"github.com/sayap/integrations-core/pkg/snmp/valuestore"
	"github.com/sayap/integrations-core/pkg/util/log"
)

const (
	serviceCheckName          = "snmp.can_check"
	deviceMonitoredMetric     = "snmp.devices_monitored"
	checkDurationTelemetry    = "datadog.snmp.check_duration"
	checkIntervalTelemetry    = "datadog.snmp.check_interval"
	submittedMetricsTelemetry = "datadog.snmp.submitted_metrics"

	// walking the whole device can get expensive, cap the number of OIDs
	// considered during metric detection
	detectMetricsMaxOids = 10000
)

// DeviceCheck hold info necessary to collect info for a single device
type DeviceCheck struct {
	config          *checkconfig.CheckConfig
	sender          *report.MetricSender
	session         session.Session
	metricsDetected bool
}

// NewDeviceCheck returns a new DeviceCheck
func NewDeviceCheck(config *checkconfig.CheckConfig, ipAddress string) (*DeviceCheck, error) {
	newConfig := config.CopyWithNewIP(ipAddress)

	sess, err := session.NewSession(newConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to configure session: %s", err)
	}

	return &DeviceCheck{
		config:  newConfig,
		session: sess,
	}, nil
}

// SetSender sets the current sender
func (d *DeviceCheck) SetSender(sender *report.MetricSender) {
	d.sender = sender
}

// GetIPAddress returns device IP
func (d *DeviceCheck) GetIPAddress() string {
	return d.config.IPAddress
}

// GetDeviceID returns device ID
func (d *DeviceCheck) GetDeviceID() string {
	return d.config.DeviceID
}

// Run executes the check
func (d *DeviceCheck) Run(collectionTime time.Time) error {
	startTime := time.Now()
	staticTags := d.config.GetStaticTags()

	tags, values, checkErr := d.getValuesAndTags(staticTags)
	if checkErr != nil {
		d.sender.ServiceCheck(serviceCheckName, aggregator.ServiceCheckCritical, tags, checkErr.Error())
	} else {
		d.sender.ServiceCheck(serviceCheckName, aggregator.ServiceCheckOK, tags, "")
	}

	d.sender.Gauge(deviceMonitoredMetric, float64(1), tags)

	if values != nil {
		d.sender.ReportMetrics(d.config.Metrics, values, tags)
	}

	d.submitTelemetryMetrics(startTime, collectionTime, tags)
	return checkErr
}

// getValuesAndTags connects to the device, refreshes the profile if needed and
// fetches all configured OIDs. Request level errors are logged and do not
// abort the run, the run only fails when nothing at all could be fetched.
func (d *DeviceCheck) getValuesAndTags(staticTags []string) ([]string, *valuestore.ResultValueStore, error) {
	tags := common.CopyStrings(staticTags)

	err := d.session.Connect()
	if err != nil {
		return tags, nil, fmt.Errorf("snmp connection error: %s", err)
	}
	defer func() {
		err := d.session.Close()
		if err != nil {
			log.Warnf("failed to close session: %v", err)
		}
	}()

	err = d.detectProfile()
	if err != nil {
		log.Warnf("%s: failed to detect profile: %s", d.config.DeviceID, err)
	}

	tags = append(tags, d.config.ProfileTags...)

	valuesStore, fetchErrors := fetch.Fetch(d.session, d.config)
	for _, fetchErr := range fetchErrors {
		log.Warnf("%s: %s", d.config.DeviceID, fetchErr)
	}
	if len(valuesStore.ScalarValues) == 0 && len(valuesStore.ColumnValues) == 0 && len(fetchErrors) > 0 {
		var errStrings []string
		for _, fetchErr := range fetchErrors {
			errStrings = append(errStrings, fetchErr.Error())
		}
		return tags, nil, fmt.Errorf("failed to fetch values: %s", strings.Join(errStrings, "; "))
	}

	tags = append(tags, d.sender.GetCheckedTags(d.config.MetricTags, valuesStore)...)
	return tags, valuesStore, nil
}

// detectProfile matches the device sysObjectID against the known profiles.
// Once a profile matched it stays selected for subsequent runs. When no
// profile matches and metric detection is enabled, the metrics to collect are
// derived from what the device actually exposes.
func (d *DeviceCheck) detectProfile() error {
	if !d.config.AutodetectProfile {
		return nil
	}

	sysObjectID, err := session.FetchSysObjectID(d.session)
	if err != nil {
		return fmt.Errorf("failed to fetch sysobjectid: %s", err)
	}

	profileName, err := profile.GetProfileForSysObjectID(d.config.Profiles, sysObjectID)
	if err != nil {
		if errors.Is(err, profile.ErrNoMatchingProfile) && d.config.DetectMetricsEnabled {
			return d.detectMetricsToMonitor()
		}
		return fmt.Errorf("failed to get profile for sysObjectID `%s`: %s", sysObjectID, err)
	}

	err = d.config.RefreshWithProfile(profileName)
	if err != nil {
		return fmt.Errorf("failed to refresh with profile `%s` detected using sysObjectID `%s`: %s", profileName, sysObjectID, err)
	}
	// the profile is baked into the config now, no need to detect it again
	d.config.AutodetectProfile = false
	return nil
}

// detectMetricsToMonitor walks the device and picks, from all known profiles,
// the metrics whose OIDs the device actually exposes.
func (d *DeviceCheck) detectMetricsToMonitor() error {
	if d.metricsDetected {
		return nil
	}

	deviceOids, err := d.collectDeviceOIDs()
	if err != nil {
		return fmt.Errorf("failed to collect device oids: %s", err)
	}
	oidTrie := common.BuildOidTrie(deviceOids)

	var metricConfigs []profiledefinition.MetricsConfig
	var metricTagConfigs []profiledefinition.MetricTagConfig

	var profileNames []string
	for name := range d.config.Profiles {
		profileNames = append(profileNames, name)
	}
	sort.Strings(profileNames)

	seenMetrics := make(map[string]bool)
	for _, name := range profileNames {
		definition := d.config.Profiles[name].Definition
		for _, metricConfig := range definition.Metrics {
			if !d.deviceHasMetric(oidTrie, metricConfig) {
				continue
			}
			metricKey := buildMetricKey(metricConfig)
			if seenMetrics[metricKey] {
				continue
			}
			seenMetrics[metricKey] = true
			metricConfigs = append(metricConfigs, metricConfig)
		}
		for _, metricTagConfig := range definition.MetricTags {
			if metricTagConfig.OID == "" || !oidTrie.LeafExist(metricTagConfig.OID) {
				continue
			}
			if seenMetrics[metricTagConfig.OID] {
				continue
			}
			seenMetrics[metricTagConfig.OID] = true
			metricTagConfigs = append(metricTagConfigs, metricTagConfig)
		}
	}

	d.config.AddDetectedMetrics(metricConfigs, metricTagConfigs)
	d.metricsDetected = true
	return nil
}

func (d *DeviceCheck) deviceHasMetric(oidTrie *common.OidTrie, metricConfig profiledefinition.MetricsConfig) bool {
	if metricConfig.IsScalar() {
		return oidTrie.LeafExist(metricConfig.Symbol.OID)
	}
	if metricConfig.IsColumn() {
		for _, symbol := range metricConfig.Symbols {
			if oidTrie.NodeExist(symbol.OID) {
				return true
			}
		}
	}
	return false
}

// collectDeviceOIDs walks the whole device using GetNext requests
func (d *DeviceCheck) collectDeviceOIDs() ([]string, error) {
	var deviceOids []string
	curOid := "1.0"
	for i := 0; i < detectMetricsMaxOids; i++ {
		results, err := d.session.GetNext([]string{curOid})
		if err != nil {
			return nil, fmt.Errorf("GetNext error: %s", err)
		}
		if len(results.Variables) != 1 {
			break
		}
		variable := results.Variables[0]
		if variable.Type == gosnmp.EndOfMibView {
			break
		}
		oid := strings.TrimLeft(variable.Name, ".")
		if oid == "" || oid == curOid {
			break
		}
		deviceOids = append(deviceOids, oid)
		curOid = oid
	}
	return deviceOids, nil
}

func (d *DeviceCheck) submitTelemetryMetrics(startTime time.Time, collectionTime time.Time, tags []string) {
	telemetryTags := append(common.CopyStrings(tags), "loader:core")

	d.sender.MonotonicCount(checkIntervalTelemetry, float64(collectionTime.UnixNano())/1e9, telemetryTags)
	d.sender.Gauge(checkDurationTelemetry, time.Since(startTime).Seconds(), telemetryTags)
	d.sender.Gauge(submittedMetricsTelemetry, float64(d.sender.GetSubmittedMetrics()), telemetryTags)
}

func buildMetricKey(metricConfig profiledefinition.MetricsConfig) string {
	if metricConfig.IsScalar() {
		return metricConfig.Symbol.OID
	}
	var oids []string
	for _, symbol := range metricConfig.Symbols {
		oids = append(oids, symbol.OID)
	}
	return metricConfig.Table.OID + ":" + strings.Join(oids, ",")
}
