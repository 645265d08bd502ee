// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package session

import (
	"fmt"
	"time"

	"github.com/cihub/seelog"
	"github.com/gosnmp/gosnmp"

	"github.com/sayap/integrations-core/pkg/snmp/checkconfig"
	"github.com/sayap/integrations-core/pkg/snmp/gosnmplib"
	"github.com/sayap/integrations-core/pkg/util/log"
)

// Session interface for connecting to a snmp device
type Session interface {
	Connect() error
	Close() error
	Get(oids []string) (result *gosnmp.SnmpPacket, err error)
	GetBulk(oids []string, bulkMaxRepetitions uint32) (result *gosnmp.SnmpPacket, err error)
	GetNext(oids []string) (result *gosnmp.SnmpPacket, err error)
	GetVersion() gosnmp.SnmpVersion
}

// GosnmpSession is used to connect to a snmp device
type GosnmpSession struct {
	gosnmpInst gosnmp.GoSNMP
}

// Connect is used to create a new connection
func (s *GosnmpSession) Connect() error {
	return s.gosnmpInst.Connect()
}

// Close is used to close the connection
func (s *GosnmpSession) Close() error {
	return s.gosnmpInst.Conn.Close()
}

// Get will send a SNMPGET command
func (s *GosnmpSession) Get(oids []string) (result *gosnmp.SnmpPacket, err error) {
	packet, err := s.gosnmpInst.Get(oids)
	if packet != nil {
		log.Tracef("get response: %s", gosnmplib.PacketAsStringIfLoglevel(packet, seelog.TraceLvl))
	}
	return packet, err
}

// GetBulk will send a SNMP BULKGET command
func (s *GosnmpSession) GetBulk(oids []string, bulkMaxRepetitions uint32) (result *gosnmp.SnmpPacket, err error) {
	packet, err := s.gosnmpInst.GetBulk(oids, 0, bulkMaxRepetitions)
	if packet != nil {
		log.Tracef("get bulk response: %s", gosnmplib.PacketAsStringIfLoglevel(packet, seelog.TraceLvl))
	}
	return packet, err
}

// GetNext will send a SNMP GETNEXT command
func (s *GosnmpSession) GetNext(oids []string) (result *gosnmp.SnmpPacket, err error) {
	packet, err := s.gosnmpInst.GetNext(oids)
	if packet != nil {
		log.Tracef("get next response: %s", gosnmplib.PacketAsStringIfLoglevel(packet, seelog.TraceLvl))
	}
	return packet, err
}

// GetVersion returns the snmp version used
func (s *GosnmpSession) GetVersion() gosnmp.SnmpVersion {
	return s.gosnmpInst.Version
}

// NewSession creates a new session, connection is not established yet.
// It is a variable to make it possible to replace it in tests.
var NewSession = func(config *checkconfig.CheckConfig) (Session, error) {
	s := &GosnmpSession{}

	if config.CommunityString == "" {
		return nil, fmt.Errorf("an authentication method needs to be provided")
	}

	port := config.Port
	if port == 0 {
		port = checkconfig.DefaultPort
	}

	var version gosnmp.SnmpVersion
	switch config.SnmpVersion {
	case "1":
		version = gosnmp.Version1
	case "", "2", "2c":
		version = gosnmp.Version2c
	default:
		return nil, fmt.Errorf("snmp version not supported: %s", config.SnmpVersion)
	}

	s.gosnmpInst = gosnmp.GoSNMP{
		Target:    config.IPAddress,
		Port:      port,
		Community: config.CommunityString,
		Transport: "udp",
		Version:   version,
		Timeout:   time.Duration(config.Timeout) * time.Second,
		Retries:   config.Retries,
	}
	return s, nil
}
