package proto

import (
	"fmt"
	"time"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/clickhouse-native/chwire/lib/protocol"
	"github.com/clickhouse-native/chwire/lib/timezone"
)

const ClientName = "Golang SQLDriver"

const (
	ClientVersionMajor       = 1
	ClientVersionMinor       = 1
	ClientTCPProtocolVersion = protocol.DBMS_TCP_PROTOCOL_VERSION
)

type ClientHandshake struct {
	Name            string
	VersionMajor    uint64
	VersionMinor    uint64
	ProtocolVersion uint64
}

func (ClientHandshake) Encode(encoder *binary.Encoder) error {
	if err := encoder.String(ClientName); err != nil {
		return err
	}
	if err := encoder.Uvarint(ClientVersionMajor); err != nil {
		return err
	}
	if err := encoder.Uvarint(ClientVersionMinor); err != nil {
		return err
	}
	return encoder.Uvarint(ClientTCPProtocolVersion)
}

// Decode reads a client handshake as sent by a driver. A test server uses
// this; a real driver only ever encodes its own handshake.
func (ch *ClientHandshake) Decode(decoder *binary.Decoder) (err error) {
	if ch.Name, err = decoder.String(); err != nil {
		return fmt.Errorf("could not read client name: %v", err)
	}
	if ch.VersionMajor, err = decoder.Uvarint(); err != nil {
		return fmt.Errorf("could not read client major version: %v", err)
	}
	if ch.VersionMinor, err = decoder.Uvarint(); err != nil {
		return fmt.Errorf("could not read client minor version: %v", err)
	}
	if ch.ProtocolVersion, err = decoder.Uvarint(); err != nil {
		return fmt.Errorf("could not read client protocol version: %v", err)
	}
	return nil
}

func (ClientHandshake) String() string {
	return fmt.Sprintf("%s %d.%d.%d", ClientName, ClientVersionMajor, ClientVersionMinor, ClientTCPProtocolVersion)
}

// Version carries a server's three-part release number.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

type ServerHandshake struct {
	Name        string
	DisplayName string
	Revision    uint64
	Version     Version
	Timezone    *time.Location
}

func (srv *ServerHandshake) Decode(decoder *binary.Decoder) (err error) {
	if srv.Name, err = decoder.String(); err != nil {
		return fmt.Errorf("could not read server name: %v", err)
	}
	if srv.Version.Major, err = decoder.Uvarint(); err != nil {
		return fmt.Errorf("could not read server major version: %v", err)
	}
	if srv.Version.Minor, err = decoder.Uvarint(); err != nil {
		return fmt.Errorf("could not read server minor version: %v", err)
	}
	if srv.Revision, err = decoder.Uvarint(); err != nil {
		return fmt.Errorf("could not read server revision: %v", err)
	}
	if srv.Revision >= protocol.DBMS_MIN_REVISION_WITH_SERVER_TIMEZONE {
		name, err := decoder.String()
		if err != nil {
			return fmt.Errorf("could not read server timezone: %v", err)
		}
		if srv.Timezone, err = timezone.Load(name); err != nil {
			return fmt.Errorf("could not load time location: %v", err)
		}
	}
	if srv.Revision >= protocol.DBMS_MIN_REVISION_WITH_SERVER_DISPLAY_NAME {
		if srv.DisplayName, err = decoder.String(); err != nil {
			return fmt.Errorf("could not read server display name: %v", err)
		}
	}
	if srv.Revision >= protocol.DBMS_MIN_REVISION_WITH_VERSION_PATCH {
		if srv.Version.Patch, err = decoder.Uvarint(); err != nil {
			return fmt.Errorf("could not read server patch: %v", err)
		}
	} else {
		srv.Version.Patch = srv.Revision
	}
	return nil
}

// Encode writes a server handshake. A test server uses this; a real
// driver only ever decodes the handshake the server sends it.
func (srv *ServerHandshake) Encode(encoder *binary.Encoder) error {
	if err := encoder.String(srv.Name); err != nil {
		return err
	}
	if err := encoder.Uvarint(srv.Version.Major); err != nil {
		return err
	}
	if err := encoder.Uvarint(srv.Version.Minor); err != nil {
		return err
	}
	if err := encoder.Uvarint(srv.Revision); err != nil {
		return err
	}
	if srv.Revision >= protocol.DBMS_MIN_REVISION_WITH_SERVER_TIMEZONE {
		name := "UTC"
		if srv.Timezone != nil {
			name = srv.Timezone.String()
		}
		if err := encoder.String(name); err != nil {
			return err
		}
	}
	if srv.Revision >= protocol.DBMS_MIN_REVISION_WITH_SERVER_DISPLAY_NAME {
		if err := encoder.String(srv.DisplayName); err != nil {
			return err
		}
	}
	if srv.Revision >= protocol.DBMS_MIN_REVISION_WITH_VERSION_PATCH {
		if err := encoder.Uvarint(srv.Version.Patch); err != nil {
			return err
		}
	}
	return nil
}

func (srv ServerHandshake) String() string {
	return fmt.Sprintf("%s (%s) server version %d.%d.%d revision %d (timezone %s)", srv.Name, srv.DisplayName,
		srv.Version.Major,
		srv.Version.Minor,
		srv.Version.Patch,
		srv.Revision,
		srv.Timezone,
	)
}
