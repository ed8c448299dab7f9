package device

import (
	"reflect"
	"testing"
)

const showIPIntBrief = `Interface                  IP-Address      OK? Method Status                Protocol
GigabitEthernet0/0         10.0.0.51       YES NVRAM  up                    up
GigabitEthernet0/1         unassigned      YES unset  administratively down down
Loopback0                  172.16.0.1      YES manual up                    up
`

func TestParseInterfaceBrief(t *testing.T) {
	got := ParseInterfaceBrief(showIPIntBrief)
	want := []InterfaceEntry{
		{Interface: "GigabitEthernet0/0", IP: "10.0.0.51", OK: "YES", Method: "NVRAM", Status: "up", Protocol: "up"},
		{Interface: "GigabitEthernet0/1", IP: "unassigned", OK: "YES", Method: "unset", Status: "administratively", Protocol: "down"},
		{Interface: "Loopback0", IP: "172.16.0.1", OK: "YES", Method: "manual", Status: "up", Protocol: "up"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseInterfaceBrief() = %v, want %v", got, want)
	}
}

func TestParseInterfaceBriefSkipsShortRows(t *testing.T) {
	raw := "Interface IP-Address OK? Method Status Protocol\nincomplete row here\n"
	if got := ParseInterfaceBrief(raw); got != nil {
		t.Fatalf("ParseInterfaceBrief() = %v, want nil", got)
	}
}

func TestParseInterfaceBriefEmpty(t *testing.T) {
	if got := ParseInterfaceBrief("\n  \n"); got != nil {
		t.Fatalf("ParseInterfaceBrief() = %v, want nil", got)
	}
}

const showVersionXE = `Cisco IOS XE Software, Version 17.03.02
Cisco IOS Software [Amsterdam], Virtual XE Software (X86_64_LINUX_IOSD-UNIVERSALK9-M), Version 17.3.2, RELEASE SOFTWARE (fc3)
Technical Support: http://www.cisco.com/techsupport

R51 uptime is 2 weeks, 3 days, 1 hour, 12 minutes
System returned to ROM by reload
`

const showVersionClassic = `Cisco IOS Software, C2900 Software (C2900-UNIVERSALK9-M), Version 15.2(4)M6, RELEASE SOFTWARE (fc2)
Technical Support: http://www.cisco.com/techsupport

edge-router uptime is 45 minutes
`

func TestParseShowVersion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want VersionInfo
	}{
		{
			name: "ios xe",
			raw:  showVersionXE,
			want: VersionInfo{Hostname: "R51", Version: "17.03.02", Uptime: "2 weeks, 3 days, 1 hour, 12 minutes"},
		},
		{
			name: "classic ios",
			raw:  showVersionClassic,
			want: VersionInfo{Hostname: "edge-router", Version: "15.2(4)M6", Uptime: "45 minutes"},
		},
		{
			name: "unrecognized",
			raw:  "Connection closed by remote host",
			want: VersionInfo{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseShowVersion(tt.raw); got != tt.want {
				t.Fatalf("ParseShowVersion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
